package internal

// Config holds the raw inputs of a run as given on the command line or in
// the environment. Empty paths fall back to defaults inside BaseDir.
type Config struct {
	IncludeFile  string
	ExcludeFile  string
	RepoFile     string
	LogDir       string
	BaseDir      string
	ResticBinary string
	IgnoreCert   bool
	Verbose      bool
}
