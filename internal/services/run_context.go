package services

import (
	"path/filepath"
	"strings"

	"github.com/resticw/resticw/internal"
)

const (
	defaultIncludeFile = "include.txt"
	defaultExcludeFile = "exclude.txt"
	defaultRepoFile    = "repository.env"
	defaultLogDir      = "logs"
)

// RunContext holds the resolved paths of a run. It is passed by value and
// never modified once built.
type RunContext struct {
	IncludeFile string
	ExcludeFile string
	RepoFile    string
	LogFile     string
	IgnoreCert  bool
}

// Resolve turns the raw configuration into absolute paths. Empty values
// fall back to files inside config.BaseDir.
func Resolve(config internal.Config) (RunContext, error) {
	include, err := resolvePath(config.IncludeFile, config.BaseDir, defaultIncludeFile)
	if err != nil {
		return RunContext{}, err
	}
	exclude, err := resolvePath(config.ExcludeFile, config.BaseDir, defaultExcludeFile)
	if err != nil {
		return RunContext{}, err
	}
	repo, err := resolvePath(config.RepoFile, config.BaseDir, defaultRepoFile)
	if err != nil {
		return RunContext{}, err
	}
	logDir, err := resolvePath(config.LogDir, config.BaseDir, defaultLogDir)
	if err != nil {
		return RunContext{}, err
	}

	return RunContext{
		IncludeFile: include,
		ExcludeFile: exclude,
		RepoFile:    repo,
		LogFile:     LogFilePath(logDir, include),
		IgnoreCert:  config.IgnoreCert,
	}, nil
}

// LogFilePath names the log after the include file, without its extension.
func LogFilePath(logDir string, includeFile string) string {
	base := filepath.Base(includeFile)
	return filepath.Join(logDir, strings.TrimSuffix(base, filepath.Ext(base))+".log")
}

// WithRepository applies the repository file's ignore-cert setting, which
// wins over the environment default.
func (rc RunContext) WithRepository(repo *RepositoryConfig) RunContext {
	if repo != nil && repo.IgnoreCert != nil {
		rc.IgnoreCert = *repo.IgnoreCert
	}
	return rc
}

func resolvePath(value string, baseDir string, fallback string) (string, error) {
	if value == "" {
		value = filepath.Join(baseDir, fallback)
	}
	return filepath.Abs(value)
}
