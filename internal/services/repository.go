package services

import (
	"sort"
	"strconv"

	"github.com/resticw/resticw/pkg/restic"
)

// Keys recognized in the repository config file. They double as the
// environment variable names restic reads.
const (
	KeyRepository      = "RESTIC_REPOSITORY"
	KeyPasswordFile    = "RESTIC_PASSWORD_FILE"
	KeyRestUsername    = "RESTIC_REST_USERNAME"
	KeyRestPassword    = "RESTIC_REST_PASSWORD"
	KeyReadConcurrency = "RESTIC_READ_CONCURRENCY"
	KeyIgnoreCert      = "RESTIC_IGNORE_CERT"
	KeyKeepDaily       = "RESTIC_KEEP_DAILY"
	KeyKeepWeekly      = "RESTIC_KEEP_WEEKLY"
	KeyKeepMonthly     = "RESTIC_KEEP_MONTHLY"
	KeyKeepYearly      = "RESTIC_KEEP_YEARLY"
)

var ManagedKeys = []string{
	KeyRepository,
	KeyPasswordFile,
	KeyRestUsername,
	KeyRestPassword,
	KeyReadConcurrency,
	KeyIgnoreCert,
	KeyKeepDaily,
	KeyKeepWeekly,
	KeyKeepMonthly,
	KeyKeepYearly,
}

var DefaultRetention = restic.RetentionPolicy{
	Daily:   7,
	Weekly:  4,
	Monthly: 12,
	Yearly:  7,
}

type RepositoryConfig struct {
	Repository      string
	PasswordFile    string
	RestUsername    string
	RestPassword    string
	ReadConcurrency int
	// IgnoreCert is nil when the file does not set it.
	IgnoreCert *bool
	Retention  restic.RetentionPolicy
	// Extra holds any other assignment, such as backend credentials.
	Extra map[string]string
}

// Environ returns the entries handed to the restic child process.
func (r *RepositoryConfig) Environ() []string {
	env := make([]string, 0, 5+len(r.Extra))
	extras := make([]string, 0, len(r.Extra))
	for key := range r.Extra {
		extras = append(extras, key)
	}
	sort.Strings(extras)
	for _, key := range extras {
		env = append(env, key+"="+r.Extra[key])
	}

	env = append(env, KeyRepository+"="+r.Repository)
	if r.PasswordFile != "" {
		env = append(env, KeyPasswordFile+"="+r.PasswordFile)
	}
	if r.RestUsername != "" {
		env = append(env, KeyRestUsername+"="+r.RestUsername)
	}
	if r.RestPassword != "" {
		env = append(env, KeyRestPassword+"="+r.RestPassword)
	}
	if r.ReadConcurrency > 0 {
		env = append(env, KeyReadConcurrency+"="+strconv.Itoa(r.ReadConcurrency))
	}
	return env
}

// Scrub zeroes every field. Safe to call more than once.
func (r *RepositoryConfig) Scrub() {
	*r = RepositoryConfig{}
}
