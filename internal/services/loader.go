package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RepositoryLoader reads the shell-style KEY=VALUE repository file.
type RepositoryLoader struct {
	logger *zap.Logger
	fs     afero.Fs
}

func NewRepositoryLoader(logger *zap.Logger, fs afero.Fs) *RepositoryLoader {
	return &RepositoryLoader{
		logger: logger,
		fs:     fs,
	}
}

func (l *RepositoryLoader) Load(runCtx RunContext) (*RepositoryConfig, error) {
	exists, err := afero.Exists(l.fs, runCtx.RepoFile)
	if err != nil {
		return nil, &ConfigError{Path: runCtx.RepoFile, Err: err}
	}
	if !exists {
		return nil, &ConfigError{Path: runCtx.RepoFile, Err: errors.New("file not found")}
	}

	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigFile(runCtx.RepoFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Path: runCtx.RepoFile, Err: fmt.Errorf("failed to parse: %w", err)}
	}

	repo, err := decodeRepository(v)
	if err != nil {
		return nil, &ConfigError{Path: runCtx.RepoFile, Err: err}
	}

	l.logger.Sugar().Infof("Loaded repository config from %s", runCtx.RepoFile)
	l.logger.Sugar().Infof("Repository: %s", repo.Repository)
	l.logger.Sugar().Infof("Password file: %s", repo.PasswordFile)
	if repo.RestUsername != "" {
		l.logger.Sugar().Infof("REST username: %s", repo.RestUsername)
	}

	if repo.PasswordFile != "" {
		exists, err := afero.Exists(l.fs, repo.PasswordFile)
		if err != nil || !exists {
			l.logger.Sugar().Warnf("Password file %s not found", repo.PasswordFile)
		}
	}

	return repo, nil
}

func decodeRepository(v *viper.Viper) (*RepositoryConfig, error) {
	repo := &RepositoryConfig{
		Repository:   lookup(v, KeyRepository),
		PasswordFile: lookup(v, KeyPasswordFile),
		RestUsername: lookup(v, KeyRestUsername),
		RestPassword: lookup(v, KeyRestPassword),
		Extra:        map[string]string{},
	}

	var err error
	if repo.ReadConcurrency, err = lookupInt(v, KeyReadConcurrency, 0); err != nil {
		return nil, err
	}
	if value := lookup(v, KeyIgnoreCert); value != "" {
		ignore, err := ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyIgnoreCert, err)
		}
		repo.IgnoreCert = &ignore
	}

	if repo.Retention.Daily, err = lookupInt(v, KeyKeepDaily, DefaultRetention.Daily); err != nil {
		return nil, err
	}
	if repo.Retention.Weekly, err = lookupInt(v, KeyKeepWeekly, DefaultRetention.Weekly); err != nil {
		return nil, err
	}
	if repo.Retention.Monthly, err = lookupInt(v, KeyKeepMonthly, DefaultRetention.Monthly); err != nil {
		return nil, err
	}
	if repo.Retention.Yearly, err = lookupInt(v, KeyKeepYearly, DefaultRetention.Yearly); err != nil {
		return nil, err
	}

	managed := map[string]bool{}
	for _, key := range ManagedKeys {
		managed[strings.ToLower(key)] = true
	}
	// viper lowercases keys; restic and backend SDKs expect upper case
	for _, key := range v.AllKeys() {
		if managed[key] {
			continue
		}
		repo.Extra[strings.ToUpper(key)] = v.GetString(key)
	}

	return repo, nil
}

func lookup(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(strings.ToLower(key)))
}

// lookupInt treats a missing or empty value as unset.
func lookupInt(v *viper.Viper, key string, fallback int) (int, error) {
	value := lookup(v, key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid count %q", key, value)
	}
	return n, nil
}

// ParseBool accepts the usual shell spellings of a boolean.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", value)
}

