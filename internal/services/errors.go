package services

import (
	"fmt"
	"strings"
)

// MissingFileError lists every required input file that was not found.
type MissingFileError struct {
	Paths []string
}

func (e *MissingFileError) Error() string {
	return "missing required files: " + strings.Join(e.Paths, ", ")
}

type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("repository config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RepositoryInitError is returned when the repository can neither be
// listed nor initialized. It never carries the password itself.
type RepositoryInitError struct {
	Repository   string
	PasswordFile string
	Err          error
}

func (e *RepositoryInitError) Error() string {
	return fmt.Sprintf("failed to initialize repository %q (password file %q): %v", e.Repository, e.PasswordFile, e.Err)
}

func (e *RepositoryInitError) Unwrap() error {
	return e.Err
}

type BackupError struct {
	Err error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup failed: %v", e.Err)
}

func (e *BackupError) Unwrap() error {
	return e.Err
}
