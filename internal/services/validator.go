package services

import (
	"fmt"

	"github.com/spf13/afero"
)

type Validator struct {
	fs afero.Fs
}

func NewValidator(fs afero.Fs) *Validator {
	return &Validator{fs: fs}
}

// Validate reports every missing input at once so a run never starts
// partially configured.
func (v *Validator) Validate(runCtx RunContext) error {
	var missing []string
	for _, path := range []string{runCtx.RepoFile, runCtx.IncludeFile, runCtx.ExcludeFile} {
		exists, err := afero.Exists(v.fs, path)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
		if !exists {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return &MissingFileError{Paths: missing}
	}
	return nil
}
