package services

import (
	"context"
	"strings"
	"time"

	"github.com/resticw/resticw/pkg/restic"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BackupWorkflow runs one backup pass: validate, load, init check, backup,
// retention cleanup and stats.
type BackupWorkflow struct {
	logger    *zap.Logger
	fs        afero.Fs
	runCtx    RunContext
	validator *Validator
	loader    *RepositoryLoader
	restic    Restic
	scrubber  *Scrubber
}

func NewBackupWorkflow(
	logger *zap.Logger,
	fs afero.Fs,
	runCtx RunContext,
	validator *Validator,
	loader *RepositoryLoader,
	resticCLI Restic,
	scrubber *Scrubber,
) *BackupWorkflow {
	return &BackupWorkflow{
		logger:    logger,
		fs:        fs,
		runCtx:    runCtx,
		validator: validator,
		loader:    loader,
		restic:    resticCLI,
		scrubber:  scrubber,
	}
}

func (w *BackupWorkflow) Run(ctx context.Context) error {
	defer w.scrubber.Scrub()

	err := w.run(ctx)
	if err != nil {
		w.logger.Error(err.Error())
	}
	return err
}

func (w *BackupWorkflow) run(ctx context.Context) error {
	start := time.Now()
	w.logger.Sugar().Infof("Starting backup with include file %s", w.runCtx.IncludeFile)

	if err := w.validator.Validate(w.runCtx); err != nil {
		return err
	}

	repo, err := w.loader.Load(w.runCtx)
	if err != nil {
		return err
	}
	w.scrubber.Track(repo)

	runCtx := w.runCtx.WithRepository(repo)
	if runCtx.IgnoreCert {
		w.logger.Warn("TLS certificate verification is disabled for this repository")
	}
	target := restic.Repository{
		Env:         repo.Environ(),
		InsecureTLS: runCtx.IgnoreCert,
	}

	if err := w.ensureRepository(ctx, repo, target); err != nil {
		return err
	}
	if err := w.backup(ctx, runCtx, target); err != nil {
		return err
	}
	w.cleanup(ctx, repo, target)
	w.stats(ctx, target)

	w.logger.Sugar().Infof("Backup finished in %s", time.Since(start).Round(time.Second))
	return nil
}

func (w *BackupWorkflow) ensureRepository(ctx context.Context, repo *RepositoryConfig, target restic.Repository) error {
	if _, err := w.restic.ListSnapshots(ctx, target); err == nil {
		w.logger.Info("Repository is reachable")
		return nil
	}

	w.logger.Warn("Repository not reachable, trying to initialize it")
	out, err := w.restic.InitRepository(ctx, target)
	if err != nil {
		w.logLines(zap.ErrorLevel, out)
		return &RepositoryInitError{
			Repository:   repo.Repository,
			PasswordFile: repo.PasswordFile,
			Err:          err,
		}
	}
	w.logger.Info("Repository initialized")
	return nil
}

func (w *BackupWorkflow) backup(ctx context.Context, runCtx RunContext, target restic.Repository) error {
	var opts restic.BackupOptions

	hasEntries, err := HasIncludeEntries(w.fs, runCtx.IncludeFile)
	switch {
	case err != nil:
		w.logger.Sugar().Warnf("Could not read include file %s: %v, running backup without file list", runCtx.IncludeFile, err)
	case !hasEntries:
		w.logger.Sugar().Warnf("Include file %s has no entries, running backup without file list", runCtx.IncludeFile)
	default:
		opts.FilesFrom = runCtx.IncludeFile
	}

	if exists, _ := afero.Exists(w.fs, runCtx.ExcludeFile); exists {
		opts.ExcludeFile = runCtx.ExcludeFile
	}

	w.logger.Info("Running backup")
	out, err := w.restic.Backup(ctx, target, opts)
	w.logLines(zap.InfoLevel, out)
	if err != nil {
		return &BackupError{Err: err}
	}
	w.logger.Info("Backup completed")
	return nil
}

func (w *BackupWorkflow) cleanup(ctx context.Context, repo *RepositoryConfig, target restic.Repository) {
	policy := repo.Retention
	w.logger.Sugar().Infof("Applying retention policy: daily=%d weekly=%d monthly=%d yearly=%d",
		policy.Daily, policy.Weekly, policy.Monthly, policy.Yearly)

	out, err := w.restic.PruneSnapshots(ctx, target, policy)
	if err != nil {
		w.logLines(zap.WarnLevel, out)
		w.logger.Sugar().Warnf("Retention cleanup failed: %v", err)
		return
	}
	w.logger.Info("Retention cleanup completed")
}

func (w *BackupWorkflow) stats(ctx context.Context, target restic.Repository) {
	out, err := w.restic.Stats(ctx, target)
	if err != nil {
		w.logger.Sugar().Warnf("Failed to get repository stats: %v", err)
		return
	}
	w.logLines(zap.InfoLevel, out)
}

func (w *BackupWorkflow) logLines(level zapcore.Level, out string) {
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w.logger.Log(level, line)
	}
}
