package services

import (
	"context"

	"github.com/resticw/resticw/pkg/restic"
)

type Restic interface {
	ListSnapshots(ctx context.Context, repo restic.Repository) (string, error)
	InitRepository(ctx context.Context, repo restic.Repository) (string, error)
	Backup(ctx context.Context, repo restic.Repository, opts restic.BackupOptions) (string, error)
	PruneSnapshots(ctx context.Context, repo restic.Repository, policy restic.RetentionPolicy) (string, error)
	Stats(ctx context.Context, repo restic.Repository) (string, error)
}

type WorkflowService interface {
	Run(ctx context.Context) error
}
