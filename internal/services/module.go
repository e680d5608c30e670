package services

import (
	"github.com/resticw/resticw/internal"
	"github.com/resticw/resticw/pkg/restic"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	Resolve,
	NewValidator,
	NewRepositoryLoader,
	NewScrubber,
	fx.Annotate(
		newResticCLI,
		fx.As(new(Restic)),
	),
	fx.Annotate(
		NewBackupWorkflow,
		fx.As(new(WorkflowService)),
	),
)

func newResticCLI(logger *zap.Logger, config internal.Config) *restic.CLI {
	return restic.NewCLI(logger, config.ResticBinary)
}
