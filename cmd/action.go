package cmd

import (
	"context"
	"sync"

	"github.com/resticw/resticw/internal/services"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Action runs the workflow once the app has started and shuts the app down
// with the resulting exit code. Its stop hook scrubs the environment, so an
// interrupted run is scrubbed as well.
type Action struct {
	sh       fx.Shutdowner
	logger   *zap.Logger
	workflow services.WorkflowService
	scrubber *services.Scrubber

	cancel   context.CancelFunc
	mu       sync.Mutex
	finished bool
	exitCode int
}

func newAction(
	lc fx.Lifecycle,
	sh fx.Shutdowner,
	logger *zap.Logger,
	workflow services.WorkflowService,
	scrubber *services.Scrubber,
) *Action {
	act := &Action{
		sh:       sh,
		logger:   logger,
		workflow: workflow,
		scrubber: scrubber,
	}

	lc.Append(fx.Hook{
		OnStart: act.start,
		OnStop:  act.stop,
	})

	return act
}

func (act *Action) start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	act.cancel = cancel
	go act.run(ctx)
	return nil
}

func (act *Action) stop(_ context.Context) error {
	if act.cancel != nil {
		act.cancel()
	}
	act.scrubber.Scrub()
	return nil
}

func (act *Action) run(ctx context.Context) {
	exitCode := 0
	if err := act.workflow.Run(ctx); err != nil {
		exitCode = 1
	}

	act.mu.Lock()
	act.finished = true
	act.exitCode = exitCode
	act.mu.Unlock()

	if err := act.sh.Shutdown(fx.ExitCode(exitCode)); err != nil {
		act.logger.Error("failed to shutdown", zap.Error(err))
	}
}

// ExitCode is 1 for failed runs and for runs stopped before finishing.
func (act *Action) ExitCode() int {
	act.mu.Lock()
	defer act.mu.Unlock()
	if !act.finished {
		return 1
	}
	return act.exitCode
}
