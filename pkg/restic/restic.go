package restic

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var execCommand = exec.CommandContext

// Repository carries what restic needs to reach a repository. Env is handed
// to the child process only.
type Repository struct {
	Env         []string
	InsecureTLS bool
}

type BackupOptions struct {
	FilesFrom   string
	ExcludeFile string
}

type RetentionPolicy struct {
	Daily   int
	Weekly  int
	Monthly int
	Yearly  int
}

// CLI runs the restic binary.
type CLI struct {
	logger *zap.Logger
	binary string
}

func NewCLI(logger *zap.Logger, binary string) *CLI {
	if binary == "" {
		binary = "restic"
	}
	return &CLI{
		logger: logger,
		binary: binary,
	}
}

func (c *CLI) execRestic(ctx context.Context, repo Repository, args ...string) (string, error) {
	if repo.InsecureTLS {
		args = append([]string{"--insecure-tls"}, args...)
	}
	command := execCommand(ctx, c.binary, args...)
	// os.Environ() keeps PATH, HOME and the restic cache location working
	command.Env = append(command.Env, os.Environ()...)
	command.Env = append(command.Env, repo.Env...)

	out, err := command.CombinedOutput()
	output := strings.TrimSuffix(string(out), "\n")

	c.logger.Sugar().Debugf("%s\n%s", command.String(), output)

	return output, err
}

func (c *CLI) ListSnapshots(ctx context.Context, repo Repository) (string, error) {
	out, err := c.execRestic(ctx, repo, "snapshots")
	if err != nil {
		return out, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}

func (c *CLI) InitRepository(ctx context.Context, repo Repository) (string, error) {
	out, err := c.execRestic(ctx, repo, "init")
	if err != nil {
		return out, fmt.Errorf("failed to initialize repository: %w", err)
	}
	return out, nil
}

func (c *CLI) Backup(ctx context.Context, repo Repository, opts BackupOptions) (string, error) {
	args := []string{"backup", "--verbose", "--one-file-system"}
	if opts.FilesFrom != "" {
		args = append(args, "--files-from", opts.FilesFrom)
	}
	if opts.ExcludeFile != "" {
		args = append(args, "--exclude-file", opts.ExcludeFile)
	}

	out, err := c.execRestic(ctx, repo, args...)
	if err != nil {
		return out, fmt.Errorf("failed to run backup: %w", err)
	}
	return out, nil
}

func (c *CLI) PruneSnapshots(ctx context.Context, repo Repository, policy RetentionPolicy) (string, error) {
	args := []string{
		"forget", "--prune",
		"--keep-daily", strconv.Itoa(policy.Daily),
		"--keep-weekly", strconv.Itoa(policy.Weekly),
		"--keep-monthly", strconv.Itoa(policy.Monthly),
		"--keep-yearly", strconv.Itoa(policy.Yearly),
	}

	out, err := c.execRestic(ctx, repo, args...)
	if err != nil {
		return out, fmt.Errorf("failed to forget snapshots: %w", err)
	}
	return out, nil
}

func (c *CLI) Stats(ctx context.Context, repo Repository) (string, error) {
	out, err := c.execRestic(ctx, repo, "stats", "--mode", "raw-data")
	if err != nil {
		return out, fmt.Errorf("failed to get stats: %w", err)
	}
	return out, nil
}
