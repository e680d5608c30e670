package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/resticw/resticw/internal"
	"github.com/resticw/resticw/internal/services"
	"github.com/resticw/resticw/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errRunFailed = errors.New("backup run failed")

// Flag names and the environment variables that feed them.
var envBindings = map[string]string{
	"include-file":  "RESTIC_INCLUDE_FILE",
	"exclude-file":  "RESTIC_EXCLUDE_FILE",
	"repo-file":     "RESTIC_REPO_FILE",
	"log-dir":       "RESTIC_LOG_DIR",
	"base-dir":      "RESTIC_BASE_DIR",
	"restic-binary": "RESTIC_BINARY",
	"ignore-cert":   "RESTIC_IGNORE_CERT",
	"verbose":       "RESTIC_VERBOSE",
}

var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "resticw",
	Short: "Restic backup runner",
	Long: `resticw runs one restic backup pass: it checks or initializes the repository,
backs up the paths listed in the include file, applies the retention policy
and logs repository statistics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		config, err := loadConfig(settings)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}

		if exitCode := runApp(config); exitCode != 0 {
			return errRunFailed
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("include-file", "", "File listing the paths to back up (default <base-dir>/include.txt)")
	flags.String("exclude-file", "", "File with exclude patterns (default <base-dir>/exclude.txt)")
	flags.String("repo-file", "", "Repository config file (default <base-dir>/repository.env)")
	flags.String("log-dir", "", "Directory for log files (default <base-dir>/logs)")
	flags.String("base-dir", "", "Directory holding the default files (default: directory of the executable)")
	flags.String("restic-binary", "restic", "Path to the restic binary")
	flags.String("ignore-cert", "false", "Skip TLS certificate verification unless the repository config says otherwise")
	flags.Bool("verbose", false, "Verbose")

	bindSettings(settings, rootCmd)
}

func bindSettings(v *viper.Viper, cmd *cobra.Command) {
	for flag, env := range envBindings {
		_ = v.BindPFlag(flag, cmd.PersistentFlags().Lookup(flag))
		_ = v.BindEnv(flag, env)
	}
}

func loadConfig(v *viper.Viper) (internal.Config, error) {
	ignoreCert, err := services.ParseBool(v.GetString("ignore-cert"))
	if err != nil {
		return internal.Config{}, fmt.Errorf("ignore-cert: %w", err)
	}

	baseDir := strings.TrimSpace(v.GetString("base-dir"))
	if baseDir == "" {
		baseDir = executableDir()
	}

	return internal.Config{
		IncludeFile:  v.GetString("include-file"),
		ExcludeFile:  v.GetString("exclude-file"),
		RepoFile:     v.GetString("repo-file"),
		LogDir:       v.GetString("log-dir"),
		BaseDir:      baseDir,
		ResticBinary: v.GetString("restic-binary"),
		IgnoreCert:   ignoreCert,
		Verbose:      v.GetBool("verbose"),
	}, nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewLogger(lc fx.Lifecycle, fs afero.Fs, runCtx services.RunContext, config internal.Config) (*zap.Logger, error) {
	logger, closer, err := utils.NewLogger(fs, runCtx.LogFile, config.Verbose)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			_ = logger.Sync()
			return closer.Close()
		},
	})
	return logger, nil
}

func appOptions(config internal.Config) []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			fxLogger := &fxevent.ZapLogger{Logger: log}
			fxLogger.UseLogLevel(zapcore.DebugLevel)
			return fxLogger
		}),
		fx.Supply(config),
		fx.Provide(
			afero.NewOsFs,
			NewLogger,
			newAction,
		),
		services.Module,
		fx.Invoke(func(*Action) {}),
	}
}

func runApp(config internal.Config) int {
	var act *Action
	app := fx.New(append(appOptions(config), fx.Populate(&act))...)
	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	<-app.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	return act.ExitCode()
}
