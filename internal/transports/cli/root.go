package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"watchline/internal/app"
	"watchline/internal/config"
	"watchline/pkg/logger"
)

// ExitError сообщает main код выхода упавшей команды.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

type runFunc func(ctx context.Context, cfg config.Config, opts app.Options, stdout, stderr io.Writer) (int, error)

type rootFlags struct {
	configPath      string
	interval        float64
	continueOnError bool
	exec            bool
	interpreter     string
	precise         bool
}

const longHelp = `Runs a command at a given interval. It is similar to watch, but does not clear the screen.

By default the command and its arguments are joined with spaces and passed to "sh -c",
so pipes and redirections work when the command is quoted:

  watchline -i 2 'ps aux | grep nginx'

Arguments are not re-quoted in this mode. To keep argument boundaries use exec mode (-x).
Flags are only parsed before the command; everything after it is passed to the command.`

const helpTemplate = `{{.Name}} {{.Version}}
{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{.UsageString}}`

// New создает корневую CLI-команду.
func New(version string) *cobra.Command {
	return newRoot(version, runApp)
}

func newRoot(version string, run runFunc) *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "watchline [flags] cmd [args...]",
		Short:         "Run a command repeatedly at an interval",
		Long:          longHelp,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			path := flags.configPath
			if path == "" {
				path = os.Getenv(config.EnvPath)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config %s: %w", path, err)
			}

			opts := resolveOptions(cmd.Flags(), flags, cfg, args)
			code, err := run(cmd.Context(), cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	root.SetHelpTemplate(helpTemplate)
	setupFlags(root.Flags(), &flags)
	return root
}

func setupFlags(f *pflag.FlagSet, flags *rootFlags) {
	f.SetInterspersed(false)
	f.StringVar(&flags.configPath, "config", "", "config file path (env "+config.EnvPath+")")
	f.Float64VarP(&flags.interval, "interval", "i", 1.0, "interval in seconds")
	f.BoolVarP(&flags.continueOnError, "continue-on-error", "c", false,
		"keep running when the command exits with a non-zero code; stop with SIGTERM or CTRL-C")
	f.BoolVarP(&flags.exec, "exec", "x", false, "run the command directly instead of through the interpreter")
	f.StringVarP(&flags.interpreter, "interpreter", "s", "sh", "interpreter for shell mode, must accept -c; ignored with --exec")
	f.BoolVarP(&flags.precise, "precise", "p", false,
		"account for the run time of the command and start at exact intervals; do not wait if a run took longer than the interval")
}

// resolveOptions берет значения флагов, явно заданных в командной строке, остальные - из конфига.
func resolveOptions(f *pflag.FlagSet, flags rootFlags, cfg config.Config, args []string) app.Options {
	opts := app.Options{
		Interval:        cfg.Defaults.Interval,
		ContinueOnError: cfg.Defaults.ContinueOnError,
		Exec:            cfg.Defaults.Exec,
		Interpreter:     cfg.Defaults.Interpreter,
		Precise:         cfg.Defaults.Precise,
		Command:         args[0],
		Args:            args[1:],
	}
	if f.Changed("interval") {
		opts.Interval = flags.interval
	}
	if f.Changed("continue-on-error") {
		opts.ContinueOnError = flags.continueOnError
	}
	if f.Changed("exec") {
		opts.Exec = flags.exec
	}
	if f.Changed("interpreter") {
		opts.Interpreter = flags.interpreter
	}
	if f.Changed("precise") {
		opts.Precise = flags.precise
	}
	return opts
}

func runApp(ctx context.Context, cfg config.Config, opts app.Options, stdout, stderr io.Writer) (int, error) {
	lg := logger.New(stderr, cfg.Log.Level)
	return app.NewApp(cfg, lg, stdout, stderr).Run(ctx, opts)
}
