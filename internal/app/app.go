package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"watchline/internal/config"
	"watchline/internal/core"
	"watchline/internal/modules/host"
)

// Options - разобранные аргументы командной строки.
type Options struct {
	Interval        float64
	ContinueOnError bool
	Exec            bool
	Interpreter     string
	Precise         bool
	Command         string
	Args            []string
}

// App агрегирует зависимости цикла.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Loop   *core.Loop

	// Host собирает снимок узла для диагностики; по умолчанию host.Collect.
	Host func(ctx context.Context) (host.Snapshot, error)
}

// NewApp строит приложение: запуск через os/exec, системные часы и потоки процесса.
func NewApp(cfg config.Config, lg *slog.Logger, stdout, stderr io.Writer) *App {
	a := &App{
		Config: cfg,
		Logger: lg,
		Loop:   core.NewLoop(core.ExecLauncher{}, core.SystemClock{}, stdout, stderr, lg),
		Host:   host.Collect,
	}
	a.Loop.OnOverrun = a.logOverrun
	return a
}

// Resolve превращает опции в описание запуска и политику цикла.
func (o Options) Resolve() (core.Invocation, core.Policy, error) {
	interval, err := core.IntervalFromSeconds(o.Interval)
	if err != nil {
		return core.Invocation{}, core.Policy{}, fmt.Errorf("interval: %w", err)
	}
	mode := core.ModeShell
	if o.Exec {
		mode = core.ModeExec
	}
	inv := core.Invocation{
		Program:     o.Command,
		Args:        o.Args,
		Mode:        mode,
		Interpreter: o.Interpreter,
	}
	if _, err := inv.Argv(); err != nil {
		return core.Invocation{}, core.Policy{}, err
	}
	policy := core.Policy{
		Interval:        interval,
		Precise:         o.Precise,
		ContinueOnError: o.ContinueOnError,
	}
	return inv, policy, nil
}

// Run запускает цикл и возвращает код выхода программы.
func (a *App) Run(ctx context.Context, opts Options) (int, error) {
	inv, policy, err := opts.Resolve()
	if err != nil {
		return 1, err
	}
	if opts.Interval < 0 {
		a.Logger.Warn("negative interval, using 0", "interval", opts.Interval)
	}

	if a.Logger.Enabled(ctx, slog.LevelDebug) {
		attrs := []any{
			"command", inv.String(),
			"mode", inv.Mode.String(),
			"interval", policy.Interval,
			"precise", policy.Precise,
			"continue_on_error", policy.ContinueOnError,
		}
		if snap, err := a.collectHost(ctx); err == nil {
			attrs = append(attrs, "host", snap)
		}
		a.Logger.Debug("starting", attrs...)
	}

	return a.Loop.Run(ctx, inv, policy)
}

func (a *App) logOverrun(ctx context.Context, late time.Duration) {
	if !a.Logger.Enabled(ctx, slog.LevelInfo) {
		return
	}
	attrs := []any{"late", late}
	if snap, err := a.collectHost(ctx); err == nil {
		attrs = append(attrs, "host", snap)
	}
	a.Logger.Info("command overran interval", attrs...)
}

func (a *App) collectHost(ctx context.Context) (host.Snapshot, error) {
	if a.Host == nil {
		return host.Snapshot{}, fmt.Errorf("host collector is not set")
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	snap, err := a.Host(ctx)
	if err != nil {
		a.Logger.Debug("host snapshot failed", "err", err)
	}
	return snap, err
}
