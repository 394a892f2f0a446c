package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Loop повторяет команду с заданным интервалом. Итерации строго последовательны:
// одновременно выполняется не более одного процесса.
type Loop struct {
	launcher Launcher
	clock    Clock
	stdout   io.Writer
	stderr   io.Writer
	log      *slog.Logger

	// OnOverrun вызывается, когда в точном режиме команда не уложилась в интервал.
	OnOverrun func(ctx context.Context, late time.Duration)
}

// NewLoop создает цикл. Вывод команды пишется в stdout и stderr как есть.
func NewLoop(launcher Launcher, clock Clock, stdout, stderr io.Writer, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		launcher: launcher,
		clock:    clock,
		stdout:   stdout,
		stderr:   stderr,
		log:      log,
	}
}

// Run выполняет итерации до решения о завершении или неустранимой ошибки и возвращает
// код выхода программы. Отмена ctx прерывает цикл с кодом 0.
func (l *Loop) Run(ctx context.Context, inv Invocation, policy Policy) (int, error) {
	pacer := NewPacer(l.clock.Now())
	for iter := 1; ; iter++ {
		if ctx.Err() != nil {
			return 0, nil
		}
		d, err := l.Step(ctx, inv, policy, pacer)
		if err != nil {
			return 1, err
		}
		if d.Terminate {
			l.log.Debug("command failed, stopping", "iteration", iter, "exit_code", d.ExitCode)
			return d.ExitCode, nil
		}
	}
}

// Step выполняет одну итерацию: запуск, пересылка вывода, проверка кода выхода и ожидание.
func (l *Loop) Step(ctx context.Context, inv Invocation, policy Policy, pacer *Pacer) (Decision, error) {
	out, err := l.launcher.Launch(ctx, inv)
	if err != nil {
		if ctx.Err() != nil {
			return Continue, nil
		}
		return Decision{}, err
	}

	if _, err := l.stdout.Write(out.Stdout); err != nil {
		return Decision{}, fmt.Errorf("%w: stdout: %v", ErrRelay, err)
	}
	if _, err := l.stderr.Write(out.Stderr); err != nil {
		return Decision{}, fmt.Errorf("%w: stderr: %v", ErrRelay, err)
	}

	l.log.Debug("command finished",
		"success", out.Success,
		"exit_code", out.ExitCode,
		"has_code", out.HasCode,
		"duration", out.Duration,
	)

	// Процесс мог быть прерван отменой; решение примет Run.
	if ctx.Err() != nil {
		return Continue, nil
	}

	if !policy.ContinueOnError && !out.Success {
		if !out.HasCode {
			return Decision{}, fmt.Errorf("%q: %w", inv.String(), ErrNoExitCode)
		}
		return Terminate(out.ExitCode), nil
	}

	l.wait(ctx, policy, pacer)
	return Continue, nil
}

func (l *Loop) wait(ctx context.Context, policy Policy, pacer *Pacer) {
	if !policy.Precise {
		l.clock.Sleep(ctx, policy.Interval)
		return
	}

	now := l.clock.Now()
	remaining := pacer.Remaining(now, policy.Interval)
	if remaining > 0 {
		l.log.Debug("sleeping", "duration", remaining)
		l.clock.Sleep(ctx, remaining)
		pacer.Advance(policy.Interval)
		return
	}

	// Окно пропущено: не догоняем, а начинаем новое окно с текущего момента.
	l.log.Debug("interval overrun, resetting anchor", "late", -remaining)
	if l.OnOverrun != nil {
		l.OnOverrun(ctx, -remaining)
	}
	l.clock.Yield()
	pacer.Reset(l.clock.Now())
}
