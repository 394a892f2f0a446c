package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ExecLauncher запускает команды через os/exec, захватывая stdout и stderr целиком.
type ExecLauncher struct{}

// Launch блокируется до завершения процесса. Ненулевой код выхода не считается ошибкой:
// он возвращается в Outcome. Таймаута нет: процесс прерывается только отменой ctx.
func (ExecLauncher) Launch(ctx context.Context, inv Invocation) (Outcome, error) {
	argv, err := inv.Argv()
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) // #nosec G204 -- команду задает оператор.
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	out := Outcome{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		out.Success = true
		out.HasCode = true
	case errors.As(runErr, &exitErr):
		// ExitCode() == -1, если процесс убит сигналом.
		if code := exitErr.ExitCode(); code >= 0 {
			out.ExitCode = code
			out.HasCode = true
		}
	default:
		return Outcome{}, fmt.Errorf("%w %q: %v", ErrSpawn, inv.String(), runErr)
	}
	return out, nil
}
