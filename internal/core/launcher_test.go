package core

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecLauncherCapturesOutput(t *testing.T) {
	requireShell(t)
	out, err := ExecLauncher{}.Launch(context.Background(), Invocation{
		Program: "printf 'out' ; printf 'err' >&2",
	})
	require.NoError(t, err)
	require.True(t, out.Success)
	require.True(t, out.HasCode)
	require.Equal(t, 0, out.ExitCode)
	require.Equal(t, "out", string(out.Stdout))
	require.Equal(t, "err", string(out.Stderr))
}

func TestExecLauncherShellPipe(t *testing.T) {
	requireShell(t)
	out, err := ExecLauncher{}.Launch(context.Background(), Invocation{
		Program: "echo",
		Args:    []string{"a", "b", "|", "tr", "ab", "xy"},
	})
	require.NoError(t, err)
	require.Equal(t, "x y\n", string(out.Stdout))
}

func TestExecLauncherExecModeNoShell(t *testing.T) {
	requireShell(t)
	out, err := ExecLauncher{}.Launch(context.Background(), Invocation{
		Program: "sh",
		Args:    []string{"-c", `printf '%s' "$1"`, "x", "a | b"},
		Mode:    ModeExec,
	})
	require.NoError(t, err)
	require.Equal(t, "a | b", string(out.Stdout))
}

func TestExecLauncherExitCode(t *testing.T) {
	requireShell(t)
	out, err := ExecLauncher{}.Launch(context.Background(), Invocation{Program: "exit 3"})
	require.NoError(t, err)
	require.False(t, out.Success)
	require.True(t, out.HasCode)
	require.Equal(t, 3, out.ExitCode)
}

func TestExecLauncherSignalHasNoCode(t *testing.T) {
	requireShell(t)
	out, err := ExecLauncher{}.Launch(context.Background(), Invocation{Program: "kill -9 $$"})
	require.NoError(t, err)
	require.False(t, out.Success)
	require.False(t, out.HasCode)
}

func TestExecLauncherSpawnError(t *testing.T) {
	_, err := ExecLauncher{}.Launch(context.Background(), Invocation{
		Program: "watchline-no-such-binary",
		Mode:    ModeExec,
	})
	require.ErrorIs(t, err, ErrSpawn)
}

func TestExecLauncherMissingInterpreter(t *testing.T) {
	_, err := ExecLauncher{}.Launch(context.Background(), Invocation{
		Program:     "true",
		Interpreter: "watchline-no-such-shell",
	})
	require.ErrorIs(t, err, ErrSpawn)
}
