package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrSpawn возвращается, если процесс команды не удалось запустить.
	ErrSpawn = errors.New("cannot execute command")
	// ErrRelay возвращается, если захваченный вывод не удалось записать.
	ErrRelay = errors.New("cannot relay output")
	// ErrNoExitCode возвращается, если процесс завершен сигналом и кода выхода нет.
	ErrNoExitCode = errors.New("no exit code")

	errInvalidArguments = errors.New("invalid arguments")
)

// DefaultInterpreter используется в shell-режиме, если интерпретатор не задан.
const DefaultInterpreter = "sh"

// Mode задает способ запуска команды.
type Mode int

const (
	// ModeShell передает команду интерпретатору одной строкой через -c.
	ModeShell Mode = iota
	// ModeExec запускает исполняемый файл напрямую со списком аргументов.
	ModeExec
)

func (m Mode) String() string {
	switch m {
	case ModeShell:
		return "shell"
	case ModeExec:
		return "exec"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Invocation описывает запускаемую команду.
type Invocation struct {
	Program     string
	Args        []string
	Mode        Mode
	Interpreter string
}

// Argv возвращает argv для запуска. В shell-режиме команда и аргументы
// склеиваются через пробел без экранирования: границы аргументов теряются,
// зато работают пайпы и прочие операторы shell.
func (inv Invocation) Argv() ([]string, error) {
	if inv.Program == "" {
		return nil, fmt.Errorf("empty command: %w", errInvalidArguments)
	}
	if inv.Mode == ModeExec {
		argv := make([]string, 0, len(inv.Args)+1)
		argv = append(argv, inv.Program)
		return append(argv, inv.Args...), nil
	}
	interp := inv.Interpreter
	if interp == "" {
		interp = DefaultInterpreter
	}
	script := inv.Program
	if len(inv.Args) > 0 {
		script += " " + strings.Join(inv.Args, " ")
	}
	return []string{interp, "-c", script}, nil
}

// String возвращает команду в виде, пригодном для сообщений об ошибках.
func (inv Invocation) String() string {
	argv, err := inv.Argv()
	if err != nil {
		return "<empty>"
	}
	return strings.Join(argv, " ")
}

// Policy описывает параметры цикла.
type Policy struct {
	Interval        time.Duration
	Precise         bool
	ContinueOnError bool
}

// IntervalFromSeconds переводит дробные секунды в time.Duration.
// Отрицательные значения приводятся к нулю, слишком большие - к максимальной длительности.
func IntervalFromSeconds(sec float64) (time.Duration, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0, fmt.Errorf("interval %v: %w", sec, errInvalidArguments)
	}
	if sec <= 0 {
		return 0, nil
	}
	ns := sec * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(ns), nil
}

// Outcome - результат одного запуска команды.
type Outcome struct {
	Stdout   []byte
	Stderr   []byte
	Success  bool
	ExitCode int
	// HasCode ложен, если процесс убит сигналом.
	HasCode  bool
	Duration time.Duration
}

// Launcher запускает команду и ждет ее завершения.
type Launcher interface {
	Launch(ctx context.Context, inv Invocation) (Outcome, error)
}

// Clock абстрагирует время для цикла.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
	Yield()
}

// Decision - результат итерации: продолжить цикл или завершить программу с кодом.
type Decision struct {
	Terminate bool
	ExitCode  int
}

// Continue означает переход к следующей итерации.
var Continue = Decision{}

// Terminate завершает программу с указанным кодом.
func Terminate(code int) Decision {
	return Decision{Terminate: true, ExitCode: code}
}
