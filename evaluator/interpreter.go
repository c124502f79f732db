// ==============================================================================================
// FILE: evaluator/interpreter.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Interpreter bundles every piece of process-wide state the language spec calls
//          for: the global scope, the calculator-memory scope, the command history, and
//          the I/O streams built-ins write to. A single Interpreter is shared by every
//          Eval call for one process run, which is what lets history/memory survive
//          across statements without any locking (the language has no concurrency).
// ==============================================================================================

package evaluator

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"github.com/Hrpavi7/SharpScript/object"
)

// Interpreter is the evaluator's runtime context.
type Interpreter struct {
	Global  *object.Environment
	Memory  *object.Environment // system.store/system.recall slots, process-wide
	History []object.Value

	Out    io.Writer
	ErrOut io.Writer
	In     *bufio.Reader

	Log *zap.Logger
}

// New builds an Interpreter ready to evaluate a program. log may be nil, in which
// case a no-op logger is installed.
func New(out, errOut io.Writer, in io.Reader, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		Global: object.NewEnvironment(),
		Memory: object.NewEnvironment(),
		Out:    out,
		ErrOut: errOut,
		In:     bufio.NewReader(in),
		Log:    log,
	}
}
