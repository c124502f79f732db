// ==============================================================================================
// FILE: internal/diag/diag.go
// ==============================================================================================
// PACKAGE: diag
// PURPOSE: Structured logger construction for the CLI and REPL (SPEC_FULL.md's
//          ambient logging section). This is the one place a *zap.Logger gets built;
//          everything downstream (evaluator.Interpreter, repl.Start) just takes one.
// ==============================================================================================

package diag

import "go.uber.org/zap"

// New builds the process logger. quiet suppresses structured logging entirely
// (the CLI's --quiet flag), in which case callers should treat a nil logger as
// "use zap.NewNop()" rather than constructing one themselves.
func New(quiet bool) *zap.Logger {
	if quiet {
		return nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
