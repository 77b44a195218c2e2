package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

const (
	ReasonUnexpectedChar     = "unexpected character"
	ReasonUnterminatedString = "unterminated string"
)

type TokenError struct {
	Line   int
	Reason string
	// The offending text, if any.
	Lexeme string
}

func (e *TokenError) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("token error [L%d]: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("token error [L%d]: %s `%s`", e.Line, e.Reason, e.Lexeme)
}

type CompilationError struct {
	Line   int
	Reason string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error [L%d]: %s", e.Line, e.Reason)
}

type RuntimeError struct {
	Line   int
	Reason string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error [L%d]: %s", e.Line, e.Reason)
}

// InternalError signals a broken invariant in the VM or in the code that built
// its input. It is only ever raised as a panic value.
type InternalError struct{ Reason string }

func (e *InternalError) Error() string { return "internal error: " + e.Reason }

type UsageError struct{ Reason string }

func (e *UsageError) Error() string { return "usage error: " + e.Reason }

const Unreachable = "internal error: entered unreachable code"

// Exit codes, following sysexits.h.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

// ExitCode maps an error returned by the interpreter to a process exit code.
func ExitCode(err error) int {
	var (
		usageErr   *UsageError
		tokenErr   *TokenError
		compileErr *CompilationError
		runtimeErr *RuntimeError
		pathErr    *fs.PathError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &tokenErr), errors.As(err, &compileErr):
		return ExitDataErr
	case errors.As(err, &runtimeErr):
		return ExitSoftware
	case errors.As(err, &pathErr):
		return ExitIOErr
	default:
		return ExitFailure
	}
}
