package errors_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/hashicorp/go-multierror"
	e "github.com/rami3l/loxvm/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"token error [L3]: unterminated string",
		(&e.TokenError{Line: 3, Reason: e.ReasonUnterminatedString}).Error(),
	)
	assert.Equal(t,
		"token error [L1]: unexpected character `@`",
		(&e.TokenError{Line: 1, Reason: e.ReasonUnexpectedChar, Lexeme: "@"}).Error(),
	)
	assert.Equal(t,
		"compilation error [L2]: at EOF, expect expression",
		(&e.CompilationError{Line: 2, Reason: "at EOF, expect expression"}).Error(),
	)
	assert.Equal(t,
		"runtime error [L7]: operand must be a number",
		(&e.RuntimeError{Line: 7, Reason: "operand must be a number"}).Error(),
	)
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	_, pathErr := os.Open("/definitely/not/here.lox")

	cases := []struct {
		err  error
		code int
	}{
		{nil, e.ExitOK},
		{&e.UsageError{Reason: "too many arguments"}, e.ExitUsage},
		{&e.TokenError{Line: 1, Reason: e.ReasonUnexpectedChar}, e.ExitDataErr},
		{&e.CompilationError{Line: 1, Reason: "expect expression"}, e.ExitDataErr},
		{&e.RuntimeError{Line: 1, Reason: "operands must be numbers"}, e.ExitSoftware},
		{fmt.Errorf("reading script: %w", pathErr), e.ExitIOErr},
		{fmt.Errorf("something else"), e.ExitFailure},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, e.ExitCode(c.err), "%v", c.err)
	}
}

func TestExitCodeMultiError(t *testing.T) {
	t.Parallel()
	var errs *multierror.Error
	errs = multierror.Append(errs, &e.TokenError{Line: 1, Reason: e.ReasonUnexpectedChar})
	errs = multierror.Append(errs, &e.CompilationError{Line: 1, Reason: "expect expression"})
	assert.Equal(t, e.ExitDataErr, e.ExitCode(errs.ErrorOrNil()))
}
