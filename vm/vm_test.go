package vm_test

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	e "github.com/rami3l/loxvm/errors"
	"github.com/rami3l/loxvm/vm"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { logrus.SetLevel(logrus.DebugLevel) }

type TestPair struct{ input, output string }

func assertEval(t *testing.T, errSubstr string, pairs ...TestPair) {
	t.Helper()
	for _, pair := range pairs {
		var out bytes.Buffer
		vm_ := vm.NewVM(vm.WithStdout(&out))
		val, err := vm_.Interpret(pair.input + "\n")
		switch {
		case errSubstr == "":
			require.NoError(t, err, pair.input)
		case err != nil:
			assert.ErrorContains(t, err, errSubstr)
			return
		}
		assert.Equal(t, pair.output, fmt.Sprintf("%s", val))
		assert.Equal(t, pair.output+"\n", out.String())
	}
	if errSubstr != "" {
		t.Errorf("expected an error containing %q", errSubstr)
	}
}

// chunkOf builds a chunk on line 1 from opcodes and constants: every VNum in
// insts becomes an OP_CONSTANT loading it.
func chunkOf(t *testing.T, insts ...any) *vm.Chunk {
	t.Helper()
	c := vm.NewChunk()
	for _, inst := range insts {
		switch inst := inst.(type) {
		case vm.VNum:
			require.NoError(t, c.WriteConst(inst, 1))
		case vm.OpCode:
			c.WriteOp(inst, 1)
		default:
			t.Fatalf("unexpected instruction %v", inst)
		}
	}
	return c
}

func run(t *testing.T, c *vm.Chunk) (vm.Value, string) {
	t.Helper()
	var out bytes.Buffer
	val, err := vm.NewVM(vm.WithStdout(&out)).Run(c)
	require.NoError(t, err)
	return val, out.String()
}

func TestRunArithmetic(t *testing.T) {
	t.Parallel()
	c := chunkOf(t,
		vm.VNum(1.2), vm.VNum(3.4), vm.OpAdd,
		vm.VNum(5.6), vm.OpDiv,
		vm.OpNeg, vm.OpReturn,
	)
	a, b, d := 1.2, 3.4, 5.6
	expected := -((a + b) / d)

	val, out := run(t, c)
	assert.Equal(t, vm.VNum(expected), val)
	assert.Equal(t, strconv.FormatFloat(expected, 'f', -1, 64)+"\n", out)
	assert.True(t, strings.HasPrefix(out, "-0.8214285714"))
}

func TestRunOperandOrder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		op       vm.OpCode
		expected string
	}{
		{vm.OpAdd, "14\n"},
		{vm.OpSub, "6\n"},
		{vm.OpMul, "40\n"},
		{vm.OpDiv, "2.5\n"},
	}
	for _, c := range cases {
		_, out := run(t, chunkOf(t, vm.VNum(10), vm.VNum(4), c.op, vm.OpReturn))
		assert.Equal(t, c.expected, out, c.op.String())
	}
}

func TestRunReturnsLastConst(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 5; n++ {
		var insts []any
		for i := 1; i <= n; i++ {
			insts = append(insts, vm.VNum(float64(i)*1.5))
		}
		insts = append(insts, vm.OpReturn)
		val, out := run(t, chunkOf(t, insts...))
		last := vm.VNum(float64(n) * 1.5)
		assert.Equal(t, last, val)
		assert.Equal(t, last.String()+"\n", out)
	}
}

func TestRunDivByZero(t *testing.T) {
	t.Parallel()
	_, out := run(t, chunkOf(t, vm.VNum(1), vm.VNum(0), vm.OpDiv, vm.OpReturn))
	assert.Equal(t, "inf\n", out)
	_, out = run(t, chunkOf(t, vm.VNum(-1), vm.VNum(0), vm.OpDiv, vm.OpReturn))
	assert.Equal(t, "-inf\n", out)
	_, out = run(t, chunkOf(t, vm.VNum(0), vm.VNum(0), vm.OpDiv, vm.OpReturn))
	assert.Equal(t, "NaN\n", out)
}

func TestNumberString(t *testing.T) {
	t.Parallel()
	cases := map[float64]string{
		2:          "2",
		-2.5:       "-2.5",
		0.1:        "0.1",
		1234567:    "1234567",
		1e21:       "1000000000000000000000",
		1.5e-7:     "0.00000015",
		1.0 / 3.0:  "0.3333333333333333",
		-1234.5678: "-1234.5678",
	}
	for f, expected := range cases {
		assert.Equal(t, expected, vm.VNum(f).String(), expected)
	}
	assert.Equal(t, "-0", vm.VNum(math.Copysign(0, -1)).String())
	assert.Equal(t, "inf", vm.VNum(math.Inf(1)).String())
	assert.Equal(t, "-inf", vm.VNum(math.Inf(-1)).String())
	assert.Equal(t, "NaN", vm.VNum(math.NaN()).String())

	assertEval(t, "", TestPair{"1234 * 1000", "1234000"})
}

func TestRunTrace(t *testing.T) {
	t.Parallel()
	c := vm.NewChunk()
	require.NoError(t, c.WriteConst(vm.VNum(1.2), 123))
	c.WriteOp(vm.OpNeg, 123)
	c.WriteOp(vm.OpReturn, 124)

	var out, trace bytes.Buffer
	vm_ := vm.NewVM(vm.WithStdout(&out), vm.WithTrace(true), vm.WithTraceOutput(&trace))
	_, err := vm_.Run(c)
	require.NoError(t, err)
	assert.Equal(t, "-1.2\n", out.String())

	expected := strings.Join([]string{
		"          ",
		"0000  123 OP_CONSTANT         0 '1.2'",
		"          [ 1.2 ]",
		"0002    | OP_NEGATE",
		"          [ -1.2 ]",
		"0003  124 OP_RETURN",
		"",
	}, "\n")
	assert.Equal(t, expected, trace.String())
}

func TestRunNoTraceByDefault(t *testing.T) {
	t.Parallel()
	var trace bytes.Buffer
	vm_ := vm.NewVM(vm.WithStdout(io.Discard), vm.WithTraceOutput(&trace))
	_, err := vm_.Run(chunkOf(t, vm.VNum(1), vm.OpReturn))
	require.NoError(t, err)
	assert.Empty(t, trace.String())
}

func TestRunInternalFaults(t *testing.T) {
	t.Parallel()
	vm_ := vm.NewVM(vm.WithStdout(io.Discard))
	assert.PanicsWithError(t, "internal error: stack underflow at offset 0", func() {
		_, _ = vm_.Run(chunkOf(t, vm.OpReturn))
	})
	assert.PanicsWithError(t, "internal error: stack underflow at offset 2", func() {
		_, _ = vm_.Run(chunkOf(t, vm.VNum(1), vm.OpAdd, vm.OpReturn))
	})
	assert.PanicsWithError(t, "internal error: chunk uninitialized", func() {
		_, _ = vm_.Run(nil)
	})

	bad := vm.NewChunk()
	bad.Write(99, 1)
	assert.PanicsWithError(t, "internal error: unknown opcode 99", func() {
		_, _ = vm_.Run(bad)
	})
}

func TestRunReusesVM(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	vm_ := vm.NewVM(vm.WithStdout(&out))
	for _, c := range []*vm.Chunk{
		chunkOf(t, vm.VNum(1), vm.VNum(2), vm.OpReturn),
		chunkOf(t, vm.VNum(3), vm.OpReturn),
	} {
		_, err := vm_.Run(c)
		require.NoError(t, err)
	}
	assert.Equal(t, "2\n3\n", out.String())
}

func TestCalculator(t *testing.T) {
	t.Parallel()
	assertEval(t, "", []TestPair{
		{"2 +2", "4"},
		{"11.4 + 5.14 / 19198.10", "11.400267734827926"},
		{"-6 *(-4+ -3)", "42"},
		{"--1", "1"},
		{"1 - 2 - 3", "-4"},
		{"8 / 4 / 2", "1"},
		{
			heredoc.Doc(`
                4/1 - 4/3 + 4/5 - 4/7 + 4/9 - 4/11
                    + 4/13 - 4/15 + 4/17 - 4/19 + 4/21 - 4/23
            `),
			"3.058402765927333",
		},
		{
			heredoc.Doc(`
                3
                    + 4/(2*3*4)
                    - 4/(4*5*6)
                    + 4/(6*7*8)
                    - 4/(8*9*10)
                    + 4/(10*11*12)
                    - 4/(12*13*14)
            `),
			"3.1408813408813407",
		},
	}...)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"1 +":      "at EOF, expect expression",
		"(1":       "expect ')' after expression",
		"1 2":      "at `2`, expect end of expression",
		"print 1":  "at `print`, expect expression",
		"foo":      "at identifier `foo`, expect expression",
		"1 @ 2":    "unexpected character `@`",
		`"abc`:     "unterminated string",
		"1 == 1":   "at `==`, expect end of expression",
		"-(3 * )4": "at `)`, expect expression",
	}
	for src, errSubstr := range cases {
		assertEval(t, errSubstr, TestPair{src, ""})

		_, err := vm.NewVM(vm.WithStdout(io.Discard)).Interpret(src)
		assert.Equal(t, e.ExitDataErr, e.ExitCode(err), src)
	}
}
