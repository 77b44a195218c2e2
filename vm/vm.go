package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	e "github.com/rami3l/loxvm/errors"
	"github.com/sirupsen/logrus"
)

type VM struct {
	chunk *Chunk
	ip    int
	stack []Value

	stdout, traceOut io.Writer
	// Print the stack and the next instruction before executing it.
	trace bool
	// Log the disassembly of compiled chunks.
	printCode bool
}

type Option func(*VM)

func WithTrace(on bool) Option           { return func(vm *VM) { vm.trace = on } }
func WithPrintCode(on bool) Option       { return func(vm *VM) { vm.printCode = on } }
func WithStdout(w io.Writer) Option      { return func(vm *VM) { vm.stdout = w } }
func WithTraceOutput(w io.Writer) Option { return func(vm *VM) { vm.traceOut = w } }

func NewVM(opts ...Option) *VM {
	vm := &VM{stdout: os.Stdout, traceOut: os.Stderr}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *VM) push(val Value) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (last Value) {
	len_ := len(vm.stack)
	if len_ == 0 {
		panic(&e.InternalError{Reason: fmt.Sprintf("stack underflow at offset %d", vm.ip-1)})
	}
	vm.stack, last = vm.stack[:len_-1], vm.stack[len_-1]
	return
}

func (vm *VM) REPL(prompt string) error {
	reader, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		line, err := reader.Readline()
		switch err {
		case nil:
			if line == "" {
				continue
			}
		case readline.ErrInterrupt: // ^C
			continue
		case io.EOF: // ^D
			return nil
		default:
			return err
		}

		if _, err := vm.Interpret(line); err != nil {
			logrus.Error(err)
		}
	}
}

// Interpret compiles src and runs the result.
func (vm *VM) Interpret(src string) (Value, error) {
	parser := NewParser()
	parser.printCode = vm.printCode
	chunk, err := parser.Compile(src)
	if err != nil {
		return nil, err
	}
	return vm.Run(chunk)
}

// Run executes chunk until it returns, printing the returned value.
func (vm *VM) Run(chunk *Chunk) (Value, error) {
	if chunk == nil {
		panic(&e.InternalError{Reason: "chunk uninitialized"})
	}
	vm.chunk, vm.ip, vm.stack = chunk, 0, vm.stack[:0]
	defer func() { vm.chunk = nil }()
	return vm.run()
}

func (vm *VM) run() (Value, error) {
	readByte := func() (res byte) {
		res = vm.chunk.code[vm.ip]
		vm.ip++
		return
	}

	for {
		if vm.trace {
			instDump, _ := vm.chunk.DisassembleInst(vm.ip)
			fmt.Fprintf(vm.traceOut, "%s\n%s\n", vm.stackTrace(), instDump)
		}
		oldIP := vm.ip
		switch inst := DecodeOp(readByte()); inst {
		case OpReturn:
			res := vm.pop()
			fmt.Fprintf(vm.stdout, "%s\n", res)
			return res, nil
		case OpConst:
			const_ := vm.chunk.consts[readByte()]
			vm.push(const_)
		case OpNeg:
			res, ok := VNeg(vm.pop())
			if !ok {
				return nil, vm.Error(oldIP, "operand must be a number")
			}
			vm.push(res)
		case OpAdd, OpSub, OpMul, OpDiv:
			rhs := vm.pop()
			res, ok := binaryOps[inst](vm.pop(), rhs)
			if !ok {
				return nil, vm.Error(oldIP, "operands must be numbers")
			}
			vm.push(res)
		default:
			panic(e.Unreachable)
		}
	}
}

var binaryOps = map[OpCode]func(v, w Value) (Value, bool){
	OpAdd: VAdd,
	OpSub: VSub,
	OpMul: VMul,
	OpDiv: VDiv,
}

func (vm *VM) Error(offset int, reason string) *e.RuntimeError {
	return &e.RuntimeError{Line: vm.chunk.lines[offset], Reason: reason}
}

func (vm *VM) stackTrace() string {
	res := "          "
	for _, slot := range vm.stack {
		res += fmt.Sprintf("[ %s ]", slot)
	}
	return res
}
