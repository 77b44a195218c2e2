package vm

import (
	"fmt"
	"math"

	e "github.com/rami3l/loxvm/errors"
	"github.com/rami3l/loxvm/utils"
)

//go:generate stringer -type=OpCode -linecomment
type OpCode byte

const (
	OpReturn OpCode = iota // OP_RETURN
	OpConst                // OP_CONSTANT
	OpNeg                  // OP_NEGATE
	OpAdd                  // OP_ADD
	OpSub                  // OP_SUBTRACT
	OpMul                  // OP_MULTIPLY
	OpDiv                  // OP_DIVIDE
)

// Width returns the encoded size of the instruction in bytes, operands
// included.
func (op OpCode) Width() int {
	if op == OpConst {
		return 2
	}
	return 1
}

// stackEffect returns how many values the instruction pops and pushes.
func (op OpCode) stackEffect() (pops, pushes int) {
	switch op {
	case OpReturn:
		return 1, 0
	case OpConst:
		return 0, 1
	case OpNeg:
		return 1, 1
	default:
		return 2, 1
	}
}

func isOpCode(b byte) bool { return b <= byte(OpDiv) }

// DecodeOp decodes an opcode byte. Chunks are only ever built by trusted code,
// so an unknown byte is a broken invariant and panics.
func DecodeOp(b byte) OpCode {
	if !isOpCode(b) {
		panic(&e.InternalError{Reason: fmt.Sprintf("unknown opcode %d", b)})
	}
	return OpCode(b)
}

type Chunk struct {
	code []byte
	// Contract: len(lines) == len(code)
	lines  []int
	consts []Value
}

func NewChunk() *Chunk { return &Chunk{} }

func (c *Chunk) Write(b byte, line int) {
	c.code = append(c.code, b)
	c.lines = append(c.lines, line)
}

func (c *Chunk) WriteOp(op OpCode, line int) { c.Write(byte(op), line) }

func (c *Chunk) AddConst(const_ Value) (idx int) {
	idx = len(c.consts)
	c.consts = append(c.consts, const_)
	return
}

// WriteConst adds val to the constant pool and emits the instruction loading
// it.
func (c *Chunk) WriteConst(val Value, line int) error {
	if len(c.consts) > math.MaxUint8 {
		return &e.CompilationError{Line: line, Reason: "too many constants in one chunk"}
	}
	idx, _ := utils.ToByte(c.AddConst(val))
	c.WriteOp(OpConst, line)
	c.Write(idx, line)
	return nil
}

func (c *Chunk) Len() int               { return len(c.code) }
func (c *Chunk) Line(offset int) int    { return c.lines[offset] }
func (c *Chunk) Const(idx byte) Value   { return c.consts[idx] }
func (c *Chunk) ConstCount() int        { return len(c.consts) }
func (c *Chunk) ByteAt(offset int) byte { return c.code[offset] }

func (c *Chunk) DisassembleInst(offset int) (res string, newOffset int) {
	sprintf := func(format string, a ...any) { res += fmt.Sprintf(format, a...) }

	sprintf("%04d ", offset)
	if offset > 0 && c.lines[offset] == c.lines[offset-1] {
		sprintf("   | ")
	} else {
		sprintf("%4d ", c.lines[offset])
	}

	switch inst := DecodeOp(c.code[offset]); inst {
	// Unary operators.
	case OpConst:
		const_ := c.code[offset+1]
		sprintf("%-16s %4d '%s'", inst, const_, c.consts[const_])
		return res, offset + 2
	// Nullary operators.
	default:
		sprintf("%s", inst)
		return res, offset + 1
	}
}

func (c *Chunk) Disassemble(name string) (res string) {
	res = fmt.Sprintf("== %s ==\n", name)
	for i := 0; i < len(c.code); {
		var delta string
		delta, i = c.DisassembleInst(i)
		res += delta + "\n"
	}
	return res
}

// Validate checks the structural invariants of a chunk that did not come from
// the compiler, e.g. one read back from an image: every instruction decodes,
// no instruction pops more values than are on the stack, and the code ends
// with OP_RETURN.
func (c *Chunk) Validate() error {
	if len(c.lines) != len(c.code) {
		return fmt.Errorf("line table has %d entries for %d bytes", len(c.lines), len(c.code))
	}
	if len(c.code) == 0 {
		return fmt.Errorf("empty code")
	}
	var last OpCode
	depth := 0
	for offset := 0; offset < len(c.code); {
		b := c.code[offset]
		if !isOpCode(b) {
			return fmt.Errorf("unknown opcode %d at offset %d", b, offset)
		}
		op := OpCode(b)
		if offset+op.Width() > len(c.code) {
			return fmt.Errorf("truncated %s at offset %d", op, offset)
		}
		if op == OpConst {
			if idx := int(c.code[offset+1]); idx >= len(c.consts) {
				return fmt.Errorf("constant index %d out of range at offset %d", idx, offset)
			}
		}
		pops, pushes := op.stackEffect()
		if depth < pops {
			return fmt.Errorf("stack underflow: %s at offset %d needs %d operand(s), found %d", op, offset, pops, depth)
		}
		depth += pushes - pops
		last = op
		offset += op.Width()
	}
	if last != OpReturn {
		return fmt.Errorf("code does not end with %s", OpReturn)
	}
	return nil
}
