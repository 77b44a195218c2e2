package vm

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/rami3l/loxvm/debug"
	e "github.com/rami3l/loxvm/errors"
	"github.com/sirupsen/logrus"
)

type Parser struct {
	*Scanner
	prev, curr     Token
	compilingChunk *Chunk

	errors *multierror.Error
	// Whether the parser is trying to sync, i.e. in the error recovery process.
	panicMode bool
	// Log the disassembly of every compiled chunk.
	printCode bool
}

func NewParser() *Parser { return &Parser{} }

/* Single-pass compilation */

func (p *Parser) emitConst(val Value) {
	if err := p.currentChunk().WriteConst(val, p.prev.Line); err != nil {
		p.Error("too many constants in one chunk")
	}
}

func (p *Parser) num() {
	val, err := strconv.ParseFloat(p.Lexeme(p.prev), 64)
	if err != nil {
		p.Error(fmt.Sprintf("invalid number literal: %s", err))
		return
	}
	p.emitConst(VNum(val))
}

func (p *Parser) grouping() {
	p.expr()
	p.consume(TRParen, "expect ')' after expression")
}

func (p *Parser) unary() {
	op := p.prev.Type

	// Compile the RHS.
	p.parsePrec(PrecUnary)

	// Emit the operator instruction.
	switch op {
	case TMinus:
		p.emitBytes(byte(OpNeg))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) binary() {
	op := p.prev.Type
	rule := parseRules[op]

	// Compile the RHS.
	p.parsePrec(rule.Prec + 1)

	// Emit the operator instruction.
	switch op {
	case TPlus:
		p.emitBytes(byte(OpAdd))
	case TMinus:
		p.emitBytes(byte(OpSub))
	case TStar:
		p.emitBytes(byte(OpMul))
	case TSlash:
		p.emitBytes(byte(OpDiv))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) expr() { p.parsePrec(PrecAssign) }

type ParseFn = func(*Parser)

type ParseRule struct {
	Prefix, Infix ParseFn
	Prec
}

var parseRules []ParseRule

func init() {
	parseRules = []ParseRule{
		TLParen: {(*Parser).grouping, nil, PrecNone},
		TMinus:  {(*Parser).unary, (*Parser).binary, PrecTerm},
		TPlus:   {nil, (*Parser).binary, PrecTerm},
		TSlash:  {nil, (*Parser).binary, PrecFactor},
		TStar:   {nil, (*Parser).binary, PrecFactor},
		TNum:    {(*Parser).num, nil, PrecNone},
		TEOF:    {},
	}
}

func (p *Parser) parsePrec(prec Prec) {
	p.advance()

	// Parse LHS.
	prefix := parseRules[p.prev.Type].Prefix
	if prefix == nil {
		p.Error("expect expression")
		return
	}
	prefix(p)

	// Parse RHS if there's one maintaining rule.Prec >= prec.
	for {
		rule := parseRules[p.curr.Type]
		if rule.Prec < prec {
			break
		}
		p.advance()
		if rule.Infix == nil {
			panic(e.Unreachable)
		}
		rule.Infix(p)
	}
}

/* Parsing helpers */

func (p *Parser) check(ty TokenType) bool { return p.curr.Type == ty }

func (p *Parser) advance() {
	p.prev = p.curr
	for {
		// Skip tokens that failed to scan, collecting their errors.
		tk, err := p.ScanToken()
		if err == nil {
			p.curr = tk
			return
		}
		p.errors = multierror.Append(p.errors, err)
	}
}

func (p *Parser) consume(ty TokenType, errorMsg string) {
	if !p.check(ty) {
		p.ErrorAtCurr(errorMsg)
		return
	}
	p.advance()
}

/* Compiling helpers */

// Compile turns src into a chunk that evaluates src as a single expression
// and returns its value.
func (p *Parser) Compile(src string) (res *Chunk, err error) {
	res = NewChunk()
	p.compilingChunk = res
	defer func() { p.compilingChunk = nil }()
	p.Scanner = NewScanner(src)
	p.errors, p.panicMode = nil, false

	p.advance()
	p.expr()
	p.consume(TEOF, "expect end of expression")
	p.endCompiler()

	err = p.errors.ErrorOrNil()
	return
}

func (p *Parser) currentChunk() *Chunk { return p.compilingChunk }

func (p *Parser) emitBytes(bs ...byte) {
	for _, b := range bs {
		p.currentChunk().Write(b, p.prev.Line)
	}
}

func (p *Parser) endCompiler() {
	p.emitBytes(byte(OpReturn))
	if debug.DEBUG && !p.HadError() {
		err := p.currentChunk().Validate()
		debug.Assertf(err == nil, "compiled an invalid chunk: %v", err)
	}
	switch {
	case p.printCode:
		logrus.Infoln(p.currentChunk().Disassemble("code"))
	case debug.DEBUG:
		logrus.Debugln(p.currentChunk().Disassemble("code"))
	}
}

type Prec int

const (
	PrecNone   Prec = iota
	PrecAssign      // =
	PrecOr          // or
	PrecAnd         // and
	PrecEqual       // == !=
	PrecComp        // < > <= >=
	PrecTerm        // + -
	PrecFactor      // * /
	PrecUnary       // ! -
	PrecCall        // . ()
	PrecPrimary
)

/* Error handling */

func (p *Parser) ErrorAt(tk Token, reason string) {
	// Don't collect error when we're syncing.
	if p.panicMode {
		return
	}
	p.panicMode = true

	var tkStr string
	switch tk.Type {
	case TEOF:
		tkStr = "EOF"
	case TIdent:
		tkStr = fmt.Sprintf("identifier `%s`", p.Lexeme(tk))
	default:
		tkStr = fmt.Sprintf("`%s`", p.Lexeme(tk))
	}
	reason1 := fmt.Sprintf("at %s, %s", tkStr, reason)
	err := &e.CompilationError{Line: tk.Line, Reason: reason1}
	p.errors = multierror.Append(p.errors, err)
}

func (p *Parser) Error(reason string)       { p.ErrorAt(p.prev, reason) }
func (p *Parser) ErrorAtCurr(reason string) { p.ErrorAt(p.curr, reason) }
func (p *Parser) HadError() bool            { return p.errors != nil }
