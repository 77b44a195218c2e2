package vm

type Token struct {
	Type             TokenType
	Start, Len, Line int
}

func (tk Token) End() int { return tk.Start + tk.Len }

//go:generate stringer -type=TokenType -linecomment
type TokenType int

const (
	// Single-character tokens.
	TLParen TokenType = iota // LEFT_PAREN
	TRParen // RIGHT_PAREN
	TLBrace // LEFT_BRACE
	TRBrace // RIGHT_BRACE
	TComma  // COMMA
	TDot    // DOT
	TMinus  // MINUS
	TPlus   // PLUS
	TSemi   // SEMICOLON
	TSlash  // SLASH
	TStar   // STAR

	// One or two character tokens.
	TBang         // BANG
	TBangEqual    // BANG_EQUAL
	TEqual        // EQUAL
	TEqualEqual   // EQUAL_EQUAL
	TGreater      // GREATER
	TGreaterEqual // GREATER_EQUAL
	TLess         // LESS
	TLessEqual    // LESS_EQUAL

	// Literals.
	TIdent // IDENTIFIER
	TStr   // STRING
	TNum   // NUMBER

	// Keywords.
	TAnd    // AND
	TClass  // CLASS
	TElse   // ELSE
	TFalse  // FALSE
	TFor    // FOR
	TFun    // FUN
	TIf     // IF
	TNil    // NIL
	TOr     // OR
	TPrint  // PRINT
	TReturn // RETURN
	TSuper  // SUPER
	TThis   // THIS
	TTrue   // TRUE
	TVar    // VAR
	TWhile  // WHILE

	TEOF // EOF
)

var keywords = map[string]TokenType{
	"and":    TAnd,
	"class":  TClass,
	"else":   TElse,
	"false":  TFalse,
	"for":    TFor,
	"fun":    TFun,
	"if":     TIf,
	"nil":    TNil,
	"or":     TOr,
	"print":  TPrint,
	"return": TReturn,
	"super":  TSuper,
	"this":   TThis,
	"true":   TTrue,
	"var":    TVar,
	"while":  TWhile,
}

func (ty TokenType) IsKeyword() bool { return TAnd <= ty && ty <= TWhile }
