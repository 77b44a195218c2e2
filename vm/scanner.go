package vm

import (
	"unicode/utf8"

	"github.com/josharian/intern"
	e "github.com/rami3l/loxvm/errors"
)

// Scanner lazily splits a source string into tokens. It is not safe for
// concurrent use.
type Scanner struct {
	start, curr, line int
	src               string
}

func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Lexeme returns the source text spanned by tk.
func (s *Scanner) Lexeme(tk Token) string {
	lexeme := s.src[tk.Start:tk.End()]
	if tk.Type == TIdent || tk.Type.IsKeyword() {
		return intern.String(lexeme)
	}
	return lexeme
}

// ScanToken returns the next token. Once the input is exhausted it keeps
// returning TEOF.
func (s *Scanner) ScanToken() (Token, error) {
	s.skipWhitespace()
	s.start = s.curr
	if s.isAtEnd() {
		return s.makeToken(TEOF), nil
	}

	c := s.advance()
	switch {
	case isDigit(c): // Number literal.
		// Consume the integral part.
		for isDigit(s.peek()) {
			s.advance()
		}

		// Consume the fractional part if it exists.
		if s.peek() == '.' && isDigit(s.peekNext()) {
			s.advance()
			for isDigit(s.peek()) {
				s.advance()
			}
		}

		return s.makeToken(TNum), nil

	case isAlpha(c): // Identifier.
		for isAlpha(s.peek()) || isDigit(s.peek()) {
			s.advance()
		}
		return s.makeToken(s.identType()), nil
	}

	switch c {
	case '(':
		return s.makeToken(TLParen), nil
	case ')':
		return s.makeToken(TRParen), nil
	case '{':
		return s.makeToken(TLBrace), nil
	case '}':
		return s.makeToken(TRBrace), nil
	case ';':
		return s.makeToken(TSemi), nil
	case ',':
		return s.makeToken(TComma), nil
	case '.':
		return s.makeToken(TDot), nil
	case '-':
		return s.makeToken(TMinus), nil
	case '+':
		return s.makeToken(TPlus), nil
	case '/':
		return s.makeToken(TSlash), nil
	case '*':
		return s.makeToken(TStar), nil

	case '!':
		if s.match('=') {
			return s.makeToken(TBangEqual), nil
		}
		return s.makeToken(TBang), nil

	case '=':
		if s.match('=') {
			return s.makeToken(TEqualEqual), nil
		}
		return s.makeToken(TEqual), nil

	case '<':
		if s.match('=') {
			return s.makeToken(TLessEqual), nil
		}
		return s.makeToken(TLess), nil

	case '>':
		if s.match('=') {
			return s.makeToken(TGreaterEqual), nil
		}
		return s.makeToken(TGreater), nil

	case '"': // String literal.
		return s.str()
	}

	// Report the whole (possibly multi-byte) character.
	if c >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(s.src[s.start:])
		s.curr = s.start + size
	}
	return Token{}, s.Error(e.ReasonUnexpectedChar, s.src[s.start:s.curr])
}

func (s *Scanner) str() (Token, error) {
	startLine := s.line
	for !s.isAtEnd() {
		switch s.peek() {
		case '\n':
			s.line++
		case '"':
			// Consume the closing quote.
			s.advance()
			return s.makeToken(TStr), nil
		}
		s.advance()
	}
	return Token{}, &e.TokenError{Line: startLine, Reason: e.ReasonUnterminatedString}
}

func (s *Scanner) identType() TokenType {
	if ty, ok := keywords[s.src[s.start:s.curr]]; ok {
		return ty
	}
	return TIdent
}

// skipWhitespace makes the Scanner skip consecutive whitespaces and comments.
func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case '\n':
			s.line++
			fallthrough

		case ' ', '\r', '\t':
			s.advance()

		case '/': // Skip comments.
			if s.peekNext() != '/' {
				return
			}
			// Skip until the end of the line.
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}

		default:
			return
		}
	}
}

func (s *Scanner) isAtEnd() bool { return s.curr >= len(s.src) }

func (s *Scanner) advance() (res byte) {
	res = s.src[s.curr]
	s.curr++
	return
}

func (s *Scanner) peek() (res byte) {
	if s.isAtEnd() {
		return
	}
	return s.src[s.curr]
}

func (s *Scanner) peekNext() (res byte) {
	if s.curr+1 >= len(s.src) {
		return
	}
	return s.src[s.curr+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.peek() != expected {
		return false
	}
	s.curr++
	return true
}

func (s *Scanner) makeToken(ty TokenType) Token {
	return Token{Type: ty, Start: s.start, Len: s.curr - s.start, Line: s.line}
}

func (s *Scanner) Error(reason, lexeme string) *e.TokenError {
	return &e.TokenError{Line: s.line, Reason: reason, Lexeme: lexeme}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' }
