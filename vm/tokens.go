package vm

import (
	"fmt"
	"io"
)

// DumpTokens writes every token of src to w, one per line, stopping after EOF
// or at the first scanning error.
func DumpTokens(w io.Writer, src string) error {
	s := NewScanner(src)
	line := 0
	for {
		tk, err := s.ScanToken()
		if err != nil {
			return err
		}
		if tk.Line != line {
			fmt.Fprintf(w, "%4d ", tk.Line)
			line = tk.Line
		} else {
			fmt.Fprint(w, "   | ")
		}
		fmt.Fprintf(w, "%s '%s'\n", tk.Type, s.Lexeme(tk))
		if tk.Type == TEOF {
			return nil
		}
	}
}
