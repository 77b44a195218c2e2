package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// readSource reads the script named by args, or standard input if there is
// none.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(src), nil
	}
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(src), nil
}

func sourceName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "<stdin>"
}

// isTerminalIO reports whether both ends of the command are attached to a
// terminal.
func isTerminalIO(cmd *cobra.Command) bool {
	in, inOK := cmd.InOrStdin().(*os.File)
	out, outOK := cmd.OutOrStdout().(*os.File)
	if !inOK || !outOK {
		return false
	}
	return isTerminal(in.Fd()) && isTerminal(out.Fd())
}

func isTerminal(fd uintptr) bool { return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) }
