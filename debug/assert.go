package debug

import (
	"fmt"
	"os"
)

// DEBUG enables internal assertions. It is switched on by setting LOX_DEBUG.
var DEBUG = os.Getenv("LOX_DEBUG") != ""

func Assertf(b bool, format string, a ...any) {
	if DEBUG && !b {
		panic(fmt.Sprintf(format, a...))
	}
}
