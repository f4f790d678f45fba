package overlook

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set Viewer debug flag so that widget
// operations (which lack a Viewer pointer) can check it cheaply. Only valid
// with a single Viewer; multiple Viewers with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, disposed-widget
// access panics and tree depth warnings are printed to stderr.
func (v *Viewer) SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugCheckDisposed panics with a descriptive message when a disposed
// widget is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("overlook debug: %s on disposed widget %q (ID was %d)", op, w.Name, w.ID))
	}
}

// debugMaxTreeDepth is the warning threshold for UI tree depth.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[overlook] warning: widget tree depth %d exceeds %d (widget %q)\n",
			depth, debugMaxTreeDepth, w.Name)
	}
}
