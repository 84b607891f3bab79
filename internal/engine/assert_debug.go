//go:build debug

package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DebugAssertions reports whether invariant violations panic.
const DebugAssertions = true

func assertf(_ *log.Logger, format string, args ...any) {
	panic(fmt.Sprintf("engine: "+format, args...))
}
