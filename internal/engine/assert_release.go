//go:build !debug

package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DebugAssertions reports whether invariant violations panic.
const DebugAssertions = false

func assertf(logger *log.Logger, format string, args ...any) {
	logger.Warn(fmt.Sprintf(format, args...))
}
