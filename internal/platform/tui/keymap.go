package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// KeyMapper translates Bubble Tea key messages to engine commands.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a command (may be CommandNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Command {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return core.CommandExit
	}
	return core.KeyCommand(msg.String())
}
