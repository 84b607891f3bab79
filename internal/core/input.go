package core

import "strings"

// Command is a discrete player intent, abstracted from physical key presses.
// At most one command is consumed per frame.
type Command int

const (
	CommandNone Command = iota
	CommandMoveForward
	CommandMoveBack
	CommandStrafeLeft
	CommandStrafeRight
	CommandTurnLeft
	CommandTurnRight
	CommandExit
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandMoveForward:
		return "move-forward"
	case CommandMoveBack:
		return "move-back"
	case CommandStrafeLeft:
		return "strafe-left"
	case CommandStrafeRight:
		return "strafe-right"
	case CommandTurnLeft:
		return "turn-left"
	case CommandTurnRight:
		return "turn-right"
	case CommandExit:
		return "exit"
	default:
		return "unknown"
	}
}

// IsMove reports whether the command translates the camera.
func (c Command) IsMove() bool {
	switch c {
	case CommandMoveForward, CommandMoveBack, CommandStrafeLeft, CommandStrafeRight:
		return true
	}
	return false
}

// IsTurn reports whether the command rotates the camera.
func (c Command) IsTurn() bool {
	return c == CommandTurnLeft || c == CommandTurnRight
}

// ParseCommand converts a command name (as produced by String) back to a Command.
// Unknown names map to CommandNone.
func ParseCommand(name string) Command {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "move-forward", "forward", "w":
		return CommandMoveForward
	case "move-back", "back", "s":
		return CommandMoveBack
	case "strafe-left", "a":
		return CommandStrafeLeft
	case "strafe-right", "d":
		return CommandStrafeRight
	case "turn-left", "q":
		return CommandTurnLeft
	case "turn-right", "e":
		return CommandTurnRight
	case "exit":
		return CommandExit
	default:
		return CommandNone
	}
}

// KeyCommand maps a key name to a command using the default bindings.
// Key names follow Bubble Tea's KeyMsg.String() format ("up", "ctrl+c", "w").
// Letter keys are case-insensitive.
func KeyCommand(key string) Command {
	switch strings.ToLower(key) {
	case "w", "up":
		return CommandMoveForward
	case "s", "down":
		return CommandMoveBack
	case "a":
		return CommandStrafeLeft
	case "d":
		return CommandStrafeRight
	case "q", "left":
		return CommandTurnLeft
	case "e", "right":
		return CommandTurnRight
	case "esc", "ctrl+c":
		return CommandExit
	}
	return CommandNone
}
