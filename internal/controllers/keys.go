package controllers

import "unicode"

// Command is what a key press asks the zoo to do.
type Command int

const (
	// CommandNone means the input is ignored.
	CommandNone Command = iota
	CommandAccelerate
	CommandDecelerate
	CommandToggleFreeze
	CommandClear
	CommandSpawn
)

func (c Command) String() string {
	switch c {
	case CommandAccelerate:
		return "accelerate"
	case CommandDecelerate:
		return "decelerate"
	case CommandToggleFreeze:
		return "toggle-freeze"
	case CommandClear:
		return "clear"
	case CommandSpawn:
		return "spawn"
	default:
		return "none"
	}
}

// ParseKey maps a typed character to a command. For CommandSpawn the second
// result is the alphabet index selected by the letter.
func ParseKey(r rune, alphabetLen int) (Command, int) {
	c := unicode.ToLower(r)
	switch c {
	case '+':
		return CommandAccelerate, 0
	case '-':
		return CommandDecelerate, 0
	case '.':
		return CommandToggleFreeze, 0
	case '#':
		return CommandClear, 0
	}

	if c < 'a' || c > 'z' {
		return CommandNone, 0
	}
	i := int(c - 'a')
	if i >= alphabetLen {
		return CommandNone, 0
	}
	return CommandSpawn, i
}
