package core

// Action represents a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor up
	ActionDown           // S, Down arrow - move cursor down
	ActionSelect         // 1-4 - choose an answer option
	ActionConfirm        // Enter - confirm selection
	ActionBack           // Esc - go back to menu
	ActionForfeit        // F - active player gives up
	ActionRestart        // R - play again after game over
	ActionQuit           // Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSelect:
		return "Select"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionForfeit:
		return "Forfeit"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded key press.
// Option is the zero-based answer option for ActionSelect and -1 otherwise.
type Input struct {
	Action Action
	Option int
}

// NoInput is the Input for keys that map to nothing.
var NoInput = Input{Action: ActionNone, Option: -1}

// SelectOption builds the Input for choosing answer option i.
func SelectOption(i int) Input {
	return Input{Action: ActionSelect, Option: i}
}
