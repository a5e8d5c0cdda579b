package editor

// Mode selects the key dispatch table.
type Mode int

const (
	// ModeNormal moves the cursor and triggers commands.
	ModeNormal Mode = iota
	// ModeInsert feeds keystrokes into the buffer.
	ModeInsert
	// ModeCommand routes keystrokes to the minibuffer.
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}
