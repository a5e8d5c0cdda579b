package editor

import "time"

// Config collects the tunable parts of the editor.
type Config struct {
	Keys  KeyMap
	Style Style

	// QuitConfirmations is how many times the quit key must be
	// pressed to discard unsaved changes.
	QuitConfirmations int

	// MessageTimeout is how long a status message stays visible.
	MessageTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Keys:              DefaultKeyMap(),
		Style:             DefaultStyle(),
		QuitConfirmations: 3,
		MessageTimeout:    5 * time.Second,
	}
}
