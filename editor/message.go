package editor

import "time"

// MessageBar shows a one-line status message that expires after a
// timeout. Expired messages render as a blank line.
type MessageBar struct {
	text        string
	setAt       time.Time
	timeout     time.Duration
	size        Size
	needsRedraw bool

	now func() time.Time
}

func NewMessageBar(timeout time.Duration) *MessageBar {
	return &MessageBar{timeout: timeout, now: time.Now}
}

func (m *MessageBar) SetMessage(text string) {
	m.text = text
	m.setAt = m.now()
	m.needsRedraw = true
}

func (m *MessageBar) expired() bool {
	return m.text == "" || m.now().Sub(m.setAt) >= m.timeout
}

func (m *MessageBar) Resize(size Size) {
	m.size = size
	m.needsRedraw = true
}

func (m *MessageBar) NeedsRedraw() bool {
	return m.needsRedraw || (m.text != "" && m.expired())
}

func (m *MessageBar) View() string {
	m.needsRedraw = false
	if m.expired() {
		m.text = ""
		return ""
	}
	return m.text
}
