package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StatusBar renders one line: file name, line count, and dirty marker
// on the left; file type, mode, and cursor position on the right.
type StatusBar struct {
	status      DocumentStatus
	mode        Mode
	size        Size
	style       lipgloss.Style
	needsRedraw bool
}

func NewStatusBar(style lipgloss.Style) *StatusBar {
	return &StatusBar{style: style, needsRedraw: true}
}

func (s *StatusBar) Update(status DocumentStatus, mode Mode) {
	if s.status == status && s.mode == mode {
		return
	}
	s.status = status
	s.mode = mode
	s.needsRedraw = true
}

func (s *StatusBar) Resize(size Size) {
	s.size = size
	s.needsRedraw = true
}

func (s *StatusBar) NeedsRedraw() bool { return s.needsRedraw }

func (s *StatusBar) View() string {
	s.needsRedraw = false

	dirty := ""
	if s.status.Dirty {
		dirty = " (modified)"
	}
	left := fmt.Sprintf(" %s - %d lines%s", s.status.FileName, s.status.LineCount, dirty)
	right := fmt.Sprintf("%s | %s | %d:%d ",
		s.status.FileType, s.mode, s.status.Cursor.Row+1, s.status.Cursor.Col+1)

	gap := s.size.Width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 0 {
		right = ""
		gap = s.size.Width - runewidth.StringWidth(left)
	}
	line := left + strings.Repeat(" ", maxInt(gap, 0)) + right
	return s.style.Render(runewidth.Truncate(line, s.size.Width, ""))
}
