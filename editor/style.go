package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/fern/buffer"
)

// Style groups the render styles for the viewport and the bars. The
// zero value renders everything unstyled, which is what the tests use.
type Style struct {
	Text          lipgloss.Style
	Placeholder   lipgloss.Style
	Banner        lipgloss.Style
	Match         lipgloss.Style
	SelectedMatch lipgloss.Style
	Number        lipgloss.Style
	CharLiteral   lipgloss.Style
	Lifetime      lipgloss.Style
	Cursor        lipgloss.Style
	StatusBar     lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:          lipgloss.NewStyle(),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Banner:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Match:         lipgloss.NewStyle().Background(lipgloss.Color("58")),
		SelectedMatch: lipgloss.NewStyle().Background(lipgloss.Color("214")).Foreground(lipgloss.Color("16")),
		Number:        lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		CharLiteral:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Lifetime:      lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		StatusBar:     lipgloss.NewStyle().Reverse(true),
	}
}

// For maps an annotation kind to its render style.
func (s Style) For(kind buffer.AnnotationKind) lipgloss.Style {
	switch kind {
	case buffer.AnnotationMatch:
		return s.Match
	case buffer.AnnotationSelectedMatch:
		return s.SelectedMatch
	case buffer.AnnotationNumber:
		return s.Number
	case buffer.AnnotationCharLiteral:
		return s.CharLiteral
	case buffer.AnnotationLifetime:
		return s.Lifetime
	case buffer.AnnotationCursor:
		return s.Cursor
	default:
		return s.Text
	}
}
