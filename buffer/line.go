package buffer

import (
	"strings"

	graphemeutil "github.com/iw2rmb/fern/internal/grapheme"
)

// Line is a single logical line of text together with its derived fragment
// list. All mutating operations are grapheme-indexed; byte offsets never leak
// to callers except through Annotation ranges.
type Line struct {
	text  string
	frags []Fragment
}

// NewLine builds a Line by splitting text into grapheme fragments.
func NewLine(text string) *Line {
	l := &Line{text: text}
	l.rebuild()
	return l
}

func (l *Line) String() string { return l.text }

// GraphemeCount returns the number of grapheme clusters in the line.
func (l *Line) GraphemeCount() int { return len(l.frags) }

// Fragments returns the derived fragment list. Callers must not retain it
// across mutations.
func (l *Line) Fragments() []Fragment { return l.frags }

// Get materializes the visible text for the display-column window
// [start, end). Fragments that do not fit entirely inside the window render
// as ⋯; fragments with a substitute glyph render that glyph.
func (l *Line) Get(start, end int) string {
	if start >= end {
		return ""
	}

	var sb strings.Builder
	pos := 0
	for _, f := range l.frags {
		if pos >= end {
			break
		}
		fragEnd := pos + f.Cells()
		if fragEnd > start {
			switch {
			case fragEnd > end || pos < start:
				sb.WriteRune('⋯')
			case f.Replacement != 0:
				sb.WriteRune(f.Replacement)
			default:
				sb.WriteString(f.Text)
			}
		}
		pos = fragEnd
	}
	return sb.String()
}

// GetAnnotated materializes the display-column window [start, end) as an
// AnnotatedLine: annotations are clipped to the visible byte range, then
// truncation markers and substitute glyphs are spliced in through Replace so
// annotation ranges stay honest for the parts iteration.
func (l *Line) GetAnnotated(start, end int, anns []Annotation) *AnnotatedLine {
	if start >= end {
		return NewAnnotatedLine("")
	}

	type visibleFrag struct {
		byteStart int // relative to the window's first visible byte
		byteLen   int
		repl      rune
		truncated bool
	}

	var (
		window    []visibleFrag
		byteStart = -1
		byteEnd   = 0
	)
	pos := 0
	for _, f := range l.frags {
		if pos >= end {
			break
		}
		fragEnd := pos + f.Cells()
		if fragEnd > start {
			if byteStart < 0 {
				byteStart = f.ByteOffset
			}
			byteEnd = f.ByteOffset + len(f.Text)
			window = append(window, visibleFrag{
				byteStart: f.ByteOffset - byteStart,
				byteLen:   len(f.Text),
				repl:      f.Replacement,
				truncated: fragEnd > end || pos < start,
			})
		}
		pos = fragEnd
	}
	if byteStart < 0 {
		return NewAnnotatedLine("")
	}

	al := NewAnnotatedLine(l.text[byteStart:byteEnd])
	n := byteEnd - byteStart
	for _, a := range anns {
		al.PushAnnotation(clampInt(a.Start-byteStart, 0, n), clampInt(a.End-byteStart, 0, n), a.Kind)
	}

	// Splice right to left so earlier byte offsets stay valid while the
	// string length changes.
	for i := len(window) - 1; i >= 0; i-- {
		vf := window[i]
		switch {
		case vf.truncated:
			al.Replace(vf.byteStart, vf.byteStart+vf.byteLen, "⋯")
		case vf.repl != 0:
			al.Replace(vf.byteStart, vf.byteStart+vf.byteLen, string(vf.repl))
		}
	}
	return al
}

// InsertAt inserts r before the fragment at index, or appends when index is
// past the end.
func (l *Line) InsertAt(index int, r rune) {
	if index >= 0 && index < len(l.frags) {
		off := l.frags[index].ByteOffset
		l.text = l.text[:off] + string(r) + l.text[off:]
	} else {
		l.text += string(r)
	}
	l.rebuild()
}

// RemoveAt removes exactly the bytes of the fragment at index. Out-of-range
// indices are a no-op.
func (l *Line) RemoveAt(index int) {
	if index < 0 || index >= len(l.frags) {
		return
	}
	start := l.frags[index].ByteOffset
	end := start + len(l.frags[index].Text)
	l.text = l.text[:start] + l.text[end:]
	l.rebuild()
}

// SplitOff truncates the line at index and returns a new Line holding
// everything from index onward. Out-of-range indices leave the line untouched
// and return an empty Line.
func (l *Line) SplitOff(index int) *Line {
	if index < 0 || index >= len(l.frags) {
		return NewLine("")
	}
	off := l.frags[index].ByteOffset
	rest := l.text[off:]
	l.text = l.text[:off]
	l.rebuild()
	return NewLine(rest)
}

// Append concatenates other's text onto the line.
func (l *Line) Append(other *Line) {
	l.text += other.text
	l.rebuild()
}

// WidthUntil returns the display-column width of the first index fragments.
func (l *Line) WidthUntil(index int) int {
	if index > len(l.frags) {
		index = len(l.frags)
	}
	w := 0
	for _, f := range l.frags[:index] {
		w += f.Cells()
	}
	return w
}

// SearchForward returns the grapheme index of the first occurrence of needle
// at or after the grapheme index from.
func (l *Line) SearchForward(needle string, from int) (int, bool) {
	if needle == "" {
		return 0, false
	}
	b := l.byteOffsetAt(from)
	idx := strings.Index(l.text[b:], needle)
	if idx < 0 {
		return 0, false
	}
	return l.GraphemeIndexOfByte(b + idx), true
}

// SearchBackward returns the grapheme index of the last occurrence of needle
// starting strictly before the grapheme index to.
func (l *Line) SearchBackward(needle string, to int) (int, bool) {
	if needle == "" {
		return 0, false
	}
	b := l.byteOffsetAt(to)
	idx := strings.LastIndex(l.text[:b], needle)
	if idx < 0 {
		return 0, false
	}
	return l.GraphemeIndexOfByte(idx), true
}

// GraphemeIndexOfByte translates a byte offset on a fragment boundary into a
// grapheme index. Offsets inside a cluster resolve to the next boundary.
func (l *Line) GraphemeIndexOfByte(b int) int {
	for i, f := range l.frags {
		if b <= f.ByteOffset {
			return i
		}
	}
	return len(l.frags)
}

func (l *Line) byteOffsetAt(index int) int {
	if index < 0 {
		return 0
	}
	if index >= len(l.frags) {
		return len(l.text)
	}
	return l.frags[index].ByteOffset
}

func (l *Line) rebuild() {
	clusters, offsets := graphemeutil.SplitWithOffsets(l.text)
	l.frags = make([]Fragment, len(clusters))
	for i, c := range clusters {
		l.frags[i] = NewFragment(c, offsets[i])
	}
}
