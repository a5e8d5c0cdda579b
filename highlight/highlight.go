// Package highlight computes render annotations for document lines: search
// match spans and, for Rust sources, a minimal lexical pass over Unicode word
// boundaries. Highlighting is best effort; malformed tokens are left
// unannotated and a render can never fail here.
package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/iw2rmb/fern/buffer"
)

// Highlighter computes annotations for one render pass. It is rebuilt per
// frame from the current search state and discarded after rendering.
type Highlighter struct {
	fileType    buffer.FileType
	query       string
	selected    buffer.Pos
	hasSelected bool
	rows        [][]buffer.Annotation
}

// New sizes a Highlighter for lineCount rows. selected, when non-nil, marks
// the occurrence that should render as the selected match.
func New(lineCount int, query string, selected *buffer.Pos, fileType buffer.FileType) *Highlighter {
	h := &Highlighter{
		fileType: fileType,
		query:    query,
		rows:     make([][]buffer.Annotation, lineCount),
	}
	if selected != nil {
		h.selected = *selected
		h.hasSelected = true
	}
	return h
}

// Highlight appends the row's annotations: every search match, then lexical
// tokens when the file type calls for them.
func (h *Highlighter) Highlight(row int, line *buffer.Line) {
	if row < 0 || row >= len(h.rows) {
		return
	}
	h.matches(row, line)
	if h.fileType == buffer.FileTypeRust {
		h.lexical(row, line)
	}
}

// Annotations returns the annotations computed for row.
func (h *Highlighter) Annotations(row int) []buffer.Annotation {
	if row < 0 || row >= len(h.rows) {
		return nil
	}
	return h.rows[row]
}

func (h *Highlighter) matches(row int, line *buffer.Line) {
	if h.query == "" {
		return
	}
	text := line.String()
	for from := 0; ; {
		idx := strings.Index(text[from:], h.query)
		if idx < 0 {
			return
		}
		start := from + idx
		end := start + len(h.query)
		from = end

		fromGr := line.GraphemeIndexOfByte(start)
		// The needle's byte length approximates its grapheme span.
		toGr := fromGr + len(h.query)

		kind := buffer.AnnotationMatch
		if h.hasSelected && h.selected.Row == row &&
			h.selected.Col >= fromGr && h.selected.Col < toGr {
			kind = buffer.AnnotationSelectedMatch
		}
		h.push(row, start, end, kind)
	}
}

func (h *Highlighter) lexical(row int, line *buffer.Line) {
	text := line.String()
	ignore := 0
	offset := 0
	state := -1
	for rest := text; rest != ""; {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start := offset
		offset += len(word)
		if start < ignore || word == "" {
			continue
		}

		var (
			ann buffer.Annotation
			ok  bool
		)
		first, _ := utf8.DecodeRuneInString(word)
		switch {
		case first == '\'':
			ann, ok = charOrLifetime(text[start:])
		case first >= '0' && first <= '9':
			ann, ok = number(word)
		}
		if !ok {
			continue
		}

		ignore = start + ann.End
		h.push(row, start+ann.Start, start+ann.End, ann.Kind)
	}
}

func (h *Highlighter) push(row, start, end int, kind buffer.AnnotationKind) {
	if start >= end {
		return
	}
	h.rows[row] = append(h.rows[row], buffer.Annotation{Start: start, End: end, Kind: kind})
}

// charOrLifetime classifies text starting at a ' as a lifetime when it reads
// like one, else as a char literal.
func charOrLifetime(text string) (buffer.Annotation, bool) {
	if ann, ok := lifetime(text); ok {
		return ann, true
	}
	return charLiteral(text)
}

// charLiteral scans for the closing unescaped quote; without one the whole
// remainder is still tagged so an unterminated literal is visually flagged.
func charLiteral(text string) (buffer.Annotation, bool) {
	escaped := false
	for i, ch := range text {
		if i == 0 {
			continue
		}
		switch {
		case ch == '\\':
			escaped = !escaped
		case ch == '\'' && !escaped:
			return buffer.Annotation{Start: 0, End: i + 1, Kind: buffer.AnnotationCharLiteral}, true
		default:
			escaped = false
		}
	}
	return buffer.Annotation{Start: 0, End: len(text), Kind: buffer.AnnotationCharLiteral}, true
}

// lifetime accepts ' followed by an identifier-like span that does not reopen
// a quote.
func lifetime(text string) (buffer.Annotation, bool) {
	for i, ch := range text {
		if i == 0 {
			continue
		}
		ident := ch == '_' || (ch >= '0' && ch <= '9') ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		switch {
		case ch == '\'':
			return buffer.Annotation{}, false
		case !ident && i == 1:
			return buffer.Annotation{}, false
		case !ident:
			return buffer.Annotation{Start: 0, End: i, Kind: buffer.AnnotationLifetime}, true
		}
	}
	if utf8.RuneCountInString(text) == 1 {
		return buffer.Annotation{}, false
	}
	return buffer.Annotation{Start: 0, End: len(text), Kind: buffer.AnnotationLifetime}, true
}

// number validates a token that starts with a decimal digit: one optional
// radix prefix in second position, one optional decimal point, one optional
// exponent marker, underscores as group separators. Anything else disqualifies
// the token.
func number(word string) (buffer.Annotation, bool) {
	base := 10
	dot := false
	needMore := false

	pos := 0
	for _, ch := range word {
		i := pos
		pos++
		switch {
		case ch == '_':
		case ch == '.' && dot:
			return buffer.Annotation{}, false
		case ch == '.':
			dot = true
		case ch == 'e':
			dot = true
			needMore = true
		case ch == 'b' || ch == 'B':
			if i != 1 {
				return buffer.Annotation{}, false
			}
			base = 2
			needMore = true
		case ch == 'o' || ch == 'O':
			if i != 1 {
				return buffer.Annotation{}, false
			}
			base = 8
			needMore = true
		case ch == 'x' || ch == 'X':
			if i != 1 {
				return buffer.Annotation{}, false
			}
			base = 16
			needMore = true
		case !isDigitInBase(ch, base):
			return buffer.Annotation{}, false
		default:
			needMore = false
		}
	}
	if needMore {
		return buffer.Annotation{}, false
	}
	return buffer.Annotation{Start: 0, End: len(word), Kind: buffer.AnnotationNumber}, true
}

func isDigitInBase(ch rune, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return ch >= '0' && ch <= '7'
	case 16:
		return unicode.Is(unicode.ASCII_Hex_Digit, ch)
	default:
		return ch >= '0' && ch <= '9'
	}
}
