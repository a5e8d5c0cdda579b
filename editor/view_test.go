package editor

import (
	"strings"
	"testing"

	"github.com/iw2rmb/fern/buffer"
)

func newTestView(lines []string, size Size) *View {
	v := NewView(Style{})
	v.SetBuffer(buffer.New(lines))
	v.Resize(size)
	return v
}

func TestViewScrollFollowsCursorRight(t *testing.T) {
	v := newTestView([]string{strings.Repeat("a", 20)}, Size{Width: 10, Height: 5})

	for i := 0; i < 9; i++ {
		v.HandleMove(MoveRight)
	}
	if v.scrollX != 0 {
		t.Fatalf("scrollX = %d before cursor leaves window, want 0", v.scrollX)
	}

	v.HandleMove(MoveRight)
	if v.cursor.Col != 10 {
		t.Fatalf("cursor col = %d, want 10", v.cursor.Col)
	}
	if v.scrollX != 1 {
		t.Fatalf("scrollX = %d after crossing right edge, want 1", v.scrollX)
	}
}

func TestViewScrollFollowsCursorDown(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "x"
	}
	v := newTestView(lines, Size{Width: 10, Height: 5})

	for i := 0; i < 5; i++ {
		v.HandleMove(MoveDown)
	}
	if v.scrollY != 1 {
		t.Fatalf("scrollY = %d, want 1", v.scrollY)
	}

	v.HandleMove(MovePageUp)
	if v.cursor.Row != 1 || v.scrollY != 1 {
		t.Fatalf("after page up: row = %d scrollY = %d, want 1 1", v.cursor.Row, v.scrollY)
	}
}

func TestViewMoveDownSnapsColumn(t *testing.T) {
	v := newTestView([]string{"a long line here", "ab"}, Size{Width: 40, Height: 5})

	v.HandleMove(MoveEnd)
	if v.cursor.Col != 16 {
		t.Fatalf("cursor col = %d after end, want 16", v.cursor.Col)
	}
	v.HandleMove(MoveDown)
	if v.cursor != (buffer.Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor = %+v after down, want {1 2}", v.cursor)
	}
}

func TestViewHorizontalWrap(t *testing.T) {
	v := newTestView([]string{"ab", "cd"}, Size{Width: 40, Height: 5})

	v.HandleMove(MoveDown)
	v.HandleMove(MoveLeft)
	if v.cursor != (buffer.Pos{Row: 0, Col: 2}) {
		t.Fatalf("left at line start: cursor = %+v, want {0 2}", v.cursor)
	}

	v.HandleMove(MoveRight)
	if v.cursor != (buffer.Pos{Row: 1, Col: 0}) {
		t.Fatalf("right at line end: cursor = %+v, want {1 0}", v.cursor)
	}
}

func TestViewCursorPastDocumentEnd(t *testing.T) {
	v := newTestView([]string{"a", "b"}, Size{Width: 10, Height: 5})

	for i := 0; i < 5; i++ {
		v.HandleMove(MoveDown)
	}
	if v.cursor != (buffer.Pos{Row: 2, Col: 0}) {
		t.Fatalf("cursor = %+v, want {2 0}", v.cursor)
	}
}

func TestViewWordMovement(t *testing.T) {
	v := newTestView([]string{"foo  bar baz"}, Size{Width: 40, Height: 5})

	v.HandleMove(MoveWordRight)
	if v.cursor.Col != 5 {
		t.Fatalf("word right: col = %d, want 5", v.cursor.Col)
	}
	v.HandleMove(MoveWordRight)
	if v.cursor.Col != 9 {
		t.Fatalf("word right twice: col = %d, want 9", v.cursor.Col)
	}
	v.HandleMove(MoveWordLeft)
	if v.cursor.Col != 5 {
		t.Fatalf("word left: col = %d, want 5", v.cursor.Col)
	}
	v.HandleMove(MoveWordLeft)
	if v.cursor.Col != 0 {
		t.Fatalf("word left twice: col = %d, want 0", v.cursor.Col)
	}
}

func TestViewInsertEnterBackspace(t *testing.T) {
	v := newTestView(nil, Size{Width: 10, Height: 5})

	for _, r := range "hi" {
		v.HandleInsert(r)
	}
	v.HandleEnter()
	v.HandleInsert('!')
	if got := v.Buffer().LineCount(); got != 2 {
		t.Fatalf("line count = %d, want 2", got)
	}
	if got := v.Buffer().Line(1).String(); got != "!" {
		t.Fatalf("line 1 = %q, want %q", got, "!")
	}

	v.HandleBackspace()
	v.HandleBackspace()
	if v.cursor != (buffer.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor = %+v after joining lines, want {0 2}", v.cursor)
	}
	if got := v.Buffer().LineCount(); got != 1 {
		t.Fatalf("line count = %d after join, want 1", got)
	}

	v.cursor = buffer.Pos{}
	v.HandleBackspace()
	if got := v.Buffer().Line(0).String(); got != "hi" {
		t.Fatalf("backspace at document start changed text to %q", got)
	}
}

func TestViewSearchCentersMatch(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[10] = "needle here"
	v := newTestView(lines, Size{Width: 10, Height: 5})

	if !v.StartSearch("needle") {
		t.Fatal("StartSearch found nothing")
	}
	if v.cursor != (buffer.Pos{Row: 10, Col: 0}) {
		t.Fatalf("cursor = %+v, want {10 0}", v.cursor)
	}
	if v.scrollY != 8 {
		t.Fatalf("scrollY = %d, want 8", v.scrollY)
	}
	if x, y := v.CursorPosition(); x != 0 || y != 2 {
		t.Fatalf("screen cursor = (%d, %d), want (0, 2)", x, y)
	}
}

func TestViewOccurrencesWrapAround(t *testing.T) {
	v := newTestView([]string{"cat", "dog", "cat"}, Size{Width: 10, Height: 5})

	if !v.StartSearch("cat") {
		t.Fatal("StartSearch found nothing")
	}
	if v.cursor.Row != 0 {
		t.Fatalf("first match row = %d, want 0", v.cursor.Row)
	}

	if !v.NextOccurrence() {
		t.Fatal("NextOccurrence found nothing")
	}
	if v.cursor.Row != 2 {
		t.Fatalf("second match row = %d, want 2", v.cursor.Row)
	}

	if !v.NextOccurrence() {
		t.Fatal("NextOccurrence did not wrap")
	}
	if v.cursor.Row != 0 {
		t.Fatalf("wrapped match row = %d, want 0", v.cursor.Row)
	}

	if !v.PrevOccurrence() {
		t.Fatal("PrevOccurrence did not wrap")
	}
	if v.cursor.Row != 2 {
		t.Fatalf("backward wrapped match row = %d, want 2", v.cursor.Row)
	}

	v.ClearSearch()
	if v.NextOccurrence() {
		t.Fatal("NextOccurrence succeeded with no query")
	}
}

func TestViewRenderPlaceholders(t *testing.T) {
	v := newTestView([]string{"hi"}, Size{Width: 5, Height: 3})

	rows := strings.Split(v.View(), "\n")
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(rows))
	}
	if rows[0] != "hi" {
		t.Fatalf("row 0 = %q, want %q", rows[0], "hi")
	}
	for i := 1; i < 3; i++ {
		if rows[i] != "~" {
			t.Fatalf("row %d = %q, want %q", i, rows[i], "~")
		}
	}
}

func TestViewRenderWindowsContent(t *testing.T) {
	v := newTestView([]string{"abcdefghij"}, Size{Width: 4, Height: 1})
	v.scrollX = 3

	rows := strings.Split(v.View(), "\n")
	if rows[0] != "defg" {
		t.Fatalf("row 0 = %q, want %q", rows[0], "defg")
	}
}

func TestViewBannerOnEmptyBuffer(t *testing.T) {
	v := newTestView(nil, Size{Width: 40, Height: 6})

	rows := strings.Split(v.View(), "\n")
	if !strings.Contains(rows[2], "fern editor") {
		t.Fatalf("row 2 = %q, want welcome banner", rows[2])
	}
}

func TestViewCursorPositionWideGlyphs(t *testing.T) {
	v := newTestView([]string{"日本x"}, Size{Width: 10, Height: 2})

	v.HandleMove(MoveRight)
	v.HandleMove(MoveRight)
	if x, _ := v.CursorPosition(); x != 4 {
		t.Fatalf("screen x = %d past two full-width glyphs, want 4", x)
	}
}

func TestViewRedrawFlag(t *testing.T) {
	v := newTestView([]string{"hello"}, Size{Width: 10, Height: 2})
	v.View()
	if v.NeedsRedraw() {
		t.Fatal("redraw flag still set after render")
	}

	v.HandleInsert('x')
	if !v.NeedsRedraw() {
		t.Fatal("insert did not mark redraw")
	}
}
