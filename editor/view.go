package editor

import (
	"fmt"
	"strings"

	fern "github.com/iw2rmb/fern"
	"github.com/iw2rmb/fern/buffer"
	"github.com/iw2rmb/fern/highlight"
	graphemeutil "github.com/iw2rmb/fern/internal/grapheme"
)

// Direction names a cursor movement.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveHome
	MoveEnd
	MovePageUp
	MovePageDown
	MoveWordLeft
	MoveWordRight
)

// DocumentStatus is the per-frame summary the status bar renders.
type DocumentStatus struct {
	FileName  string
	FileType  buffer.FileType
	LineCount int
	Dirty     bool
	Cursor    buffer.Pos
}

// View owns the buffer, the cursor, and the scroll offsets. The cursor
// lives in grapheme coordinates; the scroll offsets are a display
// column and a row. Every mutation keeps the cursor inside the visible
// window.
type View struct {
	buf  *buffer.Buffer
	size Size

	cursor  buffer.Pos
	scrollX int
	scrollY int

	query       string
	selected    buffer.Pos
	hasSelected bool

	style       Style
	needsRedraw bool
}

func NewView(style Style) *View {
	return &View{
		buf:         buffer.New(nil),
		style:       style,
		needsRedraw: true,
	}
}

// Load replaces the buffer with the contents of path.
func (v *View) Load(path string) error {
	buf, err := buffer.Load(path)
	if err != nil {
		return err
	}
	v.buf = buf
	v.cursor = buffer.Pos{}
	v.scrollX, v.scrollY = 0, 0
	v.needsRedraw = true
	return nil
}

// SetBuffer swaps the document and resets the cursor and scrolling.
func (v *View) SetBuffer(buf *buffer.Buffer) {
	v.buf = buf
	v.cursor = buffer.Pos{}
	v.scrollX, v.scrollY = 0, 0
	v.hasSelected = false
	v.needsRedraw = true
}

func (v *View) Buffer() *buffer.Buffer { return v.buf }

func (v *View) Cursor() buffer.Pos { return v.cursor }

func (v *View) Dirty() bool { return v.buf.IsDirty() }

func (v *View) Status() DocumentStatus {
	info := v.buf.FileInfo()
	return DocumentStatus{
		FileName:  info.Name(),
		FileType:  info.Type,
		LineCount: v.buf.LineCount(),
		Dirty:     v.buf.IsDirty(),
		Cursor:    v.cursor,
	}
}

func (v *View) Resize(size Size) {
	v.size = size
	v.scrollIntoView()
	v.needsRedraw = true
}

func (v *View) NeedsRedraw() bool { return v.needsRedraw }

// HandleMove applies a movement command and scrolls the window so the
// cursor stays visible.
func (v *View) HandleMove(dir Direction) {
	switch dir {
	case MoveUp:
		v.moveUpBy(1)
	case MoveDown:
		v.moveDownBy(1)
	case MoveLeft:
		v.moveLeft()
	case MoveRight:
		v.moveRight()
	case MoveHome:
		v.cursor.Col = 0
	case MoveEnd:
		v.cursor.Col = v.lineLen(v.cursor.Row)
	case MovePageUp:
		v.moveUpBy(maxInt(v.size.Height-1, 1))
	case MovePageDown:
		v.moveDownBy(maxInt(v.size.Height-1, 1))
	case MoveWordLeft:
		v.moveWordLeft()
	case MoveWordRight:
		v.moveWordRight()
	}
	v.scrollIntoView()
}

func (v *View) moveUpBy(n int) {
	v.cursor.Row = satSub(v.cursor.Row, n)
	v.snapCol()
}

func (v *View) moveDownBy(n int) {
	v.cursor.Row += n
	v.snapCol()
	v.snapRow()
}

// moveLeft wraps to the end of the previous line at column zero.
func (v *View) moveLeft() {
	switch {
	case v.cursor.Col > 0:
		v.cursor.Col--
	case v.cursor.Row > 0:
		v.moveUpBy(1)
		v.cursor.Col = v.lineLen(v.cursor.Row)
	}
}

// moveRight wraps to the start of the next line past the last grapheme.
func (v *View) moveRight() {
	if v.cursor.Col < v.lineLen(v.cursor.Row) {
		v.cursor.Col++
		return
	}
	if v.cursor.Row < v.buf.LineCount() {
		v.moveDownBy(1)
		v.cursor.Col = 0
	}
}

func (v *View) moveWordLeft() {
	line := v.buf.Line(v.cursor.Row)
	if line == nil || v.cursor.Col == 0 {
		v.moveLeft()
		return
	}
	frags := line.Fragments()
	i := clampInt(v.cursor.Col, 0, len(frags))
	for i > 0 && graphemeutil.IsSpace(frags[i-1].Text) {
		i--
	}
	for i > 0 && !graphemeutil.IsSpace(frags[i-1].Text) {
		i--
	}
	v.cursor.Col = i
}

func (v *View) moveWordRight() {
	line := v.buf.Line(v.cursor.Row)
	if line == nil || v.cursor.Col >= line.GraphemeCount() {
		v.moveRight()
		return
	}
	frags := line.Fragments()
	i := v.cursor.Col
	for i < len(frags) && !graphemeutil.IsSpace(frags[i].Text) {
		i++
	}
	for i < len(frags) && graphemeutil.IsSpace(frags[i].Text) {
		i++
	}
	v.cursor.Col = i
}

// snapCol clamps the column to one past the last grapheme of the
// current line.
func (v *View) snapCol() {
	v.cursor.Col = clampInt(v.cursor.Col, 0, v.lineLen(v.cursor.Row))
}

// snapRow clamps the row to one past the last line.
func (v *View) snapRow() {
	v.cursor.Row = clampInt(v.cursor.Row, 0, v.buf.LineCount())
}

func (v *View) lineLen(row int) int {
	if line := v.buf.Line(row); line != nil {
		return line.GraphemeCount()
	}
	return 0
}

// HandleInsert inserts r at the cursor and advances past it.
func (v *View) HandleInsert(r rune) {
	v.buf.InsertRune(r, v.cursor)
	v.cursor.Col++
	v.scrollIntoView()
	v.needsRedraw = true
}

func (v *View) HandleEnter() {
	v.buf.InsertNewline(v.cursor)
	v.cursor = buffer.Pos{Row: v.cursor.Row + 1, Col: 0}
	v.scrollIntoView()
	v.needsRedraw = true
}

// HandleBackspace deletes the grapheme left of the cursor; at the very
// start of the document it does nothing.
func (v *View) HandleBackspace() {
	if v.cursor.Col == 0 && v.cursor.Row == 0 {
		return
	}
	v.moveLeft()
	v.buf.Delete(v.cursor)
	v.scrollIntoView()
	v.needsRedraw = true
}

func (v *View) HandleDelete() {
	v.buf.Delete(v.cursor)
	v.needsRedraw = true
}

func (v *View) Save() error {
	return v.buf.Save()
}

func (v *View) SaveAs(path string) error {
	return v.buf.SaveAs(path)
}

// StartSearch highlights query and jumps to the first match at or
// after the cursor. It reports whether anything matched.
func (v *View) StartSearch(query string) bool {
	v.query = query
	v.needsRedraw = true
	pos, ok := v.buf.SearchForward(query, v.cursor)
	return v.moveToMatch(pos, ok)
}

func (v *View) SearchQuery() string { return v.query }

// ClearSearch drops the query and the match highlighting.
func (v *View) ClearSearch() {
	v.query = ""
	v.hasSelected = false
	v.needsRedraw = true
}

// NextOccurrence jumps to the first match strictly after the cursor,
// wrapping around the document end.
func (v *View) NextOccurrence() bool {
	if v.query == "" {
		return false
	}
	from := v.cursor
	if from.Col < v.lineLen(from.Row) {
		from.Col++
	} else {
		from = buffer.Pos{Row: from.Row + 1, Col: 0}
	}
	pos, ok := v.buf.SearchForward(v.query, from)
	return v.moveToMatch(pos, ok)
}

// PrevOccurrence jumps to the last match strictly before the cursor,
// wrapping around the document start.
func (v *View) PrevOccurrence() bool {
	if v.query == "" {
		return false
	}
	pos, ok := v.buf.SearchBackward(v.query, v.cursor)
	return v.moveToMatch(pos, ok)
}

func (v *View) moveToMatch(pos buffer.Pos, ok bool) bool {
	if !ok {
		return false
	}
	v.cursor = pos
	v.selected = pos
	v.hasSelected = true
	v.centerOn(pos)
	return true
}

// centerOn scrolls so pos sits near the middle of the window.
func (v *View) centerOn(pos buffer.Pos) {
	x := 0
	if line := v.buf.Line(pos.Row); line != nil {
		x = line.WidthUntil(pos.Col)
	}
	v.scrollY = satSub(pos.Row, v.size.Height/2)
	v.scrollX = satSub(x, v.size.Width/2)
	v.scrollIntoView()
	v.needsRedraw = true
}

// cursorXY is the cursor in absolute display coordinates.
func (v *View) cursorXY() (int, int) {
	x := 0
	if line := v.buf.Line(v.cursor.Row); line != nil {
		x = line.WidthUntil(v.cursor.Col)
	}
	return x, v.cursor.Row
}

// CursorPosition is the cursor in window-relative display coordinates.
func (v *View) CursorPosition() (int, int) {
	x, y := v.cursorXY()
	return x - v.scrollX, y - v.scrollY
}

// scrollIntoView nudges the offsets by the minimal amount that brings
// the cursor back inside the window.
func (v *View) scrollIntoView() {
	if v.size.Width == 0 || v.size.Height == 0 {
		return
	}
	x, y := v.cursorXY()
	changed := false
	switch {
	case x < v.scrollX:
		v.scrollX = x
		changed = true
	case x >= v.scrollX+v.size.Width:
		v.scrollX = x - v.size.Width + 1
		changed = true
	}
	switch {
	case y < v.scrollY:
		v.scrollY = y
		changed = true
	case y >= v.scrollY+v.size.Height:
		v.scrollY = y - v.size.Height + 1
		changed = true
	}
	if changed {
		v.needsRedraw = true
	}
}

// View renders the visible window. Rows past the document end show a
// placeholder, and an empty buffer shows a welcome banner a third of
// the way down.
func (v *View) View() string {
	var h *highlight.Highlighter
	if v.hasSelected {
		sel := v.selected
		h = highlight.New(v.buf.LineCount(), v.query, &sel, v.buf.FileInfo().Type)
	} else {
		h = highlight.New(v.buf.LineCount(), v.query, nil, v.buf.FileInfo().Type)
	}

	bannerRow := v.size.Height / 3
	rows := make([]string, 0, v.size.Height)
	for i := 0; i < v.size.Height; i++ {
		docRow := i + v.scrollY
		switch line := v.buf.Line(docRow); {
		case line != nil:
			rows = append(rows, v.renderLine(h, docRow, line))
		case v.buf.IsEmpty() && i == bannerRow:
			rows = append(rows, v.banner())
		case docRow == v.cursor.Row:
			rows = append(rows, v.style.Cursor.Render("~"))
		default:
			rows = append(rows, v.style.Placeholder.Render("~"))
		}
	}
	v.needsRedraw = false
	return strings.Join(rows, "\n")
}

func (v *View) renderLine(h *highlight.Highlighter, row int, line *buffer.Line) string {
	h.Highlight(row, line)
	anns := h.Annotations(row)

	trailingCursor := false
	if row == v.cursor.Row {
		if v.cursor.Col < line.GraphemeCount() {
			frag := line.Fragments()[v.cursor.Col]
			anns = append(anns, buffer.Annotation{
				Start: frag.ByteOffset,
				End:   frag.ByteOffset + len(frag.Text),
				Kind:  buffer.AnnotationCursor,
			})
		} else {
			trailingCursor = true
		}
	}

	al := line.GetAnnotated(v.scrollX, v.scrollX+v.size.Width, anns)
	var sb strings.Builder
	for _, part := range al.Parts() {
		sb.WriteString(v.style.For(part.Kind).Render(part.Text))
	}
	if trailingCursor {
		end := line.WidthUntil(line.GraphemeCount())
		if end >= v.scrollX && end < v.scrollX+v.size.Width {
			sb.WriteString(v.style.Cursor.Render(" "))
		}
	}
	return sb.String()
}

func (v *View) banner() string {
	msg := fmt.Sprintf("fern editor -- version %s", fern.Version())
	if len(msg) > v.size.Width {
		msg = msg[:v.size.Width]
	}
	pad := satSub(v.size.Width, len(msg)) / 2
	return v.style.Banner.Render(strings.Repeat(" ", pad) + msg)
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
