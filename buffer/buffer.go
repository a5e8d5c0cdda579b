package buffer

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNoFilePath reports a save attempted without a destination. It satisfies
// errors.Is(err, fs.ErrNotExist) so callers can recover by prompting for a
// path.
var ErrNoFilePath = fmt.Errorf("no file path set: %w", fs.ErrNotExist)

// Buffer is the document: an ordered sequence of Lines plus file identity and
// a dirty flag. Every mutating operation sets dirty; only a successful save
// clears it.
type Buffer struct {
	lines []*Line
	info  FileInfo
	dirty bool
}

// New builds a Buffer with one Line per input string and no file identity.
func New(lines []string) *Buffer {
	b := &Buffer{lines: make([]*Line, 0, len(lines))}
	for _, s := range lines {
		b.lines = append(b.lines, NewLine(s))
	}
	return b
}

// Load reads the file at path into a Buffer, one Line per text line.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	b := New(splitFileLines(string(data)))
	b.info = NewFileInfo(path)
	return b, nil
}

func splitFileLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, s := range lines {
		lines[i] = strings.TrimSuffix(s, "\r")
	}
	return lines
}

func (b *Buffer) FileInfo() FileInfo { return b.info }

func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) IsEmpty() bool { return len(b.lines) == 0 }

func (b *Buffer) IsDirty() bool { return b.dirty }

// Line returns the Line at index, or nil when index is out of range.
func (b *Buffer) Line(index int) *Line {
	if index < 0 || index >= len(b.lines) {
		return nil
	}
	return b.lines[index]
}

// InsertRune inserts r at the given location. Addressing the line one past
// the end appends a new line.
func (b *Buffer) InsertRune(r rune, at Pos) {
	b.dirty = true
	if at.Row >= len(b.lines) {
		b.lines = append(b.lines, NewLine(string(r)))
		return
	}
	b.lines[at.Row].InsertAt(at.Col, r)
}

// Delete removes the grapheme at the given location; past the end of a line
// it merges the following line into it. Out-of-range rows are a no-op.
func (b *Buffer) Delete(at Pos) {
	line := b.Line(at.Row)
	if line == nil {
		return
	}
	if at.Col < line.GraphemeCount() {
		line.RemoveAt(at.Col)
		b.dirty = true
		return
	}
	next := at.Row + 1
	if next < len(b.lines) {
		line.Append(b.lines[next])
		b.lines = append(b.lines[:next], b.lines[next+1:]...)
		b.dirty = true
	}
}

// InsertNewline splits the addressed line at the given column, inserting the
// tail as a new line immediately after. Addressing a nonexistent line appends
// an empty one.
func (b *Buffer) InsertNewline(at Pos) {
	b.dirty = true
	line := b.Line(at.Row)
	if line == nil {
		b.lines = append(b.lines, NewLine(""))
		return
	}
	rest := line.SplitOff(at.Col)
	b.lines = append(b.lines, nil)
	copy(b.lines[at.Row+2:], b.lines[at.Row+1:])
	b.lines[at.Row+1] = rest
}

// SearchForward scans for needle from the given location onward, wrapping
// cyclically through the whole document and re-scanning the starting line.
func (b *Buffer) SearchForward(needle string, from Pos) (Pos, bool) {
	n := len(b.lines)
	if needle == "" || n == 0 {
		return Pos{}, false
	}
	start, fromCol := from.Row, from.Col
	if start >= n || start < 0 {
		start, fromCol = 0, 0
	}
	for step := 0; step <= n; step++ {
		row := (start + step) % n
		fromIdx := 0
		if step == 0 {
			fromIdx = fromCol
		}
		if col, ok := b.lines[row].SearchForward(needle, fromIdx); ok {
			return Pos{Row: row, Col: col}, true
		}
	}
	return Pos{}, false
}

// SearchBackward scans for needle strictly before the given location, walking
// lines in reverse and wrapping cyclically.
func (b *Buffer) SearchBackward(needle string, from Pos) (Pos, bool) {
	n := len(b.lines)
	if needle == "" || n == 0 {
		return Pos{}, false
	}
	start, toCol := from.Row, from.Col
	if start >= n || start < 0 {
		start = n - 1
		toCol = b.lines[start].GraphemeCount()
	}
	for step := 0; step <= n; step++ {
		row := ((start-step)%n + n) % n
		to := b.lines[row].GraphemeCount()
		if step == 0 {
			to = toCol
		}
		if col, ok := b.lines[row].SearchBackward(needle, to); ok {
			return Pos{Row: row, Col: col}, true
		}
	}
	return Pos{}, false
}

// Save writes every line to the buffer's file path, one per output line, and
// clears the dirty flag. Without a file path it fails with ErrNoFilePath.
func (b *Buffer) Save() error {
	if b.info.Path == "" {
		return ErrNoFilePath
	}
	f, err := os.Create(b.info.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", b.info.Path, err)
	}
	w := bufio.NewWriter(f)
	for _, line := range b.lines {
		if _, err := w.WriteString(line.String()); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", b.info.Path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", b.info.Path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", b.info.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", b.info.Path, err)
	}
	b.dirty = false
	return nil
}

// SaveAs retargets the buffer to path and saves.
func (b *Buffer) SaveAs(path string) error {
	b.info = NewFileInfo(path)
	return b.Save()
}
