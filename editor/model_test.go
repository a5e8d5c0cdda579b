package editor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/fern/buffer"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Style = Style{}
	m := New(cfg, "")
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return mm.(Model)
}

func feed(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var mm tea.Model
		mm, cmd = m.Update(msg)
		m = mm.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelQuitCleanBuffer(t *testing.T) {
	m := testModel(t)
	_, cmd := feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !isQuit(cmd) {
		t.Fatal("quit on a clean buffer did not quit")
	}
}

func TestModelQuitConfirmation(t *testing.T) {
	m := testModel(t)
	m, _ = feed(t, m, keyRunes("i"), keyRunes("x"), tea.KeyMsg{Type: tea.KeyEsc})

	var cmd tea.Cmd
	for i := 0; i < 2; i++ {
		m, cmd = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
		if isQuit(cmd) {
			t.Fatalf("quit after %d presses, want 3", i+1)
		}
	}
	if !strings.Contains(m.message.text, "unsaved changes") {
		t.Fatalf("message = %q, want unsaved changes warning", m.message.text)
	}

	_, cmd = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if !isQuit(cmd) {
		t.Fatal("third quit press did not quit")
	}
}

func TestModelQuitCountdownResets(t *testing.T) {
	m := testModel(t)
	m, _ = feed(t, m, keyRunes("i"), keyRunes("x"), tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	m, _ = feed(t, m, keyRunes("h"))

	var cmd tea.Cmd
	m, cmd = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	if isQuit(cmd) {
		t.Fatal("countdown did not reset after another key")
	}
	if m.quitRemaining != m.cfg.QuitConfirmations-1 {
		t.Fatalf("quitRemaining = %d, want %d", m.quitRemaining, m.cfg.QuitConfirmations-1)
	}
}

func TestModelInsertMode(t *testing.T) {
	m := testModel(t)
	m, _ = feed(t, m,
		keyRunes("i"),
		keyRunes("ok"),
		tea.KeyMsg{Type: tea.KeyEnter},
		keyRunes("go"),
		tea.KeyMsg{Type: tea.KeyEsc},
	)
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after esc, want normal", m.mode)
	}
	buf := m.view.Buffer()
	if buf.LineCount() != 2 {
		t.Fatalf("line count = %d, want 2", buf.LineCount())
	}
	if got := buf.Line(0).String(); got != "ok" {
		t.Fatalf("line 0 = %q, want %q", got, "ok")
	}
	if got := buf.Line(1).String(); got != "go" {
		t.Fatalf("line 1 = %q, want %q", got, "go")
	}
}

func TestModelNormalModeIgnoresText(t *testing.T) {
	m := testModel(t)
	m, _ = feed(t, m, keyRunes("x"), keyRunes("y"))
	if !m.view.Buffer().IsEmpty() {
		t.Fatal("normal-mode keys modified the buffer")
	}
}

func TestModelSaveWithoutPathPromptsForName(t *testing.T) {
	m := testModel(t)
	m, _ = feed(t, m, keyRunes("i"), keyRunes("x"), tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.mode != ModeCommand {
		t.Fatalf("mode = %v after save without path, want command", m.mode)
	}
	if m.command.Kind() != CommandSaveAs {
		t.Fatalf("command kind = %v, want save-as", m.command.Kind())
	}

	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal {
		t.Fatal("empty save-as input did not return to normal mode")
	}
	if !strings.Contains(m.message.text, "aborted") {
		t.Fatalf("message = %q, want save aborted", m.message.text)
	}
}

func TestModelSaveAs(t *testing.T) {
	m := testModel(t)
	m, _ = feed(t, m, keyRunes("i"), keyRunes("hello"), tea.KeyMsg{Type: tea.KeyEsc})

	path := t.TempDir() + "/out.txt"
	m, _ = feed(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = feed(t, m, keyRunes(path), tea.KeyMsg{Type: tea.KeyEnter})

	if m.view.Dirty() {
		t.Fatal("buffer still dirty after save-as")
	}
	if !strings.Contains(m.message.text, "saved") {
		t.Fatalf("message = %q, want save confirmation", m.message.text)
	}

	loaded, err := buffer.Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	if got := loaded.Line(0).String(); got != "hello" {
		t.Fatalf("saved line = %q, want %q", got, "hello")
	}
}

func TestModelSearchFlow(t *testing.T) {
	m := testModel(t)
	m.view.SetBuffer(buffer.New([]string{"cat", "dog", "cat"}))

	m, _ = feed(t, m, keyRunes("/"))
	if m.mode != ModeCommand {
		t.Fatalf("mode = %v after /, want command", m.mode)
	}

	m, _ = feed(t, m, keyRunes("dog"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal {
		t.Fatal("enter did not leave command mode")
	}
	if m.view.Cursor() != (buffer.Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor = %+v after search, want {1 0}", m.view.Cursor())
	}

	m, _ = feed(t, m, keyRunes("/"), keyRunes("missing"), tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.message.text, "Nothing found") {
		t.Fatalf("message = %q, want nothing found", m.message.text)
	}
}

func TestModelSearchEscCancels(t *testing.T) {
	m := testModel(t)
	m.view.SetBuffer(buffer.New([]string{"cat"}))

	m, _ = feed(t, m, keyRunes("/"), keyRunes("ca"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeNormal {
		t.Fatal("esc did not leave command mode")
	}
	if m.view.Cursor() != (buffer.Pos{}) {
		t.Fatalf("cursor = %+v after cancelled search, want {0 0}", m.view.Cursor())
	}
}

func TestModelViewComposition(t *testing.T) {
	m := testModel(t)
	m.view.SetBuffer(buffer.New([]string{"hello"}))
	m.syncStatus()

	rows := strings.Split(m.View(), "\n")
	if len(rows) != 10 {
		t.Fatalf("frame has %d rows, want 10", len(rows))
	}
	if rows[0] != "hello" {
		t.Fatalf("row 0 = %q, want %q", rows[0], "hello")
	}
	if !strings.Contains(rows[8], "NORMAL") {
		t.Fatalf("status row = %q, want mode name", rows[8])
	}
}

func TestMessageBarExpires(t *testing.T) {
	bar := NewMessageBar(5 * time.Second)
	base := time.Now()
	now := base
	bar.now = func() time.Time { return now }

	bar.SetMessage("hi")
	if got := bar.View(); got != "hi" {
		t.Fatalf("View() = %q, want %q", got, "hi")
	}

	now = base.Add(6 * time.Second)
	if got := bar.View(); got != "" {
		t.Fatalf("View() = %q after timeout, want empty", got)
	}
}

func TestStatusBarContents(t *testing.T) {
	bar := NewStatusBar(lipgloss.NewStyle())
	bar.Resize(Size{Width: 60, Height: 1})
	bar.Update(DocumentStatus{
		FileName:  "main.rs",
		FileType:  buffer.FileTypeRust,
		LineCount: 2,
		Dirty:     true,
		Cursor:    buffer.Pos{Row: 1, Col: 0},
	}, ModeInsert)

	got := bar.View()
	for _, want := range []string{"main.rs", "2 lines", "(modified)", "Rust", "INSERT", "2:1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status %q missing %q", got, want)
		}
	}
}
