package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// messageTickMsg forces a redraw so an expired message disappears
// without waiting for a keypress.
type messageTickMsg struct{}

// Model is the Bubble Tea program: the viewport plus the status,
// message, and command bars, with a modal key dispatch on top.
type Model struct {
	cfg  Config
	mode Mode

	view    *View
	status  *StatusBar
	message *MessageBar
	command *CommandBar
	widgets []widget

	size          Size
	quitRemaining int

	watch         *watcher
	suppressWatch bool
}

// New builds a model, loading path when it is non-empty. A load
// failure leaves an empty buffer and surfaces the error as a message.
func New(cfg Config, path string) Model {
	m := Model{
		cfg:           cfg,
		mode:          ModeNormal,
		view:          NewView(cfg.Style),
		status:        NewStatusBar(cfg.Style.StatusBar),
		message:       NewMessageBar(cfg.MessageTimeout),
		command:       NewCommandBar(),
		quitRemaining: cfg.QuitConfirmations,
	}
	m.widgets = []widget{m.view, m.status, m.message, m.command}
	if path != "" {
		if err := m.view.Load(path); err != nil {
			m.message.SetMessage(fmt.Sprintf("Could not open file: %s", path))
		} else if w, err := newWatcher(path); err == nil {
			m.watch = w
		}
	}
	m.syncStatus()
	return m
}

// Close releases the file watcher. Call it after the program exits.
func (m Model) Close() error {
	if m.watch != nil {
		return m.watch.Close()
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	if m.watch != nil {
		return m.watch.waitForChange()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(Size{Width: msg.Width, Height: msg.Height})
		return m, nil

	case fileChangedMsg:
		if m.suppressWatch {
			m.suppressWatch = false
		} else {
			m.message.SetMessage(fmt.Sprintf("%s changed on disk", msg.path))
		}
		return m, tea.Batch(m.watch.waitForChange(), m.messageTick())

	case messageTickMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ModeCommand {
		return m, m.command.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeNormal:
		cmd = m.handleNormal(msg)
	case ModeInsert:
		m.handleInsert(msg)
	case ModeCommand:
		cmd = m.handleCommand(msg)
	}
	// Any key other than quit restarts the confirmation countdown.
	if !key.Matches(msg, m.cfg.Keys.Quit) {
		m.quitRemaining = m.cfg.QuitConfirmations
	}
	m.syncStatus()
	return m, cmd
}

func (m *Model) handleNormal(msg tea.KeyMsg) tea.Cmd {
	keys := m.cfg.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()
	case key.Matches(msg, keys.Save):
		return m.save()
	case key.Matches(msg, keys.Insert):
		m.mode = ModeInsert
	case key.Matches(msg, keys.Search):
		m.mode = ModeCommand
		return m.command.Open(CommandSearch)
	case key.Matches(msg, keys.NextMatch):
		if !m.view.NextOccurrence() {
			return m.setMessage("No match")
		}
	case key.Matches(msg, keys.PrevMatch):
		if !m.view.PrevOccurrence() {
			return m.setMessage("No match")
		}
	case key.Matches(msg, keys.Exit):
		m.view.ClearSearch()
	case key.Matches(msg, keys.Up):
		m.view.HandleMove(MoveUp)
	case key.Matches(msg, keys.Down):
		m.view.HandleMove(MoveDown)
	case key.Matches(msg, keys.Left):
		m.view.HandleMove(MoveLeft)
	case key.Matches(msg, keys.Right):
		m.view.HandleMove(MoveRight)
	case key.Matches(msg, keys.Home):
		m.view.HandleMove(MoveHome)
	case key.Matches(msg, keys.End):
		m.view.HandleMove(MoveEnd)
	case key.Matches(msg, keys.PageUp):
		m.view.HandleMove(MovePageUp)
	case key.Matches(msg, keys.PageDown):
		m.view.HandleMove(MovePageDown)
	case key.Matches(msg, keys.WordLeft):
		m.view.HandleMove(MoveWordLeft)
	case key.Matches(msg, keys.WordRight):
		m.view.HandleMove(MoveWordRight)
	}
	return nil
}

func (m *Model) handleInsert(msg tea.KeyMsg) {
	keys := m.cfg.Keys
	switch {
	case key.Matches(msg, keys.Exit):
		m.mode = ModeNormal
	case key.Matches(msg, keys.Accept):
		m.view.HandleEnter()
	case key.Matches(msg, keys.Backspace):
		m.view.HandleBackspace()
	case key.Matches(msg, keys.Delete):
		m.view.HandleDelete()
	case msg.Type == tea.KeyTab:
		m.view.HandleInsert('\t')
	case msg.Type == tea.KeySpace:
		m.view.HandleInsert(' ')
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.view.HandleInsert(r)
		}
	}
}

func (m *Model) handleCommand(msg tea.KeyMsg) tea.Cmd {
	keys := m.cfg.Keys
	switch {
	case key.Matches(msg, keys.Exit):
		m.closeCommand()
		return nil
	case key.Matches(msg, keys.Accept):
		return m.executeCommand()
	default:
		return m.command.Update(msg)
	}
}

func (m *Model) executeCommand() tea.Cmd {
	kind := m.command.Kind()
	value := m.command.Value()
	m.closeCommand()

	switch kind {
	case CommandSearch:
		if value == "" {
			m.view.ClearSearch()
			return nil
		}
		if !m.view.StartSearch(value) {
			return m.setMessage(fmt.Sprintf("Nothing found for %q", value))
		}
	case CommandSaveAs:
		path := strings.TrimSpace(value)
		if path == "" {
			return m.setMessage("Save aborted")
		}
		return m.finishSave(m.view.SaveAs(path))
	}
	return nil
}

func (m *Model) closeCommand() {
	m.command.Close()
	m.mode = ModeNormal
}

func (m *Model) save() tea.Cmd {
	err := m.view.Save()
	if errors.Is(err, fs.ErrNotExist) {
		m.mode = ModeCommand
		return m.command.Open(CommandSaveAs)
	}
	return m.finishSave(err)
}

func (m *Model) finishSave(err error) tea.Cmd {
	if err != nil {
		return m.setMessage("Error writing file")
	}
	if m.watch != nil {
		m.suppressWatch = true
	}
	return m.setMessage("File saved successfully")
}

func (m *Model) quit() tea.Cmd {
	if !m.view.Dirty() {
		return tea.Quit
	}
	m.quitRemaining--
	if m.quitRemaining <= 0 {
		return tea.Quit
	}
	return m.setMessage(fmt.Sprintf(
		"WARNING! File has unsaved changes. Press %s %d more times to quit.",
		m.cfg.Keys.Quit.Help().Key, m.quitRemaining))
}

func (m *Model) setMessage(text string) tea.Cmd {
	m.message.SetMessage(text)
	return m.messageTick()
}

func (m *Model) messageTick() tea.Cmd {
	return tea.Tick(m.cfg.MessageTimeout, func(time.Time) tea.Msg {
		return messageTickMsg{}
	})
}

// resize hands each widget its slice of the frame: the viewport gets
// everything above the two bottom bars, each bar gets one row.
func (m *Model) resize(size Size) {
	m.size = size
	bar := Size{Width: size.Width, Height: 1}
	sizes := []Size{
		{Width: size.Width, Height: maxInt(size.Height-2, 0)},
		bar,
		bar,
		bar,
	}
	for i, w := range m.widgets {
		w.Resize(sizes[i])
	}
}

func (m *Model) syncStatus() {
	m.status.Update(m.view.Status(), m.mode)
}

func (m Model) View() string {
	if m.size.Width == 0 || m.size.Height == 0 {
		return ""
	}
	rows := make([]string, 0, 3)
	rows = append(rows, m.view.View())
	if m.size.Height > 2 {
		rows = append(rows, m.status.View())
	}
	if m.size.Height > 1 {
		var bottom widget = m.message
		if m.mode == ModeCommand {
			bottom = m.command
		}
		rows = append(rows, bottom.View())
	}
	return strings.Join(rows, "\n")
}
