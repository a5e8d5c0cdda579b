package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandKind names what the minibuffer input gets applied to.
type CommandKind int

const (
	CommandSearch CommandKind = iota
	CommandSaveAs
)

// CommandBar is the one-line minibuffer shown in command mode. It
// replaces the message bar while open.
type CommandBar struct {
	kind        CommandKind
	input       textinput.Model
	size        Size
	needsRedraw bool
}

func NewCommandBar() *CommandBar {
	in := textinput.New()
	in.Prompt = ""
	return &CommandBar{input: in}
}

// Open resets the input for a fresh prompt and focuses it.
func (c *CommandBar) Open(kind CommandKind) tea.Cmd {
	c.kind = kind
	switch kind {
	case CommandSaveAs:
		c.input.Prompt = "Save as: "
	default:
		c.input.Prompt = "/"
	}
	c.input.SetValue("")
	c.needsRedraw = true
	return c.input.Focus()
}

func (c *CommandBar) Close() {
	c.input.Blur()
	c.needsRedraw = true
}

func (c *CommandBar) Kind() CommandKind { return c.kind }

func (c *CommandBar) Value() string { return c.input.Value() }

func (c *CommandBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.needsRedraw = true
	return cmd
}

func (c *CommandBar) Resize(size Size) {
	c.size = size
	c.input.Width = maxInt(size.Width-len(c.input.Prompt)-1, 1)
	c.needsRedraw = true
}

func (c *CommandBar) NeedsRedraw() bool { return c.needsRedraw }

func (c *CommandBar) View() string {
	c.needsRedraw = false
	return c.input.View()
}
