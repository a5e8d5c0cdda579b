package editor

// Size is a screen area in terminal cells.
type Size struct {
	Width  int
	Height int
}

// widget is the minimal contract the model needs from each screen
// region. View clears the widget's redraw flag.
type widget interface {
	Resize(Size)
	View() string
	NeedsRedraw() bool
}
