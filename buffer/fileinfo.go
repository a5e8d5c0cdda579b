package buffer

import (
	"path/filepath"
	"strings"
)

// FileType is the lexical kind used to pick highlighting rules.
type FileType int

const (
	FileTypeText FileType = iota
	FileTypeRust
)

func (t FileType) String() string {
	switch t {
	case FileTypeRust:
		return "Rust"
	default:
		return "Text"
	}
}

// FileInfo identifies the file a Buffer was loaded from. A zero FileInfo
// means the buffer has no destination yet.
type FileInfo struct {
	Path string
	Type FileType
}

// NewFileInfo derives the lexical type from the path's extension.
func NewFileInfo(path string) FileInfo {
	t := FileTypeText
	if strings.EqualFold(filepath.Ext(path), ".rs") {
		t = FileTypeRust
	}
	return FileInfo{Path: path, Type: t}
}

// Name returns the base file name, or a placeholder for unnamed buffers.
func (fi FileInfo) Name() string {
	if fi.Path == "" {
		return "[No Name]"
	}
	return filepath.Base(fi.Path)
}
