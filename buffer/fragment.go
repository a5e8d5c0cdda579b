package buffer

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	graphemeutil "github.com/iw2rmb/fern/internal/grapheme"
)

// FragmentWidth classifies the display width of a grapheme cluster.
type FragmentWidth int

const (
	// WidthZero marks clusters with no intrinsic width (combining marks,
	// control characters). They render as a one-column placeholder glyph.
	WidthZero FragmentWidth = iota
	// WidthHalf marks single-column clusters.
	WidthHalf
	// WidthFull marks double-column clusters (CJK, most emoji).
	WidthFull
)

// Fragment is one user-perceived character of a Line: the cluster text, its
// width class, an optional substitute glyph, and the byte offset of the
// cluster within the owning line's text.
//
// Fragments are a derived view. They are immutable once built; a Line rebuilds
// its fragment list after every text mutation.
type Fragment struct {
	Text        string
	Width       FragmentWidth
	Replacement rune // 0 when the cluster renders as-is
	ByteOffset  int
}

// NewFragment classifies a single grapheme cluster.
func NewFragment(cluster string, byteOffset int) Fragment {
	if cluster == "\t" {
		return Fragment{Text: cluster, Width: WidthHalf, Replacement: '→', ByteOffset: byteOffset}
	}

	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		// runewidth reports zero for some emoji sequences uniseg measures.
		if fb := uniseg.StringWidth(cluster); fb > w {
			w = fb
		}
	}

	switch {
	case w <= 0:
		first, _ := utf8.DecodeRuneInString(cluster)
		repl := '·'
		if unicode.IsControl(first) {
			repl = '▯'
		}
		return Fragment{Text: cluster, Width: WidthZero, Replacement: repl, ByteOffset: byteOffset}
	case w == 1:
		var repl rune
		if graphemeutil.IsSpace(cluster) {
			repl = '␣'
		}
		return Fragment{Text: cluster, Width: WidthHalf, Replacement: repl, ByteOffset: byteOffset}
	default:
		return Fragment{Text: cluster, Width: WidthFull, Replacement: 0, ByteOffset: byteOffset}
	}
}

// Cells returns the number of display columns the fragment occupies.
// Zero-width fragments count one column for their placeholder glyph.
func (f Fragment) Cells() int {
	if f.Width == WidthFull {
		return 2
	}
	return 1
}
