package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// SplitWithOffsets returns grapheme clusters together with the byte offset of
// each cluster within text.
func SplitWithOffsets(text string) ([]string, []int) {
	if text == "" {
		return nil, nil
	}
	g := uniseg.NewGraphemes(text)
	clusters := make([]string, 0, len([]rune(text)))
	offsets := make([]int, 0, len([]rune(text)))
	for g.Next() {
		start, _ := g.Positions()
		clusters = append(clusters, g.Str())
		offsets = append(offsets, start)
	}
	return clusters, offsets
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
