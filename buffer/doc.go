// Package buffer implements the grapheme-accurate document model for fern.
//
// Text positions are 0-based (Row, Col) where Col counts grapheme clusters,
// not bytes or runes. Annotation ranges are half-open byte ranges: [Start, End).
package buffer
