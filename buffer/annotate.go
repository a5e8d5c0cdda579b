package buffer

// AnnotationKind tags a byte range of a line for rendering.
type AnnotationKind int

const (
	AnnotationNone AnnotationKind = iota
	AnnotationMatch
	AnnotationSelectedMatch
	AnnotationNumber
	AnnotationCharLiteral
	AnnotationLifetime
	AnnotationCursor
)

// Annotation marks the half-open byte range [Start, End) of a line's text.
// Annotations are never empty; empty ranges are dropped on push and after
// every adjustment.
type Annotation struct {
	Start int
	End   int
	Kind  AnnotationKind
}

// AnnotatedPart is one run of line text with a single annotation kind.
type AnnotatedPart struct {
	Text string
	Kind AnnotationKind
}

// AnnotatedLine pairs a line's text with render annotations. It owns a copy
// of the text: annotated lines live for one render pass and never alias the
// document's Lines.
type AnnotatedLine struct {
	text string
	anns []Annotation
}

func NewAnnotatedLine(text string) *AnnotatedLine {
	return &AnnotatedLine{text: text}
}

func (al *AnnotatedLine) Text() string { return al.text }

// Annotations returns the current annotation set.
func (al *AnnotatedLine) Annotations() []Annotation { return al.anns }

// PushAnnotation adds an annotation over [start, end). Ranges are clamped to
// the text; empty ranges are rejected.
func (al *AnnotatedLine) PushAnnotation(start, end int, kind AnnotationKind) {
	start = clampInt(start, 0, len(al.text))
	end = clampInt(end, 0, len(al.text))
	if start >= end {
		return
	}
	al.anns = append(al.anns, Annotation{Start: start, End: end, Kind: kind})
}

// Replace substitutes the byte range [start, end) of the text with
// replacement and re-derives every annotation range by length-delta
// propagation: annotations entirely after the edit shift whole, annotations
// overlapping the edit stretch or shrink at their end, annotations entirely
// before it are untouched. Collapsed annotations are dropped.
//
// The overlap handling is a deliberate approximation: annotations are
// ephemeral per-render data and only need to avoid lying within the current
// frame, so partial overlaps are not split precisely.
func (al *AnnotatedLine) Replace(start, end int, replacement string) {
	start = clampInt(start, 0, len(al.text))
	end = clampInt(end, 0, len(al.text))
	if start >= end {
		return
	}

	prevLen := len(al.text)
	al.text = al.text[:start] + replacement + al.text[end:]
	diff := len(al.text) - prevLen
	if diff == 0 {
		return
	}
	widened := diff > 0
	if !widened {
		diff = -diff
	}

	for i := range al.anns {
		a := &al.anns[i]
		if a.End <= start {
			continue
		}
		if a.Start >= end {
			if widened {
				a.Start += diff
				a.End += diff
			} else {
				a.Start = satSub(a.Start, diff)
				a.End = satSub(a.End, diff)
			}
			continue
		}
		if widened {
			a.End += diff
		} else {
			a.End = satSub(a.End, diff)
		}
	}

	kept := al.anns[:0]
	for _, a := range al.anns {
		if a.Start < a.End {
			kept = append(kept, a)
		}
	}
	al.anns = kept
}

// Parts partitions the text left to right into (text, kind) runs. At any
// position covered by annotations, the longest covering annotation's full
// span is emitted as one part; uncovered positions emit a plain run up to the
// next annotation start or end of text. The result is cheap to regenerate and
// is rebuilt on every call.
func (al *AnnotatedLine) Parts() []AnnotatedPart {
	var parts []AnnotatedPart
	idx := 0
	for idx < len(al.text) {
		if ann, ok := al.coveringAt(idx); ok {
			parts = append(parts, AnnotatedPart{Text: al.text[ann.Start:ann.End], Kind: ann.Kind})
			idx = ann.End
			continue
		}
		next := len(al.text)
		for _, a := range al.anns {
			if a.Start > idx && a.Start < next {
				next = a.Start
			}
		}
		parts = append(parts, AnnotatedPart{Text: al.text[idx:next], Kind: AnnotationNone})
		idx = next
	}
	return parts
}

func (al *AnnotatedLine) coveringAt(idx int) (Annotation, bool) {
	var (
		best  Annotation
		found bool
	)
	for _, a := range al.anns {
		if a.Start > idx || idx >= a.End {
			continue
		}
		if !found || a.End >= best.End {
			best = a
			found = true
		}
	}
	return best, found
}

func satSub(a, b int) int {
	if b > a {
		return 0
	}
	return a - b
}
