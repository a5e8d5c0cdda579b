package buffer

// Pos points into the logical document by (row, col).
// Row is a 0-based line index; Col is a 0-based grapheme index within the
// line. Col may rest one position past the last grapheme so that text can be
// appended at the end of a line.
type Pos struct {
	Row int
	Col int
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
