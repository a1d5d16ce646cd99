package spli

import "strconv"

// Range is a half-open [Start, End) byte region of the source. Parse
// error traces and diagnostics both speak in these.
type Range struct{ Start, End int }

func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String renders the region compactly: a bare offset when it is empty
// or one byte wide, "start..end" otherwise.
func (r Range) String() string {
	if r.End-r.Start <= 1 {
		return strconv.Itoa(r.Start)
	}
	return strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End)
}

// Str cuts the region out of the source.
func (r Range) Str(v []byte) string {
	return string(v[r.Start:r.End])
}
