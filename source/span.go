package source

import (
	"fmt"
)

// Span is the half-open byte range [Start, End) of a token or syntax node.
type Span struct {
	Start BytePos `json:"start" msgpack:"start"` // inclusive
	End   BytePos `json:"end" msgpack:"end"`     // exclusive
}

// NewSpan returns the span [start, end).
// ok is false when start > end.
func NewSpan(start, end uint32) (span Span, ok bool) {
	if start > end {
		return Span{}, false
	}
	return Span{Start: BytePos(start), End: BytePos(end)}, true
}

// SpanUnchecked builds a span without validating start <= end.
func SpanUnchecked(start, end uint32) Span {
	return Span{Start: BytePos(start), End: BytePos(end)}
}

// Point returns the zero-length span at pos.
// Used for insertion markers such as a missing delimiter.
func Point(pos uint32) Span {
	return Span{Start: BytePos(pos), End: BytePos(pos)}
}

// PointAt is Point for an existing BytePos.
func PointAt(pos BytePos) Span {
	return Span{Start: pos, End: pos}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return uint32(s.End - s.Start)
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Union returns the smallest span containing both s and other.
func (s Span) Union(other Span) Span {
	return Span{
		Start: s.Start.Min(other.Start),
		End:   s.End.Max(other.End),
	}
}

// UnionOpt unions s with other only when ok is set.
func (s Span) UnionOpt(other Span, ok bool) Span {
	if !ok {
		return s
	}
	return s.Union(other)
}

// Extend grows the span so that it includes pos.
// s.Extend(p) == s.Union(PointAt(p)).
func (s Span) Extend(pos BytePos) Span {
	if pos < s.Start {
		s.Start = pos
	}
	if pos > s.End {
		s.End = pos
	}
	return s
}

// Contains reports whether start <= offset < end.
// A zero-length span contains nothing.
func (s Span) Contains(offset BytePos) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsSpan reports whether other lies entirely inside s.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Intersects compares both spans as closed intervals, so [0,5) and [5,10)
// intersect at 5. Error-span merging relies on the boundary case.
func (s Span) Intersects(other Span) bool {
	return s.Start <= other.End && s.End >= other.Start
}

// Text returns the slice of src covered by the span.
// Out-of-range spans yield "".
func (s Span) Text(src string) string {
	if s.Start > s.End || s.End.Int() > len(src) {
		return ""
	}
	return src[s.Start:s.End]
}
