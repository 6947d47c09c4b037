package source

// Spanner is implemented by anything that knows where it came from.
type Spanner interface {
	GetSpan() Span
}

// SpanSetter is implemented by nodes whose span can be replaced while
// rewriting a tree.
type SpanSetter interface {
	SetSpan(Span)
}

// Spanned pairs a value with the span of source text it was derived from.
type Spanned[T any] struct {
	Value T    `json:"value" msgpack:"value"`
	Span  Span `json:"span" msgpack:"span"`
}

// NewSpanned wraps value with span.
func NewSpanned[T any](value T, span Span) Spanned[T] {
	return Spanned[T]{Value: value, Span: span}
}

// SpannedUnchecked wraps value with [start, end) without validation.
func SpannedUnchecked[T any](value T, start, end uint32) Spanned[T] {
	return Spanned[T]{Value: value, Span: SpanUnchecked(start, end)}
}

// EmptySpanned wraps value with the empty span at offset 0.
// Typically used for end-of-stream sentinels.
func EmptySpanned[T any](value T) Spanned[T] {
	return Spanned[T]{Value: value}
}

// MapSpanned transforms the value and keeps the span.
func MapSpanned[T, U any](s Spanned[T], f func(T) U) Spanned[U] {
	return Spanned[U]{Value: f(s.Value), Span: s.Span}
}

func (s Spanned[T]) GetSpan() Span {
	return s.Span
}

func (s *Spanned[T]) SetSpan(span Span) {
	s.Span = span
}
