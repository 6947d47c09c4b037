package source

import (
	"strconv"
	"testing"
)

func TestSpanned_Constructors(t *testing.T) {
	s := NewSpanned("tok", SpanUnchecked(1, 4))
	if s.Value != "tok" || s.GetSpan() != SpanUnchecked(1, 4) {
		t.Errorf("NewSpanned = %+v", s)
	}

	u := SpannedUnchecked(7, 2, 9)
	if u.Span != SpanUnchecked(2, 9) {
		t.Errorf("SpannedUnchecked span = %v, want 2..9", u.Span)
	}

	e := EmptySpanned(true)
	if !e.Span.Empty() || e.Span.Start != 0 {
		t.Errorf("EmptySpanned span = %v, want 0..0", e.Span)
	}
}

func TestSpanned_SetSpan(t *testing.T) {
	s := NewSpanned(1, SpanUnchecked(0, 1))
	var setter SpanSetter = &s
	setter.SetSpan(SpanUnchecked(5, 8))
	if s.Span != SpanUnchecked(5, 8) {
		t.Errorf("SetSpan did not replace span: %v", s.Span)
	}
	var spanner Spanner = s
	if spanner.GetSpan() != SpanUnchecked(5, 8) {
		t.Errorf("GetSpan() = %v", spanner.GetSpan())
	}
}

func TestMapSpanned(t *testing.T) {
	s := NewSpanned(42, SpanUnchecked(3, 5))
	m := MapSpanned(s, strconv.Itoa)
	if m.Value != "42" || m.Span != s.Span {
		t.Errorf("MapSpanned = %+v", m)
	}
}
