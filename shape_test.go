package wv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParentPivotConnect(t *testing.T) {
	s := NewStore()

	root := s.NewKnot()
	center := s.NewKnot()
	a := s.NewKnot()
	b := s.NewKnot()
	arrowAB := s.NewArrow(a, b)

	s.Parent(root, []EntityID{arrowAB})
	require.Equal(t, root, s.Src(arrowAB))

	s.Pivot(center, []EntityID{arrowAB})
	require.Equal(t, center, s.Tgt(arrowAB))

	x := s.NewKnot()
	y := s.NewKnot()
	s.Connect(x, []EntityID{y})
	require.Equal(t, []EntityID{y}, s.Neighbors(x))
}

func TestAnnotateMarkupGetAnnotation(t *testing.T) {
	s := NewStore()
	e := s.NewKnot()

	mark, err := s.Annotate(e, "With", []DataValue{StringValue("tag")})
	require.NoError(t, err)
	require.True(t, s.IsMark(mark))

	found, ok := s.GetAnnotation(e, "With")
	require.True(t, ok)
	require.Equal(t, mark, found)

	_, ok = s.GetAnnotation(e, "Without")
	require.False(t, ok)
}

// TestLiftLowerRoundTrip exercises the concrete round-trip property: after
// lift, the original arrow becomes the tether of a hoist triple and a new
// connecting arrow links it to a guide mark on the original target; lower,
// applied to that
// connecting arrow, restores a flat arrow with the same endpoints (the
// surviving entity is the connecting arrow, since lower deletes the tether
// and mark — including the now-tether original arrow entity).
func TestLiftLowerRoundTrip(t *testing.T) {
	s := NewStore()

	src := s.NewKnot()
	tgt := s.NewKnot()
	a := s.NewArrow(src, tgt)

	s.Lift([]EntityID{a})

	require.True(t, s.IsTether(a))
	out := s.ArrowsOut([]EntityID{a})
	require.Len(t, out, 1)
	connecting := out[0]
	require.True(t, s.IsArrow(connecting))

	guide := s.Tgt(connecting)
	require.True(t, s.IsMark(guide))
	require.Equal(t, tgt, s.Tgt(guide))

	s.Lower([]EntityID{connecting})

	require.True(t, s.IsArrow(connecting))
	require.Equal(t, src, s.Src(connecting))
	require.Equal(t, tgt, s.Tgt(connecting))
	require.False(t, s.IsValid(a))
}

func TestLiftOnNonArrowPanics(t *testing.T) {
	s := NewStore()
	knot := s.NewKnot()
	require.Panics(t, func() { s.Lift([]EntityID{knot}) })
}

func TestLowerOnNonHoistTriplePanics(t *testing.T) {
	s := NewStore()
	a := s.NewKnot()
	b := s.NewKnot()
	arrow := s.NewArrow(a, b)
	require.Panics(t, func() { s.Lower([]EntityID{arrow}) })
}
