package wv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHoistAndDown(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	x := s.NewKnot()
	y := s.NewKnot()

	s.Hoist(a, []EntityID{x, y})

	down := dedupeSorted(s.Down(a))
	require.Equal(t, dedupeSorted([]EntityID{x, y}), down)

	up := s.Up(x)
	require.Equal(t, []EntityID{a}, up)
}

func TestHoistFiltersVirtuals(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	x := s.NewKnot()
	tether := s.NewTether(x)
	mark := s.NewMark(x)

	s.Hoist(a, []EntityID{x, tether, mark})

	require.Equal(t, []EntityID{x}, s.Down(a))
}

func TestNeighborsAndHop(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	b := s.NewKnot()
	ab := s.NewArrow(a, b)

	require.Equal(t, b, s.Hop(ab))
	require.Equal(t, []EntityID{b}, s.Neighbors(a))
}

func TestHopThroughIntermediateArrow(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	b := s.NewKnot()
	c := s.NewKnot()

	inner := s.NewArrow(b, c)
	outer := s.NewArrow(a, inner)

	require.Equal(t, b, s.Hop(outer))
}

func TestPrevNext(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	b := s.NewKnot()
	c := s.NewKnot()
	s.NewArrow(a, b)
	s.NewArrow(a, c)

	require.Equal(t, []EntityID{a}, s.Prev(b))
	require.ElementsMatch(t, []EntityID{b, c}, s.Next(a))
}

func TestToSrcToTgtPositional(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	b := s.NewKnot()
	arrow := s.NewArrow(a, b)

	require.Equal(t, []EntityID{a, a}, s.ToSrc([]EntityID{arrow, arrow}))
	require.Equal(t, []EntityID{b}, s.ToTgt([]EntityID{arrow}))
}

func TestArrowsInOutExcludeSelf(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	b := s.NewKnot()
	ab := s.NewArrow(a, b)

	require.Equal(t, []EntityID{ab}, s.ArrowsOut([]EntityID{a}))
	require.Equal(t, []EntityID{ab}, s.ArrowsIn([]EntityID{b}))
	require.Empty(t, s.ArrowsOut([]EntityID{b}))
}
