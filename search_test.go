package wv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildPatternMatchScenario(t *testing.T, s *Store) (p, target EntityID) {
	t.Helper()

	a := s.NewKnot()
	b := s.NewKnot()
	c := s.NewKnot()
	s.NewArrow(a, b)
	s.NewArrow(a, c)
	s.NewArrow(b, c)

	_, err := s.Annotate(a, "With", []DataValue{StringValue("With")})
	require.NoError(t, err)

	d := s.NewKnot()
	e := s.NewKnot()
	f := s.NewKnot()
	g := s.NewKnot()
	s.NewArrow(d, e)
	s.NewArrow(d, f)
	s.NewArrow(e, f)
	s.NewArrow(f, e)
	s.NewArrow(g, e)
	s.NewArrow(g, d)

	require.NoError(t, s.Markup(d, "With", []DataValue{StringValue("With")}))

	p = s.NewKnot()
	s.Hoist(p, []EntityID{a, b, c})

	target = s.NewKnot()
	s.Hoist(target, []EntityID{d, e, f, g})

	return p, target
}

func TestFindAllPatternMatch(t *testing.T) {
	s := NewStore()
	p, target := buildPatternMatchScenario(t, s)

	matches := s.FindAll(p, target)
	require.Len(t, matches, 2)

	for _, m := range matches {
		require.True(t, s.checkSolution(m))
		seen := make(map[EntityID]struct{}, len(m))
		for _, v := range m {
			_, dup := seen[v]
			require.False(t, dup, "match must be injective")
			seen[v] = struct{}{}
		}
	}
}

func TestFindOneImpliesCheckSolution(t *testing.T) {
	s := NewStore()
	p, target := buildPatternMatchScenario(t, s)

	m, ok := s.FindOne(p, target)
	require.True(t, ok)
	require.True(t, s.checkSolution(m))
}

func TestFindOneNoMatch(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	b := s.NewKnot()
	s.NewArrow(a, b)
	s.NewArrow(b, a)
	s.NewArrow(a, a)

	p := s.NewKnot()
	s.Hoist(p, []EntityID{a, b})

	onlyKnot := s.NewKnot()
	target := s.NewKnot()
	s.Hoist(target, []EntityID{onlyKnot})

	_, ok := s.FindOne(p, target)
	require.False(t, ok)
}

func TestWithoutPredicateExcludesCandidates(t *testing.T) {
	s := NewStore()
	s.DefDatatype("Blocked", nil)

	pa := s.NewKnot()
	_, err := s.Annotate(pa, "Without", []DataValue{StringValue("Blocked")})
	require.NoError(t, err)

	p := s.NewKnot()
	s.Hoist(p, []EntityID{pa})

	blocked := s.NewKnot()
	require.NoError(t, s.Markup(blocked, "Blocked", nil))
	allowed := s.NewKnot()

	target := s.NewKnot()
	s.Hoist(target, []EntityID{blocked, allowed})

	m, ok := s.FindOne(p, target)
	require.True(t, ok)
	require.Equal(t, allowed, m[pa])
}
