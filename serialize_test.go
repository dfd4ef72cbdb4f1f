package wv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	src := NewStore()
	src.DefDatatype("Point", []DataField{{Name: "x", Type: ScalarFloat}, {Name: "y", Type: ScalarFloat}})

	a := src.NewKnot()
	b := src.NewKnot()
	ab := src.NewArrow(a, b)
	require.NoError(t, src.AddComponent(a, "Point", []DataValue{FloatValue(1), FloatValue(2)}))
	require.NoError(t, src.AddComponent(b, "Point", []DataValue{FloatValue(3), FloatValue(4)}))

	env := src.NewKnot()
	src.Hoist(env, []EntityID{a, b, ab})

	data := src.Serialize(env)
	require.NotEmpty(t, data)

	dst := NewStore()
	dst.DefDatatype("Point", []DataField{{Name: "x", Type: ScalarFloat}, {Name: "y", Type: ScalarFloat}})

	root, err := dst.Deserialize(data)
	require.NoError(t, err)
	require.True(t, dst.IsValid(root))

	objects := dst.Down(root)
	require.Len(t, objects, 3)

	var knots, arrows []EntityID
	for _, o := range objects {
		if dst.IsKnot(o) {
			knots = append(knots, o)
		} else if dst.IsArrow(o) {
			arrows = append(arrows, o)
		}
	}
	require.Len(t, knots, 2)
	require.Len(t, arrows, 1)

	arrow := arrows[0]
	arrowSrc := dst.Src(arrow)
	arrowTgt := dst.Tgt(arrow)
	require.Contains(t, knots, arrowSrc)
	require.Contains(t, knots, arrowTgt)
	require.NotEqual(t, arrowSrc, arrowTgt)

	srcPoint := dst.GetComponent(arrowSrc, "Point")
	tgtPoint := dst.GetComponent(arrowTgt, "Point")
	require.Len(t, srcPoint, 2)
	require.Len(t, tgtPoint, 2)

	values := map[float64]bool{}
	values[srcPoint[0].Float] = true
	values[tgtPoint[0].Float] = true
	require.True(t, values[1] || values[3])
}

func TestSerializeExcludesHoistScaffolding(t *testing.T) {
	s := NewStore()

	a := s.NewKnot()
	env := s.NewKnot()
	s.Hoist(env, []EntityID{a})

	data := s.Serialize(env)

	dst := NewStore()
	root, err := dst.Deserialize(data)
	require.NoError(t, err)

	objects := dst.Down(root)
	require.Len(t, objects, 1)
	require.True(t, dst.IsKnot(objects[0]))
}

func TestDeserializeBadDatatypeMatch(t *testing.T) {
	src := NewStore()
	src.DefDatatype("Tag", []DataField{{Name: "name", Type: ScalarString}})
	a := src.NewKnot()
	require.NoError(t, src.AddComponent(a, "Tag", []DataValue{StringValue("x")}))
	env := src.NewKnot()
	s := src
	s.Hoist(env, []EntityID{a})
	data := s.Serialize(env)

	dst := NewStore()
	// Register a datatype of the same name but with a schema that hashes
	// differently is not possible (hash is name-only) — instead simulate a
	// mismatched receiving store by not registering "Tag" at all, which
	// leaves GetDatatypeID returning NilDatatypeID, definitely unequal to
	// the stored id.
	_, err := dst.Deserialize(data)
	require.ErrorIs(t, err, ErrBadDatatypeMatch)
}

func TestSerializeTruncatedStream(t *testing.T) {
	s := NewStore()
	a := s.NewKnot()
	env := s.NewKnot()
	s.Hoist(env, []EntityID{a})
	data := s.Serialize(env)

	dst := NewStore()
	_, err := dst.Deserialize(data[:len(data)-1])
	require.ErrorIs(t, err, ErrTruncatedStream)
}
