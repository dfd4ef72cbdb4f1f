package wv

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Serialize produces a bit-exact byte encoding of the subgraph hoisted
// into hoistedEnv: the down-reachable set from the hoist root, plus any
// annotation marks attached to it (where components actually live),
// excluding the tether/arrow/mark scaffolding the Hoist operator itself
// introduced to mount that set. Integers are u64, little-endian (a
// deliberate departure from the reference's native-endian choice, taking
// the spec's own suggested portability upgrade).
func (s *Store) Serialize(hoistedEnv EntityID) []byte {
	env := s.Down(hoistedEnv)

	scaffoldTethers := s.Tethers([]EntityID{hoistedEnv})
	scaffoldArrows := s.ArrowsOut(scaffoldTethers)
	scaffoldMarks := s.ToTgt(scaffoldArrows)

	ignore := make(entitySet, len(scaffoldTethers)+len(scaffoldArrows)+len(scaffoldMarks))
	for _, id := range scaffoldTethers {
		ignore[id] = struct{}{}
	}
	for _, id := range scaffoldArrows {
		ignore[id] = struct{}{}
	}
	for _, id := range scaffoldMarks {
		ignore[id] = struct{}{}
	}

	toEmit := append([]EntityID{}, env...)
	for _, v := range s.Virtuals(env) {
		if _, skip := ignore[v]; !skip {
			toEmit = append(toEmit, v)
		}
	}
	toEmit = unique(toEmit)

	var buf []byte
	for _, e := range toEmit {
		s.serializeEntity(e, &buf)
	}
	return buf
}

func putU64(buf *[]byte, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func (s *Store) serializeEntity(id EntityID, buf *[]byte) {
	putU64(buf, uint64(id))
	putU64(buf, uint64(s.Src(id)))
	putU64(buf, uint64(s.Tgt(id)))

	archetype := s.GetArchetype(id)
	putU64(buf, uint64(len(archetype)))

	for _, dt := range archetype {
		name := s.datatypeName(dt)
		attachments, ok := s.data[dt]
		if !ok {
			continue
		}
		payload, ok := attachments[id]
		if !ok {
			continue
		}
		nameBytes := []byte(name)
		putU64(buf, uint64(len(nameBytes)))
		*buf = append(*buf, nameBytes...)
		putU64(buf, uint64(dt))
		putU64(buf, uint64(len(payload)))
		*buf = append(*buf, payload...)
	}
}

func getU64(data []byte, index *int) (uint64, error) {
	if *index+8 > len(data) {
		return 0, errors.WithStack(ErrTruncatedStream)
	}
	v := binary.LittleEndian.Uint64(data[*index : *index+8])
	*index += 8
	return v, nil
}

func getBytes(data []byte, index *int, n int) ([]byte, error) {
	if *index+n > len(data) {
		return nil, errors.WithStack(ErrTruncatedStream)
	}
	out := data[*index : *index+n]
	*index += n
	return out, nil
}

// Deserialize reads a stream produced by Serialize, allocating fresh
// knots for every referenced entity id, replaying endpoints and
// components, and hoisting the result into a fresh root knot. Callers
// must have registered matching datatypes in this store before calling
// Deserialize; partial state is not rolled back on error, so a failed
// deserialization should be followed by discarding the store.
func (s *Store) Deserialize(data []byte) (EntityID, error) {
	mapping := make(map[EntityID]EntityID)
	mapTo := func(old EntityID) EntityID {
		if id, ok := mapping[old]; ok {
			return id
		}
		id := s.NewKnot()
		mapping[old] = id
		return id
	}

	index := 0
	for index < len(data) {
		oldID, err := getU64(data, &index)
		if err != nil {
			return NIL, err
		}
		oldSrc, err := getU64(data, &index)
		if err != nil {
			return NIL, err
		}
		oldTgt, err := getU64(data, &index)
		if err != nil {
			return NIL, err
		}

		newID := mapTo(EntityID(oldID))
		newSrc := mapTo(EntityID(oldSrc))
		newTgt := mapTo(EntityID(oldTgt))
		s.ChangeEnds(newID, newSrc, newTgt)

		archetypeLen, err := getU64(data, &index)
		if err != nil {
			return NIL, err
		}

		for i := uint64(0); i < archetypeLen; i++ {
			nameLen, err := getU64(data, &index)
			if err != nil {
				return NIL, err
			}
			nameBytes, err := getBytes(data, &index, int(nameLen))
			if err != nil {
				return NIL, err
			}
			name := string(nameBytes)

			datatypeID, err := getU64(data, &index)
			if err != nil {
				return NIL, err
			}

			valLen, err := getU64(data, &index)
			if err != nil {
				return NIL, err
			}
			valBytes, err := getBytes(data, &index, int(valLen))
			if err != nil {
				return NIL, err
			}

			if s.GetDatatypeID(name) != DatatypeID(datatypeID) {
				return NIL, errors.Wrapf(ErrBadDatatypeMatch, "datatype %q", name)
			}

			attachments, ok := s.data[DatatypeID(datatypeID)]
			if !ok {
				attachments = make(map[EntityID][]byte)
				s.data[DatatypeID(datatypeID)] = attachments
			}
			if _, exists := attachments[newID]; !exists {
				payload := make([]byte, len(valBytes))
				copy(payload, valBytes)
				attachments[newID] = payload
				s.archetypes[newID] = append(s.archetypes[newID], DatatypeID(datatypeID))
			}
		}
	}

	root := s.NewKnot()
	var toHoist []EntityID
	for _, e := range mapping {
		if s.IsKnot(e) || s.IsArrow(e) {
			toHoist = append(toHoist, e)
		}
	}
	s.Hoist(root, toHoist)

	return root, nil
}
