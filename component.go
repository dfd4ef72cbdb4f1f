package wv

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// encodeValues serializes an ordered list of field values into the
// self-contained JSON-like textual form used both for in-memory component
// storage and for the byte serializer: a JSON array of
// {"k": <scalar kind>, "v": <value>} objects.
func encodeValues(values []DataValue) ([]byte, error) {
	buf := []byte("[]")
	var err error
	for i, v := range values {
		path := strconv.Itoa(i)
		buf, err = sjson.SetBytes(buf, path+".k", int(v.Kind))
		if err != nil {
			return nil, errors.Wrap(err, "encode component value kind")
		}
		switch v.Kind {
		case ScalarEntity:
			buf, err = sjson.SetBytes(buf, path+".v", uint64(v.Entity))
		case ScalarInt:
			buf, err = sjson.SetBytes(buf, path+".v", v.Int)
		case ScalarFloat:
			buf, err = sjson.SetBytes(buf, path+".v", v.Float)
		case ScalarBool:
			buf, err = sjson.SetBytes(buf, path+".v", v.Bool)
		case ScalarString:
			buf, err = sjson.SetBytes(buf, path+".v", v.String)
		}
		if err != nil {
			return nil, errors.Wrap(err, "encode component value")
		}
	}
	return buf, nil
}

// decodeValues is the inverse of encodeValues.
func decodeValues(payload []byte) []DataValue {
	arr := gjson.ParseBytes(payload).Array()
	out := make([]DataValue, 0, len(arr))
	for _, elem := range arr {
		kind := ScalarType(elem.Get("k").Int())
		v := elem.Get("v")
		switch kind {
		case ScalarEntity:
			out = append(out, EntityValue(EntityID(v.Uint())))
		case ScalarInt:
			out = append(out, IntValue(v.Int()))
		case ScalarFloat:
			out = append(out, FloatValue(v.Float()))
		case ScalarBool:
			out = append(out, BoolValue(v.Bool()))
		case ScalarString:
			out = append(out, StringValue(v.String()))
		}
	}
	return out
}

// AddComponent attaches values (ordered per the datatype's schema) to
// entity under datatype name. Idempotent: if entity already carries a
// component of this datatype, the call is a no-op (the reference
// behavior this library preserves, per the spec's stated preference).
func (s *Store) AddComponent(entity EntityID, name string, values []DataValue) error {
	id := s.GetDatatypeID(name)
	if id == NilDatatypeID {
		return errors.Wrapf(ErrUnknownDatatype, "datatype %q", name)
	}

	attachments, ok := s.data[id]
	if !ok {
		attachments = make(map[EntityID][]byte)
		s.data[id] = attachments
	}

	if _, exists := attachments[entity]; exists {
		return nil
	}

	payload, err := encodeValues(values)
	if err != nil {
		return errors.Wrapf(err, "add component %q to entity %d", name, entity)
	}
	attachments[entity] = payload
	s.archetypes[entity] = append(s.archetypes[entity], id)
	return nil
}

// HasComponent reports whether entity carries a component of datatype name.
func (s *Store) HasComponent(entity EntityID, name string) bool {
	id := s.GetDatatypeID(name)
	if id == NilDatatypeID {
		return false
	}
	attachments, ok := s.data[id]
	if !ok {
		return false
	}
	_, ok = attachments[entity]
	return ok
}

// GetComponent returns entity's values for datatype name, or an empty
// slice if entity carries no such component. Missing data is not an
// error.
func (s *Store) GetComponent(entity EntityID, name string) []DataValue {
	id := s.GetDatatypeID(name)
	if id == NilDatatypeID {
		return nil
	}
	attachments, ok := s.data[id]
	if !ok {
		return nil
	}
	payload, ok := attachments[entity]
	if !ok {
		return nil
	}
	return decodeValues(payload)
}

// RemoveComponent detaches entity's component of datatype name, if any,
// and cleans its archetype entry.
func (s *Store) RemoveComponent(entity EntityID, name string) {
	id := s.GetDatatypeID(name)
	if id == NilDatatypeID {
		return
	}
	if attachments, ok := s.data[id]; ok {
		delete(attachments, entity)
	}
	archetype := s.archetypes[entity]
	for i, dt := range archetype {
		if dt == id {
			s.archetypes[entity] = append(archetype[:i], archetype[i+1:]...)
			break
		}
	}
}

// GetArchetype returns entity's datatype ids, in insertion order.
func (s *Store) GetArchetype(entity EntityID) []DatatypeID {
	return s.archetypes[entity]
}

// datatypeName returns the registered name for a datatype id, or "" if
// unregistered.
func (s *Store) datatypeName(id DatatypeID) string {
	return s.typeNames[id]
}
