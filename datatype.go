package wv

import (
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// DatatypeID identifies a registered datatype: a stable 64-bit hash of its
// name, computed with xxhash so it is deterministic across runs and
// processes linking the same library version.
type DatatypeID uint64

// NilDatatypeID is returned by GetDatatypeID for an unregistered name.
const NilDatatypeID DatatypeID = DatatypeID(NIL)

// ScalarType is the type of a single component field.
type ScalarType uint8

const (
	ScalarEntity ScalarType = iota
	ScalarInt
	ScalarFloat
	ScalarBool
	ScalarString
)

func (t ScalarType) String() string {
	switch t {
	case ScalarEntity:
		return "entity"
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	case ScalarString:
		return "string"
	default:
		return "unknown"
	}
}

// DataField is one named, typed field in a datatype's schema.
type DataField struct {
	Name string
	Type ScalarType
}

// DataValue is a single scalar field value. Exactly the field named by
// Kind is meaningful; the others are zero.
type DataValue struct {
	Kind   ScalarType
	Entity EntityID
	Int    int64
	Float  float64
	Bool   bool
	String string
}

// EntityValue builds a DataValue carrying an entity reference.
func EntityValue(e EntityID) DataValue { return DataValue{Kind: ScalarEntity, Entity: e} }

// IntValue builds a DataValue carrying an integer.
func IntValue(i int64) DataValue { return DataValue{Kind: ScalarInt, Int: i} }

// FloatValue builds a DataValue carrying a float.
func FloatValue(f float64) DataValue { return DataValue{Kind: ScalarFloat, Float: f} }

// BoolValue builds a DataValue carrying a bool.
func BoolValue(b bool) DataValue { return DataValue{Kind: ScalarBool, Bool: b} }

// StringValue builds a DataValue carrying a string.
func StringValue(s string) DataValue { return DataValue{Kind: ScalarString, String: s} }

func datatypeHash(name string) DatatypeID {
	return DatatypeID(xxhash.Sum64String(name))
}

// DefDatatype registers a named, ordered field schema and returns its id.
// Idempotent: repeat registration under the same name keeps the original
// schema and name.
func (s *Store) DefDatatype(name string, fields []DataField) DatatypeID {
	id := datatypeHash(name)
	if _, ok := s.types[id]; !ok {
		schema := make([]DataField, len(fields))
		copy(schema, fields)
		s.types[id] = schema
		s.typeNames[id] = name

		fieldLog := log.WithField("datatype", name)
		for _, f := range fields {
			fieldLog.WithField("field", f.Name).WithField("type", f.Type.String()).Debug("datatype registered")
		}
	}
	return id
}

// GetDatatypeID returns the id for a registered name, or NilDatatypeID.
func (s *Store) GetDatatypeID(name string) DatatypeID {
	id := datatypeHash(name)
	if _, ok := s.types[id]; ok {
		return id
	}
	return NilDatatypeID
}

// GetDatatypeFieldCount returns the number of fields in name's schema, or
// zero if name is not registered.
func (s *Store) GetDatatypeFieldCount(name string) int {
	id := datatypeHash(name)
	return len(s.types[id])
}

// GetDatatypeField returns the i-th field of name's schema.
func (s *Store) GetDatatypeField(name string, i int) DataField {
	id := datatypeHash(name)
	fields, ok := s.types[id]
	if !ok || i < 0 || i >= len(fields) {
		panic(errors.Wrapf(ErrUnknownDatatype, "field %d of datatype %q", i, name))
	}
	return fields[i]
}
