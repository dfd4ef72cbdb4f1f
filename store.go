// Package wv provides an in-process hypergraph store whose sole primitive
// is a directed motif: an identified entity with a source endpoint and a
// target endpoint, both of which are themselves entities.
package wv

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// EntityID identifies an entity. NIL denotes absence.
type EntityID uint64

// NIL is the reserved sentinel entity id, the maximum value of EntityID.
const NIL EntityID = ^EntityID(0)

const defaultInitialCapacity = 1024

var log = logrus.New()

// Sentinel errors for invariant violations and operational failures.
// Invariant violations (a dead id passed to an operation, a kind mismatch
// in a shape operator) are programmer errors: the library logs them at
// Error level and panics with a wrapped sentinel attached, rather than
// returning an error a caller could silently ignore. Recoverable failures
// (a failed match, a truncated stream) return a plain error instead.
var (
	ErrDeadEntity       = errors.New("wv: entity is not live")
	ErrKindMismatch     = errors.New("wv: motif is not of the expected kind")
	ErrUnknownDatatype  = errors.New("wv: datatype is not registered")
	ErrTruncatedStream  = errors.New("wv: truncated serialized stream")
	ErrBadDatatypeMatch = errors.New("wv: stored datatype id does not match receiving store")
)

type entitySet map[EntityID]struct{}

// StoreOptions configures a new Store.
type StoreOptions struct {
	InitialCapacity int // Reserved capacity for the entity arrays.
}

// Store is the hypergraph motif store: dense entity arrays with
// freelist-based id recycling, dual reverse-adjacency indexes, the
// datatype registry, and the component attachment table.
type Store struct {
	available int
	freelist  []EntityID

	identities []EntityID
	sources    []EntityID
	targets    []EntityID

	sourceIDs map[EntityID]entitySet
	targetIDs map[EntityID]entitySet

	types      map[DatatypeID][]DataField
	typeNames  map[DatatypeID]string
	data       map[DatatypeID]map[EntityID][]byte
	archetypes map[EntityID][]DatatypeID

	// Reserved datatype ids, computed once at construction.
	identityType DatatypeID
	withType     DatatypeID
	withoutType  DatatypeID
}

// NewStore creates a Store with the default reserved capacity.
func NewStore() *Store {
	return NewStoreWithOptions(StoreOptions{})
}

// NewStoreWithOptions creates a Store with the given options.
func NewStoreWithOptions(opts StoreOptions) *Store {
	cap := defaultInitialCapacity
	if opts.InitialCapacity > 0 {
		cap = opts.InitialCapacity
	}

	s := &Store{
		available:  cap,
		identities: filledWith(cap, NIL),
		sources:    filledWith(cap, NIL),
		targets:    filledWith(cap, NIL),
		sourceIDs:  make(map[EntityID]entitySet),
		targetIDs:  make(map[EntityID]entitySet),
		types:      make(map[DatatypeID][]DataField),
		typeNames:  make(map[DatatypeID]string),
		data:       make(map[DatatypeID]map[EntityID][]byte),
		archetypes: make(map[EntityID][]DatatypeID),
	}

	s.identityType = s.DefDatatype("Identity", []DataField{{Name: "id", Type: ScalarEntity}})
	s.withType = s.DefDatatype("With", []DataField{{Name: "name", Type: ScalarString}})
	s.withoutType = s.DefDatatype("Without", []DataField{{Name: "name", Type: ScalarString}})

	return s
}

func filledWith(n int, v EntityID) []EntityID {
	out := make([]EntityID, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// nextID pops the freelist if non-empty, otherwise grows the dense arrays
// (doubling) if exhausted, and returns the next slot index.
func (s *Store) nextID() EntityID {
	if n := len(s.freelist); n > 0 {
		id := s.freelist[n-1]
		s.freelist = s.freelist[:n-1]
		return id
	}

	if s.available == 0 {
		added := len(s.identities)
		s.identities = append(s.identities, filledWith(added, NIL)...)
		s.sources = append(s.sources, filledWith(added, NIL)...)
		s.targets = append(s.targets, filledWith(added, NIL)...)
		s.available = added
	}

	id := EntityID(len(s.identities) - s.available)
	s.available--
	return id
}

func (s *Store) addSource(src, id EntityID) {
	s.sources[id] = src
	set, ok := s.sourceIDs[src]
	if !ok {
		set = make(entitySet)
		s.sourceIDs[src] = set
	}
	set[id] = struct{}{}
}

func (s *Store) addTarget(tgt, id EntityID) {
	s.targets[id] = tgt
	set, ok := s.targetIDs[tgt]
	if !ok {
		set = make(entitySet)
		s.targetIDs[tgt] = set
	}
	set[id] = struct{}{}
}

func (s *Store) removeSource(src, id EntityID) {
	s.sources[id] = NIL
	if set, ok := s.sourceIDs[src]; ok {
		delete(set, id)
	}
}

func (s *Store) removeTarget(tgt, id EntityID) {
	s.targets[id] = NIL
	if set, ok := s.targetIDs[tgt]; ok {
		delete(set, id)
	}
}

// dependentsForSource returns the sorted dependents whose src is e.
func (s *Store) dependentsForSource(e EntityID) []EntityID {
	return sortedKeys(s.sourceIDs[e])
}

// dependentsForTarget returns the sorted dependents whose tgt is e.
func (s *Store) dependentsForTarget(e EntityID) []EntityID {
	return sortedKeys(s.targetIDs[e])
}

// dependents returns the union of dependents via src and via tgt.
func (s *Store) dependents(e EntityID) []EntityID {
	out := make(entitySet)
	for id := range s.sourceIDs[e] {
		out[id] = struct{}{}
	}
	for id := range s.targetIDs[e] {
		out[id] = struct{}{}
	}
	return keysOf(out)
}

// NewKnot creates a knot: src = tgt = the new entity's own id.
func (s *Store) NewKnot() EntityID {
	id := s.nextID()
	s.identities[id] = id
	s.addSource(id, id)
	s.addTarget(id, id)
	return id
}

// NewArrow creates an arrow from src to tgt. Both endpoints must be live.
func (s *Store) NewArrow(src, tgt EntityID) EntityID {
	s.assertValid(src)
	s.assertValid(tgt)
	id := s.nextID()
	s.identities[id] = id
	s.addSource(src, id)
	s.addTarget(tgt, id)
	return id
}

// NewTether creates a tether rooted at src, pointing at itself.
func (s *Store) NewTether(src EntityID) EntityID {
	s.assertValid(src)
	id := s.nextID()
	s.identities[id] = id
	s.addSource(src, id)
	s.addTarget(id, id)
	return id
}

// NewMark creates a mark pointing at tgt, sourced at itself.
func (s *Store) NewMark(tgt EntityID) EntityID {
	s.assertValid(tgt)
	id := s.nextID()
	s.identities[id] = id
	s.addSource(id, id)
	s.addTarget(tgt, id)
	return id
}

func (s *Store) assertValid(id EntityID) {
	if int(id) >= len(s.identities) || s.identities[id] != id {
		log.WithField("entity", id).Error("operation on dead or unknown entity")
		panic(errors.Wrapf(ErrDeadEntity, "entity %d", id))
	}
}

// Src returns the source endpoint of id. Panics if id is dead.
func (s *Store) Src(id EntityID) EntityID {
	s.assertValid(id)
	return s.sources[id]
}

// Tgt returns the target endpoint of id. Panics if id is dead.
func (s *Store) Tgt(id EntityID) EntityID {
	s.assertValid(id)
	return s.targets[id]
}

// ChangeSrc rewrites id's source endpoint, keeping the reverse index exact.
func (s *Store) ChangeSrc(id, src EntityID) {
	s.assertValid(id)
	old := s.sources[id]
	s.removeSource(old, id)
	s.addSource(src, id)
}

// ChangeTgt rewrites id's target endpoint, keeping the reverse index exact.
func (s *Store) ChangeTgt(id, tgt EntityID) {
	s.assertValid(id)
	old := s.targets[id]
	s.removeTarget(old, id)
	s.addTarget(tgt, id)
}

// ChangeEnds rewrites both endpoints of id.
func (s *Store) ChangeEnds(id, src, tgt EntityID) {
	s.ChangeSrc(id, src)
	s.ChangeTgt(id, tgt)
}

// IsKnot reports whether id is a knot: src = tgt = id.
func (s *Store) IsKnot(id EntityID) bool { return s.Src(id) == id && s.Tgt(id) == id }

// IsArrow reports whether id is an arrow: src != id, tgt != id.
func (s *Store) IsArrow(id EntityID) bool { return s.Src(id) != id && s.Tgt(id) != id }

// IsMark reports whether id is a mark: src = id, tgt != id.
func (s *Store) IsMark(id EntityID) bool { return s.Src(id) == id && s.Tgt(id) != id }

// IsTether reports whether id is a tether: src != id, tgt = id.
func (s *Store) IsTether(id EntityID) bool { return s.Src(id) != id && s.Tgt(id) == id }

// IsValid reports whether id is live.
func (s *Store) IsValid(id EntityID) bool {
	return int(id) < len(s.identities) && s.identities[id] == id
}

// IsNil reports whether id is the NIL sentinel.
func (s *Store) IsNil(id EntityID) bool { return id == NIL }

// DeleteOrphan kills id only. Dependents that referenced id as an endpoint
// are re-rooted into a self-loop on that endpoint, preserving their
// liveness while severing the reference.
func (s *Store) DeleteOrphan(id EntityID) {
	if !s.IsValid(id) {
		return
	}

	log.WithField("entity", id).Debug("delete_orphan")

	s.identities[id] = NIL
	s.freelist = append(s.freelist, id)
	s.purgeComponents(id)

	type pending struct {
		kind byte // 's' = re-root src, 't' = re-root tgt
		id   EntityID
	}
	var queue []pending

	for src := range s.sourceIDs[id] {
		if src != id {
			queue = append(queue, pending{'s', src})
		}
	}
	for tgt := range s.targetIDs[id] {
		if tgt != id {
			queue = append(queue, pending{'t', tgt})
		}
	}

	delete(s.sourceIDs, id)
	delete(s.targetIDs, id)

	for _, p := range queue {
		switch p.kind {
		case 's':
			s.ChangeSrc(p.id, p.id)
		case 't':
			s.ChangeTgt(p.id, p.id)
		}
	}
}

// DeleteCascade kills id and transitively every entity that had id as
// either endpoint, using a queue so deep/cyclic chains are handled
// without recursion.
func (s *Store) DeleteCascade(id EntityID) {
	queue := []EntityID{id}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if !s.IsValid(next) {
			continue
		}

		s.identities[next] = NIL
		s.freelist = append(s.freelist, next)
		s.purgeComponents(next)

		for src := range s.sourceIDs[next] {
			queue = append(queue, src)
		}
		for tgt := range s.targetIDs[next] {
			queue = append(queue, tgt)
		}

		delete(s.sourceIDs, next)
		delete(s.targetIDs, next)
	}

	log.WithField("entity", id).Debug("delete_cascade")
}

// purgeComponents drops every component attachment and the archetype
// entry for a dying entity. This diverges from the Rust reference (which
// leaves stale component data behind) per the spec's stated preference.
func (s *Store) purgeComponents(id EntityID) {
	for _, attachments := range s.data {
		delete(attachments, id)
	}
	delete(s.archetypes, id)
}
