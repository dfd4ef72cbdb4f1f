package wv

import "github.com/pkg/errors"

// Shape operators: endpoint-rewriting operators that manipulate motif
// endpoints algebraically. Each works via endpoint edits only, plus the
// explicit new motifs it introduces.

// Parent re-roots each child's source onto root.
func (s *Store) Parent(root EntityID, children []EntityID) {
	for _, c := range children {
		s.ChangeSrc(c, root)
	}
}

// Pivot re-roots each child's target onto center.
func (s *Store) Pivot(center EntityID, children []EntityID) {
	for _, c := range children {
		s.ChangeTgt(c, center)
	}
}

// Connect creates a new arrow from source to each target.
func (s *Store) Connect(source EntityID, targets []EntityID) {
	for _, t := range targets {
		s.NewArrow(source, t)
	}
}

// Hoist builds, for each primary object o (knot or arrow; tethers and
// marks are filtered out so they are never re-hoisted), the canonical
// container triple subject -(tether)-> anchor ==(arrow)==> guide
// -(mark)-> object.
func (s *Store) Hoist(subject EntityID, objects []EntityID) {
	for _, o := range objects {
		if !(s.IsKnot(o) || s.IsArrow(o)) {
			continue
		}
		anchor := s.NewTether(subject)
		guide := s.NewMark(o)
		s.NewArrow(anchor, guide)
	}
}

// Annotate creates a new mark pointing at t, attaches a component of
// datatype name to it, and returns the mark.
func (s *Store) Annotate(t EntityID, name string, vals []DataValue) (EntityID, error) {
	m := s.NewMark(t)
	if err := s.Markup(m, name, vals); err != nil {
		return m, err
	}
	return m, nil
}

// Markup attaches a component of datatype name to t.
func (s *Store) Markup(t EntityID, name string, vals []DataValue) error {
	return s.AddComponent(t, name, vals)
}

// GetAnnotation returns the mark attached to e via datatype name that
// carries a component of that same datatype, or NIL if none exists. It
// scans e's incoming marks (e being the mark's target) for one carrying
// a component named name.
func (s *Store) GetAnnotation(e EntityID, name string) (EntityID, bool) {
	for _, m := range s.Marks([]EntityID{e}) {
		if s.HasComponent(m, name) {
			return m, true
		}
	}
	return NIL, false
}

// Lift converts each flat arrow a into a hoist triple: a becomes the
// tether (its tgt is changed to itself), a fresh mark carries the arrow's
// original target, and a new arrow connects the tether to that mark.
func (s *Store) Lift(arrows []EntityID) {
	for _, a := range arrows {
		if !s.IsArrow(a) {
			log.WithField("entity", a).Error("lift on a motif that is not an arrow")
			panic(errors.Wrapf(ErrKindMismatch, "lift: %d is not an arrow", a))
		}
		tgt := s.Tgt(a)
		s.ChangeTgt(a, a)
		guide := s.NewMark(tgt)
		s.NewArrow(a, guide)
	}
}

// Lower is the inverse of Lift: given the connecting arrow a of a hoist
// triple (tether, arrow, mark), restores a single flat arrow with the
// tether's src and the mark's tgt as endpoints, and deletes the tether
// and mark.
func (s *Store) Lower(arrows []EntityID) {
	for _, a := range arrows {
		tether := s.Src(a)
		if !s.IsTether(tether) {
			log.WithField("entity", a).Error("lower on an arrow whose src is not a tether")
			panic(errors.Wrapf(ErrKindMismatch, "lower: %d's src is not a tether", a))
		}
		mark := s.Tgt(a)
		if !s.IsMark(mark) {
			log.WithField("entity", a).Error("lower on an arrow whose tgt is not a mark")
			panic(errors.Wrapf(ErrKindMismatch, "lower: %d's tgt is not a mark", a))
		}
		src := s.Src(tether)
		tgt := s.Tgt(mark)
		s.ChangeEnds(a, src, tgt)
		s.DeleteCascade(tether)
		s.DeleteCascade(mark)
	}
}
