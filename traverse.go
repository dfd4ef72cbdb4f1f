package wv

// Traversal primitives: pure functions over the entity store's reverse
// adjacency index. Set-returning functions are deduplicated; unless a
// function's contract says otherwise, the result order is unspecified.

// Primary returns, for each i in it, the dependents that are knots or
// arrows, unioned and deduplicated.
func (s *Store) Primary(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependents(i) {
			if s.IsKnot(d) || s.IsArrow(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// Virtuals returns, for each i in it, the dependents that are marks or
// tethers, unioned and deduplicated.
func (s *Store) Virtuals(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependents(i) {
			if s.IsMark(d) || s.IsTether(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// ExternalDeps returns the dependents of each i in it, excluding i itself.
func (s *Store) ExternalDeps(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependents(i) {
			if d != i {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// Arrows returns dependents of each i via src or tgt that are arrows,
// excluding i itself.
func (s *Store) Arrows(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependents(i) {
			if d != i && s.IsArrow(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// ArrowsIn returns dependents of each i via tgt that are arrows, excluding
// i itself.
func (s *Store) ArrowsIn(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependentsForTarget(i) {
			if d != i && s.IsArrow(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// ArrowsOut returns dependents of each i via src that are arrows,
// excluding i itself.
func (s *Store) ArrowsOut(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependentsForSource(i) {
			if d != i && s.IsArrow(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// Marks returns dependents of each i via tgt that are marks, excluding i
// itself.
func (s *Store) Marks(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependentsForTarget(i) {
			if d != i && s.IsMark(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// Tethers returns dependents of each i via src that are tethers,
// excluding i itself.
func (s *Store) Tethers(it []EntityID) []EntityID {
	out := make(entitySet)
	for _, i := range it {
		for _, d := range s.dependentsForSource(i) {
			if d != i && s.IsTether(d) {
				out[d] = struct{}{}
			}
		}
	}
	return keysOf(out)
}

// ToSrc maps each entity in it to its src, positionally (not deduped).
func (s *Store) ToSrc(it []EntityID) []EntityID {
	out := make([]EntityID, len(it))
	for i, e := range it {
		out[i] = s.Src(e)
	}
	return out
}

// ToTgt maps each entity in it to its tgt, positionally (not deduped).
func (s *Store) ToTgt(it []EntityID) []EntityID {
	out := make([]EntityID, len(it))
	for i, e := range it {
		out[i] = s.Tgt(e)
	}
	return out
}

// Hop follows an arrow a to its target; if that target is itself an
// arrow, it returns that arrow's source instead.
func (s *Store) Hop(a EntityID) EntityID {
	t := s.Tgt(a)
	if s.IsArrow(t) {
		return s.Src(t)
	}
	return t
}

// Neighbors returns Hop applied to each outgoing arrow of e.
func (s *Store) Neighbors(e EntityID) []EntityID {
	out := s.ArrowsOut([]EntityID{e})
	res := make([]EntityID, len(out))
	for i, a := range out {
		res[i] = s.Hop(a)
	}
	return res
}

// Prev returns the sorted, deduplicated sources of e's external
// dependents, excluding e itself.
func (s *Store) Prev(e EntityID) []EntityID {
	ds := s.ExternalDeps([]EntityID{e})
	ts := s.ToSrc(ds)
	ts = dedupeSorted(ts)
	out := ts[:0]
	for _, t := range ts {
		if t != e {
			out = append(out, t)
		}
	}
	return out
}

// PrevN is Prev flat-mapped over its, sorted and deduplicated.
func (s *Store) PrevN(its []EntityID) []EntityID {
	var out []EntityID
	for _, i := range its {
		out = append(out, s.Prev(i)...)
	}
	return dedupeSorted(out)
}

// Next returns the sorted, deduplicated targets of e's external
// dependents, excluding e itself.
func (s *Store) Next(e EntityID) []EntityID {
	ds := s.ExternalDeps([]EntityID{e})
	ts := s.ToTgt(ds)
	ts = dedupeSorted(ts)
	out := ts[:0]
	for _, t := range ts {
		if t != e {
			out = append(out, t)
		}
	}
	return out
}

// NextN is Next flat-mapped over its, sorted and deduplicated.
func (s *Store) NextN(its []EntityID) []EntityID {
	var out []EntityID
	for _, i := range its {
		out = append(out, s.Next(i)...)
	}
	return dedupeSorted(out)
}

// Down walks one hoist triple: s -(tether)-> anchor ==(arrow)==> guide
// -(mark)-> object, returning the objects reachable from e.
func (s *Store) Down(e EntityID) []EntityID {
	return s.ToTgt(s.ToTgt(s.ArrowsOut(s.Tethers([]EntityID{e}))))
}

// DownHalf returns the first hoist arrow out of e's tethers, if any.
func (s *Store) DownHalf(e EntityID) (EntityID, bool) {
	out := s.ArrowsOut(s.Tethers([]EntityID{e}))
	if len(out) == 0 {
		return NIL, false
	}
	return out[0], true
}

// UpHalf returns the src-of-src of a hoist arrow, if any.
func (s *Store) UpHalf(arrow EntityID) (EntityID, bool) {
	out := s.ToSrc(s.ToSrc([]EntityID{arrow}))
	if len(out) == 0 {
		return NIL, false
	}
	return out[0], true
}

// DownN is Down flat-mapped over its, sorted and deduplicated.
func (s *Store) DownN(its []EntityID) []EntityID {
	var out []EntityID
	for _, i := range its {
		out = append(out, s.Down(i)...)
	}
	return dedupeSorted(out)
}

// Up is the inverse hoist walk: from an object, through its marks,
// arrows-in, and two src steps, back to the hoisting subject(s).
func (s *Store) Up(e EntityID) []EntityID {
	marks := s.Marks([]EntityID{e})
	arrows := s.ArrowsIn(marks)
	tethers := s.ToSrc(arrows)
	return s.ToSrc(tethers)
}

// UpN is Up flat-mapped over its, sorted and deduplicated.
func (s *Store) UpN(its []EntityID) []EntityID {
	var out []EntityID
	for _, i := range its {
		out = append(out, s.Up(i)...)
	}
	return dedupeSorted(out)
}
