package wv

import "sort"

// candidateInfo is the precomputed shape of one pattern entity: its arrow
// degrees and its With/Without predicate name sets.
type candidateInfo struct {
	inDegree  int
	outDegree int
	with      map[string]struct{}
	without   map[string]struct{}
}

// searchSpace is the candidate multimap built for one pattern/target pair.
type searchSpace struct {
	inPattern  []EntityID
	info       map[EntityID]candidateInfo
	candidates map[EntityID][]EntityID // pattern -> target candidates
	seed       map[EntityID]EntityID   // pattern -> target, pre-bound
}

// predicateNames collects the name field of every With/Without component
// attached via a mark of entity p.
func (s *Store) predicateNames(p EntityID, datatype string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range s.Marks([]EntityID{p}) {
		if s.HasComponent(m, datatype) {
			for _, v := range s.GetComponent(m, datatype) {
				if v.Kind == ScalarString {
					out[v.String] = struct{}{}
				}
			}
		}
	}
	return out
}

// prepareSearchSpace builds the degree- and predicate-filtered candidate
// multimap for matching hoistPattern against hoistTarget. Returns nil if
// any pattern entity has no candidates. seed, if non-nil, pre-binds
// pattern entities to target entities (used by the replace pipeline's
// Identity annotations).
func (s *Store) prepareSearchSpace(hoistPattern, hoistTarget EntityID, seed map[EntityID]EntityID) *searchSpace {
	inPattern := s.Down(hoistPattern)
	inTarget := s.Down(hoistTarget)

	if seed == nil {
		seed = make(map[EntityID]EntityID)
	}

	seedInverse := make(map[EntityID]EntityID, len(seed)) // target -> pattern
	for p, t := range seed {
		seedInverse[t] = p
	}

	info := make(map[EntityID]candidateInfo, len(inPattern))
	for _, p := range inPattern {
		info[p] = candidateInfo{
			inDegree:  len(s.ArrowsIn([]EntityID{p})),
			outDegree: len(s.ArrowsOut([]EntityID{p})),
			with:      s.predicateNames(p, "With"),
			without:   s.predicateNames(p, "Without"),
		}
	}

	candidates := make(map[EntityID][]EntityID, len(inPattern))
	for _, p := range inPattern {
		if _, seeded := seed[p]; seeded {
			continue
		}
		pi := info[p]

		var list []EntityID
		for _, t := range inTarget {
			if _, isSeeded := seedInverse[t]; isSeeded {
				continue
			}
			if len(s.ArrowsIn([]EntityID{t})) < pi.inDegree {
				continue
			}
			if len(s.ArrowsOut([]EntityID{t})) < pi.outDegree {
				continue
			}
			if !hasAllComponents(s, t, pi.with) {
				continue
			}
			if hasAnyComponent(s, t, pi.without) {
				continue
			}
			list = append(list, t)
		}

		if len(list) == 0 {
			return nil
		}
		candidates[p] = list
	}

	sort.Slice(inPattern, func(i, j int) bool {
		_, iSeeded := seed[inPattern[i]]
		_, jSeeded := seed[inPattern[j]]
		if iSeeded != jSeeded {
			return iSeeded
		}
		return len(candidates[inPattern[i]]) < len(candidates[inPattern[j]])
	})

	return &searchSpace{
		inPattern:  inPattern,
		info:       info,
		candidates: candidates,
		seed:       seed,
	}
}

func hasAllComponents(s *Store, t EntityID, names map[string]struct{}) bool {
	for name := range names {
		if !s.HasComponent(t, name) {
			return false
		}
	}
	return true
}

func hasAnyComponent(s *Store, t EntityID, names map[string]struct{}) bool {
	for name := range names {
		if s.HasComponent(t, name) {
			return true
		}
	}
	return false
}

// checkSolution verifies that every edge between two bound pattern
// entities maps, under collected, to the corresponding edge in the
// target.
func (s *Store) checkSolution(collected map[EntityID]EntityID) bool {
	for n, tgtN := range collected {
		for _, d := range s.dependents(n) {
			tgtD, bound := collected[d]
			if !bound {
				continue
			}
			wantSrc := collected[s.Src(d)]
			wantTgt := collected[s.Tgt(d)]
			if s.Src(tgtD) != wantSrc || s.Tgt(tgtD) != wantTgt {
				return false
			}
		}
	}
	return true
}

// generateProducts backtracks over the search space, collecting injective
// bindings that pass checkSolution. limit stops the search after that
// many solutions are found; 0 means unlimited.
func (s *Store) generateProducts(space *searchSpace, seed map[EntityID]EntityID, limit int) []map[EntityID]EntityID {
	var results []map[EntityID]EntityID
	collected := make(map[EntityID]EntityID, len(space.inPattern))
	for p, t := range seed {
		collected[p] = t
	}
	used := make(map[EntityID]struct{}, len(seed))
	for _, t := range seed {
		used[t] = struct{}{}
	}

	var backtrack func(depth int) bool
	backtrack = func(depth int) bool {
		if depth == len(space.inPattern) {
			if s.checkSolution(collected) {
				snapshot := make(map[EntityID]EntityID, len(collected))
				for k, v := range collected {
					snapshot[k] = v
				}
				results = append(results, snapshot)
				if limit > 0 && len(results) >= limit {
					return true
				}
			}
			return false
		}

		p := space.inPattern[depth]
		if _, seeded := seed[p]; seeded {
			return backtrack(depth + 1)
		}

		for _, t := range space.candidates[p] {
			if _, taken := used[t]; taken {
				continue
			}
			collected[p] = t
			used[t] = struct{}{}
			done := backtrack(depth + 1)
			delete(used, t)
			delete(collected, p)
			if done {
				return true
			}
		}
		return false
	}

	backtrack(0)
	return results
}

// FindAll returns every subgraph-isomorphic binding of hoistPattern into
// hoistTarget.
func (s *Store) FindAll(hoistPattern, hoistTarget EntityID) []map[EntityID]EntityID {
	return s.findAllSeeded(hoistPattern, hoistTarget, nil, 0)
}

func (s *Store) findAllSeeded(hoistPattern, hoistTarget EntityID, seed map[EntityID]EntityID, limit int) []map[EntityID]EntityID {
	log.WithField("pattern", hoistPattern).WithField("target", hoistTarget).Debug("find_all")
	space := s.prepareSearchSpace(hoistPattern, hoistTarget, seed)
	if space == nil {
		return nil
	}
	return s.generateProducts(space, space.seed, limit)
}

// FindOne returns the first subgraph-isomorphic binding, or false if none
// exists.
func (s *Store) FindOne(hoistPattern, hoistTarget EntityID) (map[EntityID]EntityID, bool) {
	all := s.findAllSeeded(hoistPattern, hoistTarget, nil, 1)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}
