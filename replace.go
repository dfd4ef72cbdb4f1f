package wv

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrFailedToMatchUniqueGoal is the sentinel MatchUniqueGoalError wraps;
// compare against it with errors.Is.
var ErrFailedToMatchUniqueGoal = errors.New("wv: pattern does not match the goal uniquely")

// ErrFailedToFindUniqueTarget is returned by Replace when the pattern
// does not match the target at all.
var ErrFailedToFindUniqueTarget = errors.New("wv: pattern does not match the target")

// MatchUniqueGoalError reports that the pattern matched the goal zero or
// more-than-one ways, carrying every candidate binding found so a caller
// can inspect the ambiguity.
type MatchUniqueGoalError struct {
	Candidates []map[EntityID]EntityID
}

func (e *MatchUniqueGoalError) Error() string {
	return fmt.Sprintf("wv: pattern does not match the goal uniquely: found %d matches", len(e.Candidates))
}

func (e *MatchUniqueGoalError) Unwrap() error { return ErrFailedToMatchUniqueGoal }

// getMatchMapping matches hoistPattern against hoistGoal, seeded by any
// Identity annotations on the goal's entities, and requires a unique
// solution.
func (s *Store) getMatchMapping(hoistPattern, hoistGoal EntityID) (map[EntityID]EntityID, error) {
	seed := make(map[EntityID]EntityID)

	goal := s.Down(hoistGoal)
	for _, motif := range goal {
		mark, ok := s.GetAnnotation(motif, "Identity")
		if !ok {
			continue
		}
		for _, v := range s.GetComponent(mark, "Identity") {
			if v.Kind == ScalarEntity {
				seed[v.Entity] = motif
			}
		}
	}

	matches := s.findAllSeeded(hoistPattern, hoistGoal, seed, 0)
	if len(matches) != 1 {
		return nil, &MatchUniqueGoalError{Candidates: matches}
	}
	return matches[0], nil
}

// Replace matches pattern in both goal and target, then splices the
// goal's motifs beyond the pattern into the target region anchored by
// the match, returning the goal-entity -> target-entity mapping.
func (s *Store) Replace(hoistPattern, hoistGoal, hoistTarget EntityID) (map[EntityID]EntityID, error) {
	matchingGoal, err := s.getMatchMapping(hoistPattern, hoistGoal)
	if err != nil {
		return nil, err
	}
	log.WithField("mapping", matchingGoal).Debug("pattern <-> goal")

	goalMatched := make(map[EntityID]struct{}, len(matchingGoal))
	for _, g := range matchingGoal {
		goalMatched[g] = struct{}{}
	}

	goalEntities := s.Down(hoistGoal)
	var newEntities []EntityID
	for _, g := range goalEntities {
		if _, matched := goalMatched[g]; !matched {
			newEntities = append(newEntities, g)
		}
	}

	matchingTarget, ok := s.FindOne(hoistPattern, hoistTarget)
	if !ok {
		return nil, errors.WithStack(ErrFailedToFindUniqueTarget)
	}
	log.WithField("mapping", matchingTarget).Debug("pattern <-> target")

	gt := make(map[EntityID]EntityID, len(goalEntities))
	for p, g := range matchingGoal {
		gt[g] = matchingTarget[p]
	}

	for _, e := range newEntities {
		gt[e] = s.NewKnot()
	}

	for _, g := range goalEntities {
		goalSrc := s.Src(g)
		goalTgt := s.Tgt(g)
		image := gt[g]
		s.ChangeEnds(image, gt[goalSrc], gt[goalTgt])
	}

	return gt, nil
}
