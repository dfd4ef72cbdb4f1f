// Profiling:
// go build ./cmd/wvprofile
// go tool pprof -http=":8000" -nodefraction=0.001 ./wvprofile mem.pprof

package main

import (
	"github.com/gavrilovmiroslav/wv"
	"github.com/pkg/profile"
)

func main() {
	rounds := 20
	iters := 2000
	width := 32

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	runConstruction(rounds, iters, width)
	p.Stop()

	p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	runMatching(rounds, width)
	p.Stop()
}

// runConstruction profiles the store's two hottest allocation paths: motif
// construction and the hoist walk.
func runConstruction(rounds, iters, width int) {
	for range rounds {
		s := wv.NewStore()

		root := s.NewKnot()
		objects := make([]wv.EntityID, 0, iters)
		for range iters {
			o := s.NewKnot()
			objects = append(objects, o)
		}
		for i := 0; i+width <= len(objects); i += width {
			s.Hoist(root, objects[i:i+width])
		}
		_ = s.Down(root)
	}
}

// runMatching profiles FindAll's backtracking search on a generated ring of
// width knots, each linked to its next two neighbors, matched against a
// small pattern.
func runMatching(rounds, width int) {
	for range rounds {
		s := wv.NewStore()

		nodes := make([]wv.EntityID, width)
		for i := range nodes {
			nodes[i] = s.NewKnot()
		}
		for i, n := range nodes {
			s.NewArrow(n, nodes[(i+1)%width])
			s.NewArrow(n, nodes[(i+2)%width])
		}
		target := s.NewKnot()
		s.Hoist(target, nodes)

		pa := s.NewKnot()
		pb := s.NewKnot()
		s.NewArrow(pa, pb)
		pattern := s.NewKnot()
		s.Hoist(pattern, []wv.EntityID{pa, pb})

		_ = s.FindAll(pattern, target)
	}
}
