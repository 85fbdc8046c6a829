package gen

import "strconv"

// stem allocates identifiers that do not collide with the taken ones:
// stem1, stem2, ... A nil namespace starts empty.
type stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

func newStem(s string, taken map[string]struct{}) *stem {
	if taken == nil {
		taken = make(map[string]struct{})
	}

	return &stem{taken: taken, stem: s}
}

// Next returns the next free name and marks it taken.
func (s *stem) Next() string {
	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}

// Claim returns s.stem itself when it is free, otherwise Next.
func (s *stem) Claim() string {
	if _, ok := s.taken[s.stem]; !ok {
		s.taken[s.stem] = struct{}{}
		return s.stem
	}

	return s.Next()
}
