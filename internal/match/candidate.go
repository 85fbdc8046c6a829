package match

import (
	"sort"
	"strings"
)

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64 // normalized similarity, 0-1
}

// CandidateList is a list of candidates ordered best first.
type CandidateList []Candidate

// DefaultMinScore is the similarity below which a candidate is not worth
// suggesting.
const DefaultMinScore = 0.6

// Rank scores every known name against target. A known name that contains
// the whole of target ("panic" in "panic-safe") scores at least
// DefaultMinScore.
func Rank(target string, known []string) CandidateList {
	norm := NormalizeIdent(target)

	candidates := make(CandidateList, 0, len(known))
	for _, name := range known {
		kn := NormalizeIdent(name)

		score := Similarity(norm, kn)
		if norm != "" && norm != kn && strings.Contains(kn, norm) {
			score = max(score, DefaultMinScore)
		}

		candidates = append(candidates, Candidate{Name: name, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to n known names close enough to target to be shown
// as "did you mean" hints.
func Suggest(target string, known []string, n int) []string {
	var out []string

	for _, c := range Rank(target, known).AboveThreshold(DefaultMinScore).Top(n) {
		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}
