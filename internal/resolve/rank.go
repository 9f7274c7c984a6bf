package resolve

import (
	"sort"

	"github.com/sells-group/contact-cli/internal/model"
)

// Rank returns a copy of the candidates ordered best-first: by confidence
// grade, with discovery order breaking ties. Pure and side-effect free.
func Rank(cands []model.Candidate) []model.Candidate {
	out := append([]model.Candidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence.Rank() < out[j].Confidence.Rank()
	})
	return out
}

// Top returns the best n candidates per Rank.
func Top(cands []model.Candidate, n int) []model.Candidate {
	ranked := Rank(cands)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
