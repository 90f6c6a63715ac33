package scorer

import (
	"github.com/agnivade/levenshtein"
	"github.com/spf13/pflag"
)

func init() {
	Register(Factory{
		Name: "cer",
		New: func(fs *pflag.FlagSet) (Scorer, error) {
			return &CER{}, nil
		},
	})
}

// #region cer
// CER scores character-level similarity as 1 - dist/len(ref), where dist is
// the Levenshtein edit distance in runes, clamped to [0, 1]. Not
// language-aware; lang is ignored.
type CER struct{}

// Name implements Scorer.
func (c *CER) Name() string { return "cer" }

// Score implements Scorer.
func (c *CER) Score(hyps, refs []string, lang string) ([]float64, error) {
	if err := checkLengths(hyps, refs); err != nil {
		return nil, err
	}
	scores := make([]float64, len(hyps))
	for i := range hyps {
		scores[i] = charSimilarity(hyps[i], refs[i])
	}
	return scores, nil
}

// RDScore implements Scorer via the generic relative-decrease formula.
func (c *CER) RDScore(advOut, origOut, refs []string, lang string) ([]float64, error) {
	return RelativeDecrease(c, advOut, origOut, refs, lang)
}

func charSimilarity(hyp, ref string) float64 {
	refLen := len([]rune(ref))
	if refLen == 0 {
		if len([]rune(hyp)) == 0 {
			return 1
		}
		return 0
	}
	dist := levenshtein.ComputeDistance(hyp, ref)
	sim := 1 - float64(dist)/float64(refLen)
	if sim < 0 {
		return 0
	}
	return sim
}

// #endregion cer
