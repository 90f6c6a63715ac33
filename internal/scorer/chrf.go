package scorer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
)

func init() {
	Register(Factory{
		Name: "chrf",
		AddFlags: func(fs *pflag.FlagSet) {
			fs.Int("chrf-order", 6, "maximum character n-gram order")
			fs.Float64("chrf-beta", 2, "weight of recall relative to precision")
			fs.Bool("chrf-whitespace", false, "keep whitespace when extracting n-grams")
		},
		New: func(fs *pflag.FlagSet) (Scorer, error) {
			order, _ := fs.GetInt("chrf-order")
			beta, _ := fs.GetFloat64("chrf-beta")
			whitespace, _ := fs.GetBool("chrf-whitespace")
			return NewChrF(order, beta, whitespace)
		},
	})
}

// #region chrf
// ChrF is the character n-gram F-beta score (Popovic 2015). It averages
// n-gram precision and recall over orders 1..MaxOrder and combines them with
// an F-beta weighting. Whitespace is stripped before n-gram extraction
// unless configured otherwise. Not language-aware; lang is ignored.
type ChrF struct {
	maxOrder   int
	beta       float64
	whitespace bool
}

// NewChrF validates the configuration and builds a chrF scorer.
func NewChrF(maxOrder int, beta float64, whitespace bool) (*ChrF, error) {
	if maxOrder < 1 {
		return nil, fmt.Errorf("chrf: n-gram order must be >= 1, got %d", maxOrder)
	}
	if beta <= 0 {
		return nil, fmt.Errorf("chrf: beta must be > 0, got %g", beta)
	}
	return &ChrF{maxOrder: maxOrder, beta: beta, whitespace: whitespace}, nil
}

// Name implements Scorer.
func (c *ChrF) Name() string { return "chrf" }

// Score implements Scorer. Results are in [0, 1].
func (c *ChrF) Score(hyps, refs []string, lang string) ([]float64, error) {
	if err := checkLengths(hyps, refs); err != nil {
		return nil, err
	}
	scores := make([]float64, len(hyps))
	for i := range hyps {
		scores[i] = c.sentence(hyps[i], refs[i])
	}
	return scores, nil
}

// RDScore implements Scorer via the generic relative-decrease formula.
func (c *ChrF) RDScore(advOut, origOut, refs []string, lang string) ([]float64, error) {
	return RelativeDecrease(c, advOut, origOut, refs, lang)
}

func (c *ChrF) sentence(hyp, ref string) float64 {
	h := c.chars(hyp)
	r := c.chars(ref)
	if len(h) == 0 && len(r) == 0 {
		return 1
	}

	var precSum, recSum float64
	orders := 0
	for n := 1; n <= c.maxOrder; n++ {
		hg := ngramCounts(h, n)
		rg := ngramCounts(r, n)
		if len(hg) == 0 && len(rg) == 0 {
			continue
		}
		orders++

		matched, hypTotal, refTotal := 0, 0, 0
		for gram, count := range hg {
			hypTotal += count
			if rc, ok := rg[gram]; ok {
				matched += min(count, rc)
			}
		}
		for _, count := range rg {
			refTotal += count
		}
		if hypTotal > 0 {
			precSum += float64(matched) / float64(hypTotal)
		}
		if refTotal > 0 {
			recSum += float64(matched) / float64(refTotal)
		}
	}
	if orders == 0 {
		return 0
	}

	avgPrec := precSum / float64(orders)
	avgRec := recSum / float64(orders)
	b2 := c.beta * c.beta
	denom := b2*avgPrec + avgRec
	if denom == 0 {
		return 0
	}
	return (1 + b2) * avgPrec * avgRec / denom
}

// chars returns the rune sequence scored over, with whitespace removed
// unless the scorer keeps it.
func (c *ChrF) chars(s string) []rune {
	if c.whitespace {
		return []rune(s)
	}
	return []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

func ngramCounts(runes []rune, n int) map[string]int {
	if len(runes) < n {
		return nil
	}
	counts := make(map[string]int, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		counts[string(runes[i:i+n])]++
	}
	return counts
}

// #endregion chrf
