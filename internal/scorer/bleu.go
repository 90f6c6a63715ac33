package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
)

func init() {
	Register(Factory{
		Name: "bleu",
		AddFlags: func(fs *pflag.FlagSet) {
			fs.Int("bleu-order", 4, "maximum word n-gram order")
			fs.Bool("bleu-smooth", true, "apply add-one smoothing to zero n-gram counts")
		},
		New: func(fs *pflag.FlagSet) (Scorer, error) {
			order, _ := fs.GetInt("bleu-order")
			smooth, _ := fs.GetBool("bleu-smooth")
			return NewBLEU(order, smooth)
		},
	})
}

// #region bleu
// BLEU is sentence-level BLEU over whitespace tokens: geometric mean of
// n-gram precisions for orders 1..MaxOrder times a brevity penalty. With
// smoothing enabled, an order with zero matches falls back to an add-one
// precision instead of zeroing the whole product; exact matches still score
// 1. Not language-aware; lang is ignored.
type BLEU struct {
	maxOrder int
	smooth   bool
}

// NewBLEU validates the configuration and builds a BLEU scorer.
func NewBLEU(maxOrder int, smooth bool) (*BLEU, error) {
	if maxOrder < 1 {
		return nil, fmt.Errorf("bleu: n-gram order must be >= 1, got %d", maxOrder)
	}
	return &BLEU{maxOrder: maxOrder, smooth: smooth}, nil
}

// Name implements Scorer.
func (b *BLEU) Name() string { return "bleu" }

// Score implements Scorer. Results are in [0, 1].
func (b *BLEU) Score(hyps, refs []string, lang string) ([]float64, error) {
	if err := checkLengths(hyps, refs); err != nil {
		return nil, err
	}
	scores := make([]float64, len(hyps))
	for i := range hyps {
		scores[i] = b.sentence(hyps[i], refs[i])
	}
	return scores, nil
}

// RDScore implements Scorer via the generic relative-decrease formula.
func (b *BLEU) RDScore(advOut, origOut, refs []string, lang string) ([]float64, error) {
	return RelativeDecrease(b, advOut, origOut, refs, lang)
}

func (b *BLEU) sentence(hyp, ref string) float64 {
	hypToks := strings.Fields(hyp)
	refToks := strings.Fields(ref)
	if len(hypToks) == 0 && len(refToks) == 0 {
		return 1
	}
	if len(hypToks) == 0 || len(refToks) == 0 {
		return 0
	}

	var logSum float64
	orders := 0
	for n := 1; n <= b.maxOrder; n++ {
		hg := tokenNgramCounts(hypToks, n)
		if len(hg) == 0 {
			// hypothesis shorter than n; shorter sentences are judged
			// on the orders they support
			continue
		}
		orders++
		rg := tokenNgramCounts(refToks, n)

		matched, total := 0, 0
		for gram, count := range hg {
			total += count
			if rc, ok := rg[gram]; ok {
				matched += min(count, rc)
			}
		}

		var p float64
		switch {
		case matched > 0:
			p = float64(matched) / float64(total)
		case b.smooth:
			p = 1 / float64(total+1)
		default:
			return 0
		}
		logSum += math.Log(p)
	}
	if orders == 0 {
		return 0
	}

	precision := math.Exp(logSum / float64(orders))

	// brevity penalty
	bp := 1.0
	if len(hypToks) < len(refToks) {
		bp = math.Exp(1 - float64(len(refToks))/float64(len(hypToks)))
	}
	return bp * precision
}

func tokenNgramCounts(toks []string, n int) map[string]int {
	if len(toks) < n {
		return nil
	}
	counts := make(map[string]int, len(toks)-n+1)
	for i := 0; i+n <= len(toks); i++ {
		counts[strings.Join(toks[i:i+n], " ")]++
	}
	return counts
}

// #endregion bleu
