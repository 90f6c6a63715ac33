package scorer

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/xrash/smetrics"
)

func init() {
	Register(Factory{
		Name: "jarowinkler",
		AddFlags: func(fs *pflag.FlagSet) {
			fs.Float64("jaro-boost", 0.7, "similarity threshold above which the common-prefix boost applies")
			fs.Int("jaro-prefix", 4, "maximum common-prefix length considered by the boost")
		},
		New: func(fs *pflag.FlagSet) (Scorer, error) {
			boost, _ := fs.GetFloat64("jaro-boost")
			prefix, _ := fs.GetInt("jaro-prefix")
			return NewJaroWinkler(boost, prefix)
		},
	})
}

// #region jarowinkler
// JaroWinkler scores string similarity with the Jaro-Winkler metric, which
// rewards matching prefixes. Cheap and edit-oriented, it suits
// character-level perturbations better than word-reordering ones. Not
// language-aware; lang is ignored.
type JaroWinkler struct {
	boostThreshold float64
	prefixSize     int
}

// NewJaroWinkler validates the configuration and builds the scorer.
func NewJaroWinkler(boostThreshold float64, prefixSize int) (*JaroWinkler, error) {
	if boostThreshold < 0 || boostThreshold > 1 {
		return nil, fmt.Errorf("jarowinkler: boost threshold must be in [0, 1], got %g", boostThreshold)
	}
	if prefixSize < 0 {
		return nil, fmt.Errorf("jarowinkler: prefix size must be >= 0, got %d", prefixSize)
	}
	return &JaroWinkler{boostThreshold: boostThreshold, prefixSize: prefixSize}, nil
}

// Name implements Scorer.
func (j *JaroWinkler) Name() string { return "jarowinkler" }

// Score implements Scorer. Results are in [0, 1].
func (j *JaroWinkler) Score(hyps, refs []string, lang string) ([]float64, error) {
	if err := checkLengths(hyps, refs); err != nil {
		return nil, err
	}
	scores := make([]float64, len(hyps))
	for i := range hyps {
		scores[i] = smetrics.JaroWinkler(hyps[i], refs[i], j.boostThreshold, j.prefixSize)
	}
	return scores, nil
}

// RDScore implements Scorer via the generic relative-decrease formula.
func (j *JaroWinkler) RDScore(advOut, origOut, refs []string, lang string) ([]float64, error) {
	return RelativeDecrease(j, advOut, origOut, refs, lang)
}

// #endregion jarowinkler
