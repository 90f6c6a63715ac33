// Package scorer defines the similarity scorer contract, the process-wide
// scorer registry, and the built-in scorer variants.
//
// A scorer turns paired line sequences into per-sample similarity values.
// Every variant satisfies the same flat contract; there is no hierarchy.
// Variants are selected by name through the registry, and each one declares
// its own command-line options through its Factory before the final flag
// parse.
package scorer

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

// #region errors
var (
	// ErrUnknownScorer is returned when a name is absent from the registry.
	ErrUnknownScorer = errors.New("unknown scorer")
	// ErrLengthMismatch is returned when paired inputs differ in sample count.
	ErrLengthMismatch = errors.New("length mismatch")
)

// #endregion errors

// #region contract
// Scorer is the contract every similarity metric satisfies. Implementations
// are stateless computation objects: at most one instance per run, no
// mutable cross-call state beyond resources loaded at construction.
type Scorer interface {
	// Name is the human-readable label used in report output.
	Name() string
	// Score returns one similarity value per hyps/refs pair. hyps and refs
	// must have equal length. lang is honored only by language-aware
	// variants and ignored by the rest.
	Score(hyps, refs []string, lang string) ([]float64, error)
	// RDScore returns the per-sample relative decrease in quality of advOut
	// versus origOut, both judged against refs.
	RDScore(advOut, origOut, refs []string, lang string) ([]float64, error)
}

// Factory describes how a scorer variant plugs into the CLI.
type Factory struct {
	// Name keys the registry and the --score flag.
	Name string
	// AddFlags declares variant-specific flags before the second parse
	// pass. Nil when the variant has no options.
	AddFlags func(fs *pflag.FlagSet)
	// New constructs the scorer from the fully parsed flag set.
	New func(fs *pflag.FlagSet) (Scorer, error)
}

// #endregion contract

// #region helpers
// A reference score at or below this is treated as degenerate: no
// degradation is measurable against it.
const denomEpsilon = 1e-9

func checkLengths(hyps, refs []string) error {
	if len(hyps) != len(refs) {
		return fmt.Errorf("%w: %d hypotheses vs %d references",
			ErrLengthMismatch, len(hyps), len(refs))
	}
	return nil
}

// RelativeDecrease is the generic rd formula shared by variants whose score
// space is ratio-meaningful:
//
//	rd[i] = 1 - score(adv, ref)[i] / score(orig, ref)[i]
//
// When the baseline score(orig, ref)[i] is at or below epsilon the sample
// yields 0 rather than a division blowup.
func RelativeDecrease(s Scorer, advOut, origOut, refs []string, lang string) ([]float64, error) {
	adv, err := s.Score(advOut, refs, lang)
	if err != nil {
		return nil, err
	}
	orig, err := s.Score(origOut, refs, lang)
	if err != nil {
		return nil, err
	}
	rd := make([]float64, len(adv))
	for i := range adv {
		if orig[i] <= denomEpsilon {
			rd[i] = 0
			continue
		}
		rd[i] = 1 - adv[i]/orig[i]
	}
	return rd, nil
}

// #endregion helpers
