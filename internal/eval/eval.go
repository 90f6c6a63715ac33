// Package eval orchestrates an evaluation run: it loads paired text files,
// invokes the chosen scorer on the source and target sides, checks sample
// counts, and derives the combined attack-success fraction.
package eval

import (
	"errors"
	"fmt"

	"github.com/advgauge/advgauge/internal/scorer"
	"github.com/advgauge/advgauge/internal/stats"
	"github.com/advgauge/advgauge/internal/textio"
)

// #region errors
var (
	// ErrNoSideConfigured is returned when neither evaluation side is fully
	// specified.
	ErrNoSideConfigured = errors.New("no evaluation side configured")
	// ErrSampleCountMismatch is returned when the source and target sides
	// disagree on the number of samples.
	ErrSampleCountMismatch = errors.New("sample count mismatch")
)

// #endregion errors

// #region inputs
// Inputs names the files and languages for one evaluation run.
type Inputs struct {
	Src    string
	AdvSrc string
	Ref    string
	Out    string
	AdvOut string

	SrcLang string
	TgtLang string
}

// SourceSide reports whether the source-side pipeline is configured.
func (in Inputs) SourceSide() bool {
	return in.Src != "" && in.AdvSrc != ""
}

// TargetSide reports whether the target-side pipeline is configured.
func (in Inputs) TargetSide() bool {
	return in.Ref != "" && in.Out != "" && in.AdvOut != ""
}

// Validate checks side configuration and the existence of every provided
// path. It runs before any scoring work, so a broken run fails fast.
func (in Inputs) Validate() error {
	if !in.SourceSide() && !in.TargetSide() {
		return fmt.Errorf("%w: specify at least --src and --adv-src (source side) "+
			"or --ref, --out and --adv-out (target side)", ErrNoSideConfigured)
	}
	paths := []struct{ flag, path string }{
		{"src", in.Src},
		{"adv-src", in.AdvSrc},
		{"ref", in.Ref},
		{"out", in.Out},
		{"adv-out", in.AdvOut},
	}
	for _, p := range paths {
		if p.path == "" {
			continue
		}
		if err := textio.CheckFile(p.flag, p.path); err != nil {
			return err
		}
	}
	return nil
}

// #endregion inputs

// #region report
// Side holds one pipeline's per-sample scores and their summary.
type Side struct {
	Scores  []float64
	Summary stats.Summary
}

// Report is the outcome of one evaluation run.
type Report struct {
	ScorerName string
	Source     *Side
	Target     *Side
	// SuccessFraction is meaningful only when both sides ran.
	SuccessFraction float64
	N               int
}

// BothSides reports whether the combined success metric is available.
func (r *Report) BothSides() bool {
	return r.Source != nil && r.Target != nil
}

// #endregion report

// #region run
// Run executes the configured pipelines with the given scorer.
//
// Source side computes s_src = score(adv_src, src): how much meaning the
// perturbation preserved. Target side computes d_tgt = rd_score(adv_out,
// out, ref): how much output quality dropped. A sample counts as a
// successful attack when s_src + d_tgt > 1.
func Run(sc scorer.Scorer, in Inputs) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{ScorerName: sc.Name(), N: -1}

	if in.SourceSide() {
		src, err := textio.LoadLines(in.Src)
		if err != nil {
			return nil, err
		}
		advSrc, err := textio.LoadLines(in.AdvSrc)
		if err != nil {
			return nil, err
		}
		scores, err := sc.Score(advSrc, src, in.SrcLang)
		if err != nil {
			return nil, fmt.Errorf("source side: %w", err)
		}
		summary, err := stats.Describe(scores)
		if err != nil {
			return nil, fmt.Errorf("source side: %w", err)
		}
		rep.Source = &Side{Scores: scores, Summary: summary}
		rep.N = len(scores)
	}

	if in.TargetSide() {
		ref, err := textio.LoadLines(in.Ref)
		if err != nil {
			return nil, err
		}
		out, err := textio.LoadLines(in.Out)
		if err != nil {
			return nil, err
		}
		advOut, err := textio.LoadLines(in.AdvOut)
		if err != nil {
			return nil, err
		}
		scores, err := sc.RDScore(advOut, out, ref, in.TgtLang)
		if err != nil {
			return nil, fmt.Errorf("target side: %w", err)
		}
		if rep.N >= 0 && len(scores) != rep.N {
			return nil, fmt.Errorf("%w: %d source samples vs %d target samples",
				ErrSampleCountMismatch, rep.N, len(scores))
		}
		summary, err := stats.Describe(scores)
		if err != nil {
			return nil, fmt.Errorf("target side: %w", err)
		}
		rep.Target = &Side{Scores: scores, Summary: summary}
		if rep.N < 0 {
			rep.N = len(scores)
		}
	}

	if rep.BothSides() {
		successes := 0
		for i := 0; i < rep.N; i++ {
			if rep.Source.Scores[i]+rep.Target.Scores[i] > 1 {
				successes++
			}
		}
		rep.SuccessFraction = float64(successes) / float64(rep.N)
	}

	return rep, nil
}

// #endregion run
