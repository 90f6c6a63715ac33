package eval

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 80

// #region render
// Render writes the report. In terse mode only the scaled averages are
// printed, one per line (source mean, target mean, success percentage), for
// consumption by scripts. The success line is always on the 0-100 scale.
func (r *Report) Render(w io.Writer, scale float64, terse bool) {
	if r.Source != nil {
		if terse {
			fmt.Fprintf(w, "%.3f\n", r.Source.Summary.Mean*scale)
		} else {
			fmt.Fprintf(w, "Source side preservation (%s):\n", r.ScorerName)
			writeSummaryBlock(w, r.Source, scale)
		}
	}

	if r.Target != nil {
		if terse {
			fmt.Fprintf(w, "%.3f\n", r.Target.Summary.Mean*scale)
		} else {
			if r.Source != nil {
				fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
			}
			fmt.Fprintf(w, "Target side degradation (relative decrease in %s):\n", r.ScorerName)
			writeSummaryBlock(w, r.Target, scale)
		}
	}

	if r.BothSides() {
		if terse {
			fmt.Fprintf(w, "%.3f\n", r.SuccessFraction*100)
		} else {
			fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
			fmt.Fprintf(w, "Success percentage: %.2f %%\n", r.SuccessFraction*100)
		}
	}
}

func writeSummaryBlock(w io.Writer, s *Side, scale float64) {
	fmt.Fprintf(w, "Mean:\t%.3f\n", s.Summary.Mean*scale)
	fmt.Fprintf(w, "Std:\t%.3f\n", s.Summary.Std*scale)
	fmt.Fprintf(w, "5%%-95%%:\t%.3f-%.3f\n", s.Summary.P5*scale, s.Summary.P95*scale)
}

// #endregion render
