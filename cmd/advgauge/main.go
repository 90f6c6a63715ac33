// Command advgauge evaluates the robustness of a machine translation system
// under adversarial input perturbations. It compares semantic similarity
// before/after perturbation on the source side and relative quality
// degradation on the target side, then combines both into an attack success
// fraction.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/advgauge/advgauge/internal/eval"
	"github.com/advgauge/advgauge/internal/history"
	"github.com/advgauge/advgauge/internal/logger"
	"github.com/advgauge/advgauge/internal/scorer"
)

// #region main

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region flags

// baseFlagSet declares every flag known before a scorer is selected.
func baseFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("advgauge", pflag.ContinueOnError)
	fs.String("score", "chrf", "score used to evaluate semantic similarity")
	fs.String("src", "", "original source file")
	fs.String("adv-src", "", "adversarial perturbation of the source")
	fs.String("ref", "", "reference output file")
	fs.String("out", "", "model output on the original source")
	fs.String("adv-out", "", "model output on the adversarial source")
	fs.String("src-lang", "", "source language code, consumed by language-aware scores")
	fs.String("tgt-lang", "", "target language code, consumed by language-aware scores")
	fs.Float64("scale", 100, "scale applied to printed score values")
	fs.Bool("terse", false, "only output average scores, one per line (for use in scripts)")
	fs.StringSlice("custom-scores-source", nil, "paths to custom scorer plugins (.so) loaded before parsing")
	fs.String("history-db", "", "optional SQLite file recording run summaries")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	return fs
}

func inputsFromFlags(fs *pflag.FlagSet) eval.Inputs {
	str := func(name string) string {
		v, _ := fs.GetString(name)
		return v
	}
	return eval.Inputs{
		Src:     str("src"),
		AdvSrc:  str("adv-src"),
		Ref:     str("ref"),
		Out:     str("out"),
		AdvOut:  str("adv-out"),
		SrcLang: str("src-lang"),
		TgtLang: str("tgt-lang"),
	}
}

// #endregion flags

// #region run

func run(args []string, stdout io.Writer) error {
	// First pass resolves only what is needed to pick the scorer; unknown
	// variant flags are tolerated until the chosen variant declares them.
	first := baseFlagSet()
	first.ParseErrorsWhitelist.UnknownFlags = true
	if err := first.Parse(args); err != nil {
		return err
	}

	// Side configuration and file existence are checked before plugin
	// loading or any scoring work.
	if err := inputsFromFlags(first).Validate(); err != nil {
		return err
	}

	sources, _ := first.GetStringSlice("custom-scores-source")
	if err := scorer.LoadCustomSources(sources); err != nil {
		return err
	}

	name, _ := first.GetString("score")
	factory, err := scorer.Lookup(name)
	if err != nil {
		return err
	}

	// Second pass is strict, with the variant's own flags registered.
	fs := baseFlagSet()
	if factory.AddFlags != nil {
		factory.AddFlags(fs)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, _ := fs.GetString("log-level")
	logger.Setup(level)

	sc, err := factory.New(fs)
	if err != nil {
		return err
	}

	in := inputsFromFlags(fs)
	logger.Log.Debug("starting evaluation",
		"scorer", name, "source_side", in.SourceSide(), "target_side", in.TargetSide())

	rep, err := eval.Run(sc, in)
	if err != nil {
		return err
	}

	scale, _ := fs.GetFloat64("scale")
	terse, _ := fs.GetBool("terse")
	rep.Render(stdout, scale, terse)

	if dbPath, _ := fs.GetString("history-db"); dbPath != "" {
		store, err := history.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.Record(rep)
		if err != nil {
			return err
		}
		logger.Log.Info("run recorded", "run_id", id, "db", dbPath)
	}
	return nil
}

// #endregion run
