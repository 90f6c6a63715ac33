// Command advgauge-history inspects the run summaries recorded by advgauge
// through its --history-db flag.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/advgauge/advgauge/internal/history"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the history database")
	last := flag.Int("last", 20, "show N most recent runs")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: advgauge-history --db path/to/history.db [--last N] [--json]")
		os.Exit(2)
	}

	store, err := history.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := listRuns(store, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list

type listRow struct {
	RunID     string   `json:"run_id"`
	Scorer    string   `json:"scorer"`
	Samples   int      `json:"samples"`
	SrcMean   *float64 `json:"src_mean,omitempty"`
	TgtMean   *float64 `json:"tgt_mean,omitempty"`
	Success   *float64 `json:"success_fraction,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func listRuns(store *history.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	rows := make([]listRow, len(runs))
	for i, r := range runs {
		lr := listRow{
			RunID:     r.RunID,
			Scorer:    r.Scorer,
			Samples:   r.Samples,
			Success:   r.Success,
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if r.Source != nil {
			m := r.Source.Mean
			lr.SrcMean = &m
		}
		if r.Target != nil {
			m := r.Target.Mean
			lr.TgtMean = &m
		}
		rows[i] = lr
	}

	if jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%-10s  %-12s  %7s  %8s  %8s  %8s  %s\n",
		"Run", "Scorer", "Samples", "Src Mean", "Tgt Mean", "Success", "Time")
	for _, r := range rows {
		fmt.Printf("%-10s  %-12s  %7d  %8s  %8s  %8s  %s\n",
			shortID(r.RunID), r.Scorer, r.Samples,
			fmtOpt(r.SrcMean), fmtOpt(r.TgtMean), fmtOpt(r.Success), r.CreatedAt)
	}
	return nil
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.4f", *v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion list
