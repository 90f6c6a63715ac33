package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/advgauge/advgauge/internal/eval"
	"github.com/advgauge/advgauge/internal/scorer"
)

func writeLines(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunTerseBothSides(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"--src", writeLines(t, dir, "src.txt", "the cat sat"),
		"--adv-src", writeLines(t, dir, "adv-src.txt", "the cat sit"),
		"--ref", writeLines(t, dir, "ref.txt", "le chat"),
		"--out", writeLines(t, dir, "out.txt", "le chat"),
		"--adv-out", writeLines(t, dir, "adv-out.txt", "le chien"),
		"--scale", "100",
		"--terse",
	}

	var sb strings.Builder
	if err := run(args, &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("terse both-side output must be 3 lines, got %d: %q", len(lines), lines)
	}
}

func TestRunVariantFlagAcceptedOnSecondPass(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"--src", writeLines(t, dir, "src.txt", "a b c"),
		"--adv-src", writeLines(t, dir, "adv-src.txt", "a b c"),
		"--score", "chrf",
		"--chrf-beta", "1",
		"--terse",
	}

	var sb strings.Builder
	if err := run(args, &sb); err != nil {
		t.Fatalf("scorer-specific flag rejected: %v", err)
	}
	if strings.TrimSpace(sb.String()) != "100.000" {
		t.Fatalf("identical sources must print 100.000, got %q", sb.String())
	}
}

func TestRunUnknownScorer(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"--src", writeLines(t, dir, "src.txt", "a"),
		"--adv-src", writeLines(t, dir, "adv-src.txt", "a"),
		"--score", "notarealmetric",
	}

	err := run(args, &strings.Builder{})
	if !errors.Is(err, scorer.ErrUnknownScorer) {
		t.Fatalf("expected ErrUnknownScorer, got %v", err)
	}
}

func TestRunNoSideConfigured(t *testing.T) {
	dir := t.TempDir()
	args := []string{"--src", writeLines(t, dir, "src.txt", "a")}

	err := run(args, &strings.Builder{})
	if !errors.Is(err, eval.ErrNoSideConfigured) {
		t.Fatalf("expected ErrNoSideConfigured, got %v", err)
	}
}

func TestRunMissingCustomSource(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"--src", writeLines(t, dir, "src.txt", "a"),
		"--adv-src", writeLines(t, dir, "adv-src.txt", "a"),
		"--custom-scores-source", filepath.Join(dir, "nope.so"),
	}

	err := run(args, &strings.Builder{})
	if err == nil {
		t.Fatal("expected error for missing plugin source")
	}
	if !strings.Contains(err.Error(), "nope.so") {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	args := []string{
		"--src", writeLines(t, dir, "src.txt", "a b c"),
		"--adv-src", writeLines(t, dir, "adv-src.txt", "a b c"),
		"--history-db", dbPath,
		"--terse",
	}

	if err := run(args, &strings.Builder{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("history database not created: %v", err)
	}
}
