package stats

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDescribeConstantSequence(t *testing.T) {
	xs := []float64{0.7, 0.7, 0.7, 0.7, 0.7}

	s, err := Describe(xs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(s.Mean, 0.7) || !approx(s.Std, 0) || !approx(s.P5, 0.7) || !approx(s.P95, 0.7) {
		t.Fatalf("constant sequence should give (c, 0, c, c), got %+v", s)
	}
}

func TestDescribeKnownValues(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}

	s, err := Describe(xs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(s.Mean, 3) {
		t.Fatalf("mean: want 3, got %v", s.Mean)
	}
	// population std of 1..5 is sqrt(2)
	if !approx(s.Std, math.Sqrt2) {
		t.Fatalf("std: want sqrt(2), got %v", s.Std)
	}
	// positions 0.05*4 = 0.2 and 0.95*4 = 3.8
	if !approx(s.P5, 1.2) {
		t.Fatalf("p5: want 1.2, got %v", s.P5)
	}
	if !approx(s.P95, 4.8) {
		t.Fatalf("p95: want 4.8, got %v", s.P95)
	}
}

func TestDescribeOrderInsensitive(t *testing.T) {
	a, err := Describe([]float64{0.1, 0.9, 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Describe([]float64{0.9, 0.5, 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("summaries differ across input orders: %+v vs %+v", a, b)
	}
}

func TestDescribePercentileBracketsMean(t *testing.T) {
	cases := [][]float64{
		{0.2, 0.4, 0.6, 0.8},
		{1, 1, 2, 3, 5, 8, 13},
		{0.01, 0.5, 0.5, 0.99},
	}
	for _, xs := range cases {
		s, err := Describe(xs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.P5 > s.Mean || s.Mean > s.P95 {
			t.Fatalf("expected p5 <= mean <= p95 for %v, got %+v", xs, s)
		}
	}
}

func TestDescribeEmpty(t *testing.T) {
	_, err := Describe(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestPercentileEndpoints(t *testing.T) {
	xs := []float64{3, 1, 2}

	lo, err := Percentile(xs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hi, err := Percentile(xs, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(lo, 1) || !approx(hi, 3) {
		t.Fatalf("want endpoints (1, 3), got (%v, %v)", lo, hi)
	}
}

func TestPercentileEmpty(t *testing.T) {
	_, err := Percentile(nil, 50)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}
