package scorer

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeEmbeddings serves a fixed vector per known input string.
func fakeEmbeddings(t *testing.T, vectors map[string][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode embeddings request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		type datum struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		resp := struct {
			Object string  `json:"object"`
			Data   []datum `json:"data"`
			Model  string  `json:"model"`
		}{Object: "list", Model: "test-embed"}

		for i, in := range req.Input {
			vec, ok := vectors[in]
			if !ok {
				t.Errorf("unexpected embedding input %q", in)
				vec = []float32{0, 0}
			}
			resp.Data = append(resp.Data, datum{Object: "embedding", Index: i, Embedding: vec})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbedCosineScores(t *testing.T) {
	srv := fakeEmbeddings(t, map[string][]float32{
		"same":     {1, 0},
		"ref":      {1, 0},
		"opposite": {-1, 0},
		"diagonal": {1, 1},
	})
	defer srv.Close()

	e, err := NewEmbed("test-embed", srv.URL, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores, err := e.Score(
		[]string{"same", "opposite", "diagonal"},
		[]string{"ref", "ref", "ref"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(scores[0]-1) > 1e-6 {
		t.Fatalf("aligned vectors must score 1, got %v", scores[0])
	}
	if scores[1] != 0 {
		t.Fatalf("negative cosine must clamp to 0, got %v", scores[1])
	}
	if math.Abs(scores[2]-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("diagonal vector must score 1/sqrt(2), got %v", scores[2])
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	e, err := NewEmbed("test-embed", "http://unused.invalid", "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores, err := e.Score(nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("want no scores for no input, got %v", scores)
	}
}

func TestEmbedRejectsEmptyModel(t *testing.T) {
	if _, err := NewEmbed("", "", "k"); err == nil {
		t.Fatal("expected error for empty model name")
	}
}
