package scorer

import (
	"context"
	"fmt"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/pflag"
)

func init() {
	Register(Factory{
		Name: "embed",
		AddFlags: func(fs *pflag.FlagSet) {
			fs.String("embed-model", "text-embedding-3-small", "embedding model name")
			fs.String("embed-base-url", "", "OpenAI-compatible embeddings endpoint (empty for api.openai.com)")
			fs.String("embed-api-key-env", "OPENAI_API_KEY", "environment variable holding the API key")
		},
		New: func(fs *pflag.FlagSet) (Scorer, error) {
			model, _ := fs.GetString("embed-model")
			baseURL, _ := fs.GetString("embed-base-url")
			keyEnv, _ := fs.GetString("embed-api-key-env")
			return NewEmbed(model, baseURL, os.Getenv(keyEnv))
		},
	})
}

// #region embed
// Embed scores semantic similarity as the cosine between sentence embeddings
// fetched from an OpenAI-compatible endpoint. Negative cosines clamp to 0 so
// the score space stays ratio-meaningful for the generic relative-decrease
// formula. Not language-aware; the embedding model handles language itself.
type Embed struct {
	client *openai.Client
	model  string
}

// NewEmbed builds an embedding scorer. The client is constructed once; the
// endpoint is the only heavyweight resource and it lives server-side.
func NewEmbed(model, baseURL, apiKey string) (*Embed, error) {
	if model == "" {
		return nil, fmt.Errorf("embed: model name must not be empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Embed{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Name implements Scorer.
func (e *Embed) Name() string { return "embed" }

// Score implements Scorer. Results are in [0, 1].
func (e *Embed) Score(hyps, refs []string, lang string) ([]float64, error) {
	if err := checkLengths(hyps, refs); err != nil {
		return nil, err
	}
	if len(hyps) == 0 {
		return nil, nil
	}

	// single batched request: hypotheses first, references after
	inputs := make([]string, 0, 2*len(hyps))
	inputs = append(inputs, hyps...)
	inputs = append(inputs, refs...)

	resp, err := e.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Input: inputs,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embed: fetch embeddings: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("embed: got %d embeddings for %d inputs", len(resp.Data), len(inputs))
	}

	scores := make([]float64, len(hyps))
	for i := range hyps {
		c := cosine(resp.Data[i].Embedding, resp.Data[len(hyps)+i].Embedding)
		if c < 0 {
			c = 0
		}
		scores[i] = c
	}
	return scores, nil
}

// RDScore implements Scorer via the generic relative-decrease formula.
func (e *Embed) RDScore(advOut, origOut, refs []string, lang string) ([]float64, error) {
	return RelativeDecrease(e, advOut, origOut, refs, lang)
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// #endregion embed
