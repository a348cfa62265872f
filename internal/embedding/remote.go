package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"idiomprobe/internal/domain"
	"idiomprobe/internal/vectormath"
)

// Remote is an HTTP client for an OpenAI-compatible embedding server that can
// return per-token embeddings. Servers that only pool to one vector per input
// are handled by sending the tokens of a sentence as separate inputs.
type Remote struct {
	baseURL    string
	apiKey     string
	model      string
	batchSize  int
	client     *http.Client
	maxRetries int
	dimension  int
	encode     func(tokens []string) []int
}

// RemoteConfig configures the remote embedding client.
type RemoteConfig struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
	BatchSize int
	// Encode maps tokens to the dataset's vocabulary ids.
	Encode func(tokens []string) []int
}

// NewRemote creates a remote embedding client from the configuration.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	key := ""
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "bert-large-uncased"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 20
	}
	return &Remote{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		batchSize:  batch,
		client:     &http.Client{Timeout: t},
		maxRetries: 5,
		encode:     cfg.Encode,
	}, nil
}

// Name returns the identifier of this provider implementation.
func (r *Remote) Name() string { return "remote" }

// Prepare is not required for remote embedding.
func (r *Remote) Prepare(corpus [][]string) error { return nil }

// Dimension is known after the first embed.
func (r *Remote) Dimension() int { return r.dimension }

// EmbedTokens requests per-token embeddings for the sentences, batched by the
// configured batch size. Any failure is an EmbeddingSourceError; the run has
// no use for partial embeddings.
func (r *Remote) EmbedTokens(ctx context.Context, sentences [][]string) (*domain.EmbeddingSet, error) {
	set := &domain.EmbeddingSet{
		TokenVectors:     make([][][]float64, len(sentences)),
		TokenIDs:         make([][]int, len(sentences)),
		AlignmentIndices: make([]int, len(sentences)),
		Pooled:           make([][]float64, len(sentences)),
	}
	for start := 0; start < len(sentences); start += r.batchSize {
		end := start + r.batchSize
		if end > len(sentences) {
			end = len(sentences)
		}
		for i := start; i < end; i++ {
			vectors, err := r.embedSentence(ctx, sentences[i])
			if err != nil {
				return nil, &domain.EmbeddingSourceError{Source: r.baseURL, Err: err}
			}
			set.TokenVectors[i] = vectors
			if r.encode != nil {
				set.TokenIDs[i] = r.encode(sentences[i])
			} else {
				set.TokenIDs[i] = make([]int, len(sentences[i]))
			}
			set.AlignmentIndices[i] = i
			set.Pooled[i] = vectormath.MeanPool(vectors)
		}
	}
	return set, nil
}

// embedSentence sends the sentence tokens as separate inputs and reads one
// embedding per token back.
func (r *Remote) embedSentence(ctx context.Context, tokens []string) ([][]float64, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	payload, err := r.post(ctx, tokens)
	if err != nil {
		return nil, err
	}
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(out.Data) != len(tokens) {
		return nil, fmt.Errorf("malformed response: %d embeddings for %d tokens", len(out.Data), len(tokens))
	}
	vectors := make([][]float64, len(tokens))
	for i, d := range out.Data {
		if len(d.Embedding) == 0 {
			return nil, errors.New("malformed response: empty embedding")
		}
		if r.dimension == 0 {
			r.dimension = len(d.Embedding)
		}
		if len(d.Embedding) != r.dimension {
			return nil, fmt.Errorf("malformed response: dimension %d, expected %d", len(d.Embedding), r.dimension)
		}
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

func (r *Remote) post(ctx context.Context, input []string) ([]byte, error) {
	type reqBody struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}
	url := fmt.Sprintf("%s/embeddings", r.baseURL)
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		data, _ := json.Marshal(reqBody{Input: input, Model: r.model})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if r.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+r.apiKey)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < r.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("embeddings request failed: %s", resp.Status)
			if attempt < r.maxRetries {
				time.Sleep(delay)
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			if attempt < r.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, lastErr
		}
		return payload, nil
	}
	return nil, lastErr
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
