package embedding

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"idiomprobe/internal/domain"
)

// SaveCache persists a computed embedding set as JSON so later runs can skip
// the embedding step.
func SaveCache(path string, set *domain.EmbeddingSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadCache reads a previously saved embedding set. A missing or malformed
// file is an EmbeddingSourceError: the cache was requested explicitly and
// there is no fallback.
func LoadCache(path string) (*domain.EmbeddingSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.EmbeddingSourceError{Source: path, Err: err}
	}
	var set domain.EmbeddingSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, &domain.EmbeddingSourceError{Source: path, Err: err}
	}
	if err := validate(&set); err != nil {
		return nil, &domain.EmbeddingSourceError{Source: path, Err: err}
	}
	return &set, nil
}

func validate(set *domain.EmbeddingSet) error {
	n := len(set.TokenVectors)
	if len(set.TokenIDs) != n {
		return fmt.Errorf("malformed cache: %d token id rows for %d sentences", len(set.TokenIDs), n)
	}
	for i := range set.TokenVectors {
		if len(set.TokenVectors[i]) != len(set.TokenIDs[i]) {
			return fmt.Errorf("malformed cache: sentence %d has %d vectors for %d tokens",
				i, len(set.TokenVectors[i]), len(set.TokenIDs[i]))
		}
	}
	return nil
}
