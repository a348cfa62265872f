package domain

import "context"

// Dataset exposes the loaded examples and the encode/decode contract the core
// reads embeddings through.
type Dataset interface {
	// GetData returns the examples in load order.
	GetData() []Example
	// Encode maps tokens to vocabulary ids.
	Encode(tokens []string) []int
	// Decode maps vocabulary ids back to tokens.
	Decode(ids []int) []string
}

// Provider computes per-token embeddings for tokenized sentences.
// Implementations may require a preparation phase over the corpus.
type Provider interface {
	Name() string
	// Prepare lets corpus-dependent providers build their vocabulary.
	Prepare(corpus [][]string) error
	Dimension() int
	// EmbedTokens returns the four-part embedding shape for the sentences.
	EmbedTokens(ctx context.Context, sentences [][]string) (*EmbeddingSet, error)
}
