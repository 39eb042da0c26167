// Package retrieval ranks knowledge-base entries by embedding
// similarity to the user's message.
package retrieval

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
