package retrieval

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/domain"
)

// Fixed fallback snippets. Retrieval never returns an empty result and
// never surfaces an error; each degraded path has its own text.
const (
	placeholderEmptyCorpus   = "I'm here for you. Let's talk. 🌟"
	placeholderNoCandidates  = "How does that make you feel? 💬"
	placeholderBelowScore    = "Tell me more about that. 🫂"
	placeholderRetrievalFail = "I'm here to listen and help you with your concerns. 🌼"
)

// Retriever selects knowledge snippets relevant to the user's message.
type Retriever struct {
	embedder  Embedder
	threshold float64
	logger    *zap.Logger
}

// NewRetriever creates a retriever. threshold is the minimum cosine
// similarity a snippet must reach to be kept; values <= 0 use 0.3.
func NewRetriever(embedder Embedder, threshold float64, logger *zap.Logger) *Retriever {
	if threshold <= 0 {
		threshold = 0.3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{embedder: embedder, threshold: threshold, logger: logger}
}

// Retrieve returns up to k snippets from entries ranked by similarity
// to input. Candidates are scoped to the given emotion when at least
// one entry carries it, otherwise the whole corpus is searched.
// corpusEmbeddings, when non-nil and aligned with entries, is reused
// for the full-corpus case; per-emotion subsets are always embedded
// fresh.
func (r *Retriever) Retrieve(ctx context.Context, input string, emotion domain.EmotionLabel, entries []domain.KnowledgeEntry, corpusEmbeddings [][]float32, k int) []string {
	if k < 1 {
		k = 1
	}

	var candidates []string
	for _, e := range entries {
		if e.Emotion == emotion {
			candidates = append(candidates, e.Text)
		}
	}

	scoped := len(candidates) > 0
	if !scoped {
		for _, e := range entries {
			candidates = append(candidates, e.Text)
		}
	}

	if len(candidates) == 0 {
		return []string{placeholderEmptyCorpus}
	}

	var targets [][]float32
	if !scoped && corpusEmbeddings != nil && len(corpusEmbeddings) == len(candidates) {
		targets = corpusEmbeddings
	} else {
		var err error
		targets, err = r.embedder.EmbedBatch(ctx, candidates)
		if err != nil {
			r.logger.Warn("failed to embed candidates", zap.Error(err))
			return []string{placeholderRetrievalFail}
		}
	}

	inputEmb, err := r.embedder.Embed(ctx, input)
	if err != nil {
		r.logger.Warn("failed to embed input", zap.Error(err))
		return []string{placeholderRetrievalFail}
	}

	type scored struct {
		text  string
		score float64
	}
	results := make([]scored, len(candidates))
	for i, text := range candidates {
		results[i] = scored{text: text, score: cosineSimilarity(inputEmb, targets[i])}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	if k == 0 {
		return []string{placeholderNoCandidates}
	}

	var contexts []string
	for _, res := range results[:k] {
		if res.score >= r.threshold {
			contexts = append(contexts, res.text)
		}
	}

	if len(contexts) == 0 {
		return []string{placeholderBelowScore}
	}
	return contexts
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
