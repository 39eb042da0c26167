// Package knowledge loads the static corpus of supportive texts used as
// retrieval context.
package knowledge

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/domain"
)

// defaultEntries seed the knowledge base file when it does not exist,
// one entry per emotion.
var defaultEntries = []domain.KnowledgeEntry{
	{Emotion: domain.EmotionHappy, Text: "It's great to hear you're feeling positive! 🌟"},
	{Emotion: domain.EmotionSad, Text: "I'm sorry you're feeling down. Remember, it's okay to feel sad. 🫂"},
	{Emotion: domain.EmotionAngry, Text: "Feeling angry is normal sometimes. Let's work through it together. 🌪️"},
	{Emotion: domain.EmotionNeutral, Text: "I see. Tell me more about what's on your mind. 💬"},
	{Emotion: domain.EmotionWorried, Text: "It sounds like you're dealing with some worry. Let's talk through it. 🤝"},
}

// genericEntry is returned alone when the corpus file cannot be read or
// parsed, so retrieval always has at least one candidate.
var genericEntry = domain.KnowledgeEntry{
	Emotion: domain.EmotionNeutral,
	Text:    "I'm here to help. 🫂",
}

// Loader reads the knowledge base from a JSON file, creating it with
// defaults when absent. Loads are idempotent given a stable file and
// safe to repeat per request.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a loader for the corpus at path.
func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// Load returns the knowledge entries. A missing file is seeded with the
// default set; any read or parse failure degrades to a single generic
// neutral entry rather than failing the caller.
func (l *Loader) Load() []domain.KnowledgeEntry {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		l.logger.Info("knowledge base not found, creating defaults", zap.String("path", l.path))
		if err := l.seed(); err != nil {
			l.logger.Warn("failed to seed knowledge base", zap.Error(err))
			return []domain.KnowledgeEntry{genericEntry}
		}
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		l.logger.Warn("failed to read knowledge base", zap.Error(err))
		return []domain.KnowledgeEntry{genericEntry}
	}

	var entries []domain.KnowledgeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn("failed to parse knowledge base", zap.Error(err))
		return []domain.KnowledgeEntry{genericEntry}
	}

	l.logger.Info("loaded knowledge base", zap.Int("entries", len(entries)))
	return entries
}

func (l *Loader) seed() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(defaultEntries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}
