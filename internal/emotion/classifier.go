package emotion

import (
	"context"

	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/domain"
)

// ModelClient scores text with a pretrained multiclass sentiment model
// and returns the arg-max class index.
type ModelClient interface {
	Classify(ctx context.Context, text string) (int, error)
}

// classIndexToLabel is the fixed mapping from the sentiment model's
// class indices to emotion labels.
var classIndexToLabel = map[int]domain.EmotionLabel{
	0: domain.EmotionSad,
	1: domain.EmotionNeutral,
	2: domain.EmotionHappy,
	3: domain.EmotionAngry,
	4: domain.EmotionWorried,
}

// Classifier detects the emotion of a chat message. The remote model is
// the primary path; any error there falls through to keyword matching,
// so Classify never fails and always yields a valid label.
type Classifier struct {
	model  ModelClient
	logger *zap.Logger
}

// NewClassifier creates a classifier. model may be nil, in which case
// only the keyword fallback is used.
func NewClassifier(model ModelClient, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{model: model, logger: logger}
}

// Classify returns the emotion label for text.
func (c *Classifier) Classify(ctx context.Context, text string) domain.EmotionLabel {
	if c.model == nil {
		label := FallbackDetect(text)
		c.logger.Info("detected emotion (fallback)", zap.String("emotion", string(label)))
		return label
	}

	idx, err := c.model.Classify(ctx, text)
	if err != nil {
		c.logger.Warn("sentiment model failed, using keyword fallback", zap.Error(err))
		label := FallbackDetect(text)
		c.logger.Info("detected emotion (fallback)", zap.String("emotion", string(label)))
		return label
	}

	label, ok := classIndexToLabel[idx]
	if !ok {
		label = domain.EmotionNeutral
	}

	c.logger.Info("detected emotion", zap.String("emotion", string(label)))
	return label
}
