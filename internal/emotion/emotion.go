// Package emotion maps free text to one of the five supported emotion
// labels, using a remote sentiment model with a deterministic keyword
// fallback.
package emotion

import (
	"strings"

	"github.com/mindfulware/therabot/internal/domain"
)

// fallbackKeywords are the static trigger lists for keyword-based
// detection. Intentionally coarse: the fallback exists to keep the
// pipeline usable when the model is unreachable, not to be accurate.
var fallbackKeywords = map[domain.EmotionLabel][]string{
	domain.EmotionHappy:   {"happy", "joy", "excited", "great", "excellent", "good"},
	domain.EmotionSad:     {"sad", "depressed", "upset", "down", "lonely", "miserable"},
	domain.EmotionAngry:   {"angry", "frustrated", "mad", "annoyed", "irritated", "pissed"},
	domain.EmotionWorried: {"worried", "anxious", "concern", "nervous", "stressed", "scared"},
	domain.EmotionNeutral: {"think", "consider", "maybe", "perhaps", "wonder", "know", "tell"},
}

// fallbackOrder fixes the priority among keyword buckets: the first
// bucket with any matching substring wins.
var fallbackOrder = []domain.EmotionLabel{
	domain.EmotionAngry,
	domain.EmotionSad,
	domain.EmotionWorried,
	domain.EmotionHappy,
	domain.EmotionNeutral,
}

// FallbackDetect classifies text by substring matching against the
// static keyword buckets. It cannot fail and always returns a valid
// label; unmatched text is neutral.
func FallbackDetect(text string) domain.EmotionLabel {
	lower := strings.ToLower(text)
	for _, label := range fallbackOrder {
		for _, word := range fallbackKeywords[label] {
			if strings.Contains(lower, word) {
				return label
			}
		}
	}
	return domain.EmotionNeutral
}

var (
	positiveWords       = []string{"happy", "joyful", "good", "great", "relaxed", "content"}
	negativeWords       = []string{"sad", "angry", "bad", "upset", "miserable", "frustrated"}
	stressWordsHigh     = []string{"overwhelmed", "stressed", "panic", "anxious", "nervous"}
	stressWordsModerate = []string{"concerned", "worried", "tense", "pressured"}
)

// AnalyzeMoodStress estimates a coarse mood (positive/negative/neutral)
// and stress level (low/moderate/high) from keyword presence. Both feed
// the generation prompt so the model can calibrate empathy.
func AnalyzeMoodStress(text string) (mood string, stress string) {
	lower := strings.ToLower(text)

	mood = "neutral"
	stress = "low"

	if containsAny(lower, positiveWords) {
		mood = "positive"
	} else if containsAny(lower, negativeWords) {
		mood = "negative"
	}

	if containsAny(lower, stressWordsHigh) {
		stress = "high"
	} else if containsAny(lower, stressWordsModerate) {
		stress = "moderate"
	}

	return mood, stress
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
