package domain

// EmotionLabel describes inferred or declared user affect for a chat turn.
type EmotionLabel string

const (
	EmotionHappy   EmotionLabel = "happy"
	EmotionSad     EmotionLabel = "sad"
	EmotionAngry   EmotionLabel = "angry"
	EmotionWorried EmotionLabel = "worried"
	EmotionNeutral EmotionLabel = "neutral"
)

// Labels lists every valid emotion label.
var Labels = []EmotionLabel{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionWorried,
	EmotionNeutral,
}

// ParseEmotionLabel returns the label matching raw, or false when raw is
// not one of the five known labels.
func ParseEmotionLabel(raw string) (EmotionLabel, bool) {
	for _, l := range Labels {
		if string(l) == raw {
			return l, true
		}
	}
	return "", false
}
