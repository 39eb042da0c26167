package emotion

import (
	"testing"

	"github.com/mindfulware/therabot/internal/domain"
)

func TestFallbackDetect(t *testing.T) {
	cases := []struct {
		text string
		want domain.EmotionLabel
	}{
		{"I am so happy today", domain.EmotionHappy},
		{"feeling really depressed and lonely", domain.EmotionSad},
		{"this makes me so frustrated", domain.EmotionAngry},
		{"I'm anxious about tomorrow", domain.EmotionWorried},
		{"I wonder what you think", domain.EmotionNeutral},
		{"xyzzy", domain.EmotionNeutral},
		{"", domain.EmotionNeutral},
	}

	for _, tc := range cases {
		if got := FallbackDetect(tc.text); got != tc.want {
			t.Errorf("FallbackDetect(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestFallbackDetectPriorityOrder(t *testing.T) {
	// "mad" (angry) and "sad" both match; angry is checked first.
	if got := FallbackDetect("I'm mad and sad"); got != domain.EmotionAngry {
		t.Fatalf("expected angry to win priority, got %s", got)
	}
}

func TestFallbackDetectAlwaysValid(t *testing.T) {
	inputs := []string{"", "!!!", "混乱", "the quick brown fox", "I feel everything at once"}
	for _, in := range inputs {
		got := FallbackDetect(in)
		if _, ok := domain.ParseEmotionLabel(string(got)); !ok {
			t.Fatalf("FallbackDetect(%q) returned invalid label %q", in, got)
		}
	}
}

func TestAnalyzeMoodStress(t *testing.T) {
	mood, stress := AnalyzeMoodStress("I feel great but a bit overwhelmed")
	if mood != "positive" {
		t.Errorf("mood = %s, want positive", mood)
	}
	if stress != "high" {
		t.Errorf("stress = %s, want high", stress)
	}

	mood, stress = AnalyzeMoodStress("I'm upset and worried about money")
	if mood != "negative" {
		t.Errorf("mood = %s, want negative", mood)
	}
	if stress != "moderate" {
		t.Errorf("stress = %s, want moderate", stress)
	}

	mood, stress = AnalyzeMoodStress("just checking in")
	if mood != "neutral" || stress != "low" {
		t.Errorf("got (%s, %s), want (neutral, low)", mood, stress)
	}
}
