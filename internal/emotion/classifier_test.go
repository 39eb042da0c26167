package emotion

import (
	"context"
	"errors"
	"testing"

	"github.com/mindfulware/therabot/internal/domain"
)

type fakeModel struct {
	idx int
	err error
}

func (f *fakeModel) Classify(ctx context.Context, text string) (int, error) {
	return f.idx, f.err
}

func TestClassifyMapsModelIndex(t *testing.T) {
	cases := map[int]domain.EmotionLabel{
		0: domain.EmotionSad,
		1: domain.EmotionNeutral,
		2: domain.EmotionHappy,
		3: domain.EmotionAngry,
		4: domain.EmotionWorried,
	}

	for idx, want := range cases {
		c := NewClassifier(&fakeModel{idx: idx}, nil)
		if got := c.Classify(context.Background(), "anything"); got != want {
			t.Errorf("index %d mapped to %s, want %s", idx, got, want)
		}
	}
}

func TestClassifyUnknownIndexIsNeutral(t *testing.T) {
	c := NewClassifier(&fakeModel{idx: 42}, nil)
	if got := c.Classify(context.Background(), "anything"); got != domain.EmotionNeutral {
		t.Fatalf("got %s, want neutral", got)
	}
}

func TestClassifyFallsBackOnModelError(t *testing.T) {
	c := NewClassifier(&fakeModel{err: errors.New("model unavailable")}, nil)
	if got := c.Classify(context.Background(), "I feel anxious"); got != domain.EmotionWorried {
		t.Fatalf("got %s, want worried from keyword fallback", got)
	}
}

func TestClassifyNilModelUsesFallback(t *testing.T) {
	c := NewClassifier(nil, nil)
	if got := c.Classify(context.Background(), "so happy today"); got != domain.EmotionHappy {
		t.Fatalf("got %s, want happy", got)
	}
}

func TestClassifyNeverInvalid(t *testing.T) {
	clients := []ModelClient{
		nil,
		&fakeModel{idx: -1},
		&fakeModel{err: errors.New("boom")},
	}
	for _, m := range clients {
		c := NewClassifier(m, nil)
		got := c.Classify(context.Background(), "whatever comes to mind")
		if _, ok := domain.ParseEmotionLabel(string(got)); !ok {
			t.Fatalf("Classify returned invalid label %q", got)
		}
	}
}
