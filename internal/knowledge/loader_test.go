package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mindfulware/therabot/internal/domain"
)

func TestLoadCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	loader := NewLoader(path, nil)

	entries := loader.Load()
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected corpus file to be created: %v", err)
	}

	seen := map[domain.EmotionLabel]bool{}
	for _, e := range entries {
		if _, ok := domain.ParseEmotionLabel(string(e.Emotion)); !ok {
			t.Errorf("entry has invalid emotion %q", e.Emotion)
		}
		seen[e.Emotion] = true
	}
	if len(seen) != 5 {
		t.Fatalf("defaults should cover all 5 emotions, got %d", len(seen))
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	loader := NewLoader(path, nil)

	first := loader.Load()
	second := loader.Load()

	if len(first) != len(second) {
		t.Fatalf("loads differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d changed between loads: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLoadDegradesOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := NewLoader(path, nil).Load()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want exactly 1 generic entry", len(entries))
	}
	if entries[0].Emotion != domain.EmotionNeutral {
		t.Fatalf("generic entry emotion = %s, want neutral", entries[0].Emotion)
	}
	if entries[0].Text == "" {
		t.Fatal("generic entry text is empty")
	}
}
