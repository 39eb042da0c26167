package domain

// KnowledgeEntry is a short supportive text tagged with the emotion it
// addresses. Entries are immutable once loaded from the corpus file.
type KnowledgeEntry struct {
	Emotion EmotionLabel `json:"emotion"`
	Text    string       `json:"text"`
}
