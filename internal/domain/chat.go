package domain

import "time"

// ChatMessage is one persisted turn of a conversation
type ChatMessage struct {
	ID        string       `json:"id"`
	UserID    int64        `json:"-"`
	Sender    string       `json:"sender"` // user, bot
	Message   string       `json:"message"`
	Emotion   EmotionLabel `json:"emotion,omitempty"`
	CreatedAt time.Time    `json:"timestamp"`
}

// ChatRequest is the request to send a chat message. Mood, when
// supplied, overrides emotion detection for the turn. Hidden messages
// drive the pipeline without being written to chat history (used for
// silent mood updates from the client).
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Mood    string `json:"mood,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
}

// ChatResponse is the response from a chat message
type ChatResponse struct {
	BotReply string       `json:"bot_reply"`
	Emotion  EmotionLabel `json:"emotion"`
	PlayRain bool         `json:"play_rain"`
}

// BotReply is the triple produced by the conversation pipeline
type BotReply struct {
	Text     string
	Emotion  EmotionLabel
	PlayRain bool
}
