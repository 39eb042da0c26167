package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mindfulware/therabot/internal/domain"
)

// ChatRepository handles chat history persistence
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateMessage appends a message to a user's chat history
func (r *ChatRepository) CreateMessage(message *domain.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.db.Exec(`
		INSERT INTO chat_history (id, user_id, sender, message, emotion, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, message.ID, message.UserID, message.Sender, message.Message,
		string(message.Emotion), message.CreatedAt)

	return err
}

// GetMessages retrieves all messages for a user in chronological order
func (r *ChatRepository) GetMessages(userID int64) ([]*domain.ChatMessage, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, sender, message, emotion, created_at
		FROM chat_history WHERE user_id = ?
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		message := &domain.ChatMessage{}
		var emotion sql.NullString

		if err := rows.Scan(&message.ID, &message.UserID, &message.Sender,
			&message.Message, &emotion, &message.CreatedAt); err != nil {
			return nil, err
		}

		if emotion.Valid {
			message.Emotion = domain.EmotionLabel(emotion.String)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CountMessages returns the number of messages stored for a user
func (r *ChatRepository) CountMessages(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM chat_history WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
