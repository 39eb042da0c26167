package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/repository"
)

// ChatService persists conversations and delegates reply generation to
// the responder.
type ChatService struct {
	chatRepo  *repository.ChatRepository
	responder *Responder
	logger    *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(chatRepo *repository.ChatRepository, responder *Responder, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		chatRepo:  chatRepo,
		responder: responder,
		logger:    logger,
	}
}

// Chat handles one inbound message for a user. Hidden requests drive
// the pipeline without touching chat history (the client uses them for
// silent mood updates).
func (s *ChatService) Chat(ctx context.Context, user *domain.User, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if !req.Hidden {
		userMsg := &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  "user",
			Message: req.Message,
		}
		if err := s.chatRepo.CreateMessage(userMsg); err != nil {
			return nil, fmt.Errorf("failed to save user message: %w", err)
		}
	}

	reply := s.responder.Respond(ctx, RespondInput{
		Message:  req.Message,
		UserID:   user.ID,
		UserMood: req.Mood,
		Username: user.Username,
	})

	if !req.Hidden {
		botMsg := &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  "bot",
			Message: reply.Text,
			Emotion: reply.Emotion,
		}
		if err := s.chatRepo.CreateMessage(botMsg); err != nil {
			return nil, fmt.Errorf("failed to save bot message: %w", err)
		}
	}

	return &domain.ChatResponse{
		BotReply: reply.Text,
		Emotion:  reply.Emotion,
		PlayRain: reply.PlayRain,
	}, nil
}

// History returns the user's chat history in order. A first visit gets
// a persisted personalized greeting so the conversation never starts
// empty.
func (s *ChatService) History(ctx context.Context, user *domain.User) ([]*domain.ChatMessage, error) {
	messages, err := s.chatRepo.GetMessages(user.ID)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		greeting := &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  "bot",
			Message: fmt.Sprintf("Hello %s! 👋 I'm Therabot, your mental health assistant. How are you feeling today? 😊", user.Username),
			Emotion: domain.EmotionNeutral,
		}
		if err := s.chatRepo.CreateMessage(greeting); err != nil {
			return nil, fmt.Errorf("failed to save greeting: %w", err)
		}
		messages = append(messages, greeting)
	}

	return messages, nil
}
