package service

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindfulware/therabot/internal/genai"
)

// Fixed user-facing texts for degraded generation outcomes. All of
// these are terminal successes: Generate never returns an error.
const (
	msgBlocked    = "I cannot respond to that request as it may violate safety guidelines. 🚫"
	msgRephrase   = "I'm having trouble formulating a response right now. Could you try rephrasing? 🌀"
	msgListening  = "I'm listening. Could you elaborate a bit? 👂"
	msgTimeout    = "It's taking me longer than usual to think 🕰️. Please try again in a moment."
	msgConnection = "I can't reach my language service right now 🔌. Please check the connection and try again."
	msgTechnical  = "I'm here for you, even if I'm having technical issues. 🛠️💙"
)

// ResponseService turns an assembled prompt into a user-facing reply,
// wrapping the hosted generator with bounded retries and fallback
// texts.
type ResponseService struct {
	generator   genai.TextGenerator
	maxAttempts int
	retryDelay  time.Duration
	logger      *zap.Logger
}

// NewResponseService creates a response service. maxAttempts values
// below 1 become 3; retryDelay values <= 0 become 2s.
func NewResponseService(generator genai.TextGenerator, maxAttempts int, retryDelay time.Duration, logger *zap.Logger) *ResponseService {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseService{
		generator:   generator,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// Generate prefixes the persona prompt, invokes the generator with
// retries on transport failure, and post-processes the output. A
// blocked response is terminal and not retried. The returned string is
// always non-empty.
func (s *ResponseService) Generate(ctx context.Context, userPrompt, username string) string {
	systemPrompt := SystemPrompt(username)
	fullPrompt := systemPrompt + "\n\n" + userPrompt

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		text, err := s.generator.Generate(ctx, fullPrompt)
		if err == nil {
			return s.postprocess(text, systemPrompt)
		}
		if errors.Is(err, genai.ErrBlocked) {
			s.logger.Warn("generation blocked by content filter")
			return msgBlocked
		}

		lastErr = err
		s.logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < s.maxAttempts {
			time.Sleep(s.retryDelay)
		}
	}

	s.logger.Error("generation failed after all attempts", zap.Error(lastErr))
	switch {
	case isTimeoutError(lastErr):
		return msgTimeout
	case isConnectionError(lastErr):
		return msgConnection
	default:
		return msgTechnical
	}
}

// postprocess strips a verbatim echo of the system prompt, trims
// everything through the sentinel, and substitutes fixed texts for
// structurally empty output. A missing sentinel means the model did not
// echo the prompt and the full output is used.
func (s *ResponseService) postprocess(raw, systemPrompt string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return msgRephrase
	}

	cleaned = strings.ReplaceAll(cleaned, systemPrompt, "")
	if idx := strings.LastIndex(cleaned, promptSentinel); idx >= 0 {
		cleaned = cleaned[idx+len(promptSentinel):]
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return msgListening
	}
	return cleaned
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable")
}
