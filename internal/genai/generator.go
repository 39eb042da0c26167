// Package genai wraps the hosted generative-text service behind a
// narrow interface.
package genai

import (
	"context"
	"errors"
)

// ErrBlocked reports that the service refused to answer the prompt for
// content-safety reasons. It is terminal: callers must not retry it.
var ErrBlocked = errors.New("response blocked by content safety filter")

// TextGenerator produces a completion for a composed text prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
