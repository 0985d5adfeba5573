// Package ai adapts hosted LLM providers to the two calls the assistant
// needs: a conversational chat turn and structured quiz generation.
package ai

import (
	"context"
	"errors"

	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
)

var (
	// ErrSessionUninitialized is returned when a chat turn has no session.
	ErrSessionUninitialized = errors.New("chat session not initialized")
	// ErrTransport wraps provider failures during a chat turn.
	ErrTransport = errors.New("model transport failed")
	// ErrQuizGeneration wraps malformed, empty or failed quiz generations.
	ErrQuizGeneration = errors.New("quiz generation failed")
)

// Session is an opaque handle to provider-side conversation context.
// Clearing context means creating a new Session, never mutating one.
type Session interface {
	ID() string
}

// Gateway is the boundary to the hosted model.
type Gateway interface {
	CreateChatSession(ctx context.Context, systemInstruction string) (Session, error)
	SendChatTurn(ctx context.Context, session Session, text string) (string, error)
	GenerateQuiz(ctx context.Context) ([]quiz.Question, error)
}
