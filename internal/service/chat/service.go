package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
)

// ErrConversationNotFound is returned for unknown conversation ids.
var ErrConversationNotFound = errors.New("conversation not found")

// Service keeps the live conversations in memory, one per browser tab.
type Service struct {
	gateway  ai.Gateway
	recorder InteractionRecorder
	log      *zap.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewService bootstraps the in-memory conversation registry.
func NewService(gateway ai.Gateway, recorder InteractionRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		gateway:       gateway,
		recorder:      recorder,
		log:           log.Named("chat"),
		conversations: make(map[string]*Conversation),
	}
}

// Create provisions and initializes a new conversation.
func (s *Service) Create(ctx context.Context) (*Conversation, error) {
	conv := NewConversation(uuid.NewString(), s.gateway, s.recorder, s.log)
	if err := conv.Initialize(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.conversations[conv.ID()] = conv
	s.mu.Unlock()

	return conv, nil
}

// Get retrieves a conversation by identifier.
func (s *Service) Get(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// Delete drops a conversation. An in-flight turn still completes against
// the detached conversation.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return ErrConversationNotFound
	}
	delete(s.conversations, id)
	return nil
}

// Len returns the number of live conversations.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
