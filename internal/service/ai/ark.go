package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
)

const arkHistoryLimit = 20

// ArkGateway runs chat turns through an eino chain on top of an Ark model.
// Ark is stateless, so the session handle carries the conversation history.
type ArkGateway struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
	log       *zap.Logger
}

type arkSession struct {
	id     string
	system string

	mu      sync.Mutex
	history []*schema.Message
}

func (s *arkSession) ID() string { return s.id }

// NewArkGateway compiles the system → history → user chain around chatModel.
func NewArkGateway(ctx context.Context, chatModel model.ChatModel, log *zap.Logger) (*ArkGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &ArkGateway{chatModel: chatModel, chain: runnable, log: log.Named("ark")}, nil
}

// CreateChatSession starts an empty history bound to the system instruction.
func (g *ArkGateway) CreateChatSession(_ context.Context, systemInstruction string) (Session, error) {
	session := &arkSession{
		id:      uuid.NewString(),
		system:  systemInstruction,
		history: make([]*schema.Message, 0, 16),
	}
	g.log.Debug("chat session created", zap.String("session", session.id))
	return session, nil
}

// SendChatTurn invokes the chain with the session history and records the
// exchange only when the model answered.
func (g *ArkGateway) SendChatTurn(ctx context.Context, session Session, text string) (string, error) {
	s, ok := session.(*arkSession)
	if !ok || s == nil {
		return "", ErrSessionUninitialized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	input := map[string]any{
		"system":  s.system,
		"history": s.recentHistory(),
		"query":   text,
	}

	started := time.Now()
	response, err := g.chain.Invoke(ctx, input)
	if err != nil {
		g.log.Warn("chat turn failed", zap.String("session", s.id), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrTransport)
	}

	s.history = append(s.history,
		schema.UserMessage(text),
		schema.AssistantMessage(response.Content, nil),
	)

	g.log.Info("chat turn completed",
		zap.String("session", s.id),
		zap.Duration("latency", time.Since(started)),
		zap.Int("length", len(response.Content)))
	return response.Content, nil
}

// GenerateQuiz asks the model for the question array and extracts it from the reply.
func (g *ArkGateway) GenerateQuiz(ctx context.Context) ([]quiz.Question, error) {
	messages := []*schema.Message{
		schema.SystemMessage("你是出題助理，只輸出符合要求的 JSON 陣列，不要加入任何其他文字。"),
		schema.UserMessage(QuizPrompt()),
	}

	started := time.Now()
	msg, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		g.log.Error("quiz generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrQuizGeneration, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty reply", ErrQuizGeneration)
	}

	questions, err := parseQuizPayload(msg.Content)
	if err != nil {
		g.log.Error("quiz payload rejected", zap.Error(err))
		return nil, err
	}

	g.log.Info("quiz generated",
		zap.Int("questions", len(questions)),
		zap.Duration("latency", time.Since(started)))
	return questions, nil
}

// recentHistory returns at most arkHistoryLimit trailing messages; callers hold s.mu.
func (s *arkSession) recentHistory() []*schema.Message {
	start := 0
	if len(s.history) > arkHistoryLimit {
		start = len(s.history) - arkHistoryLimit
	}
	return append([]*schema.Message(nil), s.history[start:]...)
}
