package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
)

// GeminiGateway talks to Gemini through the genai SDK.
type GeminiGateway struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

type geminiSession struct {
	id   string
	chat *genai.Chat
}

func (s *geminiSession) ID() string { return s.id }

// NewGeminiGateway wraps an initialized genai client.
func NewGeminiGateway(client *genai.Client, model string, log *zap.Logger) *GeminiGateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiGateway{client: client, model: model, log: log.Named("gemini")}
}

// CreateChatSession opens a provider chat seeded with the system instruction.
// The SDK keeps history client side, so no network call happens here.
func (g *GeminiGateway) CreateChatSession(ctx context.Context, systemInstruction string) (Session, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	chat, err := g.client.Chats.Create(ctx, g.model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini chat: %w", err)
	}

	session := &geminiSession{id: uuid.NewString(), chat: chat}
	g.log.Debug("chat session created", zap.String("session", session.id))
	return session, nil
}

// SendChatTurn sends one user message within the session.
func (g *GeminiGateway) SendChatTurn(ctx context.Context, session Session, text string) (string, error) {
	s, ok := session.(*geminiSession)
	if !ok || s == nil || s.chat == nil {
		return "", ErrSessionUninitialized
	}

	started := time.Now()
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		g.log.Warn("chat turn failed", zap.String("session", s.id), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	reply := resp.Text()
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrTransport)
	}

	g.log.Info("chat turn completed",
		zap.String("session", s.id),
		zap.Duration("latency", time.Since(started)),
		zap.Int("length", len(reply)))
	return reply, nil
}

// GenerateQuiz requests a schema-constrained JSON array of questions.
func (g *GeminiGateway) GenerateQuiz(ctx context.Context) ([]quiz.Question, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   quizSchema(),
	}

	started := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(QuizPrompt()), cfg)
	if err != nil {
		g.log.Error("quiz generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrQuizGeneration, err)
	}

	questions, err := parseQuizPayload(resp.Text())
	if err != nil {
		g.log.Error("quiz payload rejected", zap.Error(err))
		return nil, err
	}

	g.log.Info("quiz generated",
		zap.Int("questions", len(questions)),
		zap.Duration("latency", time.Since(started)))
	return questions, nil
}

func quizSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type:     genai.TypeArray,
		MinItems: genai.Ptr[int64](quiz.QuestionCount),
		MaxItems: genai.Ptr[int64](quiz.QuestionCount),
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": str,
				"options": {
					Type:     genai.TypeArray,
					Items:    str,
					MinItems: genai.Ptr[int64](quiz.OptionCount),
					MaxItems: genai.Ptr[int64](quiz.OptionCount),
				},
				"answer":      str,
				"explanation": str,
			},
			Required: []string{"question", "options", "answer", "explanation"},
		},
	}
}
