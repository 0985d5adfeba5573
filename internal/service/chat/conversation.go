package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/model/chat"
	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
)

var (
	// ErrEmptyMessage is returned for input that is blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrTurnInFlight is returned while a previous turn is still loading.
	ErrTurnInFlight = errors.New("a reply is still loading")
	// ErrStaleTurn is returned when the context was cleared while the
	// reply was in flight; the reply is discarded.
	ErrStaleTurn = errors.New("conversation was cleared during the turn")
)

// InteractionRecorder receives every successful question/answer pair.
type InteractionRecorder interface {
	LogInteraction(question, answer string)
}

// Conversation is one policy Q&A dialogue bound to a model session.
type Conversation struct {
	id       string
	gateway  ai.Gateway
	recorder InteractionRecorder
	log      *zap.Logger

	mu         sync.Mutex
	session    ai.Session
	generation uint64
	transcript []chat.Message
	loading    bool
}

// NewConversation creates an uninitialized conversation. recorder may be nil.
func NewConversation(id string, gateway ai.Gateway, recorder InteractionRecorder, log *zap.Logger) *Conversation {
	if log == nil {
		log = zap.NewNop()
	}
	return &Conversation{
		id:         id,
		gateway:    gateway,
		recorder:   recorder,
		log:        log.With(zap.String("conversation", id)),
		transcript: make([]chat.Message, 0, 16),
	}
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string { return c.id }

// Initialize starts a fresh model session and empties the transcript. It is
// used both for the first start and for clearing context. An in-flight turn
// keeps the loading guard until it returns; its reply is dropped.
func (c *Conversation) Initialize(ctx context.Context) error {
	session, err := c.gateway.CreateChatSession(ctx, policy.SystemInstruction)
	if err != nil {
		c.log.Error("failed to create chat session", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.session = session
	c.transcript = make([]chat.Message, 0, 16)
	c.generation++
	c.mu.Unlock()

	c.log.Info("chat session initialized", zap.String("session", session.ID()))
	return nil
}

// SendMessage runs one turn. The user message is appended before the model
// is called; the AI reply (or the apology on failure) is appended after.
func (c *Conversation) SendMessage(ctx context.Context, text string) (chat.Message, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return chat.Message{}, ErrTurnInFlight
	}
	c.transcript = append(c.transcript, chat.NewUserMessage(question))
	c.loading = true
	gen := c.generation
	session := c.session
	c.mu.Unlock()

	defer c.endTurn()

	start := time.Now()
	reply, err := c.sendTurn(ctx, session, question)
	c.log.Debug("chat turn finished",
		zap.Duration("latency", time.Since(start)),
		zap.Int("replyLength", len(reply)),
		zap.Bool("ok", err == nil),
	)

	return c.completeTurn(ctx, gen, question, reply, err)
}

func (c *Conversation) sendTurn(ctx context.Context, session ai.Session, question string) (string, error) {
	if session == nil {
		return "", ai.ErrSessionUninitialized
	}
	return c.gateway.SendChatTurn(ctx, session, question)
}

func (c *Conversation) completeTurn(ctx context.Context, gen uint64, question, reply string, turnErr error) (chat.Message, error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		if turnErr == nil {
			c.record(question, reply)
		}
		c.log.Info("dropping reply for cleared context")
		return chat.Message{}, ErrStaleTurn
	}

	// 调用方已断开，不向共享记录写入道歉
	if turnErr != nil && errors.Is(ctx.Err(), context.Canceled) {
		c.mu.Unlock()
		c.log.Info("chat turn canceled by caller", zap.Error(turnErr))
		return chat.Message{}, context.Canceled
	}

	if turnErr != nil {
		msg := chat.NewAIMessage(policy.ApologyText)
		c.transcript = append(c.transcript, msg)
		c.mu.Unlock()
		c.log.Error("chat turn failed", zap.Error(turnErr))
		return msg, nil
	}

	msg := chat.NewAIMessage(reply)
	c.transcript = append(c.transcript, msg)
	c.mu.Unlock()

	c.record(question, reply)
	return msg, nil
}

func (c *Conversation) record(question, answer string) {
	if c.recorder != nil {
		c.recorder.LogInteraction(question, answer)
	}
}

// endTurn releases the guard taken by SendMessage.
func (c *Conversation) endTurn() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// Loading reports whether a turn is in flight.
func (c *Conversation) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Snapshot returns a copy of the visible state.
func (c *Conversation) Snapshot() chat.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := chat.Snapshot{
		ID:         c.id,
		Loading:    c.loading,
		Transcript: append([]chat.Message(nil), c.transcript...),
	}
	if c.session != nil {
		snap.SessionID = c.session.ID()
	}
	return snap
}
