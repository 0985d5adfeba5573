// Package interaction ships question/answer pairs to an external analytics
// sink on a best-effort, fire-and-forget basis.
package interaction

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSinkTransport wraps delivery failures reported by a Sink.
var ErrSinkTransport = errors.New("interaction sink transport failed")

// Interaction is one logged chat exchange.
type Interaction struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	LoggedAt time.Time `json:"loggedAt"`
}

// Sink delivers interactions to an external system.
type Sink interface {
	Enabled() bool
	Send(ctx context.Context, item Interaction) error
}

// Config controls the background delivery queue.
type Config struct {
	QueueSize int
	Timeout   time.Duration
}

// Logger queues interactions and delivers them from a single worker.
// LogInteraction never blocks and never reports failure to the caller.
type Logger struct {
	sink    Sink
	queue   chan Interaction
	timeout time.Duration
	log     *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewLogger starts the delivery worker. A nil sink is allowed and makes
// every call a no-op.
func NewLogger(sink Sink, cfg Config, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 64
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	l := &Logger{
		sink:    sink,
		queue:   make(chan Interaction, cfg.QueueSize),
		timeout: cfg.Timeout,
		log:     log.Named("interaction"),
		done:    make(chan struct{}),
	}

	l.wg.Add(1)
	go l.run()
	return l
}

// LogInteraction enqueues one exchange. The sink configuration is checked on
// every call.
func (l *Logger) LogInteraction(question, answer string) {
	if l.sink == nil || !l.sink.Enabled() {
		l.log.Warn("interaction sink is not configured, skipping interaction logging")
		return
	}

	item := Interaction{Question: question, Answer: answer, LoggedAt: time.Now().UTC()}

	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.queue <- item:
	default:
		l.log.Warn("interaction queue full, dropping record")
	}
}

// Close stops accepting records, delivers what is already queued, and waits
// for the worker to exit.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	l.wg.Wait()
	return nil
}

func (l *Logger) run() {
	defer l.wg.Done()
	for {
		select {
		case item := <-l.queue:
			l.deliver(item)
		case <-l.done:
			for {
				select {
				case item := <-l.queue:
					l.deliver(item)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) deliver(item Interaction) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	if err := l.sink.Send(ctx, item); err != nil {
		l.log.Warn("failed to deliver interaction", zap.Error(err))
		return
	}
	l.log.Debug("interaction delivered", zap.Int("questionLength", len(item.Question)))
}
