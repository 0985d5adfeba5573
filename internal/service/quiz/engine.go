// Package quiz runs the generated multiple-choice policy quiz.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
)

var (
	// ErrFetchInFlight is returned when a fetch is already running.
	ErrFetchInFlight = errors.New("quiz fetch already in flight")
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current state.
	ErrInvalidTransition = errors.New("operation not allowed in current quiz state")
)

// QuestionSource produces a fresh set of questions.
type QuestionSource interface {
	GenerateQuiz(ctx context.Context) ([]quiz.Question, error)
}

// Randomizer supplies the engine's randomness.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
func (globalRand) IntN(n int) int                     { return rand.IntN(n) }

// Option customizes an Engine.
type Option func(*Engine)

// WithRandomizer replaces the default math/rand/v2 source.
func WithRandomizer(r Randomizer) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithFeedbackPools replaces the praise and scold lines.
func WithFeedbackPools(praise, scold []string) Option {
	return func(e *Engine) {
		e.praise = praise
		e.scold = scold
	}
}

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine is the quiz state machine. It starts in the loading state with no
// fetch in flight; Fetch moves it to active or finished.
type Engine struct {
	id     string
	source QuestionSource
	rng    Randomizer
	praise []string
	scold  []string
	log    *zap.Logger

	mu        sync.Mutex
	state     quiz.State
	fetching  bool
	questions []quiz.Question
	index     int
	score     int
	selected  *string
	correct   *bool
	feedback  string
	errMsg    string
}

// NewEngine creates an engine drawing questions from source.
func NewEngine(id string, source QuestionSource, opts ...Option) *Engine {
	e := &Engine{
		id:     id,
		source: source,
		rng:    globalRand{},
		praise: policy.PraiseMessages,
		scold:  policy.ScoldMessages,
		log:    zap.NewNop(),
		state:  quiz.StateLoading,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("quiz", id))
	return e
}

// ID returns the engine identifier.
func (e *Engine) ID() string { return e.id }

// Fetch requests a new question set. Allowed from the initial state and from
// finished.
func (e *Engine) Fetch(ctx context.Context) error {
	e.mu.Lock()
	if e.fetching {
		e.mu.Unlock()
		return ErrFetchInFlight
	}
	if e.state == quiz.StateActive || e.state == quiz.StateFeedback {
		e.mu.Unlock()
		return ErrInvalidTransition
	}
	e.fetching = true
	e.state = quiz.StateLoading
	e.errMsg = ""
	// 加载期间不暴露上一轮的题量与分数
	e.questions = nil
	e.resetProgress()
	e.mu.Unlock()

	questions, err := e.source.GenerateQuiz(ctx)
	if err == nil {
		questions = quiz.FilterUsable(questions)
		if len(questions) == 0 {
			err = fmt.Errorf("%w: no usable questions", ai.ErrQuizGeneration)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetching = false

	if err != nil {
		e.log.Warn("quiz generation failed", zap.Error(err))
		e.questions = nil
		e.resetProgress()
		e.state = quiz.StateFinished
		e.errMsg = policy.QuizUnavailableText
		return err
	}

	for i := range questions {
		opts := questions[i].Options
		e.rng.Shuffle(len(opts), func(a, b int) { opts[a], opts[b] = opts[b], opts[a] })
	}
	e.questions = questions
	e.resetProgress()
	e.state = quiz.StateActive
	e.log.Info("quiz ready", zap.Int("questions", len(questions)))
	return nil
}

// Restart fetches a new set after the quiz finished, whether it ended with a
// score or an error.
func (e *Engine) Restart(ctx context.Context) error {
	e.mu.Lock()
	if e.state != quiz.StateFinished || e.fetching {
		e.mu.Unlock()
		return ErrInvalidTransition
	}
	e.mu.Unlock()
	return e.Fetch(ctx)
}

// SelectAnswer records the answer for the current question. It reports false
// and changes nothing outside the active state.
func (e *Engine) SelectAnswer(option string) (quiz.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != quiz.StateActive {
		return e.snapshotLocked(), false
	}

	q := e.questions[e.index]
	isCorrect := option == q.Answer
	if isCorrect {
		e.score += quiz.PointsPerQuestion
		e.feedback = e.pick(e.praise)
	} else {
		e.feedback = e.pick(e.scold)
	}
	e.selected = &option
	e.correct = &isCorrect
	e.state = quiz.StateFeedback
	return e.snapshotLocked(), true
}

// Advance moves past the feedback to the next question or to finished.
func (e *Engine) Advance() (quiz.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != quiz.StateFeedback {
		return e.snapshotLocked(), false
	}

	e.selected = nil
	e.correct = nil
	e.feedback = ""
	if e.index+1 < len(e.questions) {
		e.index++
		e.state = quiz.StateActive
	} else {
		e.state = quiz.StateFinished
		e.log.Info("quiz finished", zap.Int("score", e.score))
	}
	return e.snapshotLocked(), true
}

// Snapshot returns the current UI view.
func (e *Engine) Snapshot() quiz.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() quiz.Snapshot {
	snap := quiz.Snapshot{
		ID:       e.id,
		State:    e.state,
		Index:    e.index,
		Total:    len(e.questions),
		Score:    e.score,
		MaxScore: len(e.questions) * quiz.PointsPerQuestion,
		Error:    e.errMsg,
	}

	if e.state != quiz.StateActive && e.state != quiz.StateFeedback {
		return snap
	}

	q := e.questions[e.index]
	snap.Question = &quiz.QuestionView{
		Question: q.Question,
		Options:  append([]string(nil), q.Options...),
	}
	snap.HasNext = e.index+1 < len(e.questions)

	if e.state == quiz.StateFeedback {
		selected := *e.selected
		correct := *e.correct
		snap.SelectedAnswer = &selected
		snap.IsCorrect = &correct
		snap.CorrectAnswer = q.Answer
		snap.Explanation = q.Explanation
		snap.Feedback = e.feedback
	}
	return snap
}

func (e *Engine) resetProgress() {
	e.index = 0
	e.score = 0
	e.selected = nil
	e.correct = nil
	e.feedback = ""
}

func (e *Engine) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[e.rng.IntN(len(pool))]
}
