package quiz

// State is the phase of a quiz run.
type State string

const (
	StateLoading  State = "loading"
	StateActive   State = "active"
	StateFeedback State = "feedback"
	StateFinished State = "finished"
)

// PointsPerQuestion is awarded for each correct answer.
const PointsPerQuestion = 10

// QuestionView is a question as shown before it is answered.
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Snapshot is the UI view of a quiz. CorrectAnswer, Explanation and
// Feedback are only filled in the feedback state.
type Snapshot struct {
	ID             string        `json:"id,omitempty"`
	State          State         `json:"state"`
	Index          int           `json:"index"`
	Total          int           `json:"total"`
	Score          int           `json:"score"`
	MaxScore       int           `json:"maxScore"`
	Question       *QuestionView `json:"question,omitempty"`
	SelectedAnswer *string       `json:"selectedAnswer,omitempty"`
	IsCorrect      *bool         `json:"isCorrect,omitempty"`
	CorrectAnswer  string        `json:"correctAnswer,omitempty"`
	Explanation    string        `json:"explanation,omitempty"`
	Feedback       string        `json:"feedback,omitempty"`
	HasNext        bool          `json:"hasNext"`
	Error          string        `json:"error,omitempty"`
}
