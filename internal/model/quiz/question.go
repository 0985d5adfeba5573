package quiz

import "strings"

const (
	// QuestionCount is the size of one generated quiz.
	QuestionCount = 10
	// OptionCount is the number of choices every question carries.
	OptionCount = 4
)

// Question is a single multiple-choice item produced by the model.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Usable reports whether the question can be scored: it has text, exactly
// OptionCount options, and its answer is one of the options by exact match.
func (q Question) Usable() bool {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) != OptionCount {
		return false
	}
	for _, option := range q.Options {
		if option == q.Answer {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the options slice.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// FilterUsable keeps the usable questions in their original order.
func FilterUsable(questions []Question) []Question {
	usable := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Usable() {
			usable = append(usable, q.Clone())
		}
	}
	return usable
}
