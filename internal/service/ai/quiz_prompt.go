package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
)

// quizInstruction asks for quiz.QuestionCount questions in the JSON shape of quiz.Question.
var quizInstruction = fmt.Sprintf(`請根據我提供的「國內出差旅費」制度內容，產生 %d 道不重複的選擇題來測驗使用者。每道題目必須包含以下內容：
1. 'question': 問題的文字。
2. 'options': 一個包含四個選項的字串陣列。
3. 'answer': 正確答案的文字，此答案必須與 'options' 陣列中的其中一個完全相同。
4. 'explanation': 對於正確答案的簡短說明。

請確保問題涵蓋制度的不同面向，例如住宿、交通、膳食、雜費等。請以繁體中文回答，並嚴格遵循指定的 JSON 格式，只輸出 JSON 陣列。`, quiz.QuestionCount)

// QuizPrompt returns the full single-shot prompt for quiz generation.
func QuizPrompt() string {
	return policy.SystemInstruction + "\n\n" + quizInstruction
}

// parseQuizPayload decodes a model reply into questions. It accepts a bare
// JSON array or one wrapped in prose / code fences.
func parseQuizPayload(content string) ([]quiz.Question, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: reply is not a JSON array", ErrQuizGeneration)
	}

	var questions []quiz.Question
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuizGeneration, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrQuizGeneration)
	}
	if strings.TrimSpace(questions[0].Question) == "" {
		return nil, fmt.Errorf("%w: first item has no question", ErrQuizGeneration)
	}
	return questions, nil
}
