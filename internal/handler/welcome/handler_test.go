package welcome

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
)

func TestWelcomeListsExampleQuestions(t *testing.T) {
	r := chi.NewRouter()
	New().RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body policy.Welcome
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(body.ExampleQuestions) == 0 {
		t.Fatal("expected example questions")
	}

	hasQuiz := false
	for _, item := range body.HelpItems {
		hasQuiz = hasQuiz || item.IsQuizButton
	}
	if !hasQuiz {
		t.Fatal("expected a quiz entry in help items")
	}
}
