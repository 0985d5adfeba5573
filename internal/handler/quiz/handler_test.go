package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
	quizservice "github.com/zhouzirui/travel-policy/backend/internal/service/quiz"
)

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}
func (noShuffle) IntN(int) int                { return 0 }

type failingSource struct{}

func (failingSource) GenerateQuiz(context.Context) ([]quiz.Question, error) {
	return nil, ai.ErrQuizGeneration
}

func setupRouter(source quizservice.QuestionSource) *chi.Mux {
	svc := quizservice.NewService(source, nil, quizservice.WithRandomizer(noShuffle{}))
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, quiz.Snapshot) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var snap quiz.Snapshot
	_ = json.Unmarshal(resp.Body.Bytes(), &snap)
	return resp, snap
}

func TestQuizHappyPath(t *testing.T) {
	r := setupRouter(ai.NewMockGateway())
	bank := ai.MockQuestions()

	resp, snap := do(t, r, http.MethodPost, "/quizzes", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if snap.State != quiz.StateActive || snap.Total != quiz.QuestionCount {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	id := snap.ID

	for i := 0; i < quiz.QuestionCount; i++ {
		resp, snap = do(t, r, http.MethodPost, "/quizzes/"+id+"/answer", map[string]string{"option": bank[i].Answer})
		if resp.Code != http.StatusOK || snap.IsCorrect == nil || !*snap.IsCorrect {
			t.Fatalf("question %d: unexpected answer response %d %+v", i, resp.Code, snap)
		}
		resp, _ = do(t, r, http.MethodPost, "/quizzes/"+id+"/next", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("question %d: next returned %d", i, resp.Code)
		}
	}

	_, snap = do(t, r, http.MethodGet, "/quizzes/"+id+"/", nil)
	if snap.State != quiz.StateFinished || snap.Score != 100 {
		t.Fatalf("unexpected final snapshot %+v", snap)
	}

	resp, snap = do(t, r, http.MethodPost, "/quizzes/"+id+"/restart", nil)
	if resp.Code != http.StatusOK || snap.State != quiz.StateActive || snap.Score != 0 {
		t.Fatalf("unexpected restart %d %+v", resp.Code, snap)
	}
}

func TestQuizInvalidTransitionsConflict(t *testing.T) {
	r := setupRouter(ai.NewMockGateway())
	_, snap := do(t, r, http.MethodPost, "/quizzes", nil)

	if resp, _ := do(t, r, http.MethodPost, "/quizzes/"+snap.ID+"/next", nil); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for next in active, got %d", resp.Code)
	}
	if resp, _ := do(t, r, http.MethodPost, "/quizzes/"+snap.ID+"/restart", nil); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for restart in active, got %d", resp.Code)
	}
}

func TestQuizGenerationFailure(t *testing.T) {
	r := setupRouter(failingSource{})

	resp, snap := do(t, r, http.MethodPost, "/quizzes", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if snap.State != quiz.StateFinished || snap.Error != policy.QuizUnavailableText {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	resp, snap = do(t, r, http.MethodPost, "/quizzes/"+snap.ID+"/restart", nil)
	if resp.Code != http.StatusOK || snap.Error != policy.QuizUnavailableText {
		t.Fatalf("unexpected retry %d %+v", resp.Code, snap)
	}
}

func TestQuizNotFound(t *testing.T) {
	r := setupRouter(ai.NewMockGateway())

	if resp, _ := do(t, r, http.MethodGet, "/quizzes/missing/", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if resp, _ := do(t, r, http.MethodDelete, "/quizzes/missing/", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
