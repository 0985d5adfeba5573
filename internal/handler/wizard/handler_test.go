package wizard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(time.UTC).RegisterRoutes(r)
	return r
}

func post(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestLinkouTaipei(t *testing.T) {
	resp := post(setupRouter(), "/wizards/linkou", map[string]any{"destination": "taipei", "ticketPrice": 1530})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		TaxiFare     int    `json:"taxiFare"`
		Deduction    int    `json:"deduction"`
		Reimbursable int    `json:"reimbursable"`
		Summary      string `json:"summary"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.TaxiFare != 410 || body.Deduction != 40 || body.Reimbursable != 1490 {
		t.Fatalf("unexpected result %+v", body)
	}
	if !strings.Contains(body.Summary, "板橋") {
		t.Fatalf("unexpected summary %q", body.Summary)
	}
}

func TestLinkouValidation(t *testing.T) {
	r := setupRouter()
	if resp := post(r, "/wizards/linkou", map[string]any{"destination": "taipei", "ticketPrice": 0}); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero price, got %d", resp.Code)
	}
	if resp := post(r, "/wizards/linkou", map[string]any{"destination": "", "ticketPrice": 100}); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing station, got %d", resp.Code)
	}
}

func TestMailiaoReport(t *testing.T) {
	resp := post(setupRouter(), "/wizards/mailiao", map[string]any{
		"start":          "2024-05-06T08:30",
		"end":            "2024-05-07T17:00",
		"shuttleFull":    false,
		"guestHouseFull": true,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Days              int    `json:"days"`
		Nights            int    `json:"nights"`
		TaxiReimbursable  bool   `json:"taxiReimbursable"`
		HotelReimbursable bool   `json:"hotelReimbursable"`
		Question          string `json:"question"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body.Days != 2 || body.Nights != 1 || body.TaxiReimbursable || !body.HotelReimbursable {
		t.Fatalf("unexpected report %+v", body)
	}
	if !strings.Contains(body.Question, "麥寮") {
		t.Fatalf("unexpected question %q", body.Question)
	}
}

func TestMailiaoValidation(t *testing.T) {
	r := setupRouter()
	if resp := post(r, "/wizards/mailiao", map[string]any{"start": "2024-05-06T08:30"}); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing end, got %d", resp.Code)
	}
	resp := post(r, "/wizards/mailiao", map[string]any{"start": "2024-05-07T08:30", "end": "2024-05-06T08:30"})
	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "結束時間") {
		t.Fatalf("expected 400 for reversed trip, got %d %s", resp.Code, resp.Body.String())
	}
}
