package wizard

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/travel-policy/backend/internal/service/wizard"
	"github.com/zhouzirui/travel-policy/backend/pkg/utils"
)

// Handler 两个试算精灵的HTTP处理器
type Handler struct {
	loc *time.Location
}

// New 创建处理器，loc 用于解析 datetime-local 字段，nil 表示本地时区
func New(loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{loc: loc}
}

// RegisterRoutes 注册精灵路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/wizards/linkou", h.handleLinkou)
	r.Post("/wizards/mailiao", h.handleMailiao)
}

type linkouResponse struct {
	wizard.LinkouResult
	Summary string `json:"summary"`
}

func (h *Handler) handleLinkou(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Destination string `json:"destination"`
		TicketPrice int    `json:"ticketPrice"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	station, err := wizard.ParseStation(payload.Destination)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "請選擇實際搭車地點。")
		return
	}

	result, err := wizard.CalculateLinkou(wizard.LinkouInput{Destination: station, TicketPrice: payload.TicketPrice})
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "請輸入有效的高鐵票價金額。")
		return
	}
	utils.RespondJSON(w, http.StatusOK, linkouResponse{LinkouResult: result, Summary: result.Summary()})
}

type mailiaoResponse struct {
	wizard.MailiaoReport
	Question string `json:"question"`
}

func (h *Handler) handleMailiao(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Start          string `json:"start"`
		End            string `json:"end"`
		ShuttleFull    bool   `json:"shuttleFull"`
		GuestHouseFull bool   `json:"guestHouseFull"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, startErr := wizard.ParseDateTime(payload.Start, h.loc)
	end, endErr := wizard.ParseDateTime(payload.End, h.loc)
	if startErr != nil || endErr != nil {
		utils.RespondError(w, http.StatusBadRequest, "請輸入完整的出差開始與結束時間。")
		return
	}

	report, err := wizard.BuildMailiaoReport(wizard.MailiaoInput{
		Start:          start,
		End:            end,
		ShuttleFull:    payload.ShuttleFull,
		GuestHouseFull: payload.GuestHouseFull,
	})
	if err != nil {
		msg := "請輸入完整的出差開始與結束時間。"
		if errors.Is(err, wizard.ErrTripEndsEarly) {
			msg = "結束時間必須晚於開始時間。"
		}
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}
	utils.RespondJSON(w, http.StatusOK, mailiaoResponse{MailiaoReport: report, Question: report.Question()})
}
