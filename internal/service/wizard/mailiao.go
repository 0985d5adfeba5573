package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the browser datetime-local format.
const DateTimeLayout = "2006-01-02T15:04"

var (
	ErrMissingTripTime = errors.New("trip start and end are required")
	ErrTripEndsEarly   = errors.New("trip must end after it starts")
)

// MailiaoInput is the form data of the Mailiao wizard.
type MailiaoInput struct {
	Start          time.Time
	End            time.Time
	ShuttleFull    bool
	GuestHouseFull bool
}

// MailiaoReport summarizes which Mailiao expenses can be claimed.
type MailiaoReport struct {
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	Days              int       `json:"days"`
	Nights            int       `json:"nights"`
	ShuttleFull       bool      `json:"shuttleFull"`
	GuestHouseFull    bool      `json:"guestHouseFull"`
	TaxiReimbursable  bool      `json:"taxiReimbursable"`
	HotelReimbursable bool      `json:"hotelReimbursable"`
}

// ParseDateTime parses a datetime-local value in loc.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrMissingTripTime
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateTimeLayout, raw, loc)
}

// BuildMailiaoReport validates the trip window and derives the report.
// Taxi is only claimable when the shuttle is full, outside lodging only when
// the guest house is full.
func BuildMailiaoReport(in MailiaoInput) (MailiaoReport, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return MailiaoReport{}, ErrMissingTripTime
	}
	if !in.End.After(in.Start) {
		return MailiaoReport{}, ErrTripEndsEarly
	}

	startDay := time.Date(in.Start.Year(), in.Start.Month(), in.Start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(in.End.Year(), in.End.Month(), in.End.Day(), 0, 0, 0, 0, time.UTC)
	nights := int(endDay.Sub(startDay).Hours() / 24)

	return MailiaoReport{
		Start:             in.Start,
		End:               in.End,
		Days:              nights + 1,
		Nights:            nights,
		ShuttleFull:       in.ShuttleFull,
		GuestHouseFull:    in.GuestHouseFull,
		TaxiReimbursable:  in.ShuttleFull,
		HotelReimbursable: in.GuestHouseFull,
	}, nil
}

// Question phrases the report as a chat question for the assistant.
func (r MailiaoReport) Question() string {
	yesNo := func(v bool) string {
		if v {
			return "是"
		}
		return "否"
	}
	return fmt.Sprintf(
		"我要到麥寮廠出差，時間從 %s 到 %s（共 %d 天 %d 夜）。交通車是否客滿：%s；招待所是否客滿：%s。請問我可以報支哪些交通費與住宿費？",
		r.Start.Format("2006-01-02 15:04"),
		r.End.Format("2006-01-02 15:04"),
		r.Days, r.Nights,
		yesNo(r.ShuttleFull),
		yesNo(r.GuestHouseFull),
	)
}
