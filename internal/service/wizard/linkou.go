// Package wizard holds the two scripted reimbursement calculators.
package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// 林口廠出差的固定金额（元）。
const (
	LinkouTaxiFare        = 410 // 林口廠 → 板橋高鐵站
	TaipeiBanqiaoDiscount = 40  // 台北站與板橋站票價差額
)

var (
	ErrInvalidStation     = errors.New("station must be banqiao or taipei")
	ErrInvalidTicketPrice = errors.New("ticket price must be positive")
)

// Station is the HSR station the traveller actually boarded at.
type Station string

const (
	StationBanqiao Station = "banqiao"
	StationTaipei  Station = "taipei"
)

// ParseStation accepts the ids and their display names.
func ParseStation(raw string) (Station, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "banqiao", "板橋", "板橋高鐵站":
		return StationBanqiao, nil
	case "taipei", "台北", "台北高鐵站":
		return StationTaipei, nil
	}
	return "", ErrInvalidStation
}

// Label returns the station display name.
func (s Station) Label() string {
	if s == StationTaipei {
		return "台北高鐵站"
	}
	return "板橋高鐵站"
}

// LinkouInput is the form data of the LinKou wizard.
type LinkouInput struct {
	Destination Station `json:"destination"`
	TicketPrice int     `json:"ticketPrice"`
}

// LinkouResult is the reimbursement breakdown.
type LinkouResult struct {
	Destination  Station `json:"destination"`
	TaxiFare     int     `json:"taxiFare"`
	TicketPrice  int     `json:"ticketPrice"`
	Deduction    int     `json:"deduction"`
	Reimbursable int     `json:"reimbursable"`
	Note         string  `json:"note"`
}

// CalculateLinkou applies the nearest-station rule: trips from the LinKou
// plant are reimbursed as if boarding at Banqiao.
func CalculateLinkou(in LinkouInput) (LinkouResult, error) {
	if in.Destination != StationBanqiao && in.Destination != StationTaipei {
		return LinkouResult{}, ErrInvalidStation
	}
	if in.TicketPrice <= 0 {
		return LinkouResult{}, ErrInvalidTicketPrice
	}

	deduction := 0
	if in.Destination == StationTaipei {
		deduction = TaipeiBanqiaoDiscount
	}

	return LinkouResult{
		Destination:  in.Destination,
		TaxiFare:     LinkouTaxiFare,
		TicketPrice:  in.TicketPrice,
		Deduction:    deduction,
		Reimbursable: max(in.TicketPrice-deduction, 0),
		Note:         "此為試算結果，實際報銷金額以會計審核為準。",
	}, nil
}

// Summary renders the result as the wizard's report text.
func (r LinkouResult) Summary() string {
	var b strings.Builder
	b.WriteString("根據規定，林口廠出差應由最近的板橋高鐵站搭車。\n")
	fmt.Fprintf(&b, "計程車費 (林口廠到板橋站): %d 元\n", r.TaxiFare)
	fmt.Fprintf(&b, "實際搭車地點: %s，高鐵票價: %d 元\n", r.Destination.Label(), r.TicketPrice)
	if r.Deduction > 0 {
		fmt.Fprintf(&b, "需扣除 (台北-板橋) 差額: -%d 元\n", r.Deduction)
	}
	fmt.Fprintf(&b, "可報支高鐵票價: %d 元\n", r.Reimbursable)
	b.WriteString(r.Note)
	return b.String()
}
