package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/travel-policy/backend/internal/service/wizard"
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "出差費用試算",
	}
	cmd.AddCommand(newLinkouCmd(), newMailiaoCmd())
	return cmd
}

func newLinkouCmd() *cobra.Command {
	var (
		station string
		ticket  int
	)

	cmd := &cobra.Command{
		Use:   "linkou",
		Short: "林口廠高鐵與計程車費試算",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest, err := wizard.ParseStation(station)
			if err != nil {
				return err
			}
			result, err := wizard.CalculateLinkou(wizard.LinkouInput{Destination: dest, TicketPrice: ticket})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&station, "station", "banqiao", "實際搭車地點 (banqiao|taipei)")
	cmd.Flags().IntVar(&ticket, "ticket", 0, "實際高鐵票價")
	_ = cmd.MarkFlagRequired("ticket")
	return cmd
}

func newMailiaoCmd() *cobra.Command {
	var (
		start, end                  string
		shuttleFull, guestHouseFull bool
	)

	cmd := &cobra.Command{
		Use:   "mailiao",
		Short: "麥寮廠出差交通與住宿報支檢查",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startAt, err := wizard.ParseDateTime(start, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endAt, err := wizard.ParseDateTime(end, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}

			report, err := wizard.BuildMailiaoReport(wizard.MailiaoInput{
				Start:          startAt,
				End:            endAt,
				ShuttleFull:    shuttleFull,
				GuestHouseFull: guestHouseFull,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "出差 %d 天 %d 夜\n", report.Days, report.Nights)
			fmt.Fprintf(out, "計程車費可報支：%t\n", report.TaxiReimbursable)
			fmt.Fprintf(out, "外宿住宿費可報支：%t\n", report.HotelReimbursable)
			fmt.Fprintf(out, "\n可用以下問題詢問助理：\n%s\n", report.Question())
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "開始時間 (2006-01-02T15:04)")
	cmd.Flags().StringVar(&end, "end", "", "結束時間 (2006-01-02T15:04)")
	cmd.Flags().BoolVar(&shuttleFull, "shuttle-full", false, "交通車是否客滿")
	cmd.Flags().BoolVar(&guestHouseFull, "guest-house-full", false, "招待所是否客滿")
	return cmd
}
