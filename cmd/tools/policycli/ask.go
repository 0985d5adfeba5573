package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/travel-policy/backend/internal/analysis/render"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
	"github.com/zhouzirui/travel-policy/backend/internal/service/chat"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "向助理提出一個問題",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			gateway, err := ai.NewGateway(ctx, cfg.AI, logger)
			if err != nil {
				return err
			}

			conv := chat.NewConversation("cli", gateway, nil, logger)
			if err := conv.Initialize(ctx); err != nil {
				return err
			}

			msg, err := conv.SendMessage(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printContent(cmd.OutOrStdout(), render.Render(msg.Text))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "請求逾時")
	return cmd
}

// printContent 以純文字輸出渲染片段，連結附上網址
func printContent(w io.Writer, content render.Content) {
	for _, f := range content {
		switch f.Kind {
		case render.KindLink:
			fmt.Fprintf(w, "%s <%s>", f.Label, f.URL)
		case render.KindDisclaimer:
			fmt.Fprintf(w, "\n\n%s", f.Text)
		default:
			fmt.Fprint(w, f.Text)
		}
	}
	fmt.Fprintln(w)
}
