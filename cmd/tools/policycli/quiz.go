package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/travel-policy/backend/internal/model/quiz"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
	quizService "github.com/zhouzirui/travel-policy/backend/internal/service/quiz"
)

func newQuizCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "進行一輪 10 題的規定測驗",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			engine := quizService.NewEngine("cli", gateway, quizService.WithLogger(logger))
			fmt.Fprintln(cmd.OutOrStdout(), "正在產生測驗題目...")
			if err := engine.Fetch(ctx); err != nil {
				return errors.New(engine.Snapshot().Error)
			}
			return playQuiz(engine, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "產生題目的逾時")
	return cmd
}

// playQuiz 逐題讀取 A-D 選項，直到測驗結束
func playQuiz(engine *quizService.Engine, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		snap := engine.Snapshot()
		if snap.State == quiz.StateFinished {
			fmt.Fprintf(out, "\n測驗結束！得分 %d / %d\n", snap.Score, snap.MaxScore)
			return nil
		}

		fmt.Fprintf(out, "\n第 %d/%d 題：%s\n", snap.Index+1, snap.Total, snap.Question.Question)
		for i, opt := range snap.Question.Options {
			fmt.Fprintf(out, "  %c. %s\n", 'A'+i, opt)
		}

		option, err := readChoice(reader, out, snap.Question.Options)
		if err != nil {
			return err
		}

		feedback, _ := engine.SelectAnswer(option)
		if *feedback.IsCorrect {
			fmt.Fprintf(out, "✔ %s\n", feedback.Feedback)
		} else {
			fmt.Fprintf(out, "✘ %s 正確答案：%s\n", feedback.Feedback, feedback.CorrectAnswer)
		}
		if feedback.Explanation != "" {
			fmt.Fprintf(out, "說明：%s\n", feedback.Explanation)
		}
		engine.Advance()
	}
}

func readChoice(reader *bufio.Reader, out io.Writer, options []string) (string, error) {
	for {
		fmt.Fprint(out, "請輸入選項: ")
		line, err := reader.ReadString('\n')
		choice := strings.ToUpper(strings.TrimSpace(line))
		if len(choice) == 1 && choice[0] >= 'A' && int(choice[0]-'A') < len(options) {
			return options[choice[0]-'A'], nil
		}
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("輸入已結束")
			}
			return "", err
		}
		fmt.Fprintln(out, "無效的選項，請重新輸入。")
	}
}
