// Command policycli exercises the travel policy assistant from a terminal:
// one-shot questions, the quiz, and the two reimbursement calculators.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 無法載入 .env，改用系統環境變數: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	provider string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "policycli",
		Short:         "國內出差旅費智能問答命令列工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.provider, "provider", "", "覆寫 AI_PROVIDER (gemini|ark|mock)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "輸出除錯日誌")

	root.AddCommand(newAskCmd(opts), newQuizCmd(opts), newCalcCmd())
	return root
}

// loadConfig 讀取環境設定並套用命令列覆寫
func (o *rootOptions) loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if o.provider != "" {
		cfg.AI.Provider = o.provider
	}

	logger := zap.NewNop()
	if o.verbose {
		logger, err = config.LogConfig{Level: "debug", Development: true}.NewLogger()
		if err != nil {
			return nil, nil, err
		}
	}
	return cfg, logger, nil
}
