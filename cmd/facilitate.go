package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/marispinelli3322/tutor-copilot/internal/facilitation"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
	"github.com/marispinelli3322/tutor-copilot/pkg/anthropic"
)

var (
	facilitateGroup   int
	facilitatePeriod  int
	facilitateRefresh bool
)

var facilitateCmd = &cobra.Command{
	Use:   "facilitate",
	Short: "Generate a class facilitation guide for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("facilitate"); err != nil {
			return err
		}
		if facilitateGroup <= 0 || facilitatePeriod <= 0 {
			return eris.New("--group and --period are required")
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		gen := facilitation.New(st, report.New(st), anthropic.NewClient(cfg.Anthropic.Key), facilitation.Options{
			Model:         cfg.Anthropic.Model,
			MaxTokens:     int64(cfg.Anthropic.MaxTokens),
			CacheTTL:      time.Duration(cfg.Facilitation.CacheTTLHours) * time.Hour,
			RatePerMinute: cfg.Facilitation.RatePerMinute,
		})

		guide, err := gen.Generate(cmd.Context(), facilitateGroup, facilitatePeriod, facilitateRefresh)
		if err != nil {
			return err
		}

		fmt.Println(guide.Content)
		return nil
	},
}

func init() {
	facilitateCmd.Flags().IntVar(&facilitateGroup, "group", 0, "game group ID")
	facilitateCmd.Flags().IntVar(&facilitatePeriod, "period", 0, "simulation period (quarter)")
	facilitateCmd.Flags().BoolVar(&facilitateRefresh, "refresh", false, "regenerate even if a cached guide exists")
	rootCmd.AddCommand(facilitateCmd)
}
