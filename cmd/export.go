package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/marispinelli3322/tutor-copilot/internal/export"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
)

var (
	exportGroup  int
	exportPeriod int
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a period's reports to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("report"); err != nil {
			return err
		}
		if exportGroup <= 0 || exportPeriod <= 0 {
			return eris.New("--group and --period are required")
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("relatorio-g%d-t%d.xlsx", exportGroup, exportPeriod)
		}

		if err := export.New(report.New(st)).Export(cmd.Context(), exportGroup, exportPeriod, out); err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportGroup, "group", 0, "game group ID")
	exportCmd.Flags().IntVar(&exportPeriod, "period", 0, "simulation period (quarter)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default relatorio-g<group>-t<period>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
