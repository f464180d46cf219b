package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/marispinelli3322/tutor-copilot/internal/api"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
)

var (
	reportGroup  int
	reportPeriod int
	reportModule string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a period's analytics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("report"); err != nil {
			return err
		}
		if reportGroup <= 0 || reportPeriod <= 0 {
			return eris.New("--group and --period are required")
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		analyzer := report.New(st)
		out, err := runReports(cmd.Context(), analyzer, reportGroup, reportPeriod, reportModule)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// runReports executes one named module, or all of them keyed by name.
func runReports(ctx context.Context, analyzer *report.Analyzer, groupID, period int, module string) (any, error) {
	if module != "" {
		out, err := api.RunModule(ctx, analyzer, module, groupID, period)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	names := api.ModuleNames()
	all := make(map[string]any, len(names))
	for _, name := range names {
		out, err := api.RunModule(ctx, analyzer, name, groupID, period)
		if err != nil {
			return nil, eris.Wrapf(err, "module %s", name)
		}
		all[name] = out
	}
	return all, nil
}

func init() {
	reportCmd.Flags().IntVar(&reportGroup, "group", 0, "game group ID")
	reportCmd.Flags().IntVar(&reportPeriod, "period", 0, "simulation period (quarter)")
	reportCmd.Flags().StringVar(&reportModule, "module", "", "single module to run ("+strings.Join(api.ModuleNames(), ", ")+"); default all")
	rootCmd.AddCommand(reportCmd)
}
