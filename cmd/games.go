package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List hospital simulation games",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("report"); err != nil {
			return err
		}

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		games, err := st.Games(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tSIMULATION\tPERIOD\tTEAMS\tPROFESSORS")
		for _, g := range games {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
				g.ID, g.Code, g.SimulationName, g.LastProcessedPeriod, g.TeamCount,
				strings.Join(g.Professors, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(gamesCmd)
}
