package main

import (
	"github.com/spf13/cobra"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/application"
)

var (
	evalJSON   bool
	evalLeague = newLeagueFlags()
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <trade.yaml>",
	Short: "Evaluate a two-sided trade",
	Long: `Evaluate a trade described in a YAML or JSON file.

Example trade file:
  as_of: 2025-09-01
  timeline_a: contender
  league: {teams: 12, superflex: true}
  side_a:
    - {name: "Derrick Henry", position: RB, age: 31}
    - pick: 2026 2nd late
  side_b:
    - {name: "Brock Bowers", position: TE, age: 22}

League flags override the file's league block.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().BoolVar(&evalJSON, "json", false, "Print the full evaluation as JSON")
	evaluateCmd.Flags().AddFlagSet(evalLeague.fs)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	req, err := application.LoadTrade(args[0])
	if err != nil {
		return err
	}
	req.League = evalLeague.apply(req.League)

	return withEngine(cmd.Context(), func(e *application.Engine) error {
		ev := e.Evaluate(cmd.Context(), req)
		if evalJSON {
			return writeJSON(cmd.OutOrStdout(), ev)
		}
		renderEvaluation(cmd.OutOrStdout(), ev)
		return nil
	})
}
