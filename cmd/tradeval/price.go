package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/application"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
)

var (
	priceJSON     bool
	pricePick     bool
	pricePosition string
	priceAge      float64
	priceTier     int
	priceAsOf     string
	priceLeague   = newLeagueFlags()
)

var priceCmd = &cobra.Command{
	Use:   "price <player name | pick descriptor>",
	Short: "Price a single player or draft pick",
	Long: `Price one asset from the archive, the live market or the models.

Examples:
  tradeval price "Ja'Marr Chase" --position WR --age 25
  tradeval price --pick "2026 1st early"
  tradeval price --pick 2027-2-mid --as-of 2025-09-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
	f := priceCmd.Flags()
	f.BoolVar(&priceJSON, "json", false, "Print the priced asset as JSON")
	f.BoolVar(&pricePick, "pick", false, "Treat the argument as a pick descriptor")
	f.StringVar(&pricePosition, "position", "", "Player position")
	f.Float64Var(&priceAge, "age", 0, "Player age")
	f.IntVar(&priceTier, "tier", -1, "Player tier 0-4 (-1 resolves it)")
	f.StringVar(&priceAsOf, "as-of", "", "Valuation date YYYY-MM-DD (default today)")
	f.AddFlagSet(priceLeague.fs)
}

func priceSpec(cmd *cobra.Command, arg string) (asset.Spec, error) {
	if pricePick {
		return picks.ParseDescriptor(arg)
	}
	var age *float64
	if cmd.Flags().Changed("age") {
		age = asset.Float(priceAge)
	}
	var tier *int
	if priceTier >= 0 {
		tier = asset.Int(priceTier)
	}
	return asset.Player(arg, asset.ParsePosition(pricePosition), age, tier), nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	spec, err := priceSpec(cmd, strings.Join(args, " "))
	if err != nil {
		return err
	}
	var asOf time.Time
	if priceAsOf != "" {
		if asOf, err = time.Parse("2006-01-02", priceAsOf); err != nil {
			return fmt.Errorf("invalid --as-of %q: %w", priceAsOf, err)
		}
	}
	league := priceLeague.apply(asset.DefaultLeagueSettings())

	return withEngine(cmd.Context(), func(e *application.Engine) error {
		p := e.Price(cmd.Context(), spec, league, asOf)
		if priceJSON {
			return writeJSON(cmd.OutOrStdout(), p)
		}
		renderPriced(cmd.OutOrStdout(), p)
		return nil
	})
}
