package main

import (
	"github.com/spf13/pflag"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// leagueFlags are shared by every command that needs a league format
type leagueFlags struct {
	teams       int
	superflex   bool
	tePremium   bool
	redraft     bool
	ppr         float64
	idpStarters int

	fs *pflag.FlagSet
}

func newLeagueFlags() *leagueFlags {
	l := &leagueFlags{}
	fs := pflag.NewFlagSet("league", pflag.ContinueOnError)
	fs.IntVar(&l.teams, "teams", 12, "League size")
	fs.BoolVar(&l.superflex, "superflex", false, "Superflex (2QB) league")
	fs.BoolVar(&l.tePremium, "te-premium", false, "Tight-end premium scoring")
	fs.BoolVar(&l.redraft, "redraft", false, "Redraft instead of dynasty")
	fs.Float64Var(&l.ppr, "ppr", 1, "Points per reception")
	fs.IntVar(&l.idpStarters, "idp-starters", 0, "Number of IDP starters")
	l.fs = fs
	return l
}

// apply overrides base with the flags the user actually set
func (l *leagueFlags) apply(base asset.LeagueSettings) asset.LeagueSettings {
	out := base
	if l.fs.Changed("teams") {
		out.Teams = l.teams
	}
	if l.fs.Changed("superflex") {
		out.Superflex = l.superflex
	}
	if l.fs.Changed("te-premium") {
		out.TEPremium = l.tePremium
	}
	if l.fs.Changed("redraft") {
		out.IsDynasty = !l.redraft
	}
	if l.fs.Changed("ppr") {
		out.PPR = l.ppr
	}
	if l.fs.Changed("idp-starters") {
		out.IDPStarters = l.idpStarters
	}
	return out.Normalized()
}
