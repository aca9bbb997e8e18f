package asset

// LeagueSettings describes the roster format of a league. It is held constant
// for the duration of one evaluation.
type LeagueSettings struct {
	Teams          int              `json:"teams" yaml:"teams"`
	IsDynasty      bool             `json:"is_dynasty" yaml:"is_dynasty"`
	Superflex      bool             `json:"superflex" yaml:"superflex"`
	TEPremium      bool             `json:"te_premium" yaml:"te_premium"`
	PPR            float64          `json:"ppr" yaml:"ppr"`
	IDPStarters    int              `json:"idp_starters" yaml:"idp_starters"`
	Starters       map[Position]int `json:"starters" yaml:"starters"`
	FlexSlots      int              `json:"flex_slots" yaml:"flex_slots"`
	SuperflexSlots int              `json:"superflex_slots" yaml:"superflex_slots"`
	BenchSlots     int              `json:"bench_slots" yaml:"bench_slots"`
	TaxiSlots      int              `json:"taxi_slots" yaml:"taxi_slots"`
}

// DefaultLeagueSettings is a 12-team 1QB full-PPR dynasty league
func DefaultLeagueSettings() LeagueSettings {
	return LeagueSettings{
		Teams:     12,
		IsDynasty: true,
		PPR:       1,
		Starters: map[Position]int{
			QB: 1,
			RB: 2,
			WR: 3,
			TE: 1,
		},
		FlexSlots:  1,
		BenchSlots: 15,
		TaxiSlots:  3,
	}
}

// Normalized fills zero values with defaults and clamps nonsense counts.
// Superflex implies at least one superflex slot.
func (ls LeagueSettings) Normalized() LeagueSettings {
	out := ls
	if out.Teams <= 0 {
		out.Teams = 12
	}
	if out.Starters == nil {
		out.Starters = DefaultLeagueSettings().Starters
	}
	if out.Superflex && out.SuperflexSlots <= 0 {
		out.SuperflexSlots = 1
	}
	if !out.Superflex && out.SuperflexSlots > 0 {
		out.Superflex = true
	}
	if out.IDPStarters < 0 {
		out.IDPStarters = 0
	}
	if out.FlexSlots < 0 {
		out.FlexSlots = 0
	}
	return out
}

// QBSlots is the number of lineup slots a quarterback can fill
func (ls LeagueSettings) QBSlots() int {
	n := ls.Starters[QB]
	if ls.Superflex {
		if ls.SuperflexSlots > 0 {
			n += ls.SuperflexSlots
		} else {
			n++
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}
