package picks

// FeverStep boosts picks in the current draft as it approaches
type FeverStep struct {
	WithinDays int     `yaml:"within_days"`
	Bonus      float64 `yaml:"bonus"`
}

// Config holds every constant the pick curve uses
type Config struct {
	RoundBase   map[int]float64 `yaml:"round_base"`
	DefaultBase float64         `yaml:"default_base"`

	// TimeDecay[i] applies i seasons out; beyond the table DecayFloor applies
	TimeDecay  []float64 `yaml:"time_decay"`
	DecayFloor float64   `yaml:"decay_floor"`

	// Steps are checked in order, the first match wins
	Fever []FeverStep `yaml:"fever"`

	NeutralClassStrength float64 `yaml:"neutral_class_strength"`

	// Slot interpolation blends at most SlotBlendMax toward the adjacent round.
	// Round 1 blends toward RoundBase[1] × FirstRoundCeiling.
	SlotBlendMax      float64 `yaml:"slot_blend_max"`
	FirstRoundCeiling float64 `yaml:"first_round_ceiling"`

	// Exact-slot values keyed "R.SS", valid for OverrideTeams-team drafts
	SlotOverrides map[string]float64 `yaml:"slot_overrides"`
	OverrideTeams int                `yaml:"override_teams"`

	// Rookie draft date used for days-to-draft
	DraftMonth int `yaml:"draft_month"`
	DraftDay   int `yaml:"draft_day"`
}

// DefaultConfig returns the production pick curve
func DefaultConfig() Config {
	return Config{
		RoundBase:   map[int]float64{1: 700, 2: 400, 3: 220, 4: 110},
		DefaultBase: 60,
		TimeDecay:   []float64{1.00, 0.92, 0.85, 0.80},
		DecayFloor:  0.75,
		Fever: []FeverStep{
			{WithinDays: 30, Bonus: 0.06},
			{WithinDays: 90, Bonus: 0.03},
		},
		NeutralClassStrength: 80,
		SlotBlendMax:         0.30,
		FirstRoundCeiling:    1.5,
		SlotOverrides: map[string]float64{
			"1.01": 1000, "1.02": 930, "1.03": 870, "1.04": 815, "1.05": 770, "1.06": 730,
			"1.07": 695, "1.08": 665, "1.09": 640, "1.10": 615, "1.11": 595, "1.12": 575,
			"2.01": 520, "2.02": 495, "2.03": 470, "2.04": 450, "2.05": 430, "2.06": 410,
			"2.07": 395, "2.08": 380, "2.09": 365, "2.10": 350, "2.11": 340, "2.12": 330,
			"3.01": 300, "3.02": 285, "3.03": 270, "3.04": 260, "3.05": 250, "3.06": 240,
		},
		OverrideTeams: 12,
		DraftMonth:    4,
		DraftDay:      24,
	}
}
