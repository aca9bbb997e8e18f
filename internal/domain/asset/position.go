package asset

import "strings"

// Position is a canonical roster position
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
	DL  Position = "DL"
	LB  Position = "LB"
	DB  Position = "DB"
)

var positionAliases = map[string]Position{
	"QB": QB, "RB": RB, "HB": RB, "FB": RB, "WR": WR, "TE": TE,
	"K": K, "PK": K, "DST": DST, "DEF": DST, "D/ST": DST,
	"DL": DL, "DE": DL, "DT": DL, "EDGE": DL, "NT": DL,
	"LB": LB, "ILB": LB, "OLB": LB, "MLB": LB,
	"DB": DB, "CB": DB, "S": DB, "FS": DB, "SS": DB,
}

// ParsePosition maps provider spellings onto canonical positions. Unknown
// strings are upper-cased and passed through.
func ParsePosition(s string) Position {
	key := strings.ToUpper(strings.TrimSpace(s))
	if p, ok := positionAliases[key]; ok {
		return p
	}
	return Position(key)
}

// IsIDP reports whether the position is an individual defensive player
func (p Position) IsIDP() bool {
	switch p {
	case DL, LB, DB:
		return true
	}
	return false
}

// IsOffense reports whether the position is a skill offensive position
func (p Position) IsOffense() bool {
	switch p {
	case QB, RB, WR, TE:
		return true
	}
	return false
}
