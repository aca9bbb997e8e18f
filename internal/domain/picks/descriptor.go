package picks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
)

// Key is the canonical archive key of a pick, e.g. "2026-1-early". Picks
// without a bucket use "2026-1".
func Key(season, round int, bucket asset.Bucket) string {
	if bucket == asset.BucketUnknown {
		return fmt.Sprintf("%d-%d", season, round)
	}
	return fmt.Sprintf("%d-%d-%s", season, round, bucket)
}

var (
	reSlot    = regexp.MustCompile(`^(\d{4})\s+(\d{1,2})\.(\d{1,2})$`)
	reKey     = regexp.MustCompile(`^(\d{4})-(\d{1,2})(?:-(early|mid|late))?$`)
	reRound   = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?$`)
	reYear    = regexp.MustCompile(`^\d{4}$`)
	dropWords = map[string]bool{"round": true, "rd": true, "pick": true, "rookie": true}
)

// ParseDescriptor understands "2026-1-early", "2026 1.04", "2026 1st early",
// "2026 early 1st" and "2027 round 2".
func ParseDescriptor(s string) (asset.Spec, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if m := reKey.FindStringSubmatch(raw); m != nil {
		season, _ := strconv.Atoi(m[1])
		round, _ := strconv.Atoi(m[2])
		return asset.Pick(season, round, asset.ParseBucket(m[3])), nil
	}
	if m := reSlot.FindStringSubmatch(raw); m != nil {
		season, _ := strconv.Atoi(m[1])
		round, _ := strconv.Atoi(m[2])
		slot, _ := strconv.Atoi(m[3])
		spec := asset.Pick(season, round, asset.BucketUnknown)
		spec.PickNumber = slot
		return spec, nil
	}

	spec := asset.Spec{Kind: asset.KindPick}
	for _, tok := range strings.FieldsFunc(raw, func(r rune) bool { return r == ' ' || r == '(' || r == ')' || r == ',' }) {
		switch {
		case dropWords[tok]:
		case reYear.MatchString(tok):
			spec.Season, _ = strconv.Atoi(tok)
		case asset.ParseBucket(tok) != asset.BucketUnknown:
			spec.Bucket = asset.ParseBucket(tok)
		case reRound.MatchString(tok):
			m := reRound.FindStringSubmatch(tok)
			spec.Round, _ = strconv.Atoi(m[1])
		default:
			return asset.Spec{}, fmt.Errorf("unrecognised pick token %q in %q", tok, s)
		}
	}
	if spec.Season == 0 || spec.Round == 0 {
		return asset.Spec{}, fmt.Errorf("pick descriptor %q needs a season and a round", s)
	}
	return spec, nil
}
