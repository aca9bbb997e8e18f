package application

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/asset"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/trade"
)

// AssetEntry is one asset line of a trade file. A pick may be written as a
// descriptor ("2026 1st early") instead of spelled-out fields.
type AssetEntry struct {
	asset.Spec `yaml:",inline"`
	Pick       string `yaml:"pick,omitempty"`
}

// TradeFile is the on-disk trade format (YAML or JSON)
type TradeFile struct {
	League    *asset.LeagueSettings `yaml:"league"`
	TimelineA string                `yaml:"timeline_a"`
	TimelineB string                `yaml:"timeline_b"`
	AsOf      string                `yaml:"as_of"` // YYYY-MM-DD, empty means now
	SideA     []AssetEntry          `yaml:"side_a"`
	SideB     []AssetEntry          `yaml:"side_b"`
}

// LoadTrade reads a trade file into a request
func LoadTrade(path string) (trade.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return trade.Request{}, fmt.Errorf("failed to read trade file: %w", err)
	}
	req, err := ParseTrade(data)
	if err != nil {
		return trade.Request{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// ParseTrade decodes a trade document. A league block only needs the
// settings that differ from the defaults.
func ParseTrade(data []byte) (trade.Request, error) {
	league := asset.DefaultLeagueSettings()
	tf := TradeFile{League: &league}
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return trade.Request{}, fmt.Errorf("failed to parse trade: %w", err)
	}
	return tf.Request()
}

// Request converts the file into an evaluator request
func (tf TradeFile) Request() (trade.Request, error) {
	req := trade.Request{
		League:    asset.DefaultLeagueSettings(),
		TimelineA: trade.ParseTimeline(strings.ToLower(tf.TimelineA)),
		TimelineB: trade.ParseTimeline(strings.ToLower(tf.TimelineB)),
	}
	if tf.League != nil {
		req.League = *tf.League
	}
	if tf.AsOf != "" {
		t, err := time.Parse("2006-01-02", tf.AsOf)
		if err != nil {
			return trade.Request{}, fmt.Errorf("invalid as_of %q: %w", tf.AsOf, err)
		}
		req.AsOf = t
	}

	var err error
	if req.SideA, err = specs(tf.SideA); err != nil {
		return trade.Request{}, fmt.Errorf("side_a: %w", err)
	}
	if req.SideB, err = specs(tf.SideB); err != nil {
		return trade.Request{}, fmt.Errorf("side_b: %w", err)
	}
	if len(req.SideA) == 0 && len(req.SideB) == 0 {
		return trade.Request{}, fmt.Errorf("trade has no assets")
	}
	return req, nil
}

func specs(entries []AssetEntry) ([]asset.Spec, error) {
	out := make([]asset.Spec, 0, len(entries))
	for i, e := range entries {
		spec, err := e.resolve()
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", i+1, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

func (e AssetEntry) resolve() (asset.Spec, error) {
	if e.Pick != "" {
		return picks.ParseDescriptor(e.Pick)
	}
	s := e.Spec
	if s.Kind == asset.KindPick || (s.Kind == "" && s.Name == "" && s.Season > 0) {
		s.Kind = asset.KindPick
		s.Bucket = asset.ParseBucket(string(s.Bucket))
		if s.Season <= 0 || s.Round <= 0 {
			return asset.Spec{}, fmt.Errorf("pick needs a season and a round")
		}
		return s, nil
	}
	if s.Name == "" {
		return asset.Spec{}, fmt.Errorf("player needs a name")
	}
	s.Kind = asset.KindPlayer
	s.Position = asset.ParsePosition(string(s.Position))
	return s, nil
}
