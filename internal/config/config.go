// Package config assembles the engine configuration from YAML. Every section
// starts from its package defaults; a file only needs the keys it changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/history"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/data/market"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/confidence"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/dynasty"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/picks"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/tiers"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/domain/vorp"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/pricing"
	"github.com/TheCiege23/allfantasy-webapp-sub001/internal/trade"
)

// MarketConfig points at the live values provider
type MarketConfig struct {
	BaseURL string             `yaml:"base_url"` // empty disables the live market
	Timeout time.Duration      `yaml:"timeout"`
	Cache   market.CacheConfig `yaml:"cache"`
	Guard   market.GuardConfig `yaml:"guard"`
}

// Config is the complete engine configuration
type Config struct {
	Dynasty    dynasty.Config    `yaml:"dynasty"`
	Picks      picks.Config      `yaml:"picks"`
	Vorp       vorp.Config       `yaml:"vorp"`
	Tiers      tiers.Config      `yaml:"tiers"`
	Pricing    pricing.Config    `yaml:"pricing"`
	Trade      trade.Config      `yaml:"trade"`
	Confidence confidence.Config `yaml:"confidence"`
	History    history.Config    `yaml:"history"`
	Market     MarketConfig      `yaml:"market"`
}

// Default returns the production configuration
func Default() *Config {
	return &Config{
		Dynasty:    dynasty.DefaultConfig(),
		Picks:      picks.DefaultConfig(),
		Vorp:       vorp.DefaultConfig(),
		Tiers:      tiers.DefaultConfig(),
		Pricing:    pricing.DefaultConfig(),
		Trade:      trade.DefaultConfig(),
		Confidence: confidence.DefaultConfig(),
		History:    history.DefaultConfig(),
		Market: MarketConfig{
			Timeout: 10 * time.Second,
			Cache:   market.DefaultCacheConfig(),
			Guard:   market.DefaultGuardConfig(),
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate returns every consistency problem found
func (c *Config) Validate() []string {
	var problems []string

	w := c.History.BucketWeights
	if w.Early < 0 || w.Mid < 0 || w.Late < 0 || w.Early+w.Mid+w.Late <= 0 {
		problems = append(problems, "history.bucket_weights must be non-negative with a positive sum")
	}

	cc := c.Confidence
	if cc.Min > cc.Max {
		problems = append(problems, fmt.Sprintf("confidence.min %.2f exceeds confidence.max %.2f", cc.Min, cc.Max))
	}
	if cc.LearningThreshold > cc.HighThreshold {
		problems = append(problems, "confidence.learning_threshold exceeds confidence.high_threshold")
	}

	cl := c.Trade.Classification
	if !(cl.SlightEdgeDelta <= cl.LopsidedDelta && cl.LopsidedDelta <= cl.VeryLopsidedDelta && cl.VeryLopsidedDelta <= cl.UnrealisticDelta) {
		problems = append(problems, "trade.classification deltas must be ascending")
	}
	if c.Trade.ConsolidationDiscount < 0 || c.Trade.ConsolidationDiscount >= 1 {
		problems = append(problems, fmt.Sprintf("trade.consolidation_discount %.2f outside [0, 1)", c.Trade.ConsolidationDiscount))
	}
	if c.Trade.MaxValueRatio < 1 {
		problems = append(problems, "trade.max_value_ratio must be at least 1")
	}
	for i := 1; i < len(c.Trade.IDPSteps); i++ {
		if c.Trade.IDPSteps[i].MaxStarters <= c.Trade.IDPSteps[i-1].MaxStarters {
			problems = append(problems, "trade.idp_steps must be ordered by max_starters")
			break
		}
	}

	if len(c.Tiers.Tables) > 5 {
		problems = append(problems, fmt.Sprintf("tiers.tables has %d tables, at most 5 tiers exist", len(c.Tiers.Tables)))
	}

	m := c.Market
	if m.Cache.TTL <= 0 {
		problems = append(problems, "market.cache.ttl must be positive")
	}
	if m.Cache.StaleFor < 0 {
		problems = append(problems, "market.cache.stale_for must not be negative")
	}
	if m.Guard.RPS < 0 {
		problems = append(problems, "market.guard.rps must not be negative")
	}
	if m.BaseURL != "" && !strings.HasPrefix(m.BaseURL, "http://") && !strings.HasPrefix(m.BaseURL, "https://") {
		problems = append(problems, fmt.Sprintf("market.base_url %q is not an http(s) URL", m.BaseURL))
	}
	if c.History.Dir != "" && c.History.DSN != "" {
		problems = append(problems, "history.dir and history.dsn are mutually exclusive")
	}

	return problems
}

// DefaultPath is where the CLI looks when no --config is given
func DefaultPath() string {
	return filepath.Join("config", "engine.yaml")
}
