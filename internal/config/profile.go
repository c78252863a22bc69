package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/riftline-labs/riftrank/internal/ratings"
)

// Profile is the full configuration surface of a rating run: which stats feed
// the composite, how they are weighted, and which players qualify.
type Profile struct {
	Stats        []string             `yaml:"stats" json:"stats"`
	Weights      ratings.WeightVector `yaml:"weights" json:"weights"`
	MinGames     float64              `yaml:"minGames" json:"minGames"`
	GamesColumn  string               `yaml:"gamesColumn" json:"gamesColumn"`
	DisplayStats []string             `yaml:"displayStats" json:"displayStats"`
}

// DefaultProfile is the built-in profile used when no profile file is given.
func DefaultProfile() *Profile {
	return &Profile{
		Stats:        []string{"Win Rate", "KDA", "GPM", "DMG%", "GD@15", "VSPM"},
		Weights:      ratings.WeightVector{0.25, 0.25, 0.15, 0.15, 0.10, 0.10},
		MinGames:     15,
		GamesColumn:  "Games",
		DisplayStats: []string{"Games", "Win Rate", "KDA", "GPM", "DMG%"},
	}
}

func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if len(p.Stats) == 0 {
		return fmt.Errorf("profile has no stats")
	}
	seen := make(map[string]bool, len(p.Stats))
	for _, name := range p.Stats {
		if name == "" {
			return fmt.Errorf("profile has an empty stat name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate stat %q in profile", name)
		}
		seen[name] = true
	}
	if len(p.Weights) != len(p.Stats) {
		return fmt.Errorf("profile has %d weights for %d stats", len(p.Weights), len(p.Stats))
	}
	if err := p.Weights.Validate(); err != nil {
		return fmt.Errorf("invalid profile weights: %w", err)
	}
	if p.MinGames < 0 {
		return fmt.Errorf("minGames cannot be negative, got %v", p.MinGames)
	}
	if p.GamesColumn == "" {
		return fmt.Errorf("profile has no games column")
	}
	return nil
}

// Reconcile returns a copy of the profile restricted to the stats present in
// available, along with the names that were dropped. The remaining weights are
// renormalized to sum 1, which is equivalent to dropping the weights outright
// since the rating scale is invariant under positive scaling of all weights.
func (p *Profile) Reconcile(available []string) (*Profile, []string, error) {
	have := make(map[string]bool, len(available))
	for _, name := range available {
		have[name] = true
	}

	kept := &Profile{
		MinGames:     p.MinGames,
		GamesColumn:  p.GamesColumn,
		DisplayStats: p.DisplayStats,
	}
	var missing []string
	for i, name := range p.Stats {
		if !have[name] {
			missing = append(missing, name)
			log.Warn().Str("stat", name).Msg("profile stat not present in source, dropping it from the rating")
			continue
		}
		kept.Stats = append(kept.Stats, name)
		kept.Weights = append(kept.Weights, p.Weights[i])
	}
	if len(kept.Stats) == 0 {
		return nil, missing, fmt.Errorf("none of the profile stats are present in the source")
	}
	kept.Weights = kept.Weights.Normalized()
	return kept, missing, nil
}

// LoadProfile reads a profile from a YAML or JSON file, fills in defaults for
// the games column and display stats, and validates the result.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p := &Profile{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("parse yaml profile: %w", err)
		}
	case ".json":
		if err := sonic.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("parse json profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q, want .yaml, .yml or .json", ext)
	}

	if p.GamesColumn == "" {
		p.GamesColumn = DefaultProfile().GamesColumn
	}
	if len(p.DisplayStats) == 0 {
		p.DisplayStats = append([]string{p.GamesColumn}, p.Stats...)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}
