// Package statsapi is the client for a JSON stats provider, an alternative to
// CSV sheets as the source of player stat tables.
package statsapi

import (
	"fmt"
	"math"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/riftline-labs/riftrank/internal/config"
	"github.com/riftline-labs/riftrank/internal/roster"
)

type StatsAPIInterface interface {
	GetPlayerStats() (PlayerStatsResponse, error)
	GetStatsTable() (*roster.Table, error)
}

type StatsAPI struct {
	cfg    *config.StatsAPIEnvConfig
	client *resty.Client
}

func NewStatsAPI(cfg *config.StatsAPIEnvConfig) (*StatsAPI, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	client := resty.New().
		SetBaseURL(cfg.StatsAPIUrl).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	return &StatsAPI{
		cfg:    cfg,
		client: client,
	}, nil
}

func (s *StatsAPI) GetPlayerStats() (PlayerStatsResponse, error) {
	var out PlayerStatsResponse
	resp, err := s.client.R().
		SetResult(&out).
		Get("/v1/player-stats")
	if err != nil {
		log.Error().Err(err).Msg("player-stats request failed")
		return PlayerStatsResponse{}, fmt.Errorf("get player stats: %w", err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Msg("player-stats non-2xx")
		return PlayerStatsResponse{}, fmt.Errorf("player-stats status %d: %s", resp.StatusCode(), resp.String())
	}
	if !out.Success {
		return PlayerStatsResponse{}, fmt.Errorf("player-stats api returned success=false")
	}
	return out, nil
}

// GetStatsTable fetches the provider's stat export and converts it to a
// roster table, mapping null values to absent cells.
func (s *StatsAPI) GetStatsTable() (*roster.Table, error) {
	out, err := s.GetPlayerStats()
	if err != nil {
		return nil, err
	}

	players := make([]string, len(out.Players))
	rows := make([][]float64, len(out.Players))
	for i, p := range out.Players {
		if len(p.Values) != len(out.Stats) {
			return nil, fmt.Errorf("player %q has %d values for %d stats", p.Player, len(p.Values), len(out.Stats))
		}
		players[i] = p.Player
		rows[i] = make([]float64, len(p.Values))
		for j, v := range p.Values {
			if v == nil {
				rows[i][j] = math.NaN()
				continue
			}
			rows[i][j] = *v
		}
	}

	t, err := roster.NewTable(players, out.Stats, rows)
	if err != nil {
		return nil, fmt.Errorf("build stats table: %w", err)
	}

	log.Debug().
		Int("players", len(players)).
		Int("stats", len(out.Stats)).
		Msg("loaded stats table from provider")
	return t, nil
}
