package keeper

import (
	"fmt"

	"github.com/riftline-labs/riftrank/internal/config"
	"github.com/riftline-labs/riftrank/internal/leaderboard"
	"github.com/riftline-labs/riftrank/internal/ratings"
	"github.com/riftline-labs/riftrank/internal/roster"
)

// Ranking is the result of one full rating pass over a stat table.
type Ranking struct {
	Entries []leaderboard.Entry // sorted from highest to lowest rating
	Players int                 // players rated after filtering
	Dropped int                 // players below the games threshold
	Missing []string            // profile stats the source did not carry
}

// Rank runs the whole pipeline over a loaded table: reconcile the profile
// against the available columns, filter out players below the games
// threshold, rate the rest, and join the ratings back onto the players. Both
// the CLI and the keeper's refresh go through here.
//
// A MinGames of zero skips filtering entirely, keeping even players whose
// games cell is absent.
func Rank(t *roster.Table, p *config.Profile) (*Ranking, error) {
	kept, missing, err := p.Reconcile(t.Columns())
	if err != nil {
		return nil, err
	}

	filtered := t
	dropped := 0
	if kept.MinGames > 0 {
		filtered, dropped, err = t.FilterMinGames(kept.GamesColumn, kept.MinGames)
		if err != nil {
			return nil, err
		}
	}

	matrix, err := filtered.Select(kept.Stats)
	if err != nil {
		return nil, err
	}

	computed, err := ratings.ComputeRatings(matrix, kept.Weights)
	if err != nil {
		return nil, fmt.Errorf("rate %d players: %w", filtered.Len(), err)
	}

	entries, err := leaderboard.Build(filtered, computed)
	if err != nil {
		return nil, err
	}
	leaderboard.SortDesc(entries)

	return &Ranking{
		Entries: entries,
		Players: filtered.Len(),
		Dropped: dropped,
		Missing: missing,
	}, nil
}
