package keeper

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/riftline-labs/riftrank/internal/leaderboard"
	"github.com/riftline-labs/riftrank/internal/ratings"
	"github.com/riftline-labs/riftrank/pkg/servekit"
)

// RegisterRoutes wires the keeper's handlers onto the server, plus the
// allowlisted liveness route.
func (k *Keeper) RegisterRoutes(s *servekit.Server) {
	servekit.ServeRoute(s, k.RatePlayers)
	servekit.ServeRoute(s, k.Leaderboard)

	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// RatePlayers rates the cohort carried in the request body and returns it
// sorted from highest to lowest rating. TopN <= 0 returns every rated
// player.
func (k *Keeper) RatePlayers(c *fiber.Ctx, req RatePlayersRequest) (RatePlayersResponse, error) {
	if len(req.Players) == 0 {
		return RatePlayersResponse{}, fmt.Errorf("no players in request")
	}

	kept := make([]PlayerPayload, 0, len(req.Players))
	for _, p := range req.Players {
		if req.MinGames > 0 && (p.Games == nil || *p.Games < req.MinGames) {
			continue
		}
		kept = append(kept, p)
	}
	dropped := len(req.Players) - len(kept)

	m := ratings.NewStatMatrix(req.Stats, len(kept))
	for i, p := range kept {
		if len(p.Values) != len(req.Stats) {
			return RatePlayersResponse{}, fmt.Errorf("player %q has %d values for %d stats", p.Player, len(p.Values), len(req.Stats))
		}
		for j, v := range p.Values {
			if v == nil {
				continue // cells start out absent
			}
			m.Set(i, j, *v)
		}
	}

	computed, err := ratings.ComputeRatings(m, req.Weights)
	if err != nil {
		return RatePlayersResponse{}, err
	}

	rated := make([]RatedPlayer, len(kept))
	for i, p := range kept {
		rated[i] = RatedPlayer{Player: p.Player, Rating: computed[i]}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})

	if req.TopN > 0 && req.TopN < len(rated) {
		rated = rated[:req.TopN]
	}

	return RatePlayersResponse{Rated: rated, Dropped: dropped}, nil
}

// Leaderboard serves the latest cached snapshot, cut to the requested top-N.
func (k *Keeper) Leaderboard(c *fiber.Ctx, req LeaderboardRequest) (LeaderboardResponse, error) {
	snap := k.Snapshot()
	if snap == nil {
		return LeaderboardResponse{}, fmt.Errorf("no leaderboard snapshot yet")
	}

	return LeaderboardResponse{
		GeneratedAt: snap.GeneratedAt,
		Source:      snap.Source,
		Players:     snap.Players,
		Dropped:     snap.Dropped,
		Entries:     leaderboard.Top(snap.Entries, req.TopN),
	}, nil
}
