package keeper

import (
	"time"

	"github.com/riftline-labs/riftrank/internal/leaderboard"
	"github.com/riftline-labs/riftrank/internal/ratings"
)

// RatePlayersRequest rates an inline cohort in one shot: the caller supplies
// the stat columns, the weights, and one row per player. A null cell marks an
// absent measurement.
type RatePlayersRequest struct {
	Stats    []string             `json:"stats"`
	Weights  ratings.WeightVector `json:"weights"`
	MinGames float64              `json:"minGames,omitempty"`
	TopN     int                  `json:"topN,omitempty"`
	Players  []PlayerPayload      `json:"players"`
}

type PlayerPayload struct {
	Player string     `json:"player"`
	Games  *float64   `json:"games,omitempty"`
	Values []*float64 `json:"values"`
}

type RatedPlayer struct {
	Player string  `json:"player"`
	Rating float64 `json:"rating"`
}

// RatePlayersResponse carries the rated cohort sorted from highest to lowest
// rating, cut to TopN when the request asked for one.
type RatePlayersResponse struct {
	Rated   []RatedPlayer `json:"rated"`
	Dropped int           `json:"dropped"`
}

// LeaderboardRequest asks for the latest cached leaderboard snapshot.
type LeaderboardRequest struct {
	TopN int `json:"topN,omitempty"`
}

type LeaderboardResponse struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Source      string              `json:"source"`
	Players     int                 `json:"players"`
	Dropped     int                 `json:"dropped"`
	Entries     []leaderboard.Entry `json:"entries"`
}

// Snapshot is one fully computed leaderboard. A snapshot is never mutated
// after it is stored; each refresh replaces it wholesale, so readers may hold
// onto one without copying.
type Snapshot struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Source      string              `json:"source"`
	Players     int                 `json:"players"`
	Dropped     int                 `json:"dropped"`
	Entries     []leaderboard.Entry `json:"entries"`
}
