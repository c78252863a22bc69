// Package leaderboard joins computed ratings back onto player rows and
// renders the ranked result: fixed-width tables, terminal bar charts, CSV
// exports.
package leaderboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/riftline-labs/riftrank/internal/roster"
)

// DefaultTopN bounds how many players the rendered leaderboard shows unless
// the caller asks for a different cut.
const DefaultTopN = 20

// Entry is one player's row on the leaderboard. Stats holds the player's
// recorded table values for display; absent cells have no key, so entries
// marshal cleanly to JSON.
type Entry struct {
	Player string             `json:"player"`
	Rating float64            `json:"rating"`
	Stats  map[string]float64 `json:"stats,omitempty"`
}

// Build joins one rating per table row onto the players, preserving row
// order. Ratings must align with the table the engine was fed from, so their
// lengths have to agree.
func Build(t *roster.Table, ratings []float64) ([]Entry, error) {
	if t.Len() != len(ratings) {
		return nil, fmt.Errorf("got %d ratings for %d players", len(ratings), t.Len())
	}

	players := t.Players()
	entries := make([]Entry, len(players))
	for i, player := range players {
		entries[i] = Entry{
			Player: player,
			Rating: ratings[i],
			Stats:  make(map[string]float64),
		}
	}

	for _, name := range t.Columns() {
		col, err := t.Column(name)
		if err != nil {
			// Non-numeric columns stay off the leaderboard.
			continue
		}
		for i, v := range col {
			if math.IsNaN(v) {
				continue
			}
			entries[i].Stats[name] = v
		}
	}

	return entries, nil
}

// SortDesc orders entries from highest to lowest rating. The sort is stable,
// so tied players keep their original row order.
func SortDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rating > entries[j].Rating
	})
}

// Top returns the first n entries, or all of them when fewer exist. n <= 0
// falls back to DefaultTopN.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
