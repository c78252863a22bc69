// Package roster loads player stat tables from CSV sources and prepares them
// for rating: filtering out players with too few games and selecting the stat
// columns a profile asks for.
package roster

import (
	"fmt"
	"math"

	"github.com/riftline-labs/riftrank/internal/ratings"
)

// Table is a column-major view of a loaded stat sheet. The player identifier
// column is kept separately; every other column holds float cells where NaN
// marks an absent value. Columns whose cells fail to parse are carried with
// the first parse failure attached and only error out when they are used, so
// a text column like a team name never blocks a purely numeric profile.
type Table struct {
	players []string
	names   []string
	byName  map[string]int
	values  [][]float64
	colErr  []error
}

func newTable(players []string, names []string) *Table {
	t := &Table{
		players: players,
		names:   names,
		byName:  make(map[string]int, len(names)),
		values:  make([][]float64, len(names)),
		colErr:  make([]error, len(names)),
	}
	for j, name := range names {
		t.byName[name] = j
		t.values[j] = make([]float64, 0, len(players))
	}
	return t
}

// NewTable builds a table from row-major cells, one row per player and one
// value per column. NaN cells mark absent values, the same convention the CSV
// reader uses for sentinel tokens.
func NewTable(players []string, columns []string, rows [][]float64) (*Table, error) {
	if len(rows) != len(players) {
		return nil, fmt.Errorf("got %d rows for %d players", len(rows), len(players))
	}
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("table has an unnamed column")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
	}

	t := newTable(append([]string(nil), players...), columns)
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(columns))
		}
		for j, v := range row {
			t.values[j] = append(t.values[j], v)
		}
	}
	return t, nil
}

// Len returns the number of player rows.
func (t *Table) Len() int {
	return len(t.players)
}

// Players returns the player identifiers in row order.
func (t *Table) Players() []string {
	out := make([]string, len(t.players))
	copy(out, t.players)
	return out
}

// Columns returns the stat column names in sheet order, excluding the player
// identifier column.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column returns the values of a numeric column, NaN for absent cells. It
// errors when the column is unknown or contained cells that did not parse.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("no column %q in table", name)
	}
	if t.colErr[j] != nil {
		return nil, t.colErr[j]
	}
	out := make([]float64, len(t.values[j]))
	copy(out, t.values[j])
	return out, nil
}

// FilterMinGames returns a copy of the table keeping only players whose games
// count is at least min. Players with an absent games cell are dropped too.
// The second return is the number of players dropped.
func (t *Table) FilterMinGames(gamesColumn string, min float64) (*Table, int, error) {
	games, err := t.Column(gamesColumn)
	if err != nil {
		return nil, 0, fmt.Errorf("games column: %w", err)
	}

	keep := make([]int, 0, t.Len())
	for i, g := range games {
		if math.IsNaN(g) || g < min {
			continue
		}
		keep = append(keep, i)
	}

	out := newTable(make([]string, 0, len(keep)), t.Columns())
	copy(out.colErr, t.colErr)
	for _, i := range keep {
		out.players = append(out.players, t.players[i])
		for j := range t.values {
			out.values[j] = append(out.values[j], t.values[j][i])
		}
	}
	return out, t.Len() - len(keep), nil
}

// Select assembles the requested stat columns into a stat matrix with one row
// per player, in the given stat order.
func (t *Table) Select(stats []string) (*ratings.StatMatrix, error) {
	m := ratings.NewStatMatrix(stats, t.Len())
	for j, name := range stats {
		col, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", name, err)
		}
		for i, v := range col {
			if math.IsNaN(v) {
				continue
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}
