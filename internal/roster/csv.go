package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// defaultAbsentTokens are the cell values treated as an absent stat, matching
// the sentinels stat sheet exports tend to use.
var defaultAbsentTokens = []string{"", "-", "NaN", "nan", "NA", "na", "null"}

type readerConfig struct {
	absentTokens map[string]bool
	playerColumn string
}

type ReaderOption func(*readerConfig)

// WithAbsentTokens replaces the set of cell values treated as absent.
func WithAbsentTokens(tokens ...string) ReaderOption {
	return func(cfg *readerConfig) {
		cfg.absentTokens = make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			cfg.absentTokens[tok] = true
		}
	}
}

// WithPlayerColumn selects the named header as the player identifier column
// instead of the first column.
func WithPlayerColumn(name string) ReaderOption {
	return func(cfg *readerConfig) {
		cfg.playerColumn = name
	}
}

// ReadCSV parses a stat sheet. The first column holds player identifiers
// unless WithPlayerColumn says otherwise, columns with an empty header are
// dropped, and absent-value sentinels become NaN cells.
func ReadCSV(r io.Reader, opts ...ReaderOption) (*Table, error) {
	cfg := &readerConfig{}
	WithAbsentTokens(defaultAbsentTokens...)(cfg)
	for _, opt := range opts {
		opt(cfg)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("stat sheet is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for j := range header {
		header[j] = strings.TrimSpace(header[j])
	}

	playerIdx := 0
	if cfg.playerColumn != "" {
		playerIdx = -1
		for j, name := range header {
			if name == cfg.playerColumn {
				playerIdx = j
				break
			}
		}
		if playerIdx < 0 {
			return nil, fmt.Errorf("no player column %q in header", cfg.playerColumn)
		}
	}

	// Map kept header positions to table columns, skipping the player column
	// and anything unnamed.
	colIdx := make([]int, 0, len(header))
	names := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for j, name := range header {
		if j == playerIdx {
			continue
		}
		if name == "" {
			log.Warn().Int("position", j+1).Msg("dropping unnamed column from stat sheet")
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		seen[name] = true
		colIdx = append(colIdx, j)
		names = append(names, name)
	}

	t := newTable(nil, names)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		t.players = append(t.players, strings.TrimSpace(record[playerIdx]))
		for c, j := range colIdx {
			tok := strings.TrimSpace(record[j])
			if cfg.absentTokens[tok] {
				t.values[c] = append(t.values[c], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				if t.colErr[c] == nil {
					t.colErr[c] = fmt.Errorf("column %q row %d: cannot parse %q as a number", names[c], row, tok)
				}
				t.values[c] = append(t.values[c], math.NaN())
				continue
			}
			t.values[c] = append(t.values[c], v)
		}
	}
	return t, nil
}
