package leaderboard

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/riftline-labs/riftrank/internal/roster"
)

func testTable(t *testing.T) *roster.Table {
	t.Helper()
	table, err := roster.NewTable(
		[]string{"Faker", "Chovy", "Zeus"},
		[]string{"Games", "KDA"},
		[][]float64{
			{20, 5.2},
			{18, math.NaN()},
			{22, 3.9},
		},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestBuild(t *testing.T) {
	table := testTable(t)

	entries, err := Build(table, []float64{100, 40, 70})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Row order is preserved; sorting is a separate step.
	if entries[0].Player != "Faker" || entries[0].Rating != 100 {
		t.Errorf("entries[0] = %+v, want Faker rated 100", entries[0])
	}
	if entries[1].Stats["Games"] != 18 {
		t.Errorf("Chovy Games = %v, want 18", entries[1].Stats["Games"])
	}

	// Absent cells get no map key at all.
	if _, ok := entries[1].Stats["KDA"]; ok {
		t.Error("expected Chovy's absent KDA to be omitted from Stats")
	}
}

func TestBuild_LengthMismatch(t *testing.T) {
	table := testTable(t)

	if _, err := Build(table, []float64{100, 40}); err == nil {
		t.Fatal("expected error for 2 ratings against 3 players")
	}
}

func TestSortDesc(t *testing.T) {
	entries := []Entry{
		{Player: "a", Rating: 40},
		{Player: "b", Rating: 100},
		{Player: "c", Rating: 40},
		{Player: "d", Rating: 70},
	}

	SortDesc(entries)

	want := []string{"b", "d", "a", "c"} // ties keep row order
	for i, name := range want {
		if entries[i].Player != name {
			t.Errorf("entries[%d].Player = %s, want %s", i, entries[i].Player, name)
		}
	}
}

func TestTop(t *testing.T) {
	entries := make([]Entry, 30)

	if got := len(Top(entries, 5)); got != 5 {
		t.Errorf("Top(5) returned %d entries", got)
	}
	if got := len(Top(entries, 100)); got != 30 {
		t.Errorf("Top(100) returned %d entries, want all 30", got)
	}
	if got := len(Top(entries, 0)); got != DefaultTopN {
		t.Errorf("Top(0) returned %d entries, want DefaultTopN=%d", got, DefaultTopN)
	}
}

func TestRenderTable(t *testing.T) {
	entries := []Entry{
		{Player: "Faker", Rating: 100, Stats: map[string]float64{"Games": 20, "KDA": 5.2}},
		{Player: "Chovy", Rating: 40, Stats: map[string]float64{"Games": 18}},
	}

	var buf bytes.Buffer
	RenderTable(&buf, entries, []string{"Games", "KDA"})
	out := buf.String()

	if !strings.Contains(out, "--- Top 2 Highest Rated Players ---") {
		t.Errorf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "Faker") || !strings.Contains(out, "100.00") {
		t.Errorf("missing Faker row in output:\n%s", out)
	}
	// Chovy has no KDA value, so the cell renders as a dash.
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Chovy") && !strings.Contains(line, "-") {
			t.Errorf("expected a dash for Chovy's absent KDA, got line %q", line)
		}
	}
}

func TestRenderBarChart(t *testing.T) {
	t.Run("bars scale with rating", func(t *testing.T) {
		entries := []Entry{
			{Player: "low", Rating: 0},
			{Player: "mid", Rating: 50},
			{Player: "high", Rating: 100},
		}

		var buf bytes.Buffer
		RenderBarChart(&buf, entries, "Player Ratings")
		out := buf.String()

		lines := strings.Split(out, "\n")
		var lowLine, highLine string
		for _, line := range lines {
			if strings.Contains(line, "low") {
				lowLine = line
			}
			if strings.Contains(line, "high") {
				highLine = line
			}
		}
		if strings.Count(highLine, "█") != maxBarWidth {
			t.Errorf("expected full-width bar for the top player, got %q", highLine)
		}
		if !strings.Contains(lowLine, "▏") {
			t.Errorf("expected the minimal bar marker for the bottom player, got %q", lowLine)
		}
	})

	t.Run("equal ratings draw at half width", func(t *testing.T) {
		entries := []Entry{
			{Player: "a", Rating: 50},
			{Player: "b", Rating: 50},
		}

		var buf bytes.Buffer
		RenderBarChart(&buf, entries, "Player Ratings")

		var checked int
		for _, line := range strings.Split(buf.String(), "\n") {
			if !strings.HasPrefix(line, "a ") && !strings.HasPrefix(line, "b ") {
				continue
			}
			checked++
			if strings.Count(line, "█") != maxBarWidth/2 {
				t.Errorf("expected half-width bar, got %q", line)
			}
		}
		if checked != 2 {
			t.Errorf("found %d player rows, want 2", checked)
		}
	})

	t.Run("empty entries write nothing", func(t *testing.T) {
		var buf bytes.Buffer
		RenderBarChart(&buf, nil, "Player Ratings")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestWriteCSV(t *testing.T) {
	entries := []Entry{
		{Player: "Faker", Rating: 100, Stats: map[string]float64{"Games": 20, "KDA": 5.2}},
		{Player: "Chovy", Rating: 62.5, Stats: map[string]float64{"Games": 18}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries, []string{"Games", "KDA"}); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}

	want := [][]string{
		{"Player", "Rating", "Games", "KDA"},
		{"Faker", "100", "20", "5.2"},
		{"Chovy", "62.5", "18", "-"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}
