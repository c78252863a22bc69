package leaderboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const maxBarWidth = 50

// RenderTable writes the ranked players as a fixed-width table with a rating
// column followed by the requested stat columns. Stats a player has no value
// for render as a dash.
func RenderTable(w io.Writer, entries []Entry, stats []string) {
	nameWidth := len("Player")
	for _, e := range entries {
		if len(e.Player) > nameWidth {
			nameWidth = len(e.Player)
		}
	}

	widths := make([]int, len(stats))
	for j, name := range stats {
		widths[j] = len(name)
		if widths[j] < 8 {
			widths[j] = 8
		}
	}

	fmt.Fprintf(w, "\n--- Top %d Highest Rated Players ---\n", len(entries))

	fmt.Fprintf(w, "%-*s | %8s", nameWidth, "Player", "Rating")
	for j, name := range stats {
		fmt.Fprintf(w, " | %*s", widths[j], name)
	}
	fmt.Fprintln(w)

	sep := strings.Repeat("-", nameWidth) + "-|-" + strings.Repeat("-", 8)
	for j := range stats {
		sep += "-|-" + strings.Repeat("-", widths[j])
	}
	fmt.Fprintln(w, sep)

	for _, e := range entries {
		fmt.Fprintf(w, "%-*s | %8.2f", nameWidth, e.Player, e.Rating)
		for j, name := range stats {
			if v, ok := e.Stats[name]; ok {
				fmt.Fprintf(w, " | %*.2f", widths[j], v)
			} else {
				fmt.Fprintf(w, " | %*s", widths[j], "-")
			}
		}
		fmt.Fprintln(w)
	}
}

// RenderBarChart writes a horizontal bar per player, lowest rating first, bar
// width scaled between the observed extremes. When every rating ties the bars
// draw at half width.
func RenderBarChart(w io.Writer, entries []Entry, title string) {
	if len(entries) == 0 {
		return
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating < sorted[j].Rating
	})

	minRating := sorted[0].Rating
	maxRating := sorted[len(sorted)-1].Rating

	nameWidth := len("Player")
	for _, e := range sorted {
		if len(e.Player) > nameWidth {
			nameWidth = len(e.Player)
		}
	}

	fmt.Fprintf(w, "\n%s (ascending):\n", title)
	fmt.Fprintf(w, "%-*s | %8s | Bar Chart\n", nameWidth, "Player", "Rating")
	fmt.Fprintln(w, strings.Repeat("-", nameWidth)+"-|----------|"+strings.Repeat("-", maxBarWidth))

	for _, e := range sorted {
		var barWidth int
		if maxRating != minRating {
			barWidth = int((e.Rating - minRating) / (maxRating - minRating) * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%-*s | %8.2f | %s\n", nameWidth, e.Player, e.Rating, bar)
	}

	fmt.Fprintf(w, "\nScale: Min=%.2f, Max=%.2f\n", minRating, maxRating)
}

// WriteCSV exports the leaderboard for downstream tooling: a Player and
// Rating column followed by the requested stats, absent cells written as the
// dash sentinel the reader recognizes.
func WriteCSV(w io.Writer, entries []Entry, stats []string) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Player", "Rating"}, stats...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, 0, len(header))
	for _, e := range entries {
		record = record[:0]
		record = append(record, e.Player, strconv.FormatFloat(e.Rating, 'f', -1, 64))
		for _, name := range stats {
			if v, ok := e.Stats[name]; ok {
				record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				record = append(record, "-")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s: %w", e.Player, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
