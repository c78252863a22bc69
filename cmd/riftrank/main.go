package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/riftline-labs/riftrank/internal/config"
	"github.com/riftline-labs/riftrank/internal/keeper"
	"github.com/riftline-labs/riftrank/internal/leaderboard"
	"github.com/riftline-labs/riftrank/internal/roster"
	"github.com/riftline-labs/riftrank/internal/statsapi"
	"github.com/riftline-labs/riftrank/internal/utils/logger"
	"github.com/riftline-labs/riftrank/pkg/servekit"
)

var (
	sourceFlag  = flag.String("source", "", "stat sheet to load: a CSV path (.csv, .csv.gz, .csv.zst) or an http(s) URL")
	apiFlag     = flag.String("api", "", "stats provider base URL to load the table from instead of a sheet")
	profileFlag = flag.String("profile", "", "rating profile file (.yaml or .json); defaults to the built-in profile")
	topFlag     = flag.Int("top", leaderboard.DefaultTopN, "how many players to display")
	chartFlag   = flag.Bool("chart", false, "draw a terminal bar chart of the displayed ratings")
	outFlag     = flag.String("out", "", "write the full leaderboard to a CSV file")
	serverFlag  = flag.String("server", "", "riftrankd base URL; rate the loaded table remotely instead of locally")
)

func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	profile := resolveProfile(cfg)
	table, source := loadTable(cfg)
	log.Info().
		Str("source", source).
		Int("players", table.Len()).
		Int("columns", len(table.Columns())).
		Msg("stat sheet loaded")

	if *serverFlag != "" {
		rateRemotely(table, profile)
		return
	}

	ranking, err := keeper.Rank(table, profile)
	if err != nil {
		log.Fatal().Err(err).Msg("rating computation failed")
	}
	log.Info().
		Int("rated", ranking.Players).
		Int("dropped", ranking.Dropped).
		Msg("ratings computed")

	top := leaderboard.Top(ranking.Entries, *topFlag)
	leaderboard.RenderTable(os.Stdout, top, profile.DisplayStats)

	if *chartFlag {
		leaderboard.RenderBarChart(os.Stdout, top, "Player Ratings")
	}

	if *outFlag != "" {
		exportCSV(ranking.Entries, profile, *outFlag)
	}
}

func resolveProfile(cfg *config.AppConfig) *config.Profile {
	path := *profileFlag
	if path == "" {
		path = cfg.ProfilePath
	}
	if path == "" {
		return config.DefaultProfile()
	}

	p, err := config.LoadProfile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load rating profile")
	}
	return p
}

// loadTable resolves the stat source: flags first, then environment, in the
// same order the keeper uses.
func loadTable(cfg *config.AppConfig) (*roster.Table, string) {
	switch {
	case *apiFlag != "":
		return loadFromAPI(*apiFlag), *apiFlag
	case *sourceFlag != "":
		return openSource(*sourceFlag), *sourceFlag
	case cfg.SourcePath != "":
		return openSource(cfg.SourcePath), cfg.SourcePath
	case cfg.SourceURL != "":
		return openSource(cfg.SourceURL), cfg.SourceURL
	case cfg.StatsAPIUrl != "":
		return loadFromAPI(cfg.StatsAPIUrl), cfg.StatsAPIUrl
	}

	log.Fatal().Msg("no stat source: pass -source or -api, or set SOURCE_PATH, SOURCE_URL or STATS_API_URL")
	return nil, ""
}

func openSource(src string) *roster.Table {
	var (
		t   *roster.Table
		err error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		t, err = roster.Fetch(context.Background(), src)
	} else {
		t, err = roster.Open(src)
	}
	if err != nil {
		log.Fatal().Err(err).Str("source", src).Msg("failed to load stat sheet")
	}
	return t
}

func loadFromAPI(baseURL string) *roster.Table {
	api, err := statsapi.NewStatsAPI(&config.StatsAPIEnvConfig{StatsAPIUrl: baseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init stats api client")
	}

	t, err := api.GetStatsTable()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load table from stats api")
	}
	return t
}

// rateRemotely ships the loaded table to a riftrankd instance and prints the
// rated cohort it sends back.
func rateRemotely(table *roster.Table, profile *config.Profile) {
	req, err := buildRateRequest(table, profile, *topFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build rating request")
	}

	client, err := servekit.NewClient(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init client")
	}
	defer client.Close()

	var resp keeper.RatePlayersResponse
	if err := client.Send(*serverFlag, req, &resp); err != nil {
		log.Fatal().Err(err).Str("server", *serverFlag).Msg("remote rating failed")
	}

	fmt.Printf("\n--- Top %d Highest Rated Players ---\n", len(resp.Rated))
	for i, r := range resp.Rated {
		fmt.Printf("%2d. %-24s %8.2f\n", i+1, r.Player, r.Rating)
	}
	if resp.Dropped > 0 {
		fmt.Printf("(%d players below the games threshold)\n", resp.Dropped)
	}
}

func buildRateRequest(table *roster.Table, p *config.Profile, topN int) (keeper.RatePlayersRequest, error) {
	kept, _, err := p.Reconcile(table.Columns())
	if err != nil {
		return keeper.RatePlayersRequest{}, err
	}

	players := table.Players()
	payloads := make([]keeper.PlayerPayload, len(players))
	for i := range payloads {
		payloads[i] = keeper.PlayerPayload{
			Player: players[i],
			Values: make([]*float64, len(kept.Stats)),
		}
	}

	for j, name := range kept.Stats {
		col, err := table.Column(name)
		if err != nil {
			return keeper.RatePlayersRequest{}, err
		}
		for i, v := range col {
			if math.IsNaN(v) {
				continue // absent cells travel as null
			}
			val := v
			payloads[i].Values[j] = &val
		}
	}

	if games, err := table.Column(kept.GamesColumn); err == nil {
		for i, g := range games {
			if math.IsNaN(g) {
				continue
			}
			val := g
			payloads[i].Games = &val
		}
	}

	return keeper.RatePlayersRequest{
		Stats:    kept.Stats,
		Weights:  kept.Weights,
		MinGames: kept.MinGames,
		TopN:     topN,
		Players:  payloads,
	}, nil
}

func exportCSV(entries []leaderboard.Entry, p *config.Profile, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to create export file")
	}
	defer f.Close()

	if err := leaderboard.WriteCSV(f, entries, p.DisplayStats); err != nil {
		log.Fatal().Err(err).Msg("failed to export leaderboard")
	}
	log.Info().Str("path", path).Int("players", len(entries)).Msg("leaderboard exported")
}
