package statsapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riftline-labs/riftrank/internal/config"
)

func f(v float64) *float64 { return &v }

func TestNewStatsAPI_NilConfig(t *testing.T) {
	_, err := NewStatsAPI(nil)
	if err == nil {
		t.Fatal("expected error when cfg is nil")
	}
}

func TestGetPlayerStats_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/player-stats" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		resp := PlayerStatsResponse{
			Success: true,
			Stats:   []string{"Games", "Win Rate"},
			Players: []PlayerRow{
				{Player: "Faker", Values: []*float64{f(20), f(0.65)}},
				{Player: "Chovy", Values: []*float64{f(18), nil}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	cfg := &config.StatsAPIEnvConfig{StatsAPIUrl: ts.URL}
	api, err := NewStatsAPI(cfg)
	if err != nil {
		t.Fatalf("unexpected new error: %v", err)
	}

	out, err := api.GetPlayerStats()
	if err != nil {
		t.Fatalf("GetPlayerStats failed: %v", err)
	}
	if !out.Success || len(out.Players) != 2 || out.Players[0].Player != "Faker" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestGetPlayerStats_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := fmt.Fprint(w, "boom"); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	cfg := &config.StatsAPIEnvConfig{StatsAPIUrl: ts.URL}
	api, err := NewStatsAPI(cfg)
	if err != nil {
		panic(err)
	}
	_, err = api.GetPlayerStats()
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestGetPlayerStats_SuccessFalse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := fmt.Fprint(w, `{"success":false}`); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	cfg := &config.StatsAPIEnvConfig{StatsAPIUrl: ts.URL}
	api, err := NewStatsAPI(cfg)
	if err != nil {
		panic(err)
	}
	_, err = api.GetPlayerStats()
	if err == nil {
		t.Fatal("expected error when api reports success=false")
	}
}

func TestGetStatsTable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := PlayerStatsResponse{
			Success: true,
			Stats:   []string{"Games", "KDA"},
			Players: []PlayerRow{
				{Player: "Faker", Values: []*float64{f(20), f(5.2)}},
				{Player: "Chovy", Values: []*float64{f(18), nil}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	cfg := &config.StatsAPIEnvConfig{StatsAPIUrl: ts.URL}
	api, err := NewStatsAPI(cfg)
	if err != nil {
		panic(err)
	}

	table, err := api.GetStatsTable()
	if err != nil {
		t.Fatalf("GetStatsTable failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 players, got %d", table.Len())
	}

	kda, err := table.Column("KDA")
	if err != nil {
		t.Fatalf("KDA column: %v", err)
	}
	if kda[0] != 5.2 {
		t.Errorf("KDA[0] = %v, want 5.2", kda[0])
	}
	// The provider's null becomes an absent cell.
	if !math.IsNaN(kda[1]) {
		t.Errorf("KDA[1] = %v, want NaN", kda[1])
	}
}

func TestGetStatsTable_RaggedRow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := PlayerStatsResponse{
			Success: true,
			Stats:   []string{"Games", "KDA"},
			Players: []PlayerRow{
				{Player: "Faker", Values: []*float64{f(20)}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	cfg := &config.StatsAPIEnvConfig{StatsAPIUrl: ts.URL}
	api, err := NewStatsAPI(cfg)
	if err != nil {
		panic(err)
	}
	_, err = api.GetStatsTable()
	if err == nil {
		t.Fatal("expected error for a row shorter than the stat list")
	}
}
