package roster

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func assertSampleTable(t *testing.T, table *Table) {
	t.Helper()
	if table.Len() != 4 {
		t.Fatalf("expected 4 players, got %d", table.Len())
	}
	if players := table.Players(); players[0] != "Faker" {
		t.Errorf("players = %v, want Faker first", players)
	}
}

func TestOpen(t *testing.T) {
	t.Run("plain csv", func(t *testing.T) {
		path := writeFile(t, "stats.csv", []byte(sampleSheet))
		table, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		assertSampleTable(t, table)
	})

	t.Run("gzip", func(t *testing.T) {
		path := writeFile(t, "stats.csv.gz", gzipBytes(t, []byte(sampleSheet)))
		table, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		assertSampleTable(t, table)
	})

	t.Run("zstd", func(t *testing.T) {
		path := writeFile(t, "stats.csv.zst", zstdBytes(t, []byte(sampleSheet)))
		table, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		assertSampleTable(t, table)
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Open(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
			t.Fatal("expected error for a missing file")
		}
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := writeFile(t, "stats.csv.gz", []byte("not gzip at all"))
		if _, err := Open(path); err == nil {
			t.Fatal("expected error for a corrupt gzip file")
		}
	})
}

func TestFetch(t *testing.T) {
	t.Setenv("FETCH_RETRY_MAX", "0")

	t.Run("plain csv", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte(sampleSheet))
		}))
		defer srv.Close()

		table, err := Fetch(context.Background(), srv.URL+"/stats.csv")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		assertSampleTable(t, table)
	})

	t.Run("gzip by path extension", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(gzipBytes(t, []byte(sampleSheet)))
		}))
		defer srv.Close()

		table, err := Fetch(context.Background(), srv.URL+"/stats.csv.gz")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		assertSampleTable(t, table)
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := Fetch(context.Background(), srv.URL+"/stats.csv")
		if err == nil {
			t.Fatal("expected error for a 404 response")
		}
	})
}
