package roster

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

// FetchConfig tunes the HTTP client used to download remote stat sheets.
type FetchConfig struct {
	Timeout      time.Duration `env:"FETCH_TIMEOUT, default=30s"`
	RetryMax     int           `env:"FETCH_RETRY_MAX, default=5"`
	RetryWaitMin time.Duration `env:"FETCH_RETRY_WAIT_MIN, default=500ms"`
	RetryWaitMax time.Duration `env:"FETCH_RETRY_WAIT_MAX, default=20s"`
}

// Fetch downloads a stat sheet over HTTP and parses it. Compressed sheets are
// recognized by the URL path extension, the same way Open treats file names.
func Fetch(ctx context.Context, url string, opts ...ReaderOption) (*Table, error) {
	var envCfg FetchConfig
	if err := envconfig.Process(ctx, &envCfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables for fetch: %w", err)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = envCfg.RetryMax
	client.HTTPClient.Timeout = envCfg.Timeout
	client.RetryWaitMin = envCfg.RetryWaitMin
	client.RetryWaitMax = envCfg.RetryWaitMax

	// Retry logging stays with zerolog rather than retryablehttp's own.
	client.Logger = nil

	log.Debug().
		Str("url", url).
		Int("retry_max", client.RetryMax).
		Str("timeout", client.HTTPClient.Timeout.String()).
		Msg("fetching stat sheet")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	dr, err := decompress(resp.Body, req.URL.Path)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	return ReadCSV(dr, opts...)
}
