package servekit

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ClientConfig tunes the typed client. CLIENT_TIMEOUT (seconds) overrides
// Timeout when set.
type ClientConfig struct {
	Timeout         time.Duration
	ZstdCompression bool
}

// Client is the calling side of ServeRoute: Send posts a request to the
// route named after the request's type and unwraps the StdResponse envelope.
// The encoder and decoder are reused across calls; Close releases them.
type Client struct {
	cfg   *ClientConfig
	resty *resty.Client
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewClient builds a client. A nil config uses the defaults.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		cfg = &ClientConfig{}
	}
	if raw := os.Getenv("CLIENT_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn().Str("CLIENT_TIMEOUT", raw).Err(err).Msg("ignoring unparsable environment override")
		} else {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultClientTimeout * time.Second
	}

	// Compression is not optional: the daemon speaks zstd, and large cohorts
	// compress well.
	cfg.ZstdCompression = true

	c := &Client{
		cfg: cfg,
		resty: resty.New().
			SetTimeout(cfg.Timeout).
			SetJSONMarshaler(sonic.Marshal).
			SetJSONUnmarshaler(sonic.Unmarshal),
	}

	var err error
	if c.enc, err = zstd.NewWriter(nil); err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	if c.dec, err = zstd.NewReader(nil); err != nil {
		c.enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return c, nil
}

// Close releases the compression codecs.
func (c *Client) Close() {
	if c.enc != nil {
		c.enc.Close()
	}
	if c.dec != nil {
		c.dec.Close()
	}
}

// endpointFor derives the route from the request's type name, mirroring how
// ServeRoute names routes on the server side.
func endpointFor(baseURL string, request interface{}) string {
	t := reflect.TypeOf(request)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + t.Name()
}

// Send posts request to the matching route under baseURL and decodes the
// enveloped reply into response, which must be a non-nil pointer. An error
// carried in the envelope surfaces as a "server error".
func (c *Client) Send(baseURL string, request interface{}, response interface{}) error {
	rv := reflect.ValueOf(response)
	if response == nil || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("response must be a non-nil pointer")
	}

	endpoint := endpointFor(baseURL, request)
	req := c.resty.R().SetHeader("Content-Type", "application/json")

	if c.cfg.ZstdCompression {
		payload, err := sonic.Marshal(request)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetHeader("Content-Encoding", "zstd").
			SetHeader("Accept-Encoding", "zstd").
			SetBody(c.enc.EncodeAll(payload, nil))
	} else {
		req.SetBody(request)
	}

	log.Trace().Str("endpoint", endpoint).Msg("sending typed request")

	resp, err := req.Post(endpoint)
	if err != nil {
		return fmt.Errorf("post %s: %w", endpoint, err)
	}

	body := resp.Body()
	if resp.Header().Get("Content-Encoding") == "zstd" {
		if body, err = c.dec.DecodeAll(body, nil); err != nil {
			return fmt.Errorf("decompress response: %w", err)
		}
	}

	if resp.IsError() {
		return envelopeError(resp.StatusCode(), body)
	}
	return decodeEnvelope(body, response)
}

// envelopeError prefers the enveloped error message when an error response
// carries one, falling back to the raw body.
func envelopeError(status int, body []byte) error {
	var env StdResponse[json.RawMessage]
	if err := sonic.Unmarshal(body, &env); err == nil && env.Error != nil {
		return fmt.Errorf("server error: %s", *env.Error)
	}
	return fmt.Errorf("HTTP error %d: %s", status, string(body))
}

// decodeEnvelope splits the StdResponse wrapper and decodes its body into
// out.
func decodeEnvelope(body []byte, out interface{}) error {
	var env StdResponse[json.RawMessage]
	if err := sonic.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal response envelope: %w", err)
	}
	if env.Error != nil {
		return fmt.Errorf("server error: %s", *env.Error)
	}
	if len(env.Body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Body, out); err != nil {
		return fmt.Errorf("unmarshal response body: %w", err)
	}
	return nil
}
