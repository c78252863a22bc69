package servekit

import "github.com/gofiber/fiber/v2"

const (
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8188
	DefaultBodyLimit  = 4 * 1024 * 1024

	// DefaultClientTimeout is in seconds.
	DefaultClientTimeout = 30
)

// Server wraps a fiber app configured with the kit conventions. Typed routes
// go through ServeRoute; plain fiber routes can still be registered directly
// on App.
type Server struct {
	App *fiber.App
	cfg *ServerConfig
}

// ServerConfig carries the listener settings. Fields left at zero or at
// their default can be overridden through SERVER_PORT and SERVER_BODY_LIMIT.
type ServerConfig struct {
	Host      string
	Port      int
	BodyLimit int
}

// StdResponse is the envelope every typed route answers with: the handler's
// result on success, its serialized error otherwise.
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
}

// RouterHandler is the shape of a typed route: it receives the decoded
// request and answers with a response body or an error.
type RouterHandler[Req, Resp any] func(*fiber.Ctx, Req) (Resp, error)
