// Package servekit is the HTTP kit shared by the rating daemon and its
// clients: typed POST routes keyed by the request type name, a standard
// response envelope, and zstd transport compression on both sides.
package servekit

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// plainRoutes are exempt from zstd handling so health checks and docs stay
// readable with plain tooling.
var plainRoutes = []string{"/docs", "/health"}

// NewServer assembles a fiber app with the kit conventions: sonic JSON
// codecs, panic recovery, compressed responses, and zstd request handling on
// everything outside the allowlist. A nil config means defaults.
func NewServer(cfg *ServerConfig) *Server {
	if cfg == nil {
		cfg = &ServerConfig{
			Host:      DefaultServerHost,
			Port:      DefaultServerPort,
			BodyLimit: DefaultBodyLimit,
		}
	}
	cfg.Port = envOverride("SERVER_PORT", cfg.Port, DefaultServerPort)
	cfg.BodyLimit = envOverride("SERVER_BODY_LIMIT", cfg.BodyLimit, DefaultBodyLimit)

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("body_limit", cfg.BodyLimit).
		Msg("server configuration loaded")

	app := fiber.New(fiber.Config{
		Prefork:      false,
		ErrorHandler: fiberErrHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    cfg.BodyLimit,
	})
	app.Use(recover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestCompression}))
	app.Use(ZstdMiddleware(plainRoutes))

	return &Server{App: app, cfg: cfg}
}

// envOverride reads an integer environment override for a config field the
// caller left at zero or at its default. Explicit non-default configuration
// always wins, and unparsable values are ignored with a warning.
func envOverride(name string, current, def int) int {
	if current != 0 && current != def {
		return current
	}
	raw := os.Getenv(name)
	if raw == "" {
		return current
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str(name, raw).Err(err).Msg("ignoring unparsable environment override")
		return current
	}
	log.Debug().Str(name, raw).Msg("applied environment override")
	return v
}

// fiberErrHandler turns uncaught route errors into enveloped JSON. A
// *fiber.Error keeps its status code; anything else reports as a 500.
func fiberErrHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	log.Error().
		Err(err).
		Int("status", code).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	return c.Status(code).JSON(createResponse(map[string]interface{}{}, err))
}

// ServeRoute registers handler as a POST route named after the request type,
// so a RatePlayersRequest handler serves POST /RatePlayersRequest. Responses
// travel in a StdResponse envelope; a body that fails to decode is a 400 and
// a handler error a 500, each carrying the error in the envelope.
func ServeRoute[Req, Resp any](s *Server, handler RouterHandler[Req, Resp]) {
	route := "/" + reflect.TypeOf((*Req)(nil)).Elem().Name()

	s.App.Post(route, func(c *fiber.Ctx) error {
		var req Req
		if err := c.BodyParser(&req); err != nil {
			log.Error().Err(err).Str("route", route).Msg("failed to parse request body")
			return c.Status(fiber.StatusBadRequest).
				JSON(createResponse(map[string]interface{}{}, err))
		}

		resp, err := handler(c, req)
		if err != nil {
			log.Error().Err(err).Str("route", route).Msg("handler returned error")
			var empty Resp
			return c.Status(fiber.StatusInternalServerError).JSON(createResponse(empty, err))
		}

		return c.JSON(createResponse(resp, nil))
	})
}

// Start listens on the configured port and blocks. It returns only on
// listener failure, which is fatal.
func (s *Server) Start() {
	log.Fatal().
		Err(s.App.Listen(fmt.Sprintf(":%d", s.cfg.Port))).
		Msg("server stopped")
}
