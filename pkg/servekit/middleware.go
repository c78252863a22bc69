package servekit

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdMiddleware transparently decompresses zstd request bodies and
// compresses responses for clients that advertise zstd support. Routes on
// the allowlist pass through untouched; nil means the package default.
func ZstdMiddleware(allowlist []string) fiber.Handler {
	if allowlist == nil {
		allowlist = plainRoutes
	}

	return func(c *fiber.Ctx) error {
		for _, route := range allowlist {
			if c.Path() == route {
				return c.Next()
			}
		}

		if strings.EqualFold(c.Get(fiber.HeaderContentEncoding), "zstd") {
			if err := inflateRequest(c); err != nil {
				log.Err(err).Str("path", c.Path()).Msg("rejecting undecodable zstd request")
				return c.Status(fiber.StatusBadRequest).
					JSON(createResponse(map[string]interface{}{}, err))
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		if strings.Contains(strings.ToLower(c.Get(fiber.HeaderAcceptEncoding)), "zstd") {
			deflateResponse(c)
		}
		return nil
	}
}

// inflateRequest swaps the request body for its zstd-decoded form.
func inflateRequest(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}

	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("open zstd request body: %w", err)
	}
	defer dec.Close()

	plain, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("decompress request body: %w", err)
	}

	c.Request().SetBody(plain)
	return nil
}

// deflateResponse compresses the response in place. On encoder failure the
// plain response is left as is.
func deflateResponse(c *fiber.Ctx) {
	body := c.Response().Body()
	if len(body) == 0 {
		return
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		log.Err(err).Msg("zstd encoder unavailable, sending response uncompressed")
		return
	}
	defer enc.Close()

	packed := enc.EncodeAll(body, nil)
	c.Response().SetBody(packed)
	c.Set(fiber.HeaderContentEncoding, "zstd")
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(packed)))
}
