// Package logger provides a global logger for the application
package logger

import (
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
)

var (
	zapLogger *zap.Logger
	zapOnce   sync.Once
)

var (
	debug = flag.Bool("debug", false, "sets log level to debug")
	trace = flag.Bool("trace", false, "sets log level to trace")
	info  = flag.Bool("info", false, "sets log level to info (default)")
)

func initLogger() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	// Flags may already be parsed by an entrypoint that defines its own.
	if !flag.Parsed() {
		flag.Parse()
	}

	zerolog.SetGlobalLevel(resolveLevel())
}

// resolveLevel picks the log level from ENVIRONMENT, with the command line
// flags taking precedence over it.
func resolveLevel() zerolog.Level {
	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	var level zerolog.Level
	switch environment {
	case "dev", "test":
		level = zerolog.TraceLevel
		log.Info().Str("environment", environment).Msg("enabling all log levels")
	case "prod":
		level = zerolog.InfoLevel
	default:
		level = zerolog.InfoLevel
		log.Warn().Str("environment", environment).Msg("unknown environment, defaulting to info level and above")
	}

	switch {
	case *debug:
		level = zerolog.DebugLevel
		log.Info().Msg("debug flag set, overriding environment log level")
	case *trace:
		level = zerolog.TraceLevel
		log.Info().Msg("trace flag set, overriding environment log level")
	case *info:
		level = zerolog.InfoLevel
		log.Info().Msg("info flag set, overriding environment log level")
	}

	return level
}

// Init initializes the logger with the configuration from the environment
// and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run cmd/riftrank/main.go --debug`
func Init() {
	initLogger()
}

// Sugar returns a sugared logger for keyed structured logs.
// TODO: replace with zerolog
func Sugar() *zap.SugaredLogger {
	zapOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		zapLogger = zap.Must(cfg.Build())
	})
	return zapLogger.Sugar()
}
