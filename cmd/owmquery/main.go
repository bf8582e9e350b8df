package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/owm-query/internal/client"
	"github.com/kjstillabower/owm-query/internal/config"
	"github.com/kjstillabower/owm-query/internal/lookup"
	"github.com/kjstillabower/owm-query/internal/observability"
	"github.com/kjstillabower/owm-query/internal/validation"
)

const (
	exitOK         = 0
	exitUpstream   = 1
	exitValidation = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitValidation
	}

	logger, err := observability.NewLogger("owmquery")
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return exitUpstream
	}
	var metricsOut io.Writer
	if opts.metrics {
		metricsOut = stderr
	}
	defer func() { _ = observability.Flush(logger, metricsOut) }()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", zap.Error(err))
		return exitValidation
	}

	weatherClient, err := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		logger.Error("weather client", zap.Error(err))
		return exitValidation
	}
	weatherClient.SetLogger(logger)
	weatherClient.SetDefaultParams(cfg.Units, cfg.Lang)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	corrID := uuid.NewString()
	ctx = client.WithCorrelationID(ctx, corrID)
	logger = logger.With(zap.String("correlation_id", corrID))

	if opts.validateKey {
		if err := weatherClient.ValidateAPIKey(ctx); err != nil {
			logger.Error("api key validation", zap.Error(err))
			return exitUpstream
		}
		logger.Info("api key valid")
		return exitOK
	}

	endpoint, req, err := buildLookup(opts)
	if err != nil {
		logger.Error("lookup", zap.Error(err))
		return exitValidation
	}

	return query(ctx, weatherClient, endpoint, req, stdout, logger)
}

func query(ctx context.Context, c client.WeatherClient, endpoint lookup.Endpoint, req lookup.Request, stdout io.Writer, logger *zap.Logger) int {
	resp, err := c.Fetch(ctx, endpoint, req)
	if err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			logger.Error("invalid lookup", zap.String("field", ve.Field), zap.Error(err))
			return exitValidation
		}
		logger.Error("weather query", zap.String("endpoint", endpoint.String()), zap.Error(err))
		return exitUpstream
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logger.Error("write response", zap.Error(err))
		return exitUpstream
	}
	return exitOK
}
