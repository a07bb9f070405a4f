package cmd

import (
	"io"

	"github.com/google/uuid"
	"github.com/rohmanhakim/rudolf/internal/config"
	"github.com/rohmanhakim/rudolf/internal/fetcher"
	"github.com/rohmanhakim/rudolf/internal/metadata"
	"github.com/rohmanhakim/rudolf/internal/resolver"
	"github.com/rohmanhakim/rudolf/pkg/limiter"
	"github.com/rs/zerolog"
)

// runtime holds everything one command invocation needs.
type runtime struct {
	cfg      config.Config
	logger   zerolog.Logger
	recorder *metadata.Recorder
	resolver resolver.Resolver
}

func newRuntime(logOut io.Writer) (runtime, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return runtime{}, err
	}

	logger, err := metadata.NewLogger(logOut, cfg.LogLevel(), cfg.LogJSON())
	if err != nil {
		return runtime{}, err
	}
	recorder := metadata.NewRecorder(logger, uuid.NewString())

	rateLimiter := limiter.NewConcurrentRateLimiter()
	rateLimiter.SetBaseDelay(cfg.BaseDelay())
	rateLimiter.SetJitter(cfg.Jitter())
	rateLimiter.SetRandomSeed(cfg.RandomSeed())
	rateLimiter.SetBackoffParam(cfg.BackoffParam())

	inputFetcher := fetcher.NewInputFetcher(&recorder, rateLimiter, cfg.FetchParam())
	inputResolver := resolver.NewResolver(
		&recorder,
		resolver.StoreOpener(cfg.DBPath(), &recorder),
		&inputFetcher,
	)

	logger.Debug().
		Str("run_id", recorder.RunID()).
		Str("db_path", cfg.DBPath()).
		Str("cookie_file", cfg.CookieFile()).
		Str("url_template", cfg.URLTemplate()).
		Msg("configuration loaded")

	return runtime{
		cfg:      cfg,
		logger:   logger,
		recorder: &recorder,
		resolver: inputResolver,
	}, nil
}
