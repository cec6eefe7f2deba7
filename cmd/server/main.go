package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flmoreno/movie-recs-api/internal/config"
	"github.com/flmoreno/movie-recs-api/internal/handler"
	"github.com/flmoreno/movie-recs-api/internal/middleware"
	"github.com/flmoreno/movie-recs-api/internal/queue"
	"github.com/flmoreno/movie-recs-api/internal/router"
	"github.com/flmoreno/movie-recs-api/internal/service/queuepub"
	"github.com/flmoreno/movie-recs-api/internal/store"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := store.OpenFirebase(ctx, cfg.FirebaseCredentials, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	collections := store.NewCollections(db)

	events := queuepub.New(cfg.AMQPURL)
	if cfg.AMQPURL != "" {
		go queue.StartEventsConsumer(cfg.AMQPURL)
	}

	h := handler.New(cfg, collections, events)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	} else {
		log.Warn().Msg("redis unavailable, rate limiting disabled")
	}
	router.Register(e, h)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
