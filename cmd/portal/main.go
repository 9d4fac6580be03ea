package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"campusintelli/internal/api"
	"campusintelli/internal/config"
	"campusintelli/internal/logging"
	"campusintelli/internal/store"
	"campusintelli/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("http server failed")
	}
}

// key stretches a configured secret to the 32 bytes the cookie and CSRF
// ciphers need.
func key(secret, purpose string) []byte {
	sum := sha256.Sum256([]byte(purpose + ":" + secret))
	return sum[:]
}

func runHTTP(cfg config.App, logger zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithPublicURL(cfg.APIPublicURL),
		api.WithMetrics(api.NewMetrics(reg)),
	)

	maxAge := int(cfg.SessionMaxAge / time.Second)
	cookies := store.NewCookieStore(key(cfg.SessionSecret, "sign"), key(cfg.SessionSecret, "encrypt"), maxAge, cfg.Production())

	sessions := web.CookieKV(cookies)
	var health web.HealthFunc
	if cfg.SessionBackend == "redis" {
		redisClient := store.NewRedis(cfg.RedisAddr)
		defer func() { _ = redisClient.Close() }()
		sessions = web.RedisKV(cookies, redisClient, cfg.SessionMaxAge)
		health = func(ctx context.Context) map[string]bool {
			return map[string]bool{"redis": redisClient.Healthy(ctx)}
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("sessions stored in redis")
	}

	srvHandler, err := web.New(web.Options{
		API:          client,
		Sessions:     sessions,
		CSRFKey:      key(cfg.CSRFKey, "csrf"),
		SecureCookie: cfg.Production(),
		Logger:       logger,
		RateLimit:    cfg.RateLimitPerMin,
		Health:       health,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      srvHandler.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Str("api", client.BaseURL).Msg("starting portal")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server exited")
	return nil
}
