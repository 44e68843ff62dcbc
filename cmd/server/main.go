package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitwallet/internal/auth"
	"github.com/mmynk/splitwallet/internal/cache"
	"github.com/mmynk/splitwallet/internal/config"
	"github.com/mmynk/splitwallet/internal/middleware"
	"github.com/mmynk/splitwallet/internal/service"
	"github.com/mmynk/splitwallet/internal/storage/sqlite"
	"github.com/mmynk/splitwallet/pkg/api/apiconnect"
	"github.com/mmynk/splitwallet/pkg/logging"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.UsesDevSecret() {
		slog.Warn("JWT_SECRET is not set, using the development secret")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	statusCache, closeCache := newStatusCache(cfg)
	defer closeCache()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
			apiconnect.WalletServiceGetInviteProcedure,
		),
		middleware.LoggingInterceptor(logger),
		middleware.MetricsInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewWalletServiceHandler(
		service.NewWalletService(store, statusCache), interceptors))
	mux.Handle(apiconnect.NewPaymentServiceHandler(
		service.NewPaymentService(store, statusCache), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(
		service.NewSettlementService(store, statusCache, cfg.ApplyCompletedSettlements), interceptors))
	mux.Handle("/metrics", promhttp.Handler())

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	// h2c serves HTTP/2 without TLS for Connect clients.
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// newStatusCache connects to Redis when REDIS_ADDR is set. Without it, or
// when Redis is unreachable, statuses are computed on every read.
func newStatusCache(cfg *config.Config) (cache.StatusCache, func()) {
	if cfg.RedisAddr == "" {
		slog.Info("Settlement status cache disabled")
		return cache.Noop{}, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("Settlement status cache unavailable", "error", err)
		return cache.Noop{}, func() {}
	}

	slog.Info("Settlement status cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.StatusCacheTTL)
	return cache.NewRedisStatusCache(client, cfg.StatusCacheTTL), func() { client.Close() }
}

// staticHandler serves the frontend, falling back to index.html for unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/splitwallet.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
