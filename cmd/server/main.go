package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/flockrhq/flockr/internal/config"
	"github.com/flockrhq/flockr/internal/repository/memory"
	"github.com/flockrhq/flockr/internal/service"
	"github.com/flockrhq/flockr/internal/transport/http/handlers"
	"github.com/flockrhq/flockr/internal/transport/http/middleware"
	"github.com/flockrhq/flockr/internal/transport/ws"
	"github.com/flockrhq/flockr/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	// Store and repositories. All state is process-local: a restart
	// starts from an empty store.
	store := memory.NewStore()
	userRepo := store.Users()
	sessionRepo := store.Sessions()
	channelRepo := store.Channels()
	messageRepo := store.Messages()

	// Services
	guard := service.NewGuard(sessionRepo, channelRepo)
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo, guard)
	channelService := service.NewChannelService(channelRepo, userRepo, guard)
	standupService := service.NewStandupService(messageRepo, userRepo, guard, log)
	messageService := service.NewMessageService(messageRepo, channelService, standupService, guard)

	// Real-time hub
	hub := ws.NewHub(log)
	notifier := ws.NewHubNotifier(hub)
	messageService.SetNotifier(notifier)
	standupService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	channelHandler := handlers.NewChannelHandler(channelService)
	messageHandler := handlers.NewMessageHandler(messageService)
	standupHandler := handlers.NewStandupHandler(standupService)

	auth := middleware.Auth

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("POST /api/v1/auth/logout", auth(http.HandlerFunc(authHandler.Logout)))

	// Protected - Users
	mux.Handle("GET /api/v1/users", auth(http.HandlerFunc(userHandler.All)))
	mux.Handle("GET /api/v1/users/{id}", auth(http.HandlerFunc(userHandler.Profile)))
	mux.Handle("PATCH /api/v1/users/me/name", auth(http.HandlerFunc(userHandler.SetName)))
	mux.Handle("PATCH /api/v1/users/me/email", auth(http.HandlerFunc(userHandler.SetEmail)))
	mux.Handle("PATCH /api/v1/users/me/handle", auth(http.HandlerFunc(userHandler.SetHandle)))

	// Protected - Channels
	mux.Handle("POST /api/v1/channels", auth(http.HandlerFunc(channelHandler.Create)))
	mux.Handle("GET /api/v1/channels", auth(http.HandlerFunc(channelHandler.List)))
	mux.Handle("GET /api/v1/channels/all", auth(http.HandlerFunc(channelHandler.ListAll)))
	mux.Handle("GET /api/v1/channels/{id}", auth(http.HandlerFunc(channelHandler.Details)))
	mux.Handle("POST /api/v1/channels/{id}/invite", auth(http.HandlerFunc(channelHandler.Invite)))
	mux.Handle("POST /api/v1/channels/{id}/join", auth(http.HandlerFunc(channelHandler.Join)))
	mux.Handle("POST /api/v1/channels/{id}/leave", auth(http.HandlerFunc(channelHandler.Leave)))
	mux.Handle("POST /api/v1/channels/{id}/owners", auth(http.HandlerFunc(channelHandler.AddOwner)))
	mux.Handle("DELETE /api/v1/channels/{id}/owners/{uid}", auth(http.HandlerFunc(channelHandler.RemoveOwner)))

	// Protected - Messages
	mux.Handle("POST /api/v1/channels/{id}/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/v1/channels/{id}/messages", auth(http.HandlerFunc(messageHandler.Page)))
	mux.Handle("PUT /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Edit)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Remove)))
	mux.Handle("GET /api/v1/search", auth(http.HandlerFunc(messageHandler.Search)))

	// Protected - Standups
	mux.Handle("POST /api/v1/channels/{id}/standup", auth(http.HandlerFunc(standupHandler.Start)))
	mux.Handle("GET /api/v1/channels/{id}/standup", auth(http.HandlerFunc(standupHandler.Active)))
	mux.Handle("POST /api/v1/channels/{id}/standup/send", auth(http.HandlerFunc(standupHandler.Send)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, authService))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: middleware.CORS(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
