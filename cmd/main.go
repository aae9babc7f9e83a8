package main

import (
	"chat-courier/domain"
	"chat-courier/infrastructure/websocket"
	"chat-courier/internal"
	"chat-courier/observability"
	"chat-courier/repositories"
	"chat-courier/router"
	"chat-courier/runtime"
	"chat-courier/runtime/workers"
	"chat-courier/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Courier terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	codec, err := domain.CodecByName(config.Codec)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Engine
	metrics := observability.NewMetrics(config.RuntimeMetrics)
	messageRepository := repositories.NewMessageRepository(db, logger, codec)
	messageService, err := services.NewMessageService(
		repositories.NewDedupRepository(db),
		repositories.NewSequenceRepository(db),
		services.WithCodec(codec),
	)
	if err != nil {
		return exitConfig, err
	}
	registry := runtime.NewRegistry()
	controller := runtime.NewBackpressureController(logger, runtime.BackpressureConfig{
		MaxBufferedBytes: config.BackpressureMaxBufferedBytes,
		MaxPendingSends:  config.BackpressureMaxPendingSends,
	}, messageRepository, metrics)
	limiter, err := runtime.NewRateLimiter(logger, map[runtime.Category]runtime.BucketConfig{
		runtime.CategoryMessage: {
			Capacity: config.MessageBucketCapacity,
			Window:   config.MessageBucketWindow,
			Cooldown: config.MessageBucketCooldown,
		},
		runtime.CategoryTyping: {
			Capacity: config.TypingBucketCapacity,
			Window:   config.TypingBucketWindow,
			Cooldown: config.TypingBucketCooldown,
		},
	})
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	deliveryService, err := services.NewDeliveryService(logger, messageService, messageRepository, registry, controller, metrics)
	if err != nil {
		return exitConfig, err
	}
	replayService, err := services.NewReplayService(logger, messageRepository, controller, metrics,
		config.ReplayDefaultLimit, config.ReplayMaxLimit)
	if err != nil {
		return exitConfig, err
	}
	frameRouter := router.NewRouter(logger, limiter, metrics, controller)
	router.RegisterChatHandlers(frameRouter, deliveryService, replayService)

	// 4. Background workers
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		workers.NewBucketJanitorWorker(logger, limiter, config.JanitorInterval),
		workers.NewHeartbeatWorker(logger, metrics, registry, config.HeartbeatInterval),
	)
	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()

	errChan := make(chan error, 2)

	// 5. HTTP: websocket, metrics, inspector
	mux := http.NewServeMux()
	wsServer := websocket.NewServer(ctx, logger, websocket.ServerConfig{
		UserIDHeader: config.UserIDHeader,
		Conn: websocket.ConnConfig{
			SendQueueSize: config.SendQueueSize,
			WriteWait:     config.WriteWait,
			PongWait:      config.PongWait,
			MaxFrameBytes: config.MaxFrameBytes,
		},
	}, registry, frameRouter, controller, limiter)
	mux.Handle("/ws", wsServer)
	mux.Handle("/metrics", metrics.Handler())
	if logger.Enabled(ctx, slog.LevelDebug) {
		mux.Handle("/debug/inspect", internal.InspectHandler(db, codec))
		logger.Info("Badger inspector available", "path", "/debug/inspect")
	}
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. gRPC health
	grpcAddress := fmt.Sprintf("%s:%d", config.Host, config.GRPCPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	go func() {
		logger.Info("Starting gRPC health server", "address", grpcAddress)
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 8. Graceful shutdown
	logger.Info("Shutting down gracefully...")
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	stop()
	wsServer.Wait()
	grpcServer.GracefulStop()
	sup.Stop()
	<-supDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
