package main

import (
	"chat-hub/auth"
	"chat-hub/infrastructure/grpc/server"
	"chat-hub/infrastructure/hub"
	"chat-hub/infrastructure/rest"
	"chat-hub/infrastructure/websocket"
	"chat-hub/internal"
	"chat-hub/moderation"
	"chat-hub/observability"
	"chat-hub/pipeline"
	"chat-hub/repositories"
	"chat-hub/runtime"
	"chat-hub/runtime/workers"
	"chat-hub/services"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat hub terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a shutdown signal.
// Deferred cleanups run before the exit code is returned.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	debug := logger.Enabled(context.Background(), slog.LevelDebug)

	// 2. Message pipeline, refusing to start without a key
	cipher, err := pipeline.NewCipher(config.EncryptionKey)
	if err != nil {
		return exitConfig, fmt.Errorf("pipeline: %w", err)
	}
	var censor pipeline.Censor
	if config.ModerationEnabled {
		data, err := runtime.NewCensoredLoader(runtime.CensoredFolder).LoadAll(config.CensoredWordsDir)
		if err != nil {
			return exitConfig, fmt.Errorf("censored words: %w", err)
		}
		moderator, err := moderation.NewModerator(data.Words, charReplacement, logger)
		if err != nil {
			return exitConfig, fmt.Errorf("moderator: %w", err)
		}
		logger.Info("Moderation enabled", "words", len(data.Words), "languages", data.Languages)
		censor = moderator
	}
	messagePipeline := pipeline.New(logger, cipher, censor)

	tokens, err := auth.NewTokenIssuer(config.JwtSecret, config.AuthTokenDuration)
	if err != nil {
		return exitConfig, fmt.Errorf("tokens: %w", err)
	}

	// 3. Database (BadgerDB)
	db, err := repositories.Open(config.BadgerFilepath, logger, debug)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	if debug {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.InspectorPort, endpoint))
		database.StartDebugServer(db, config.InspectorPort, endpoint, RecordMapper)
	}

	users := repositories.NewUserRepository(db)
	groupRepository := repositories.NewGroupRepository(db, logger)
	conversationRepository := repositories.NewConversationRepository(db)
	messageRepository := repositories.NewMessageRepository(db, logger, config.LimitMessages)

	// 4. Presence, broadcast and services
	presence := runtime.NewPresenceRegistry()
	router := runtime.NewRouter(logger, presence, config.DeliveryTimeout)
	groupService := services.NewGroupService(logger, users, groupRepository, messageRepository, presence, messagePipeline)
	if err := groupService.EnsureLobby(); err != nil {
		return exitRuntime, fmt.Errorf("lobby bootstrap failed: %w", err)
	}
	privateService := services.NewPrivateConversationService(logger, users, conversationRepository, messageRepository, messagePipeline)
	validate := auth.NewValidator()
	authService := services.NewAuthService(logger, users, groupService, tokens, validate)

	chatHub := hub.New(logger, presence, router, groupService, privateService, validate)
	sockets := websocket.NewHandler(logger, chatHub, websocket.Options{
		BufferSize:   config.ConnectionBufferSize,
		WriteTimeout: config.WriteTimeout,
		PongTimeout:  config.PongTimeout,
		MaxFrameSize: config.MaxFrameSize,
	})
	monitoring := observability.NewMonitoringManager(logger)
	httpServer := rest.NewServer(logger, rest.Dependencies{
		Auth:       authService,
		Groups:     groupService,
		Tokens:     tokens,
		Sockets:    sockets,
		Monitoring: monitoring,
	})
	healthServer := server.NewHealthServer(logger)

	// 5. Supervision
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		workers.NewHttpServerWorker(logger, httpServer, internal.Address(config.Host, config.Port), config.ShutdownTimeout),
		workers.NewGrpcServerWorker(logger, healthServer, internal.Address(config.Host, config.GrpcPort)),
		workers.NewPresenceMonitorWorker(logger, presence, monitoring, config.MetricInterval),
	)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthServer.SetServing(true)
	logger.Info("Chat hub started", "http", config.Port, "grpc", config.GrpcPort)
	sup.Run(ctx)

	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

// RecordMapper shows hub records in the debug inspector.
func RecordMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	record, ok := repositories.DescribeRecord(key, val)
	if !ok {
		row.Type = "INDEX"
		row.Detail = strings.ReplaceAll(key, "\x00", "/")
		return row
	}
	row.Type = record.Kind
	row.Detail = record.Detail
	return row
}
