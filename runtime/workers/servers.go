package workers

import (
	"chat-hub/infrastructure/grpc/server"
	"chat-hub/infrastructure/rest"
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// HttpServerWorker serves the REST surface and the websocket hub.
type HttpServerWorker struct {
	log             *slog.Logger
	server          *rest.Server
	address         string
	shutdownTimeout time.Duration
}

func NewHttpServerWorker(log *slog.Logger, server *rest.Server, address string, shutdownTimeout time.Duration) *HttpServerWorker {
	return &HttpServerWorker{log: log, server: server, address: address, shutdownTimeout: shutdownTimeout}
}

func (w *HttpServerWorker) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", w.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.address, err)
	}
	w.log.Info("Starting HTTP server", "address", w.address, "at", time.Now().UTC())
	return w.server.Serve(ctx, listener, func() (context.Context, context.CancelFunc) {
		// The parent is already canceled at this point
		return context.WithTimeout(context.Background(), w.shutdownTimeout)
	})
}

// GrpcServerWorker serves the health protocol.
type GrpcServerWorker struct {
	log     *slog.Logger
	server  *server.HealthServer
	address string
}

func NewGrpcServerWorker(log *slog.Logger, server *server.HealthServer, address string) *GrpcServerWorker {
	return &GrpcServerWorker{log: log, server: server, address: address}
}

func (w *GrpcServerWorker) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", w.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.address, err)
	}
	w.log.Info("Starting gRPC server", "address", w.address, "at", time.Now().UTC())
	return w.server.Serve(ctx, listener)
}
