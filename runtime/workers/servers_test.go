package workers

import (
	"chat-hub/auth"
	"chat-hub/infrastructure/grpc/server"
	"chat-hub/infrastructure/rest"
	"chat-hub/observability"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServerWorkers_Stop_With_Context(t *testing.T) {
	log := slog.Default()
	tokens, err := auth.NewTokenIssuer("jwt-secret", time.Hour)
	require.NoError(t, err)
	httpServer := rest.NewServer(log, rest.Dependencies{Tokens: tokens, Monitoring: observability.NewMonitoringManager(log)})

	tests := []struct {
		name   string
		worker interface{ Run(context.Context) error }
	}{
		{"http", NewHttpServerWorker(log, httpServer, "127.0.0.1:0", time.Second)},
		{"grpc", NewGrpcServerWorker(log, server.NewHealthServer(log), "127.0.0.1:0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			// A canceled context is a clean stop, never restarted
			req.NoError(tt.worker.Run(ctx))
		})
	}
}

func TestServerWorkers_Fail_On_Bad_Address(t *testing.T) {
	req := require.New(t)
	log := slog.Default()

	err := NewGrpcServerWorker(log, server.NewHealthServer(log), "not-an-address").Run(context.Background())

	req.Error(err)
}
