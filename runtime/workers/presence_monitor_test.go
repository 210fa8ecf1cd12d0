package workers

import (
	"chat-hub/observability"
	"chat-hub/runtime"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPresenceMonitorWorker_Records_Presence(t *testing.T) {
	req := require.New(t)
	log := slog.Default()

	// Given two users online, one of them in a group
	presence := runtime.NewPresenceRegistry()
	presence.AdmitConnection("c-1", "alice")
	presence.AdmitConnection("c-2", "bob")
	req.NoError(presence.SetRoom("c-2", "Books"))
	monitoring := observability.NewMonitoringManager(log)
	worker := NewPresenceMonitorWorker(log, presence, monitoring, time.Hour)

	// When the worker runs briefly
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req.NoError(worker.Run(ctx))

	// Then the first sample is recorded right away
	stats := monitoring.GetLatest()
	req.Equal(2, stats.OnlineUsers)
	req.Equal(2, stats.Connections)
	req.Equal(2, stats.Rooms)
	req.False(stats.UpdatedAt.IsZero())
}
