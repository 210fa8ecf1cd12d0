package runtime

import (
	"chat-hub/domain/event"
	"chat-hub/mocks"
	"chat-hub/sink"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRouter_SendToRoom_Reaches_Joined_Connections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	presence := NewPresenceRegistry()
	router := NewRouter(slog.Default(), presence, time.Second)

	inBooks := mocks.NewMockEventSink(ctrl)
	inLobby := mocks.NewMockEventSink(ctrl)
	router.Register("c-1", inBooks)
	router.Register("c-2", inLobby)
	router.JoinRoom("c-1", "Books")
	router.JoinRoom("c-2", "Lobby")

	notice := event.GroupRemoved{Name: "Books"}
	inBooks.EXPECT().Consume(gomock.Any(), notice).Return(nil).Times(1)
	inLobby.EXPECT().Consume(gomock.Any(), gomock.Any()).Times(0)

	router.SendToRoom(context.Background(), "Books", notice)
}

func TestRouter_LeaveRoom_And_Unregister(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := NewRouter(slog.Default(), NewPresenceRegistry(), time.Second)

	s := mocks.NewMockEventSink(ctrl)
	s.EXPECT().Consume(gomock.Any(), gomock.Any()).Times(0)
	router.Register("c-1", s)
	router.JoinRoom("c-1", "Books")
	router.JoinRoom("c-1", "Lobby")

	router.LeaveRoom("c-1", "Books")
	req.Empty(router.Members("Books"))
	router.SendToRoom(context.Background(), "Books", event.GroupRemoved{Name: "Books"})

	router.Unregister("c-1")
	req.Empty(router.Members("Lobby"))
	router.SendToConnection(context.Background(), "c-1", event.GroupRemoved{Name: "Books"})
}

func TestRouter_SendToUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	presence := NewPresenceRegistry()
	router := NewRouter(slog.Default(), presence, time.Second)

	s := mocks.NewMockEventSink(ctrl)
	router.Register("c-1", s)
	presence.AdmitConnection("c-1", "alice")

	joined := event.GroupRemoved{Name: "Books"}
	s.EXPECT().Consume(gomock.Any(), joined).Return(nil).Times(1)

	router.SendToUser(context.Background(), "alice", joined)
	// Offline users are skipped
	router.SendToUser(context.Background(), "bob", joined)
}

func TestRouter_Failing_Sink_Does_Not_Block_Others(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := NewRouter(slog.Default(), NewPresenceRegistry(), 50*time.Millisecond)

	broken := mocks.NewMockEventSink(ctrl)
	healthy := mocks.NewMockEventSink(ctrl)
	router.Register("c-1", broken)
	router.Register("c-2", healthy)
	router.JoinRoom("c-1", "Lobby")
	router.JoinRoom("c-2", "Lobby")

	// The delivery context carries the timeout
	broken.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
		<-ctx.Done()
		return fmt.Errorf("slow reader: %w", ctx.Err())
	})
	healthy.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil)

	router.SendToRoom(context.Background(), "Lobby", event.GroupRemoved{Name: "x"})
}

func TestRouter_Canceled_Sender_Still_Reaches_Room(t *testing.T) {
	req := require.New(t)
	router := NewRouter(slog.Default(), NewPresenceRegistry(), time.Second)

	// Given three connections viewing the Lobby
	sinks := []*sink.ConnectionSink{
		sink.NewConnectionSink(slog.Default(), 64),
		sink.NewConnectionSink(slog.Default(), 64),
		sink.NewConnectionSink(slog.Default(), 64),
	}
	for i, s := range sinks {
		id := fmt.Sprintf("c-%d", i)
		router.Register(id, s)
		router.JoinRoom(id, "Lobby")
	}

	// When the sender's context is canceled before the fan-out
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 50; i++ {
		router.SendToRoom(ctx, "Lobby", event.GroupRemoved{Name: fmt.Sprintf("g-%d", i)})
	}

	// Then every connection still gets every event
	for _, s := range sinks {
		req.Len(s.Events, 50)
	}
}
