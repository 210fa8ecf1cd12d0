package rest

import (
	"bytes"
	"chat-hub/auth"
	"chat-hub/domain"
	"chat-hub/observability"
	"chat-hub/pipeline"
	"chat-hub/repositories"
	"chat-hub/runtime"
	"chat-hub/services"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server *Server
	groups *services.GroupService
}

func newFixture(t *testing.T) fixture {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	cipher, err := pipeline.NewCipher("a-secret-for-tests")
	require.NoError(t, err)
	p := pipeline.New(log, cipher, nil)
	tokens, err := auth.NewTokenIssuer("jwt-secret", time.Hour)
	require.NoError(t, err)

	users := repositories.NewUserRepository(db)
	groups := services.NewGroupService(log, users, repositories.NewGroupRepository(db, log),
		repositories.NewMessageRepository(db, log, nil), runtime.NewPresenceRegistry(), p)
	require.NoError(t, groups.EnsureLobby())

	server := NewServer(log, Dependencies{
		Auth:       services.NewAuthService(log, users, groups, tokens, auth.NewValidator()),
		Groups:     groups,
		Tokens:     tokens,
		Monitoring: observability.NewMonitoringManager(log),
	})
	return fixture{server: server, groups: groups}
}

func (f fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	r := httptest.NewRequest(method, path, &payload)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, r)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func (f fixture) signup(t *testing.T, username string) string {
	w, body := f.do(t, http.MethodPost, "/signup", "", auth.SignupRequest{
		Username: username, Password: "s3cret-pass", ConfirmPassword: "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return body["token"].(string)
}

func TestServer_Signup_And_Login(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice")

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"duplicate username", "/signup", auth.SignupRequest{Username: "alice", Password: "s3cret-pass", ConfirmPassword: "s3cret-pass"}, http.StatusConflict},
		{"password mismatch", "/signup", auth.SignupRequest{Username: "bob", Password: "s3cret-pass", ConfirmPassword: "other-pass-1"}, http.StatusBadRequest},
		{"bad username", "/signup", auth.SignupRequest{Username: "b", Password: "s3cret-pass", ConfirmPassword: "s3cret-pass"}, http.StatusBadRequest},
		{"login ok", "/login", auth.LoginRequest{Username: "alice", Password: "s3cret-pass"}, http.StatusOK},
		{"wrong password", "/login", auth.LoginRequest{Username: "alice", Password: "nope-nope-1"}, http.StatusUnauthorized},
		{"unknown user", "/login", auth.LoginRequest{Username: "ghost", Password: "s3cret-pass"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			w, body := f.do(t, http.MethodPost, tt.path, "", tt.body)

			req.Equal(tt.status, w.Code)
			if tt.status == http.StatusOK {
				req.NotEmpty(body["token"])
			} else {
				req.NotEmpty(body["message"])
			}
		})
	}
}

func TestServer_Chatrooms_Requires_Token(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	token := f.signup(t, "alice")

	w, _ := f.do(t, http.MethodGet, "/chatrooms", "", nil)
	req.Equal(http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodGet, "/chatrooms", "forged", nil)
	req.Equal(http.StatusUnauthorized, w.Code)

	// A registered user is a member of the Lobby
	w, _ = f.do(t, http.MethodGet, "/chatrooms", token, nil)
	req.Equal(http.StatusOK, w.Code)
	var groups []domain.GroupSummary
	req.NoError(json.Unmarshal(w.Body.Bytes(), &groups))
	req.Equal([]domain.GroupSummary{{Name: domain.Lobby}}, groups)
}

func TestServer_Chatroom_Messages_Members_Only(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")
	req.True(f.groups.CreateGroup("Books", "alice").Success)
	req.True(f.groups.PostMessage("hello <b>books</b>", "Books", "alice").Success)

	// The member reads the decrypted history
	w, _ := f.do(t, http.MethodGet, "/chatroommessages/Books", alice, nil)
	req.Equal(http.StatusOK, w.Code)
	var messages []domain.GroupMessage
	req.NoError(json.Unmarshal(w.Body.Bytes(), &messages))
	req.Len(messages, 1)
	req.Equal("hello &lt;b&gt;books&lt;/b&gt;", messages[0].Message)

	// Others are refused
	w, _ = f.do(t, http.MethodGet, "/chatroommessages/Books", bob, nil)
	req.Equal(http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodGet, "/chatroommessages/Nowhere", alice, nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func TestServer_Health(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	w, body := f.do(t, http.MethodGet, "/health", "", nil)

	req.Equal(http.StatusOK, w.Code)
	req.Contains(body, "online_users")
}
