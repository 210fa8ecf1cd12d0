// Package rest is the HTTP surface of the hub: account endpoints, read-only room
// queries, health and the websocket upgrade.
package rest

import (
	"chat-hub/auth"
	"chat-hub/errors"
	"chat-hub/observability"
	"chat-hub/services"
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SocketServer runs one live connection for an authenticated user.
type SocketServer interface {
	Serve(w http.ResponseWriter, r *http.Request, username string) error
}

type Dependencies struct {
	Auth       services.IAuthService
	Groups     services.IGroupService
	Tokens     *auth.TokenIssuer
	Sockets    SocketServer
	Monitoring *observability.MonitoringManager
}

type Server struct {
	log  *slog.Logger
	echo *echo.Echo
	deps Dependencies
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

func NewServer(log *slog.Logger, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	s := &Server{log: log, echo: e, deps: deps}
	e.POST("/signup", s.signup)
	e.POST("/login", s.login)
	e.GET("/health", s.health)

	secured := e.Group("", auth.Middleware(deps.Tokens))
	secured.GET("/chatrooms", s.chatrooms)
	secured.GET("/chatroommessages/:name", s.chatroomMessages)
	secured.GET("/chathub", s.chathub)
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Serve blocks until ctx is done, then shuts down within the context of shutdown.
func (s *Server) Serve(ctx context.Context, listener net.Listener, shutdown func() (context.Context, context.CancelFunc)) error {
	s.echo.Listener = listener
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.echo.Start("")
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := shutdown()
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errChan
		return nil
	case err := <-errChan:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) signup(c echo.Context) error {
	var req auth.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid signup syntax"})
	}
	token, err := s.deps.Auth.Register(req)
	if err != nil {
		return s.failure(c, "Signup", err)
	}
	return c.JSON(http.StatusCreated, tokenResponse{Message: "User registered successfully.", Token: string(token)})
}

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid login syntax"})
	}
	token, err := s.deps.Auth.Login(req.Username, req.Password)
	if err != nil {
		return s.failure(c, "Login", err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: string(token)})
}

func (s *Server) chatrooms(c echo.Context) error {
	username, _ := auth.UsernameFrom(c.Request().Context())
	groups := s.deps.Groups.GroupsOf(username)
	if !groups.Success {
		return c.JSON(status(groups.Kind), messageResponse{Message: groups.Message})
	}
	return c.JSON(http.StatusOK, groups.Payload)
}

// chatroomMessages returns the decrypted history of a group the caller belongs to.
func (s *Server) chatroomMessages(c echo.Context) error {
	username, _ := auth.UsernameFrom(c.Request().Context())
	name := c.Param("name")
	group := s.deps.Groups.GetGroup(name)
	if !group.Success {
		return c.JSON(status(group.Kind), messageResponse{Message: group.Message})
	}
	if !group.Payload.HasMember(username) {
		return s.failure(c, "ChatroomMessages", errors.ErrNotGroupMember)
	}
	snapshot := s.deps.Groups.RoomSnapshot(name)
	if !snapshot.Success {
		return c.JSON(status(snapshot.Kind), messageResponse{Message: snapshot.Message})
	}
	return c.JSON(http.StatusOK, snapshot.Payload.Messages)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Monitoring.GetLatest())
}

func (s *Server) chathub(c echo.Context) error {
	username, _ := auth.UsernameFrom(c.Request().Context())
	s.deps.Monitoring.IncrConnectionsOpened()
	defer s.deps.Monitoring.IncrConnectionsClosed()
	if err := s.deps.Sockets.Serve(c.Response(), c.Request(), username); err != nil {
		s.log.Debug("Upgrade failed", "username", username, "error", err)
	}
	return nil
}

func (s *Server) failure(c echo.Context, operation string, err error) error {
	kind := errors.KindOf(err)
	message := err.Error()
	if kind == errors.KindInternal {
		s.log.Error("Request failed", "op", operation, "error", err)
		message = "internal error"
	}
	return c.JSON(status(kind), messageResponse{Message: message})
}

func status(kind errors.Kind) int {
	switch kind {
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindConflict:
		return http.StatusConflict
	case errors.KindUnauthorized:
		return http.StatusUnauthorized
	case errors.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
