// Package server exposes a meeting store over the mini-app REST API. It is
// the local counterpart of the remote service the api client talks to.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/IMNJL/AI-chef/internal/api"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Store is a meeting store that can also fetch one meeting by id.
type Store interface {
	meeting.Store
	Get(ctx context.Context, id string) (*meeting.Meeting, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithClock overrides the time source used for ICS stamps and default ranges.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLocation sets the location used for date-only query parameters.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Server serves the meetings API.
type Server struct {
	e     *echo.Echo
	store Store
	log   zerolog.Logger
	now   func() time.Time
	loc   *time.Location
}

// New creates a server over store.
func New(store Store, opts ...Option) *Server {
	s := &Server{
		e:     echo.New(),
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.HTTPErrorHandler = s.handleError
	s.e.Use(s.requestLogger)

	h := &Handler{store: store, log: s.log, now: s.now, loc: s.loc}
	g := s.e.Group(api.MeetingsPath, s.requireCredential)
	g.GET("", h.List)
	g.GET(".ics", h.ExportICS)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("server listening")
		errCh <- s.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info().Msg("server shutting down")
	return s.e.Shutdown(shutdownCtx)
}

// requireCredential rejects requests carrying neither init data nor a
// positive telegramId. The credential is not verified.
func (s *Server) requireCredential(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(api.InitDataHeader) != "" {
			return next(c)
		}
		if id, err := strconv.ParseInt(c.QueryParam(api.TelegramIDParam), 10, 64); err == nil && id > 0 {
			return next(c)
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		s.log.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", c.Response().Status).
			Bool("init_data", req.Header.Get(api.InitDataHeader) != "").
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return nil
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	} else {
		s.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
	}

	if werr := c.JSON(status, errorBody{Error: msg}); werr != nil {
		s.log.Warn().Err(werr).Msg("writing error response")
	}
}
