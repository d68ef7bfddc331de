package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/kitbuilder587/bookfinder/internal/metrics"
	"github.com/kitbuilder587/bookfinder/internal/repository"
	"github.com/kitbuilder587/bookfinder/internal/service"
)

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Session      SessionConfig
	Version      string
}

type ServerDeps struct {
	Search   service.SearchService
	Sessions repository.SessionRepository
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	// MetricsHandler - по умолчанию глобальный promhttp
	MetricsHandler http.Handler
}

type Server struct {
	cfg    ServerConfig
	router *httprouter.Router
	server *http.Server
	logger *zap.Logger
}

func NewServer(cfg ServerConfig, deps ServerDeps) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.MetricsHandler == nil {
		deps.MetricsHandler = metrics.Handler()
	}

	s := &Server{
		cfg:    cfg,
		router: httprouter.New(),
		logger: deps.Logger,
	}

	search := NewSearchHandler(deps.Search, renderer, deps.Logger)
	health := NewHealthHandler(deps.Sessions, cfg.Version, deps.Logger)

	page := Session(cfg.Session)
	m := deps.Metrics

	s.router.Handler(http.MethodGet, "/", Instrument(m, "/", page(adapt(search.Index))))
	s.router.Handler(http.MethodPost, "/", Instrument(m, "/", page(adapt(search.Submit))))
	s.router.GET("/healthz", health.Live)
	s.router.GET("/readyz", health.Ready)
	s.router.Handler(http.MethodGet, "/metrics", deps.MetricsHandler)

	handler := Chain(
		Recovery(deps.Logger),
		RequestID,
		AccessLog(deps.Logger),
	)(s.router)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Serve блокируется до Shutdown. http.ErrServerClosed ошибкой не считается.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.server.Shutdown(ctx)
}

func adapt(h httprouter.Handle) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(w, r, httprouter.ParamsFromContext(r.Context()))
	})
}
