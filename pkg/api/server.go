package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/chatsnake/pkg/api/handlers"
	"github.com/cbodonnell/chatsnake/pkg/api/middleware"
	"github.com/cbodonnell/chatsnake/pkg/log"
	"github.com/cbodonnell/chatsnake/pkg/render"
	"github.com/cbodonnell/chatsnake/pkg/session"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
	logger *log.Logger
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port     int
	TLS      *TLSConfig
	Store    session.Store
	Renderer *render.Renderer
	// Hub is mounted at /ws when set
	Hub http.Handler
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	logger := log.Named("api")
	return &APIServer{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", opts.Port),
			Handler: NewRouter(opts, logger),
		},
		tls:    opts.TLS,
		logger: logger,
	}
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(logger), middleware.NewCORSMiddleware())

	if opts.Hub != nil {
		r.Handle("/ws", opts.Hub).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", handlers.HandleHealthz()).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/version", handlers.HandleVersion()).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/session", handlers.HandleGetSession(opts.Store, opts.Renderer)).Methods(http.MethodGet, http.MethodOptions)
	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		s.logger.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		s.logger.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			s.logger.Info("API server closed")
			return
		}
		s.logger.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
