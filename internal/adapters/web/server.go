package web

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Server wraps http.Server with the service's timeouts
type Server struct {
	server *http.Server
}

// NewServer creates a server for handler on addr. A non-nil tlsConfig serves HTTPS.
func NewServer(addr string, handler http.Handler, tlsConfig *tls.Config) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start blocks serving requests until Stop is called
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")

	var err error
	if s.server.TLSConfig != nil {
		err = s.server.ListenAndServeTLS("", "")
	} else {
		err = s.server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the server down, waiting up to timeout for open requests
func (s *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
