package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/component"
	"github.com/gerreth/udacity-flight-surety/module/irrecoverable"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
)

const shutdownTimeout = 5 * time.Second

// Server serves the status surface of the oracle fleet.
type Server struct {
	*component.ComponentManager

	log    zerolog.Logger
	server *http.Server
	addr   net.Addr
	ready  chan struct{} // closed once addr is set
}

// NewServer returns a status server listening on the given address once started.
func NewServer(log zerolog.Logger, listenAddress string, reporter *oracles.StatusReporter, restCollector module.RestMetrics) *Server {
	log = log.With().Str("component", "rest_server").Str("address", listenAddress).Logger()

	// the dapp is served from another origin
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
			http.MethodHead},
	})

	s := &Server{
		log: log,
		server: &http.Server{
			Addr:         listenAddress,
			Handler:      c.Handler(NewRouter(log, reporter, restCollector)),
			WriteTimeout: time.Second * 15,
			ReadTimeout:  time.Second * 15,
			IdleTimeout:  time.Second * 60,
		},
		ready: make(chan struct{}),
	}

	s.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(s.serve).
		Build()

	return s
}

func (s *Server) serve(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		ctx.Throw(err)
	}
	s.addr = listener.Addr()
	close(s.ready)

	go func() {
		err := s.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Err(err).Msg("error serving status api")
		}
	}()

	s.log.Info().Str("listen_address", s.addr.String()).Msg("status server started")
	ready()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = s.server.Shutdown(shutdownCtx)
	if err != nil {
		s.log.Warn().Err(err).Msg("status server did not shut down cleanly")
	}
}

// Addr returns the address the server listens on. It blocks until the server
// started listening.
func (s *Server) Addr() net.Addr {
	<-s.ready
	return s.addr
}
