package server

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/neerajjha549/custom-protocol-over-tcp/internal/logger"
)

// Server owns the listening socket and accepts protocol connections,
// spawning one handler goroutine per connection. Handlers are
// fire-and-forget: the accept loop never waits on them, and they share
// no state with each other or with the accept loop.
type Server struct {
	host     string
	port     int
	listener net.Listener
}

// New creates a server bound to nothing yet. Host and port are fixed for
// the lifetime of the server.
func New(host string, port int) *Server {
	return &Server{host: host, port: port}
}

// Listen binds the listening socket. Go's TCP listener sets SO_REUSEADDR
// on POSIX platforms, so a quick restart does not fail with an
// address-in-use error.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return fmt.Errorf("failed to start listener: %w", err)
	}

	s.listener = listener
	return nil
}

// Addr returns the bound listen address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled. It binds the socket
// first unless Listen was already called. A bind failure is returned to
// the caller; after a successful bind every failure is contained within
// the connection it belongs to.
//
// No bound is enforced on the number of concurrent connections.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	logger.Info("Server listening on %s", s.listener.Addr())

	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		tcpConn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				logger.Debug("Error accepting connection: %v", err)
				continue
			}
		}

		c := &conn{conn: tcpConn}
		go c.serve(ctx)
	}
}

// Stop closes the listening socket, ending the accept loop. In-flight
// handlers are not interrupted.
func (s *Server) Stop() error {
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}
