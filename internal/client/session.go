package client

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/neerajjha549/custom-protocol-over-tcp/internal/protocol/echo"
	"github.com/neerajjha549/custom-protocol-over-tcp/internal/protocol/frame"
)

// ErrDisconnected is returned when the server closes the connection
// while a response is pending. It is terminal for the session.
var ErrDisconnected = errors.New("server closed the connection")

// Session drives one protocol connection from the initiating side. It is
// strictly request-then-response: exactly one frame out, then block for
// exactly one frame back, never pipelined. A Session is not safe for
// concurrent use.
type Session struct {
	conn   net.Conn
	closed bool
}

// Dial connects to a server.
func Dial(host string, port int) (*Session, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d: %w", host, port, err)
	}

	return &Session{conn: conn}, nil
}

// Echo asks the server to send text back unchanged.
func (s *Session) Echo(text string) (string, error) {
	return s.roundTrip(echo.CmdEcho, text)
}

// Reverse asks the server to reverse text character by character.
func (s *Session) Reverse(text string) (string, error) {
	return s.roundTrip(echo.CmdReverse, text)
}

func (s *Session) roundTrip(command byte, text string) (string, error) {
	if s.closed {
		return "", net.ErrClosed
	}

	if err := frame.WriteFrame(s.conn, command, []byte(text)); err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}

	resp, err := frame.ReadFrame(s.conn)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", ErrDisconnected
		}
		return "", fmt.Errorf("read response: %w", err)
	}

	return string(resp.Payload), nil
}

// Quit sends the quit command and closes the session immediately. The
// server never responds to a quit, so there is nothing to wait for.
func (s *Session) Quit() error {
	if s.closed {
		return nil
	}

	if err := frame.WriteFrame(s.conn, echo.CmdQuit, nil); err != nil {
		s.Close()
		return fmt.Errorf("send quit: %w", err)
	}

	return s.Close()
}

// Close closes the underlying connection. Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
