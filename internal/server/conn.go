package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"unicode/utf8"

	"github.com/neerajjha549/custom-protocol-over-tcp/internal/logger"
	"github.com/neerajjha549/custom-protocol-over-tcp/internal/protocol/echo"
	"github.com/neerajjha549/custom-protocol-over-tcp/internal/protocol/frame"
)

// conn handles one accepted connection. It owns the net.Conn exclusively
// for its entire lifetime; nothing outside this handler ever touches it.
type conn struct {
	conn net.Conn
}

// serve runs the receive-decode-dispatch-encode-send loop until the peer
// disconnects, sends a quit command, or the server context is cancelled.
// Every failure is resolved by closing this one connection; nothing
// propagates back to the accept loop or to other handlers.
func (c *conn) serve(ctx context.Context) {
	defer c.conn.Close()
	remote := c.conn.RemoteAddr().String()
	logger.Debug("New connection from %s", remote)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			done, err := c.handleRequest(remote)
			if err != nil {
				switch {
				case errors.Is(err, io.EOF):
					logger.Debug("Client %s disconnected", remote)
				case errors.Is(err, io.ErrUnexpectedEOF):
					logger.Debug("Client %s disconnected mid-frame", remote)
				default:
					logger.Warn("Error handling request from %s: %v", remote, err)
				}
				return
			}
			if done {
				logger.Debug("Client %s sent quit, closing connection", remote)
				return
			}
		}
	}
}

// handleRequest reads one frame, dispatches it, and writes the response
// when one is called for. It reports done=true when the peer asked to
// close the connection. The response is fully written before the next
// request is read, so responses on one connection can never reorder.
func (c *conn) handleRequest(remote string) (done bool, err error) {
	f, err := frame.ReadFrame(c.conn)
	if err != nil {
		return false, err
	}

	logger.Debug("[Client %s] Received frame: command=%d length=%d", remote, f.Command, len(f.Payload))

	if f.Command == echo.CmdReverse && !utf8.Valid(f.Payload) {
		logger.Warn("[Client %s] Payload is not valid UTF-8, reversing best-effort", remote)
	}

	result := echo.Process(f.Command, f.Payload)
	switch result.Disposition {
	case echo.Respond:
		if err := frame.WriteFrame(c.conn, result.Command, result.Payload); err != nil {
			return false, fmt.Errorf("write response: %w", err)
		}
	case echo.Ignore:
		logger.Debug("[Client %s] Unknown command %d, ignoring", remote, f.Command)
	case echo.Close:
		return true, nil
	}

	return false, nil
}
