package frame

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the fixed length of the wire header: a 1-byte command
// code followed by a big-endian 4-byte payload length.
const HeaderSize = 5

// Frame is one complete protocol message.
type Frame struct {
	Command byte
	Payload []byte
}

// Encode packs a command and payload into wire format: the 5-byte header
// followed by the payload bytes.
//
// The payload length is not capped beyond the uint32 range. The protocol
// trusts its peers; a peer can claim an arbitrarily large length and this
// layer will not reject it.
func Encode(command byte, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = command
	binary.BigEndian.PutUint32(buf[1:HeaderSize], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf
}

// DecodeHeader unpacks a full 5-byte header. Every bit pattern is legal,
// so decoding never fails.
func DecodeHeader(header [HeaderSize]byte) (command byte, length uint32) {
	return header[0], binary.BigEndian.Uint32(header[1:])
}

// ReadFrame reads exactly one frame from r in two stages: the 5-byte
// header, then exactly as many payload bytes as the header declares.
//
// A stream that closes cleanly before the first header byte returns
// io.EOF: the peer disconnected and no frame was received. A stream that
// closes mid-header or mid-payload returns an error wrapping
// io.ErrUnexpectedEOF. A zero-length payload is a valid frame with an
// empty payload, never a disconnection.
func ReadFrame(r io.Reader) (*Frame, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	command, length := DecodeHeader(header)

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read payload: %w", err)
	}

	return &Frame{Command: command, Payload: payload}, nil
}

// WriteFrame encodes a frame and writes it to w in a single call.
func WriteFrame(w io.Writer, command byte, payload []byte) error {
	if _, err := w.Write(Encode(command, payload)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
