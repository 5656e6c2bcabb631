package protocol

import "encoding/binary"

// Frame is one complete wire unit.
type Frame struct {
	Type    MessageType
	Payload []byte
}

// EncodeFrame builds the full byte sequence for one frame: type, big-endian
// payload length, payload. Payloads larger than the shared buffer capacity
// are rejected rather than truncated; truncation decisions belong to the
// message encoders that define a policy for them.
func EncodeFrame(t MessageType, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}

	out := make([]byte, HeaderSize+len(payload))
	out[0] = byte(t)
	binary.BigEndian.PutUint16(out[1:3], uint16(len(payload)))
	copy(out[HeaderSize:], payload)
	return out, nil
}

// Decoder accumulates inbound bytes for one connection and yields complete
// frames as they become available. Surplus bytes beyond a frame boundary are
// retained for the next frame.
type Decoder struct {
	buf []byte
}

// Feed appends raw bytes received from the connection.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next returns the next complete frame, or nil if the accumulated bytes do
// not yet contain one. A declared payload length that could never fit the
// shared buffer returns ErrFrameTooLarge; the caller must treat the
// connection as protocol-violating since the stream can no longer be framed.
func (d *Decoder) Next() (*Frame, error) {
	if len(d.buf) < HeaderSize {
		return nil, nil
	}

	length := int(binary.BigEndian.Uint16(d.buf[1:3]))
	if length > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	if len(d.buf) < HeaderSize+length {
		return nil, nil
	}

	frame := &Frame{
		Type:    MessageType(d.buf[0]),
		Payload: make([]byte, length),
	}
	copy(frame.Payload, d.buf[HeaderSize:HeaderSize+length])

	d.buf = d.buf[HeaderSize+length:]
	return frame, nil
}

// Buffered returns the number of accumulated bytes not yet consumed.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// Reset discards any accumulated bytes.
func (d *Decoder) Reset() {
	d.buf = nil
}
