// Package protocol implements the binary wire format spoken between the game
// server and its clients. Every exchange is a frame consisting of a one byte
// message type, a two byte big-endian payload length, and exactly that many
// payload bytes.
package protocol

import "errors"

const (
	// HeaderSize is the number of bytes preceding the payload in every frame.
	HeaderSize = 3
	// BufferSize is the shared capacity of the per-connection transmit and
	// receive buffers. No frame may exceed it.
	BufferSize = 4096
	// MaxPayloadSize is the largest payload that fits in a single frame.
	MaxPayloadSize = BufferSize - HeaderSize
)

// MessageType identifies the meaning of a frame's payload.
type MessageType uint8

const (
	TypeLogin               MessageType = 0x01
	TypeRegister            MessageType = 0x02
	TypeAuthResponse        MessageType = 0x03
	TypeGetGameHistory      MessageType = 0x04
	TypeGameHistoryResponse MessageType = 0x05

	// Relayed between clients without interpretation.
	TypeStroke   MessageType = 0x10
	TypeGuess    MessageType = 0x11
	TypeAnnounce MessageType = 0x12
)

var (
	// ErrFrameTooLarge indicates a frame whose declared payload length exceeds
	// the shared buffer capacity. Such a frame can never complete and the
	// connection that produced it is protocol-violating.
	ErrFrameTooLarge = errors.New("frame exceeds buffer capacity")
	// ErrMalformedPayload indicates a payload that does not match the layout
	// required by its message type.
	ErrMalformedPayload = errors.New("malformed message payload")
)
