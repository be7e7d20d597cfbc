package owserver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Protocol constants.
const (
	// HeaderSize is the size of request and response headers in bytes.
	HeaderSize = 24

	// DefaultPort is the owserver TCP port.
	DefaultPort = 4304

	// MaxPayloadSize bounds response payloads.
	MaxPayloadSize = 65536

	// DefaultReadSize is the data size requested for reads.
	DefaultReadSize = 8192
)

// MessageType is the owserver request type.
type MessageType int32

const (
	MsgError       MessageType = 0
	MsgNop         MessageType = 1
	MsgRead        MessageType = 2
	MsgWrite       MessageType = 3
	MsgDir         MessageType = 4
	MsgSize        MessageType = 5
	MsgPresence    MessageType = 6
	MsgDirAll      MessageType = 7
	MsgGet         MessageType = 8
	MsgDirAllSlash MessageType = 9
	MsgGetSlash    MessageType = 10
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MsgError:
		return "ERROR"
	case MsgNop:
		return "NOP"
	case MsgRead:
		return "READ"
	case MsgWrite:
		return "WRITE"
	case MsgDir:
		return "DIR"
	case MsgSize:
		return "SIZE"
	case MsgPresence:
		return "PRESENCE"
	case MsgDirAll:
		return "DIRALL"
	case MsgGet:
		return "GET"
	case MsgDirAllSlash:
		return "DIRALLSLASH"
	case MsgGetSlash:
		return "GETSLASH"
	default:
		return fmt.Sprintf("MSG(%d)", int32(m))
	}
}

// Control flags.
const (
	FlagUncached    uint32 = 0x00000020
	FlagSafemode    uint32 = 0x00000010
	FlagAlias       uint32 = 0x00000008
	FlagPersistence uint32 = 0x00000004
	FlagBusRet      uint32 = 0x00000002
	FlagOwnet       uint32 = 0x00000100
)

// DefaultFlags are sent with every request.
const DefaultFlags = FlagOwnet | FlagPersistence

// Protocol errors.
var (
	ErrPayloadTooLarge = errors.New("owserver payload too large")
	ErrShortPayload    = errors.New("owserver payload shorter than announced size")
)

// Header is the common request/response header. For responses Type carries
// the return value.
type Header struct {
	Version       int32
	PayloadLength int32
	Type          int32
	Flags         uint32
	Size          int32
	Offset        int32
}

// IsPing reports whether the response is a server keep-alive.
func (h Header) IsPing() bool {
	return h.PayloadLength == -1
}

// Persistent reports whether the server granted connection persistence.
func (h Header) Persistent() bool {
	return h.Flags&FlagPersistence != 0
}

// MarshalBinary encodes the header in network byte order.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buf[0:], uint32(h.Version))
	binary.BigEndian.PutUint32(buf[4:], uint32(h.PayloadLength))
	binary.BigEndian.PutUint32(buf[8:], uint32(h.Type))
	binary.BigEndian.PutUint32(buf[12:], h.Flags)
	binary.BigEndian.PutUint32(buf[16:], uint32(h.Size))
	binary.BigEndian.PutUint32(buf[20:], uint32(h.Offset))
	return buf, nil
}

// UnmarshalBinary decodes a header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("owserver header: %w", io.ErrUnexpectedEOF)
	}
	h.Version = int32(binary.BigEndian.Uint32(data[0:]))
	h.PayloadLength = int32(binary.BigEndian.Uint32(data[4:]))
	h.Type = int32(binary.BigEndian.Uint32(data[8:]))
	h.Flags = binary.BigEndian.Uint32(data[12:])
	h.Size = int32(binary.BigEndian.Uint32(data[16:]))
	h.Offset = int32(binary.BigEndian.Uint32(data[20:]))
	return nil
}

// Request is an owserver request.
type Request struct {
	Type  MessageType
	Path  string
	Size  int32
	Flags uint32
}

// WriteRequest writes req to w.
func WriteRequest(w io.Writer, req Request) error {
	payload := append([]byte(req.Path), 0)
	hdr := Header{
		PayloadLength: int32(len(payload)),
		Type:          int32(req.Type),
		Flags:         req.Flags,
		Size:          req.Size,
	}
	buf, _ := hdr.MarshalBinary()
	buf = append(buf, payload...)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write %s request: %w", req.Type, err)
	}
	return nil
}

// Response is a decoded owserver response.
type Response struct {
	Header
	Payload []byte
}

// Data returns the meaningful part of the payload: Size bytes for reads,
// the payload without trailing NUL otherwise.
func (r Response) Data() []byte {
	if r.Size > 0 && int(r.Size) <= len(r.Payload) {
		return r.Payload[:r.Size]
	}
	data := r.Payload
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return data
}

// ReadResponse reads the next non-ping response from r.
func ReadResponse(r io.Reader) (Response, error) {
	hdrBuf := make([]byte, HeaderSize)
	for {
		if _, err := io.ReadFull(r, hdrBuf); err != nil {
			return Response{}, fmt.Errorf("failed to read response header: %w", err)
		}
		var hdr Header
		if err := hdr.UnmarshalBinary(hdrBuf); err != nil {
			return Response{}, err
		}
		if hdr.IsPing() {
			continue
		}
		if hdr.PayloadLength < 0 || hdr.PayloadLength > MaxPayloadSize {
			return Response{}, fmt.Errorf("%w: %d", ErrPayloadTooLarge, hdr.PayloadLength)
		}

		payload := make([]byte, hdr.PayloadLength)
		if _, err := io.ReadFull(r, payload); err != nil {
			return Response{}, fmt.Errorf("failed to read response payload: %w", err)
		}
		if hdr.Size > hdr.PayloadLength {
			return Response{}, fmt.Errorf("%w: size %d, payload %d", ErrShortPayload, hdr.Size, hdr.PayloadLength)
		}
		return Response{Header: hdr, Payload: payload}, nil
	}
}
