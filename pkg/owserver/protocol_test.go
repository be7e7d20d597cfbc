package owserver

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	want := Header{
		Version:       0,
		PayloadLength: 17,
		Type:          -42,
		Flags:         DefaultFlags,
		Size:          8192,
		Offset:        3,
	}
	data, err := want.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, HeaderSize)

	var got Header
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, want, got)
}

func TestHeaderUnmarshalShort(t *testing.T) {
	var h Header
	err := h.UnmarshalBinary(make([]byte, 10))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestWriteRequest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, Request{Type: MsgDirAll, Path: "/", Flags: DefaultFlags}))

	data := buf.Bytes()
	require.Len(t, data, HeaderSize+2)

	var h Header
	require.NoError(t, h.UnmarshalBinary(data))
	assert.Equal(t, int32(2), h.PayloadLength)
	assert.Equal(t, int32(MsgDirAll), h.Type)
	assert.Equal(t, DefaultFlags, h.Flags)
	assert.Equal(t, []byte{'/', 0}, data[HeaderSize:])
}

func writeResponse(t *testing.T, w io.Writer, hdr Header, payload []byte) {
	t.Helper()
	hdr.PayloadLength = int32(len(payload))
	data, err := hdr.MarshalBinary()
	require.NoError(t, err)
	_, err = w.Write(append(data, payload...))
	require.NoError(t, err)
}

func TestReadResponseSkipsPing(t *testing.T) {
	var buf bytes.Buffer

	ping, _ := Header{PayloadLength: -1}.MarshalBinary()
	buf.Write(ping)
	buf.Write(ping)
	writeResponse(t, &buf, Header{Size: 5}, []byte("hello\x00\x00"))

	resp, err := ReadResponse(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), resp.Data())
}

func TestReadResponseTooLarge(t *testing.T) {
	hdr, _ := Header{PayloadLength: MaxPayloadSize + 1}.MarshalBinary()
	_, err := ReadResponse(bytes.NewReader(hdr))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestReadResponseTruncated(t *testing.T) {
	hdr, _ := Header{PayloadLength: 10}.MarshalBinary()
	_, err := ReadResponse(bytes.NewReader(append(hdr, 'a', 'b')))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadResponseSizeBeyondPayload(t *testing.T) {
	var buf bytes.Buffer
	writeResponse(t, &buf, Header{Size: 20}, []byte("abc"))
	_, err := ReadResponse(&buf)
	assert.ErrorIs(t, err, ErrShortPayload)
}

func TestResponseDataTrimsNUL(t *testing.T) {
	resp := Response{Payload: []byte("/10.A,/28.B\x00")}
	assert.Equal(t, "/10.A,/28.B", string(resp.Data()))
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "DIRALL", MsgDirAll.String())
	assert.Equal(t, "READ", MsgRead.String())
	assert.Equal(t, "MSG(99)", MessageType(99).String())
}
