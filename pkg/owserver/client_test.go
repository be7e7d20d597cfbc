package owserver

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

// fakeReply is the canned answer for one path.
type fakeReply struct {
	ret     int32
	payload string
	size    int32
}

// fakeServer is a minimal owserver speaking the wire protocol on loopback.
type fakeServer struct {
	t          *testing.T
	ln         net.Listener
	persistent bool
	pings      int

	mu       sync.Mutex
	replies  map[string]fakeReply
	requests []Request
	accepted int
}

func newFakeServer(t *testing.T, persistent bool) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{
		t:          t,
		ln:         ln,
		persistent: persistent,
		replies:    make(map[string]fakeReply),
	}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *fakeServer) set(path string, reply fakeReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = reply
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.accepted++
		s.mu.Unlock()
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	for {
		hdrBuf := make([]byte, HeaderSize)
		if _, err := io.ReadFull(conn, hdrBuf); err != nil {
			return
		}
		var hdr Header
		_ = hdr.UnmarshalBinary(hdrBuf)
		payload := make([]byte, hdr.PayloadLength)
		if _, err := io.ReadFull(conn, payload); err != nil {
			return
		}
		path := string(payload[:len(payload)-1])

		s.mu.Lock()
		s.requests = append(s.requests, Request{Type: MessageType(hdr.Type), Path: path, Size: hdr.Size, Flags: hdr.Flags})
		reply, ok := s.replies[path]
		s.mu.Unlock()
		if !ok {
			reply = fakeReply{ret: -2}
		}

		for i := 0; i < s.pings; i++ {
			ping, _ := Header{PayloadLength: -1}.MarshalBinary()
			_, _ = conn.Write(ping)
		}

		var flags uint32
		if s.persistent {
			flags = hdr.Flags & FlagPersistence
		}
		body := []byte(reply.payload)
		if reply.ret >= 0 && reply.size == 0 {
			body = append(body, 0)
		}
		resp, _ := Header{
			PayloadLength: int32(len(body)),
			Type:          reply.ret,
			Flags:         flags,
			Size:          reply.size,
		}.MarshalBinary()
		if _, err := conn.Write(append(resp, body...)); err != nil {
			return
		}
		if !s.persistent {
			return
		}
	}
}

func (s *fakeServer) client() *Client {
	return NewClient(Config{Address: s.ln.Addr().String(), Timeout: 2 * time.Second})
}

func TestClientDirFiltersNonDevices(t *testing.T) {
	srv := newFakeServer(t, true)
	srv.set("/", fakeReply{payload: "/10.67C6697351FF,/1F.111111111111,/bus.0,/settings,/uncached,/system"})

	c := srv.client()
	defer c.Close()

	ids, err := c.Dir(context.Background(), "/")
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "10.67C6697351FF", ids[0].ID())
	assert.Equal(t, "/1F.111111111111", ids[1].FullPath())

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Len(t, srv.requests, 1)
	assert.Equal(t, MsgDirAll, srv.requests[0].Type)
	assert.Equal(t, DefaultFlags, srv.requests[0].Flags)
}

func TestClientDirHubBranch(t *testing.T) {
	srv := newFakeServer(t, true)
	srv.set("/1F.111111111111/main/", fakeReply{payload: "/1F.111111111111/main/28.222222222222"})

	c := srv.client()
	defer c.Close()

	ids, err := c.Dir(context.Background(), "/1F.111111111111/main/")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "28.222222222222", ids[0].ID())
	assert.Equal(t, "/1F.111111111111/main/28.222222222222", ids[0].FullPath())
}

func TestClientDirEmpty(t *testing.T) {
	srv := newFakeServer(t, true)
	srv.set("/1F.111111111111/aux/", fakeReply{payload: ""})

	c := srv.client()
	defer c.Close()

	_, err := c.Dir(context.Background(), "/1F.111111111111/aux/")
	assert.ErrorIs(t, err, ErrEmptyDirectory)
}

func TestClientServerError(t *testing.T) {
	srv := newFakeServer(t, true)

	c := srv.client()
	defer c.Close()

	_, err := c.Dir(context.Background(), "/missing/")
	var serr *ServerError
	require.True(t, errors.As(err, &serr), "error = %v", err)
	assert.Equal(t, int32(2), serr.Code)
	assert.Equal(t, MsgDirAll, serr.Op)
}

func TestClientReadString(t *testing.T) {
	srv := newFakeServer(t, true)
	srv.pings = 2
	srv.set("/28.222222222222/type", fakeReply{payload: "DS18B20  ", size: 9})

	c := srv.client()
	defer c.Close()

	typ, err := c.ReadString(context.Background(), "/28.222222222222/type")
	require.NoError(t, err)
	assert.Equal(t, "DS18B20", typ)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, int32(DefaultReadSize), srv.requests[0].Size)
}

func TestClientReadPages(t *testing.T) {
	srv := newFakeServer(t, true)
	id := sensor.MustParseID("/26.333333333333")
	for n := 0; n < sensor.PageCount; n++ {
		page := string([]byte{byte(n), 1, 2, 3, 4, 5, 6, 7})
		srv.set(id.FullPath()+"/pages/page."+string(rune('0'+n)), fakeReply{payload: page, size: 8})
	}

	c := srv.client()
	defer c.Close()

	pages, err := c.ReadPages(context.Background(), id)
	require.NoError(t, err)
	for n := 0; n < sensor.PageCount; n++ {
		assert.Equal(t, byte(n), pages.Byte(n, 0))
		assert.Equal(t, byte(7), pages.Byte(n, 7))
	}
}

func TestClientReusesPersistentConnection(t *testing.T) {
	srv := newFakeServer(t, true)
	srv.set("/", fakeReply{payload: "/10.67C6697351FF"})

	c := srv.client()
	defer c.Close()

	for i := 0; i < 3; i++ {
		_, err := c.Dir(context.Background(), "/")
		require.NoError(t, err)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, 1, srv.accepted)
}

func TestClientReconnectsWithoutPersistence(t *testing.T) {
	srv := newFakeServer(t, false)
	srv.set("/", fakeReply{payload: "/10.67C6697351FF"})

	c := srv.client()
	defer c.Close()

	for i := 0; i < 3; i++ {
		_, err := c.Dir(context.Background(), "/")
		require.NoError(t, err)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, 3, srv.accepted)
}

func TestClientClosed(t *testing.T) {
	srv := newFakeServer(t, true)
	c := srv.client()
	require.NoError(t, c.Close())

	_, err := c.Dir(context.Background(), "/")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClientConnectError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	c := NewClient(Config{Address: addr, Timeout: time.Second})
	defer c.Close()

	_, err = c.Dir(context.Background(), "/")
	assert.Error(t, err)
}

func TestNewClientDefaultPort(t *testing.T) {
	c := NewClient(Config{Address: "owserver.local"})
	assert.Equal(t, "owserver.local:4304", c.Address())
}
