package owserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

// DefaultTimeout bounds a single request when the context has no deadline.
const DefaultTimeout = 5 * time.Second

// Client errors.
var (
	// ErrEmptyDirectory is returned when a directory lists no devices.
	ErrEmptyDirectory = errors.New("directory contains no devices")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("owserver client closed")
)

// ServerError is a negative return value reported by owserver.
type ServerError struct {
	Op   MessageType
	Path string
	Code int32
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("owserver %s %s: error %d", e.Op, e.Path, e.Code)
}

// Dialer opens connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Config configures a Client.
type Config struct {
	// Address is host:port of the owserver. The port defaults to 4304.
	Address string

	// Timeout bounds each request if the context carries no deadline.
	// Default: 5 seconds.
	Timeout time.Duration

	// Dialer opens connections. If nil, a net.Dialer is used.
	Dialer Dialer

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

// Client talks to one owserver. Requests are serialized over a single
// connection that is kept open while the server grants persistence.
type Client struct {
	config Config

	mu     sync.Mutex
	conn   net.Conn
	closed bool
}

// NewClient creates a client. No connection is made until the first request.
func NewClient(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Dialer == nil {
		config.Dialer = &net.Dialer{}
	}
	if _, _, err := net.SplitHostPort(config.Address); err != nil {
		config.Address = net.JoinHostPort(config.Address, fmt.Sprint(DefaultPort))
	}
	return &Client{config: config}
}

// Address returns the owserver address.
func (c *Client) Address() string {
	return c.config.Address
}

// Ping sends a NOP request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.request(ctx, Request{Type: MsgNop, Path: "/"})
	return err
}

// Dir lists the devices in path. Non-device entries such as "bus.0",
// "settings" or "uncached" are skipped. A directory without devices is
// ErrEmptyDirectory.
func (c *Client) Dir(ctx context.Context, path string) ([]sensor.ID, error) {
	resp, err := c.request(ctx, Request{Type: MsgDirAll, Path: path})
	if err != nil {
		return nil, err
	}

	var ids []sensor.ID
	for _, entry := range strings.Split(string(resp.Data()), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, err := sensor.ParseID(entry)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, path)
	}
	return ids, nil
}

// Read returns the raw value of the file at path.
func (c *Client) Read(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.request(ctx, Request{Type: MsgRead, Path: path, Size: DefaultReadSize})
	if err != nil {
		return nil, err
	}
	return resp.Data(), nil
}

// ReadString returns the value of the file at path with surrounding
// whitespace removed.
func (c *Client) ReadString(ctx context.Context, path string) (string, error) {
	data, err := c.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadPages reads the eight memory pages of a DS2438.
func (c *Client) ReadPages(ctx context.Context, id sensor.ID) (sensor.PageBuffer, error) {
	var pages sensor.PageBuffer
	for n := 0; n < sensor.PageCount; n++ {
		data, err := c.Read(ctx, fmt.Sprintf("%s/pages/page.%d", id.FullPath(), n))
		if err != nil {
			return pages, err
		}
		if len(data) > sensor.PageSize {
			data = data[:sensor.PageSize]
		}
		if err := pages.SetPage(n, data); err != nil {
			return pages, err
		}
	}
	return pages, nil
}

// Close closes the connection. Further requests fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return c.dropConn()
}

// request performs one request. A failure on a reused connection is retried
// once on a fresh connection because the server may have dropped it.
func (c *Client) request(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Response{}, ErrClosed
	}
	req.Flags = DefaultFlags

	reused := c.conn != nil
	resp, err := c.roundTrip(ctx, req)
	if err != nil && reused && ctx.Err() == nil {
		c.debugLog("owserver: retrying on fresh connection", "op", req.Type.String(), "path", req.Path, "error", err)
		resp, err = c.roundTrip(ctx, req)
	}
	if err != nil {
		return Response{}, err
	}

	if resp.Type < 0 {
		return Response{}, &ServerError{Op: req.Type, Path: req.Path, Code: -resp.Type}
	}
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	if c.conn == nil {
		conn, err := c.config.Dialer.DialContext(ctx, "tcp", c.config.Address)
		if err != nil {
			return Response{}, fmt.Errorf("failed to connect to owserver %s: %w", c.config.Address, err)
		}
		c.conn = conn
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}
	_ = c.conn.SetDeadline(deadline)

	if err := WriteRequest(c.conn, req); err != nil {
		_ = c.dropConn()
		return Response{}, err
	}
	resp, err := ReadResponse(c.conn)
	if err != nil {
		_ = c.dropConn()
		return Response{}, err
	}

	if !resp.Persistent() {
		_ = c.dropConn()
	}
	return resp, nil
}

func (c *Client) dropConn() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) debugLog(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, args...)
	}
}
