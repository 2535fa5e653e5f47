package host

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/bridge"
)

// ErrClosed is returned for calls on a closed client.
var ErrClosed = errors.New("host: connection closed")

// Client is a connection to a native host.
type Client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan Frame
	closed  bool
	err     error

	done chan struct{}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientLogger sets the client logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Dial connects to the host at url (ws:// or wss://).
func Dial(ctx context.Context, url string, opts ...ClientOption) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, lerrors.New(lerrors.CodeHostRequest).
			WithDetailf("dial %s", url).
			Wrap(err)
	}

	c := &Client{
		conn:    conn,
		logger:  slog.Default(),
		pending: make(map[uint64]chan Frame),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.readLoop()
	return c, nil
}

// Invoke sends a positional command and waits for its result.
func (c *Client) Invoke(ctx context.Context, cmd string, args map[string]any) (any, error) {
	return c.call(ctx, Frame{Cmd: cmd, Args: args})
}

// InvokeRequest sends an object-wrapped command and waits for its result.
func (c *Client) InvokeRequest(ctx context.Context, req bridge.Request) (any, error) {
	return c.call(ctx, Frame{Request: &req})
}

func (c *Client) call(ctx context.Context, f Frame) (any, error) {
	cmd, _ := f.command()

	c.mu.Lock()
	if c.closed {
		err := c.err
		c.mu.Unlock()
		return nil, err
	}
	c.nextID++
	f.ID = c.nextID
	reply := make(chan Frame, 1)
	c.pending[f.ID] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, f.ID)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(f)
	c.writeMu.Unlock()
	if err != nil {
		return nil, lerrors.New(lerrors.CodeHostRequest).WithDetailf("send %q", cmd).Wrap(err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		c.mu.Lock()
		err := c.err
		c.mu.Unlock()
		return nil, err
	case resp := <-reply:
		if resp.Error != "" {
			return nil, lerrors.New(lerrors.CodeHostResponse).
				WithDetailf("%s: %s", cmd, resp.Error)
		}
		if len(resp.Result) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(resp.Result, &v); err != nil {
			return nil, lerrors.New(lerrors.CodeHostResponse).
				WithDetailf("decode result of %q", cmd).
				Wrap(err)
		}
		return v, nil
	}
}

func (c *Client) readLoop() {
	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			c.shutdown(err)
			return
		}

		// The first reply claims the request; duplicates are dropped.
		c.mu.Lock()
		reply, ok := c.pending[f.ID]
		delete(c.pending, f.ID)
		c.mu.Unlock()
		if !ok {
			c.logger.Debug("host reply for unknown request", "id", f.ID)
			continue
		}
		reply <- f
	}
}

func (c *Client) shutdown(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if websocket.IsCloseError(cause, websocket.CloseNormalClosure) || errors.Is(cause, websocket.ErrCloseSent) {
		c.err = ErrClosed
	} else {
		c.err = lerrors.New(lerrors.CodeHostRequest).WithDetail("connection lost").Wrap(errors.Join(ErrClosed, cause))
	}
	close(c.done)
}

// Close closes the connection. Pending calls fail with ErrClosed.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	c.mu.Lock()
	if !c.closed {
		c.closed = true
		c.err = ErrClosed
		close(c.done)
	}
	c.mu.Unlock()
	return c.conn.Close()
}

// Lazy dials the host on first use and reuses the connection while it is
// healthy. Its Load method fits bridge.Env.Import; the Lazy itself fits
// bridge.Env.Global, offering both the positional and object-wrapped forms.
type Lazy struct {
	url  string
	opts []ClientOption

	mu     sync.Mutex
	client *Client
}

// NewLazy creates a Lazy connection to url.
func NewLazy(url string, opts ...ClientOption) *Lazy {
	return &Lazy{url: url, opts: opts}
}

// Load returns a live client, dialing if needed.
func (l *Lazy) Load(ctx context.Context) (bridge.Invoker, error) {
	c, err := l.live(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Invoke sends a positional command over a live connection.
func (l *Lazy) Invoke(ctx context.Context, cmd string, args map[string]any) (any, error) {
	c, err := l.live(ctx)
	if err != nil {
		return nil, err
	}
	return c.Invoke(ctx, cmd, args)
}

// InvokeRequest sends an object-wrapped command over a live connection.
func (l *Lazy) InvokeRequest(ctx context.Context, req bridge.Request) (any, error) {
	c, err := l.live(ctx)
	if err != nil {
		return nil, err
	}
	return c.InvokeRequest(ctx, req)
}

func (l *Lazy) live(ctx context.Context) (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client != nil && !l.client.isClosed() {
		return l.client, nil
	}
	c, err := Dial(ctx, l.url, l.opts...)
	if err != nil {
		return nil, err
	}
	l.client = c
	return c, nil
}

// Close closes the current connection, if any.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client == nil {
		return nil
	}
	err := l.client.Close()
	l.client = nil
	return err
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
