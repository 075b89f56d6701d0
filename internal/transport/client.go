// Package transport ships exported cell text to an execution backend over a
// WebSocket and streams its replies back.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iw2rmb/codecell/internal/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024

	sendBuffer = 256
)

var (
	// ErrNotConnected is returned by Submit while the client is between
	// connections.
	ErrNotConnected = errors.New("transport: not connected")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("transport: client closed")
)

// Options tunes a Client. Zero values take the defaults.
type Options struct {
	// ReconnectDelay is the pause before each reconnect attempt.
	ReconnectDelay time.Duration
	Dialer         *websocket.Dialer
	Header         http.Header
}

// State reports a connection change.
type State struct {
	Connected bool
	Err       error
}

// Client is a reconnecting WebSocket client. It is safe for concurrent use.
type Client struct {
	url  string
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	conn *websocket.Conn

	send    chan []byte
	outputs chan Output
	states  chan State
	done    chan struct{}

	closeOnce sync.Once
}

// Dial connects to url and keeps the connection alive until Close. When the
// connection drops the client reconnects after Options.ReconnectDelay.
// The first connection attempt must succeed.
func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = 5 * time.Second
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}

	c := &Client{
		url:     url,
		opts:    opts,
		send:    make(chan []byte, sendBuffer),
		outputs: make(chan Output, sendBuffer),
		states:  make(chan State, 8),
		done:    make(chan struct{}),
	}

	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.setConn(conn)
	go c.run(conn)
	return c, nil
}

// Outputs delivers backend replies in arrival order. It is closed after
// Close.
func (c *Client) Outputs() <-chan Output { return c.outputs }

// States delivers connection changes. Slow readers miss intermediate states.
func (c *Client) States() <-chan State { return c.states }

// Connected reports whether a connection is currently up.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Submit queues req for the backend. It does not wait for a reply.
func (c *Client) Submit(ctx context.Context, req Request) error {
	data, err := encodeRequest(req)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, data)
}

// RequestEnvInfo asks the backend to describe its environment. The reply
// arrives on Outputs with type TypeEnvInfo.
func (c *Client) RequestEnvInfo(ctx context.Context) error {
	return c.Submit(ctx, Request{Type: TypeEnvInfo})
}

func (c *Client) enqueue(ctx context.Context, data []byte) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	if !c.Connected() {
		return ErrNotConnected
	}
	select {
	case c.send <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return ErrClosed
	}
}

// Close stops reconnecting, closes the connection and waits for the
// background goroutines to exit.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()
	})
	<-c.done
	return nil
}

func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := c.opts.Dialer.DialContext(ctx, c.url, c.opts.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", c.url, err)
	}
	log.Info(log.CatTransport, "Connected", "url", c.url)
	return conn, nil
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Client) emitState(s State) {
	select {
	case c.states <- s:
	default:
	}
}

func (c *Client) run(conn *websocket.Conn) {
	defer close(c.done)
	defer close(c.outputs)

	for {
		c.setConn(conn)
		// Close may have run between dial and setConn.
		if c.ctx.Err() != nil {
			_ = conn.Close()
			c.setConn(nil)
			return
		}
		c.emitState(State{Connected: true})

		err := c.serve(conn)
		c.setConn(nil)
		if c.ctx.Err() != nil {
			return
		}
		log.Warn(log.CatTransport, "Connection lost", "url", c.url, "error", err)
		c.emitState(State{Connected: false, Err: err})

		conn = c.reconnect()
		if conn == nil {
			return
		}
	}
}

// reconnect retries every ReconnectDelay until it succeeds or the client is
// closed, in which case it returns nil.
func (c *Client) reconnect() *websocket.Conn {
	timer := time.NewTimer(c.opts.ReconnectDelay)
	defer timer.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return nil
		case <-timer.C:
		}
		conn, err := c.connect(c.ctx)
		if err == nil {
			return conn
		}
		log.Debug(log.CatTransport, "Reconnect failed", "error", err)
		c.emitState(State{Connected: false, Err: err})
		timer.Reset(c.opts.ReconnectDelay)
	}
}

// serve pumps one connection until it fails and returns the read error.
func (c *Client) serve(conn *websocket.Conn) error {
	stop := make(chan struct{})
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		c.writePump(conn, stop)
	}()

	err := c.readPump(conn)
	close(stop)
	_ = conn.Close()
	<-writeDone
	return err
}

func (c *Client) readPump(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if string(message) == "pong" {
			continue
		}

		out := decodeOutput(message)
		log.Debug(log.CatTransport, "Received output", "type", out.Type, "cell", out.CellID, "bytes", len(out.Content))
		select {
		case c.outputs <- out:
		case <-c.ctx.Done():
			return c.ctx.Err()
		}
	}
}

func (c *Client) writePump(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-c.ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.ErrorErr(log.CatTransport, "Write failed", err)
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}
