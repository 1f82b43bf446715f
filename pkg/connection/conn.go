package connection

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
)

type State int

const (
	Disconnected State = iota
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Conn is a blocking client connection to one redis endpoint. It is not safe
// for concurrent Send/ReceiveUntil calls; Close may be called from anywhere.
type Conn struct {
	conn net.Conn
	ep   Endpoint

	mu       sync.Mutex
	state    State
	released bool

	rbuf  []byte // bytes read but not yet handed out
	chunk []byte
}

// Dial connects to ep, bounded by ep.ConnectTimeout when it is set.
func Dial(ep Endpoint, opts ...Option) (*Conn, error) {
	return DialContext(context.Background(), ep, opts...)
}

// DialContext is Dial with a context that may cancel the connect attempt.
func DialContext(ctx context.Context, ep Endpoint, opts ...Option) (*Conn, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if ep.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ep.ConnectTimeout)
		defer cancel()
	}

	raw, err := o.dial(ctx, "tcp", ep.Addr())
	if err != nil {
		if raw != nil {
			_ = raw.Close()
		}
		return nil, newConnectError(ep.Addr(), err)
	}
	return newConn(raw, ep, o.readSize), nil
}

// NewConn wraps an already open transport.
func NewConn(raw net.Conn, ep Endpoint) *Conn {
	return newConn(raw, ep, defaultOptions().readSize)
}

func newConn(raw net.Conn, ep Endpoint, readSize int) *Conn {
	return &Conn{
		conn:  raw,
		ep:    ep,
		state: Connected,
		chunk: make([]byte, readSize),
	}
}

// Send writes all of b. Short writes are retried until b is consumed or the
// transport fails, in which case the connection moves to Failed.
func (c *Conn) Send(b []byte) error {
	if err := c.usable("write"); err != nil {
		return err
	}
	for len(b) > 0 {
		n, err := c.conn.Write(b)
		if err != nil {
			return c.fail("write", err)
		}
		if n == 0 {
			return c.fail("write", io.ErrShortWrite)
		}
		b = b[n:]
	}
	return nil
}

// ReceiveUntil reads until frame reports a complete unit and returns exactly
// that unit. Bytes past the unit stay buffered for the next call.
func (c *Conn) ReceiveUntil(frame func(buf []byte) (int, error)) ([]byte, error) {
	if err := c.usable("read"); err != nil {
		return nil, err
	}

	var readErr error
	for {
		if len(c.rbuf) > 0 {
			n, err := frame(c.rbuf)
			if err != nil {
				// 流的位置已经不可信，后续读写都会失败
				c.fail("read", err)
				return nil, err
			}
			if n > 0 {
				unit := make([]byte, n)
				copy(unit, c.rbuf)
				c.rbuf = append(c.rbuf[:0], c.rbuf[n:]...)
				return unit, nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				readErr = ErrConnectionClosed
			}
			return nil, c.fail("read", readErr)
		}

		m, err := c.conn.Read(c.chunk)
		c.rbuf = append(c.rbuf, c.chunk[:m]...)
		readErr = err
	}
}

// Close releases the transport. Calling it again is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Disconnected
	return c.releaseLocked()
}

func (c *Conn) IsClosed() bool {
	return c.State() != Connected
}

func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) Endpoint() Endpoint {
	return c.ep
}

func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *Conn) usable(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Connected:
		return nil
	case Failed:
		return &IoError{Op: op, Err: ErrFailed}
	default:
		return &IoError{Op: op, Err: ErrConnectionClosed}
	}
}

func (c *Conn) fail(op string, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Connected {
		c.state = Failed
	}
	_ = c.releaseLocked()
	return &IoError{Op: op, Err: err}
}

func (c *Conn) releaseLocked() error {
	if c.released {
		return nil
	}
	c.released = true
	return c.conn.Close()
}
