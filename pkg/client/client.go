package client

import (
	"fmt"

	"respclient/pkg/connection"
	"respclient/pkg/resp"
)

// Logger receives diagnostics for failed operations. The client never writes
// to stdout or stderr on its own.
type Logger interface {
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}

type Option func(*Client)

func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithDialOptions(opts ...connection.Option) Option {
	return func(c *Client) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

// Client issues one command at a time over a single connection and keeps the
// last decoded reply until the next command replaces it.
//
// A Client must not be shared between goroutines; give every concurrent
// caller its own Client.
type Client struct {
	conn     connection.Connection
	ep       *connection.Endpoint
	dialOpts []connection.Option
	logger   Logger

	last resp.Reply
}

func New(opts ...Option) *Client {
	c := &Client{logger: nopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithConn returns a client that talks over an already established
// connection. Reconnect is unavailable for such clients.
func NewWithConn(conn connection.Connection, opts ...Option) *Client {
	c := New(opts...)
	c.conn = conn
	return c
}

// Connect dials ep. It refuses to replace a live connection; call Close or
// Reconnect first.
func (c *Client) Connect(ep connection.Endpoint) error {
	if c.Connected() {
		return ErrAlreadyConnected
	}
	c.ep = &ep
	return c.dial()
}

// Reconnect drops the current connection, whatever its state, and dials the
// endpoint given to Connect again.
func (c *Client) Reconnect() error {
	if c.ep == nil {
		return c.report("reconnect", errNoEndpoint)
	}
	return c.dial()
}

func (c *Client) dial() error {
	c.last = nil
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	conn, err := connection.Dial(*c.ep, c.dialOpts...)
	if err != nil {
		return c.report("connect", err)
	}
	c.conn = conn
	return nil
}

func (c *Client) Connected() bool {
	return c.conn != nil && c.conn.State() == connection.Connected
}

// State reports the state of the underlying connection.
func (c *Client) State() connection.State {
	if c.conn == nil {
		return connection.Disconnected
	}
	return c.conn.State()
}

// Close releases the retained reply and the connection. It is safe to call
// more than once.
func (c *Client) Close() error {
	c.last = nil
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Last returns the reply of the most recent successful round trip, or nil.
func (c *Client) Last() resp.Reply {
	return c.last
}

// Do sends an arbitrary command. A server error reply is returned together
// with a *CommandError carrying its text.
func (c *Client) Do(verb string, args ...interface{}) (resp.Reply, error) {
	c.last = nil
	req, err := resp.EncodeValues(verb, args...)
	if err != nil {
		return nil, c.report(verb, err)
	}
	return c.roundTrip(verb, req)
}

func (c *Client) roundTrip(verb string, req []byte) (resp.Reply, error) {
	// 先释放上一次的结果，保证任何时刻只持有一个 reply
	c.last = nil
	if c.conn == nil {
		return nil, c.report(verb, ErrNotConnected)
	}
	if err := c.conn.Send(req); err != nil {
		return nil, c.report(verb, err)
	}
	reply, err := resp.Decode(c.conn)
	if err != nil {
		return nil, c.report(verb, err)
	}
	c.last = reply

	if errReply, ok := reply.(*resp.ErrReply); ok {
		return reply, c.report(verb, &CommandError{Command: verb, Message: errReply.Status})
	}
	return reply, nil
}

// statusOrCount accepts +OK (any case) and integer replies.
func (c *Client) statusOrCount(verb string, reply resp.Reply) (int64, error) {
	switch r := reply.(type) {
	case *resp.StatusReply:
		if r.IsOK() {
			return 0, nil
		}
		return 0, c.report(verb, &CommandError{Command: verb, Message: r.Status})
	case *resp.IntReply:
		return r.IntVal, nil
	default:
		return 0, c.report(verb, &CommandError{Command: verb, Message: fmt.Sprintf("unexpected reply %T", reply)})
	}
}

func (c *Client) report(verb string, err error) error {
	c.logger.Errorf("[%s] %s: %v", ErrorKind(err), verb, err)
	return err
}
