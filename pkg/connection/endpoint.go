package connection

import (
	"context"
	"net"
	"strconv"
	"time"
)

// Endpoint identifies one redis server.
type Endpoint struct {
	Host string
	Port int
	// ConnectTimeout bounds Dial. Zero means no limit.
	ConnectTimeout time.Duration
}

func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string {
	return e.Addr()
}

// DialFunc opens the transport, net.Dialer.DialContext by default.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

type options struct {
	dial     DialFunc
	readSize int
}

type Option func(*options)

func WithDialer(dial DialFunc) Option {
	return func(o *options) {
		o.dial = dial
	}
}

// WithReadBufferSize sets how many bytes are requested per read.
func WithReadBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.readSize = n
		}
	}
}

func defaultOptions() options {
	return options{
		dial:     (&net.Dialer{}).DialContext,
		readSize: 4096,
	}
}
