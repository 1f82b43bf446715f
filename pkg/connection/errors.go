package connection

import (
	"context"
	"errors"
	"net"
	"syscall"
)

var (
	// ErrConnectionClosed means the peer hung up or Close was called.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrFailed is returned by every operation after a transport failure.
	ErrFailed = errors.New("connection is in failed state")
)

type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonRefused     Reason = "refused"
	ReasonUnreachable Reason = "unreachable"
	ReasonOther       Reason = "other"
)

// ConnectError is returned when a connection can't be established.
type ConnectError struct {
	Reason Reason
	Addr   string
	Err    error
}

func (e *ConnectError) Error() string {
	return "connect " + e.Addr + " (" + string(e.Reason) + "): " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

func newConnectError(addr string, err error) *ConnectError {
	return &ConnectError{Reason: classify(err), Addr: addr, Err: err}
}

func classify(err error) Reason {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return ReasonTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return ReasonRefused
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return ReasonUnreachable
	default:
		return ReasonOther
	}
}

// IoError is a transport failure on an established connection.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IoError) Unwrap() error {
	return e.Err
}
