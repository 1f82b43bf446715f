package client

import (
	"errors"

	"respclient/pkg/connection"
	"respclient/pkg/resp"
)

var (
	ErrNotConnected     = errors.New("client: not connected")
	ErrAlreadyConnected = errors.New("client: already connected")

	errNoEndpoint = errors.New("client: no endpoint to reconnect to")
)

// CommandError is a failure reported by the server: either an error reply or
// a status other than OK. Message is the server text, unmodified.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return e.Command + ": " + e.Message
}

type Kind string

const (
	KindConnect  Kind = "connect"
	KindIO       Kind = "io"
	KindProtocol Kind = "protocol"
	KindCommand  Kind = "command"
	KindOther    Kind = "other"
)

// ErrorKind classifies an error returned by this package.
func ErrorKind(err error) Kind {
	var (
		connErr  *connection.ConnectError
		ioErr    *connection.IoError
		protoErr *resp.ProtocolError
		cmdErr   *CommandError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &connErr):
		return KindConnect
	case errors.As(err, &protoErr):
		return KindProtocol
	case errors.As(err, &ioErr):
		return KindIO
	case errors.As(err, &cmdErr):
		return KindCommand
	default:
		return KindOther
	}
}
