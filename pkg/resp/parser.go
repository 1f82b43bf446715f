package resp

import (
	"bytes"
	"strconv"
)

// ProtocolError reports malformed RESP framing. It is never produced for a
// well formed error reply from the server.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Msg
}

func protocolErr(msg string) error {
	return &ProtocolError{Msg: msg}
}

// Source delivers complete RESP units. frame is called with everything
// buffered so far and returns the size of the first complete unit, or 0 when
// more bytes are needed.
type Source interface {
	ReceiveUntil(frame func(buf []byte) (int, error)) ([]byte, error)
}

// Decode reads exactly one reply from src. Framing resumes where the previous
// attempt stopped, so every buffered byte is scanned once; the reply tree is
// built once the unit is complete.
func Decode(src Source) (Reply, error) {
	var f Framer
	unit, err := src.ReceiveUntil(f.Frame)
	if err != nil {
		return nil, err
	}
	reply, _, err := Parse(unit)
	return reply, err
}

// Parse decodes the reply at the front of b and reports how many bytes it
// used. When b holds only part of a reply Parse returns (nil, 0, nil).
func Parse(b []byte) (Reply, int, error) {
	if len(b) == 0 {
		return nil, 0, nil
	}

	switch b[0] {
	case '+', '-', ':', '$', '*':
	default:
		return nil, 0, protocolErr("unknown RESP type " + strconv.QuoteRune(rune(b[0])))
	}

	line, n, err := readLine(b)
	if err != nil || n == 0 {
		return nil, 0, err
	}

	switch b[0] {
	case '+':
		return MakeStatusReply(string(line)), n, nil
	case '-':
		return MakeErrReply(string(line)), n, nil
	case ':':
		v, err := parseInteger(line)
		if err != nil {
			return nil, 0, err
		}
		return MakeIntReply(v), n, nil
	case '$':
		return parseBulk(b, line, n)
	default:
		return parseArray(b, line, n)
	}
}

func parseBulk(b, line []byte, n int) (Reply, int, error) {
	length, err := parseLength(line, "bulk")
	if err != nil {
		return nil, 0, err
	}
	// NULL bulk string
	if length == -1 {
		return MakeNullBulkReply(), n, nil
	}

	end := n + length + len(CRLF)
	if len(b) < end {
		return nil, 0, nil
	}
	if !bytes.Equal(b[n+length:end], CRLF) {
		return nil, 0, protocolErr("bulk string length mismatch")
	}

	// 底层缓冲区会被复用，必须拷贝
	data := make([]byte, length)
	copy(data, b[n:n+length])
	return &BulkReply{Arg: data}, end, nil
}

func parseArray(b, line []byte, n int) (Reply, int, error) {
	count, err := parseLength(line, "array")
	if err != nil {
		return nil, 0, err
	}
	// NULL array
	if count == -1 {
		return MakeNullArrayReply(), n, nil
	}

	items := make([]Reply, 0, min(count, 1024))
	off := n
	for i := 0; i < count; i++ {
		item, used, err := Parse(b[off:])
		if err != nil || used == 0 {
			return nil, 0, err
		}
		items = append(items, item)
		off += used
	}
	return &ArrayReply{Items: items}, off, nil
}

const (
	// same limit as redis' proto-max-bulk-len default
	maxLength = 512 << 20
	// same limit as redis' inline buffer, PROTO_INLINE_MAX_SIZE
	maxLineLength = 64 << 10
)

// decimal rejects what strconv tolerates but RESP does not: a leading '+'.
func decimal(line []byte) bool {
	return len(line) > 0 && line[0] != '+'
}

func parseInteger(line []byte) (int64, error) {
	v, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil || !decimal(line) {
		return 0, protocolErr("invalid integer " + strconv.Quote(string(line)))
	}
	return v, nil
}

func parseLength(line []byte, what string) (int, error) {
	v, err := strconv.Atoi(string(line))
	if err != nil || !decimal(line) || v < -1 || v > maxLength {
		return 0, protocolErr("invalid " + what + " length " + strconv.Quote(string(line)))
	}
	return v, nil
}

// readLine returns the payload after the type byte and the number of bytes
// up to and including CRLF, or n == 0 if no full line is buffered yet.
func readLine(b []byte) (line []byte, n int, err error) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		if len(b) > maxLineLength {
			return nil, 0, protocolErr("line too long")
		}
		return nil, 0, nil
	}
	if i > maxLineLength {
		return nil, 0, protocolErr("line too long")
	}
	if i < 2 || b[i-1] != '\r' {
		return nil, 0, protocolErr("invalid line ending")
	}
	return b[1 : i-1], i + 1, nil
}
