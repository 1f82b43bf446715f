package resp

import "strconv"

// Framer finds the end of one RESP unit in a growing buffer without building
// replies. Frame may be called again with the same buffer extended by new
// bytes; it continues from the last element it validated.
//
// A Framer is used for a single unit. Start a fresh one for the next.
type Framer struct {
	off     int   // bytes of the unit validated so far
	pending []int // elements still missing at each open array level
	started bool
}

// Frame reports the length of the first complete unit in buf, 0 if more
// bytes are needed, or a *ProtocolError.
func (f *Framer) Frame(buf []byte) (int, error) {
	if !f.started {
		f.pending = append(f.pending[:0], 1)
		f.started = true
	}

	for len(f.pending) > 0 {
		used, children, err := scanElement(buf[f.off:])
		if err != nil {
			return 0, err
		}
		if used == 0 {
			return 0, nil
		}
		f.off += used
		f.pending[len(f.pending)-1]--
		if children > 0 {
			f.pending = append(f.pending, children)
		}
		for len(f.pending) > 0 && f.pending[len(f.pending)-1] == 0 {
			f.pending = f.pending[:len(f.pending)-1]
		}
	}
	return f.off, nil
}

// scanElement validates one element header, plus the payload for bulk
// strings. children is the number of nested elements an array announces.
func scanElement(b []byte) (used, children int, err error) {
	if len(b) == 0 {
		return 0, 0, nil
	}
	switch b[0] {
	case '+', '-', ':', '$', '*':
	default:
		return 0, 0, protocolErr("unknown RESP type " + strconv.QuoteRune(rune(b[0])))
	}

	line, n, err := readLine(b)
	if err != nil || n == 0 {
		return 0, 0, err
	}

	switch b[0] {
	case ':':
		if _, err := parseInteger(line); err != nil {
			return 0, 0, err
		}
	case '$':
		length, err := parseLength(line, "bulk")
		if err != nil {
			return 0, 0, err
		}
		if length == -1 {
			return n, 0, nil
		}
		end := n + length + len(CRLF)
		if len(b) < end {
			return 0, 0, nil
		}
		if b[end-2] != '\r' || b[end-1] != '\n' {
			return 0, 0, protocolErr("bulk string length mismatch")
		}
		return end, 0, nil
	case '*':
		count, err := parseLength(line, "array")
		if err != nil {
			return 0, 0, err
		}
		if count > 0 {
			return n, count, nil
		}
	}
	return n, 0, nil
}
