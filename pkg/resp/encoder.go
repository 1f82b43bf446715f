package resp

import (
	"fmt"
	"strconv"
)

// Arg is one serialized command argument. Build it with String, Bytes, Int,
// Float or ArgOf.
type Arg []byte

func String(s string) Arg { return Arg(s) }

func Bytes(b []byte) Arg { return Arg(b) }

func Int(i int64) Arg { return Arg(strconv.AppendInt(nil, i, 10)) }

func Uint(u uint64) Arg { return Arg(strconv.AppendUint(nil, u, 10)) }

// Float uses fixed-point notation with the fewest digits that round trip,
// e.g. 3.14159265 stays "3.14159265" and 1e21 becomes "1000000000000000000000".
func Float(f float64) Arg { return Arg(strconv.AppendFloat(nil, f, 'f', -1, 64)) }

// ArgOf converts a Go value into its canonical textual form.
func ArgOf(v interface{}) (Arg, error) {
	switch val := v.(type) {
	case Arg:
		return val, nil
	case string:
		return String(val), nil
	case []byte:
		return Bytes(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(uint64(val)), nil
	case uint8:
		return Uint(uint64(val)), nil
	case uint16:
		return Uint(uint64(val)), nil
	case uint32:
		return Uint(uint64(val)), nil
	case uint64:
		return Uint(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case bool:
		if val {
			return String("1"), nil
		}
		return String("0"), nil
	default:
		return nil, fmt.Errorf("resp: can't encode argument of type %T", v)
	}
}

// EncodeCommand serializes verb and args as a RESP multi-bulk array.
func EncodeCommand(verb string, args ...Arg) []byte {
	size := 16 + len(verb)
	for _, arg := range args {
		size += len(arg) + 16
	}
	buf := make([]byte, 0, size)

	// *<num>\r\n
	buf = append(buf, '*')
	buf = strconv.AppendInt(buf, int64(len(args)+1), 10)
	buf = append(buf, CRLF...)

	buf = appendBulk(buf, []byte(verb))
	for _, arg := range args {
		buf = appendBulk(buf, arg)
	}
	return buf
}

// EncodeValues is EncodeCommand for plain Go values.
func EncodeValues(verb string, vals ...interface{}) ([]byte, error) {
	args := make([]Arg, len(vals))
	for i, v := range vals {
		arg, err := ArgOf(v)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return EncodeCommand(verb, args...), nil
}

// $<len>\r\n<data>\r\n
func appendBulk(buf, b []byte) []byte {
	buf = append(buf, '$')
	buf = strconv.AppendInt(buf, int64(len(b)), 10)
	buf = append(buf, CRLF...)
	buf = append(buf, b...)
	return append(buf, CRLF...)
}
