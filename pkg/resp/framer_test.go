package resp

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramer_MatchesParse(t *testing.T) {
	inputs := []string{
		"+OK\r\n",
		"-ERR wrong type\r\n",
		":-7\r\n",
		"$4\r\na\r\nb\r\n",
		"$0\r\n\r\n",
		"$-1\r\n",
		"*0\r\n",
		"*-1\r\n",
		"*2\r\n*1\r\n:1\r\n*2\r\n+a\r\n$-1\r\n",
		"*3\r\n*0\r\n*-1\r\n$1\r\nx\r\n",
	}
	for _, in := range inputs {
		var f Framer
		n, err := f.Frame([]byte(in + ":1\r\n"))
		require.NoError(t, err, in)
		assert.Equal(t, len(in), n, in)

		_, want, err := Parse([]byte(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, n, in)
	}
}

func TestFramer_Resumes(t *testing.T) {
	input := []byte("*3\r\n$5\r\nhello\r\n:12\r\n$3\r\nbye\r\n")

	var f Framer
	// 逐字节增长，和连接的短读一致
	for i := 1; i < len(input); i++ {
		n, err := f.Frame(input[:i])
		require.NoError(t, err)
		require.Zero(t, n, "complete after %d bytes", i)
	}
	// header, bulk and integer were validated and are not scanned again
	assert.Equal(t, len("*3\r\n$5\r\nhello\r\n:12\r\n"), f.off)

	n, err := f.Frame(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
}

func TestFramer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"UnknownType", "*1\r\n?x\r\n", "protocol error: unknown RESP type '?'"},
		{"PlusInteger", ":+5\r\n", `protocol error: invalid integer "+5"`},
		{"PlusBulkLen", "$+3\r\nabc\r\n", `protocol error: invalid bulk length "+3"`},
		{"PlusArrayLen", "*+1\r\n:1\r\n", `protocol error: invalid array length "+1"`},
		{"BulkLengthMismatch", "$2\r\nabc\r\n", "protocol error: bulk string length mismatch"},
		{"MissingCR", "*1\r\n+OK\n", "protocol error: invalid line ending"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var f Framer
			_, err := f.Frame([]byte(tc.input))
			require.Error(t, err)
			assert.Equal(t, tc.err, err.Error())

			// Parse agrees with the framer
			_, _, err = Parse([]byte(tc.input))
			require.Error(t, err)
			assert.Equal(t, tc.err, err.Error())
		})
	}
}

func TestFramer_LineTooLong(t *testing.T) {
	// no terminator yet, but already past the inline limit
	unterminated := append([]byte("+"), bytes.Repeat([]byte("a"), maxLineLength+1)...)
	var f Framer
	_, err := f.Frame(unterminated)
	var perr *ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "line too long", perr.Msg)

	_, _, err = Parse(append(unterminated, CRLF...))
	require.True(t, errors.As(err, &perr))

	// just under the limit is still a line in progress
	var g Framer
	n, err := g.Frame(unterminated[:maxLineLength])
	assert.NoError(t, err)
	assert.Zero(t, n)

	// a long bulk payload is not a line
	big := MakeBulkReply(bytes.Repeat([]byte("b"), 4*maxLineLength)).ToBytes()
	var h Framer
	n, err = h.Frame(big)
	require.NoError(t, err)
	assert.Equal(t, len(big), n)
}

func TestDecode_EndlessLineFails(t *testing.T) {
	src := &chunkSource{data: []byte("+" + strings.Repeat("x", 2*maxLineLength)), chunk: 4096}
	_, err := Decode(src)
	var perr *ProtocolError
	assert.True(t, errors.As(err, &perr))
}

// Every byte is framed once, so a large reply fed in socket sized chunks
// decodes in time linear in its size.
func TestDecode_LargeArrayInChunks(t *testing.T) {
	const items = 100000
	elems := make([]Reply, items)
	for i := range elems {
		elems[i] = MakeBulkReply([]byte("value-" + strconv.Itoa(i)))
	}
	data := MakeArrayReply(elems).ToBytes()

	src := &chunkSource{data: data, chunk: 4096}
	frames := 0
	counting := &countingSource{src: src, calls: &frames}

	start := time.Now()
	got, err := Decode(counting)
	elapsed := time.Since(start)
	require.NoError(t, err)

	arr := got.(*ArrayReply)
	require.Len(t, arr.Items, items)
	assert.Equal(t, MakeBulkReply([]byte("value-99999")), arr.Items[items-1])
	// one frame call per chunk
	assert.LessOrEqual(t, frames, len(data)/4096+2)
	assert.Less(t, elapsed, 2*time.Second)
}

type countingSource struct {
	src   Source
	calls *int
}

func (s *countingSource) ReceiveUntil(frame func([]byte) (int, error)) ([]byte, error) {
	return s.src.ReceiveUntil(func(buf []byte) (int, error) {
		*s.calls++
		return frame(buf)
	})
}
