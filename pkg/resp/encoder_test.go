package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name string
		verb string
		args []Arg
		want string
	}{
		{name: "VerbOnly", verb: "PING", want: "*1\r\n$4\r\nPING\r\n"},
		{name: "Get", verb: "GET", args: []Arg{String("k")}, want: "*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"},
		{name: "EmbeddedSpace", verb: "SET", args: []Arg{String("string"), String("hello world!")},
			want: "*3\r\n$3\r\nSET\r\n$6\r\nstring\r\n$12\r\nhello world!\r\n"},
		{name: "EmptyValue", verb: "SET", args: []Arg{String("k"), String("")},
			want: "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$0\r\n\r\n"},
		{name: "Numbers", verb: "HMSET", args: []Arg{String("h"), String("age"), Int(25), String("pi"), Float(3.14159265)},
			want: "*6\r\n$5\r\nHMSET\r\n$1\r\nh\r\n$3\r\nage\r\n$2\r\n25\r\n$2\r\npi\r\n$10\r\n3.14159265\r\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(EncodeCommand(tc.verb, tc.args...)))
		})
	}
}

func TestArgOf(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"hello world", "hello world"},
		{[]byte("raw"), "raw"},
		{1, "1"},
		{int8(-8), "-8"},
		{int64(math.MinInt64), "-9223372036854775808"},
		{uint64(math.MaxUint64), "18446744073709551615"},
		{3.14159265, "3.14159265"},
		{float32(0.5), "0.5"},
		{1e21, "1000000000000000000000"},
		{true, "1"},
		{false, "0"},
		{Int(9), "9"},
	}
	for _, tc := range tests {
		got, err := ArgOf(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(got))
	}

	_, err := ArgOf(struct{}{})
	assert.EqualError(t, err, "resp: can't encode argument of type struct {}")
}

func TestEncodeValues(t *testing.T) {
	got, err := EncodeValues("SET", "testtimes", 1)
	require.NoError(t, err)
	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$9\r\ntesttimes\r\n$1\r\n1\r\n", string(got))

	_, err = EncodeValues("SET", "k", map[string]int{})
	assert.Error(t, err)
}

const alphabet = "ab xyz\r\n\t$*:+-0123456789"

func randomArgs(r *rand.Rand) []Arg {
	args := make([]Arg, r.Intn(8))
	for i := range args {
		b := make([]byte, r.Intn(20))
		for j := range b {
			b[j] = alphabet[r.Intn(len(alphabet))]
		}
		args[i] = Bytes(b)
	}
	return args
}

// An encoded command is itself a RESP array of bulk strings, so parsing it
// back must give the verb and every argument byte for byte.
func TestEncodeCommand_RoundTripsThroughParse(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		args := randomArgs(r)
		encoded := EncodeCommand("CMD", args...)

		reply, n, err := Parse(encoded)
		require.NoError(t, err)
		require.Equal(t, len(encoded), n)

		arr, ok := reply.(*ArrayReply)
		require.True(t, ok)
		require.Len(t, arr.Items, 1+len(args))
		assert.Equal(t, MakeBulkReply([]byte("CMD")), arr.Items[0])
		for j, arg := range args {
			bulk, ok := arr.Items[j+1].(*BulkReply)
			require.True(t, ok)
			assert.Equal(t, []byte(arg), bulk.Arg)
		}
	}
}
