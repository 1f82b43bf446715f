package common

import (
	"bytes"
	"testing"
)

func TestCommon_All(t *testing.T) {
	t.Run("FormatCmdLine", func(t *testing.T) {
		tests := []struct {
			name  string
			input [][]byte
			want  string
		}{
			{"empty", nil, ""},
			{"plain", [][]byte{[]byte("SET"), []byte("k"), []byte("v")}, "SET k v"},
			{"space", [][]byte{[]byte("SET"), []byte("string"), []byte("hello world!")}, `SET string "hello world!"`},
			{"empty_arg", [][]byte{[]byte("SET"), []byte("k"), []byte("")}, `SET k ""`},
			{"crlf", [][]byte{[]byte("ECHO"), []byte("a\r\nb")}, `ECHO "a\r\nb"`},
		}
		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				if got := FormatCmdLine(tc.input); got != tc.want {
					t.Errorf("FormatCmdLine() = %q, want %q", got, tc.want)
				}
			})
		}
	})

	t.Run("CloneBytes", func(t *testing.T) {
		src := []byte("hello")
		cp := CloneBytes(src)
		if !bytes.Equal(cp, src) {
			t.Errorf("CloneBytes() = %q, want %q", cp, src)
		}
		// 确保深拷贝
		src[0] = 'H'
		if cp[0] == 'H' {
			t.Error("CloneBytes should be deep copy")
		}
	})

	t.Run("CloneArgs", func(t *testing.T) {
		src := [][]byte{[]byte("get"), []byte("k")}
		cp := CloneArgs(src)
		src[1][0] = 'x'
		if string(cp[1]) != "k" {
			t.Errorf("CloneArgs should be deep copy, got %q", cp[1])
		}
	})
}
