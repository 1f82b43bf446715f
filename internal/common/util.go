package common

import (
	"strconv"
	"strings"
)

// FormatCmdLine renders a command line for logs, quoting arguments that
// contain whitespace or are empty.
func FormatCmdLine(content [][]byte) string {
	sb := strings.Builder{}
	for i, v := range content {
		if i > 0 {
			sb.WriteByte(' ')
		}
		s := string(v)
		if s == "" || strings.ContainsAny(s, " \t\r\n\"") {
			s = strconv.Quote(s)
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func CloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// CloneArgs deep copies a command line whose buffers belong to someone else.
func CloneArgs(args [][]byte) [][]byte {
	cp := make([][]byte, len(args))
	for i, a := range args {
		cp[i] = CloneBytes(a)
	}
	return cp
}
