package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"respclient/pkg/client"
	"respclient/pkg/resp"
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Start an interactive client connected to the configured server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startCLI(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(cliCmd)
}

// startCLI 启动命令行客户端
func startCLI(in io.Reader, out io.Writer) error {
	ep := cfg.Endpoint()
	c := client.New()
	if err := c.Connect(ep); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", ep, err)
	}
	defer c.Close()

	fmt.Fprintf(out, "Connected to %s\n", ep)
	return repl(c, in, out)
}

func repl(c *client.Client, in io.Reader, out io.Writer) error {
	stdin := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "> ")
		line, err := stdin.ReadString('\n')
		if err == io.EOF && line == "" {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("read input error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Fprintln(out, "bye")
			return nil
		}

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintln(out, "(error)", err)
			continue
		}

		vals := make([]interface{}, len(args)-1)
		for i, a := range args[1:] {
			vals[i] = a
		}
		reply, err := c.Do(args[0], vals...)
		var cmdErr *client.CommandError
		switch {
		case err == nil, errors.As(err, &cmdErr):
			fmt.Fprint(out, formatReply(reply, ""))
		default:
			fmt.Fprintf(out, "(%s error) %v\n", client.ErrorKind(err), err)
			if rerr := c.Reconnect(); rerr != nil {
				return rerr
			}
		}
	}
}

// splitArgs splits a command line the way redis-cli does: arguments are
// separated by spaces, "double quotes" understand \n \r \t \\ \" and \xHH,
// 'single quotes' only understand \'.
func splitArgs(line string) ([]string, error) {
	var args []string
	i := 0
	for {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			return args, nil
		}

		var (
			cur    []byte
			inDq   bool
			inSq   bool
			closed bool
		)
		for !closed {
			if i >= len(line) {
				if inDq || inSq {
					return nil, errors.New("unbalanced quotes")
				}
				break
			}
			ch := line[i]
			switch {
			case inDq:
				switch {
				case ch == '\\' && i+3 < len(line) && line[i+1] == 'x' && isHex(line[i+2]) && isHex(line[i+3]):
					b, _ := strconv.ParseUint(line[i+2:i+4], 16, 8)
					cur = append(cur, byte(b))
					i += 3
				case ch == '\\' && i+1 < len(line):
					i++
					switch line[i] {
					case 'n':
						cur = append(cur, '\n')
					case 'r':
						cur = append(cur, '\r')
					case 't':
						cur = append(cur, '\t')
					case 'b':
						cur = append(cur, '\b')
					case 'a':
						cur = append(cur, '\a')
					default:
						cur = append(cur, line[i])
					}
				case ch == '"':
					// 引号结束后必须是空白或行尾
					if i+1 < len(line) && !isSpace(line[i+1]) {
						return nil, errors.New("closing quote must be followed by a space")
					}
					closed = true
				default:
					cur = append(cur, ch)
				}
			case inSq:
				switch {
				case ch == '\\' && i+1 < len(line) && line[i+1] == '\'':
					i++
					cur = append(cur, '\'')
				case ch == '\'':
					if i+1 < len(line) && !isSpace(line[i+1]) {
						return nil, errors.New("closing quote must be followed by a space")
					}
					closed = true
				default:
					cur = append(cur, ch)
				}
			default:
				switch {
				case isSpace(ch):
					closed = true
				case ch == '"':
					inDq = true
				case ch == '\'':
					inSq = true
				default:
					cur = append(cur, ch)
				}
			}
			i++
		}
		args = append(args, string(cur))
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isHex(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// formatReply renders a reply like redis-cli. indent prefixes nested array
// lines after the first one.
func formatReply(r resp.Reply, indent string) string {
	switch val := r.(type) {
	case nil:
		return "(nil)\n"
	case *resp.StatusReply:
		return val.Status + "\n"
	case *resp.ErrReply:
		return "(error) " + val.Status + "\n"
	case *resp.IntReply:
		return "(integer) " + strconv.FormatInt(val.IntVal, 10) + "\n"
	case *resp.BulkReply:
		if val.IsNil() {
			return "(nil)\n"
		}
		return strconv.Quote(string(val.Arg)) + "\n"
	case *resp.ArrayReply:
		if val.IsNil() {
			return "(nil)\n"
		}
		if len(val.Items) == 0 {
			return "(empty array)\n"
		}
		width := len(strconv.Itoa(len(val.Items)))
		sb := strings.Builder{}
		for i, item := range val.Items {
			prefix := fmt.Sprintf("%*d) ", width, i+1)
			if i > 0 {
				sb.WriteString(indent)
			}
			sb.WriteString(prefix)
			sb.WriteString(formatReply(item, indent+strings.Repeat(" ", len(prefix))))
		}
		return sb.String()
	default:
		return fmt.Sprintf("%v\n", val)
	}
}
