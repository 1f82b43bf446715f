package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"respclient/pkg/client"
	"respclient/pkg/logger"
	"respclient/pkg/resp"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a short SET/GET/HSET sequence against the configured server",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(client.WithLogger(logger.DefaultLogger))
		if err := c.Connect(cfg.Endpoint()); err != nil {
			return fmt.Errorf("connect redis failed: %w", err)
		}
		defer c.Close()
		return runDemo(c, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// runDemo keeps going after a failed step, the client has already logged it.
// The first error is returned.
func runDemo(c *client.Client, out io.Writer) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	keep(c.Set("testtimes", 1))
	keep(c.Set("float:pi", 3.14159265))
	keep(c.Set("string", "hello world!"))

	reply, err := c.Get("string")
	keep(err)
	if b, ok := reply.(*resp.BulkReply); ok && !b.IsNil() {
		fmt.Fprintln(out, string(b.Arg))
	}

	keep(c.HashMSet("myhash",
		client.FieldValue{Field: "name", Value: "zhaolong"},
		client.FieldValue{Field: "age", Value: 25},
	))
	_, err = c.HashSet("myhash", client.FieldValue{Field: "email", Value: "2745818@qq.com"})
	keep(err)

	reply, err = c.HGet("myhash", "name")
	keep(err)
	if err == nil {
		fmt.Fprint(out, formatReply(reply, ""))
	}
	return first
}
