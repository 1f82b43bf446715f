package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"respclient/internal/fakeserver"
	"respclient/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the in-memory test server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := fakeserver.Start(cfg.ServeAddr)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fake server listening on %s\n", srv.Addr())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		stopped := make(chan error, 1)
		go func() { stopped <- srv.Wait() }()

		select {
		case s := <-sig:
			logger.Debug("received", s, "shutting down")
			return srv.Close()
		case err := <-stopped:
			return err
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:6379", "listen address")
	_ = v.BindPFlag("serveAddr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
