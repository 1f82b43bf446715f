package cmd

import (
	"sync"
	"time"

	"github.com/spf13/cobra"

	"respclient/internal/config"
	"respclient/pkg/logger"
)

var (
	cfgFile string
	v       = config.NewViper()
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "respclient",
	Short: "A minimal RESP client for Redis-compatible servers",
	Long: "respclient talks RESP2 to a Redis-compatible server. It ships an interactive\n" +
		"cli, a demo sequence and a small in-memory server for local testing.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(v, cfgFile); err != nil {
			return err
		}
		if err = setupLogger(cfg.Log); err != nil {
			return err
		}
		if cfgFile != "" {
			config.Watch(v, onConfigChange(cfg))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.DefaultLogger.Close()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("host", "127.0.0.1", "server host")
	flags.Int("port", 6379, "server port")
	flags.Duration("timeout", 5*time.Second, "connect timeout, 0 waits forever")

	// 命令行参数优先于配置文件和环境变量
	_ = v.BindPFlag("host", flags.Lookup("host"))
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("connectTimeout", flags.Lookup("timeout"))
}

func setupLogger(lc *logger.Config) error {
	if lc.Path != "" {
		if err := logger.Setup(lc); err != nil {
			return err
		}
	}
	level, err := logger.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	logger.DefaultLogger.SetLevel(level)
	return nil
}

// onConfigChange applies a reloaded log level right away. A new endpoint is
// only picked up by the next run, a live connection is never swapped.
func onConfigChange(current *config.Config) func(*config.Config, error) {
	var mu sync.Mutex
	return func(next *config.Config, err error) {
		if err != nil {
			logger.Warn("config reload ignored:", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()

		if next.Log.Level != current.Log.Level {
			level, err := logger.ParseLevel(next.Log.Level)
			if err != nil {
				logger.Error("config reload:", err)
				return
			}
			logger.DefaultLogger.SetLevel(level)
			logger.Info("log level set to", level)
		}
		if next.Endpoint() != current.Endpoint() {
			logger.Warnf("endpoint changed to %s, restart to use it", next.Endpoint())
		}
		current = next
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
