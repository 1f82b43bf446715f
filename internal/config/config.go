package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"respclient/pkg/connection"
	"respclient/pkg/logger"
)

const EnvPrefix = "RESPCLIENT"

type Config struct {
	Host           string         `mapstructure:"host"`           // 服务端地址
	Port           int            `mapstructure:"port"`           // 服务端端口
	ConnectTimeout time.Duration  `mapstructure:"connectTimeout"` // 建立连接的超时时间，0 表示不限
	ServeAddr      string         `mapstructure:"serveAddr"`      // serve 子命令的监听地址
	Log            *logger.Config `mapstructure:"log"`
}

// NewViper returns a viper instance carrying the defaults and reading
// RESPCLIENT_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 6379)
	v.SetDefault("connectTimeout", 5*time.Second)
	v.SetDefault("serveAddr", "127.0.0.1:6379")
	v.SetDefault("log.path", "")
	v.SetDefault("log.name", "respclient")
	v.SetDefault("log.ext", "log")
	v.SetDefault("log.timeFormat", "2006-01-02")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, if any, and decodes v into a Config.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return decode(v)
}

// Watch calls fn with the freshly decoded config every time the file loaded
// by Load changes on disk.
func Watch(v *viper.Viper, fn func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Infof("config file %s changed (%s)", e.Name, e.Op)
		fn(decode(v))
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host is empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("config: negative connectTimeout %s", c.ConnectTimeout)
	}
	return nil
}

func (c *Config) Endpoint() connection.Endpoint {
	return connection.Endpoint{
		Host:           c.Host,
		Port:           c.Port,
		ConnectTimeout: c.ConnectTimeout,
	}
}
