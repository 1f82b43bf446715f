package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Level int

// log levels
const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
	FATAL
)

const (
	flags              = log.LstdFlags // 日志前缀的标志 2009/01/23 01:23:23
	defaultCallerDepth = 2             // 默认调用深度2
)

var levelFlags = []string{"DEBUG", "INFO", "WARNING", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < DEBUG || l > FATAL {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelFlags[l]
}

// ParseLevel accepts the level names in any case, plus "warn".
func ParseLevel(s string) (Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARN" {
		return WARNING, nil
	}
	for i, name := range levelFlags {
		if name == s {
			return Level(i), nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Config describes where log files go.
type Config struct {
	Path       string `mapstructure:"path"`
	Name       string `mapstructure:"name"`
	Ext        string `mapstructure:"ext"`
	TimeFormat string `mapstructure:"timeFormat"`
	Level      string `mapstructure:"level"`
}

func (c *Config) fileName(now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", c.Name, now.Format(c.TimeFormat), c.Ext)
}

type Logger struct {
	mu      sync.Mutex
	level   Level
	out     io.Writer
	cfg     *Config // nil unless logging to a file
	logFile *os.File
	logger  *log.Logger
}

var DefaultLogger = NewStdoutLogger()

// NewStdoutLogger creates a logger which print msg to stdout
func NewStdoutLogger() *Logger {
	return NewLogger(os.Stdout)
}

// NewLogger writes to w only.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		level:  INFO,
		out:    w,
		logger: log.New(w, "", flags),
	}
}

// NewFileLogger creates a logger which print msg to stdout and a log file
// named <name>-<time>.<ext>. A new file is opened when the formatted time
// changes, so a daily TimeFormat gives daily files.
func NewFileLogger(cfg *Config) (*Logger, error) {
	logFile, err := mustOpen(cfg.fileName(time.Now()), cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("logging.Join err: %s", err)
	}
	level := INFO
	if cfg.Level != "" {
		if level, err = ParseLevel(cfg.Level); err != nil {
			_ = logFile.Close()
			return nil, err
		}
	}
	return &Logger{
		level:   level,
		out:     os.Stdout,
		cfg:     cfg,
		logFile: logFile,
		logger:  log.New(io.MultiWriter(os.Stdout, logFile), "", flags),
	}, nil
}

// Setup replaces DefaultLogger with a file logger.
func Setup(cfg *Config) error {
	l, err := NewFileLogger(cfg)
	if err != nil {
		return err
	}
	old := DefaultLogger
	DefaultLogger = l
	return old.Close()
}

func (logger *Logger) SetLevel(level Level) {
	logger.mu.Lock()
	logger.level = level
	logger.mu.Unlock()
}

func (logger *Logger) Level() Level {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	return logger.level
}

// Output writes msg if level is enabled, prefixed with the level and the
// caller's file:line.
func (logger *Logger) Output(level Level, callerDepth int, msg string) {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if level < logger.level {
		return
	}

	var formattedMsg string
	_, file, line, ok := runtime.Caller(callerDepth)
	if ok {
		formattedMsg = fmt.Sprintf("[%s][%s:%d] %s", level, filepath.Base(file), line, msg)
	} else {
		formattedMsg = fmt.Sprintf("[%s] %s", level, msg)
	}

	if logger.cfg != nil {
		logger.rotateLocked()
	}
	_ = logger.logger.Output(0, formattedMsg)
}

func (logger *Logger) rotateLocked() {
	name := path.Join(logger.cfg.Path, logger.cfg.fileName(time.Now()))
	if logger.logFile != nil && name == logger.logFile.Name() {
		return
	}
	logFile, err := mustOpen(filepath.Base(name), logger.cfg.Path)
	if err != nil {
		// keep writing to the old file
		return
	}
	if logger.logFile != nil {
		_ = logger.logFile.Close()
	}
	logger.logFile = logFile
	logger.logger = log.New(io.MultiWriter(logger.out, logFile), "", flags)
}

// Close closes the log file, if any.
func (logger *Logger) Close() error {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	if logger.logFile == nil {
		return nil
	}
	err := logger.logFile.Close()
	logger.logFile = nil
	logger.cfg = nil
	logger.logger = log.New(logger.out, "", flags)
	return err
}

func (logger *Logger) Debugf(format string, v ...interface{}) {
	logger.Output(DEBUG, defaultCallerDepth, fmt.Sprintf(format, v...))
}

func (logger *Logger) Infof(format string, v ...interface{}) {
	logger.Output(INFO, defaultCallerDepth, fmt.Sprintf(format, v...))
}

func (logger *Logger) Warnf(format string, v ...interface{}) {
	logger.Output(WARNING, defaultCallerDepth, fmt.Sprintf(format, v...))
}

func (logger *Logger) Errorf(format string, v ...interface{}) {
	logger.Output(ERROR, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Debug logs debug message through DefaultLogger
func Debug(v ...interface{}) {
	DefaultLogger.Output(DEBUG, defaultCallerDepth, fmt.Sprintln(v...))
}

// Debugf logs debug message through DefaultLogger
func Debugf(format string, v ...interface{}) {
	DefaultLogger.Output(DEBUG, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Info logs message through DefaultLogger
func Info(v ...interface{}) {
	DefaultLogger.Output(INFO, defaultCallerDepth, fmt.Sprintln(v...))
}

// Infof logs message through DefaultLogger
func Infof(format string, v ...interface{}) {
	DefaultLogger.Output(INFO, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Warn logs warning message through DefaultLogger
func Warn(v ...interface{}) {
	DefaultLogger.Output(WARNING, defaultCallerDepth, fmt.Sprintln(v...))
}

// Warnf logs warning message through DefaultLogger
func Warnf(format string, v ...interface{}) {
	DefaultLogger.Output(WARNING, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Error logs error message through DefaultLogger
func Error(v ...interface{}) {
	DefaultLogger.Output(ERROR, defaultCallerDepth, fmt.Sprintln(v...))
}

// Errorf logs error message through DefaultLogger
func Errorf(format string, v ...interface{}) {
	DefaultLogger.Output(ERROR, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Fatal prints error message then stop the program
func Fatal(v ...interface{}) {
	DefaultLogger.Output(FATAL, defaultCallerDepth, fmt.Sprintln(v...))
	os.Exit(1)
}

func mustOpen(fileName, dir string) (*os.File, error) {
	_, err := os.Stat(dir)
	if os.IsPermission(err) {
		return nil, fmt.Errorf("permission denied dir: %s", dir)
	}
	if os.IsNotExist(err) {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("error during mkdir %s: %s", dir, err)
		}
	}
	f, err := os.OpenFile(path.Join(dir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening file %s: %s", fileName, err)
	}
	return f, nil
}
