package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spf13/viper"
)

// ErrMissingToken is returned by NewConfig when no bot token is configured.
var ErrMissingToken = errors.New("bot_token is required (set DISCORD_TOKEN or BUMPBOT_BOT_TOKEN environment variable)")

const logRetention = 7 * 24 * time.Hour

type Config struct {
	v      *viper.Viper
	Logger *log.Logger

	mu      sync.Mutex
	logFile *os.File
}

// NewConfig loads the configuration from various sources using viper
func NewConfig() (*Config, error) {
	v := viper.New()

	// bumpbot.yaml, so the keyword file (config.json) is never picked up here
	v.SetConfigName("bumpbot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	// Try to read config file (don't error if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		l := log.New(os.Stderr)
		l.Warnf("error reading settings file: %v\nContinuing with envs...", err)
	}

	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("error binding environment variables: %w", err)
	}

	// Check the token before touching the log directory so a missing
	// credential leaves nothing behind.
	if strings.TrimSpace(v.GetString("bot_token")) == "" {
		return &Config{v: v, Logger: log.New(os.Stderr)}, ErrMissingToken
	}

	logFile, err := newLogFile(v.GetString("log_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := pruneOldLogFiles(v.GetString("log_dir"), logFile.Name()); err != nil {
		return nil, fmt.Errorf("failed to prune old log files: %w", err)
	}

	newCfg := &Config{
		v:       v,
		Logger:  log.New(io.MultiWriter(os.Stderr, logFile)),
		logFile: logFile,
	}
	newCfg.applyLogLevel()

	return newCfg, nil
}

// newLogFile generates a new log file
func newLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory is not set")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, fmt.Sprintf("bumpbot_%s.log", time.Now().Format("20060102_150405"))))
	if err != nil {
		return nil, err
	}
	return file, nil
}

// pruneOldLogFiles removes log files older than seven days, never touching keep.
func pruneOldLogFiles(dir, keep string) error {
	logFiles, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range logFiles {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".log") {
			continue
		}

		path := filepath.Join(dir, file.Name())
		if path == keep {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > logRetention {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old log file %s: %w", file.Name(), err)
			}
		}
	}

	return nil
}

// RotateAndPruneLogs starts a fresh log file, points the logger at it and
// prunes files past retention.
func (c *Config) RotateAndPruneLogs() error {
	dir := c.GetLogDir()

	newFile, err := newLogFile(dir)
	if err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	c.mu.Lock()
	old := c.logFile
	c.logFile = newFile
	c.Logger.SetOutput(io.MultiWriter(os.Stderr, newFile))
	c.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			c.Logger.Warnf("failed to close previous log file: %v", err)
		}
	}

	return pruneOldLogFiles(dir, newFile.Name())
}

// Close flushes and closes the current log file, if any.
func (c *Config) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

func (c *Config) applyLogLevel() {
	level, err := log.ParseLevel(c.v.GetString("log_level"))
	if err != nil {
		c.Logger.Warnf("unknown log_level %q, using info", c.v.GetString("log_level"))
		level = log.InfoLevel
	}
	c.Logger.SetLevel(level)
}

// NewMockConfig creates a mock configuration for testing
func NewMockConfig(kv map[string]interface{}) *Config {
	v := viper.New()
	setDefaults(v)
	for k, val := range kv {
		v.Set(k, val)
	}
	return &Config{
		v:      v,
		Logger: log.New(io.Discard),
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("log_level", "info")
	v.SetDefault("keywords_path", "config.json")
	v.SetDefault("command_prefix", "/")
	v.SetDefault("slash_commands_enabled", false)
	v.SetDefault("keywords_auto_reload", false)
}

// bindEnvs binds environment variables to viper keys
func bindEnvs(v *viper.Viper) error {
	bindings := []struct {
		key  string
		envs []string
	}{
		{"bot_token", []string{"DISCORD_TOKEN", "BUMPBOT_BOT_TOKEN"}},
		{"monitor_channel_ids", []string{"MONITOR_CHANNEL_IDS"}},
		{"required_role_ids", []string{"REQUIRED_ROLE_IDS"}},
		{"admin_user_ids", []string{"ADMIN_USER_IDS"}},
		{"keywords_path", []string{"BUMPBOT_KEYWORDS_PATH"}},
		{"command_prefix", []string{"BUMPBOT_COMMAND_PREFIX"}},
		{"log_dir", []string{"BUMPBOT_LOG_DIR"}},
		{"log_level", []string{"BUMPBOT_LOG_LEVEL"}},
		{"slash_commands_enabled", []string{"BUMPBOT_SLASH_COMMANDS"}},
		{"keywords_auto_reload", []string{"BUMPBOT_KEYWORDS_AUTO_RELOAD"}},
		{"unregister_commands", []string{"BUMPBOT_UNREGISTER_COMMANDS", "UNREGISTER_COMMANDS"}},
	}

	for _, binding := range bindings {
		args := append([]string{binding.key}, binding.envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("error binding %s environment variable: %w", binding.key, err)
		}
	}
	return nil
}
