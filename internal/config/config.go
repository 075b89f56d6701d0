// Package config provides configuration types, defaults, and persistence for
// codecell.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iw2rmb/codecell/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. CODECELL_SERVER_URL.
const EnvPrefix = "CODECELL"

// Message types understood by the execution backend.
const (
	MessagePython = "python"
	MessageShell  = "shell"
)

// Config holds all configuration options for codecell.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Editor EditorConfig `mapstructure:"editor"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig points at the execution backend.
type ServerConfig struct {
	URL            string        `mapstructure:"url"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	MessageType    string        `mapstructure:"message_type"` // "python" (default) or "shell"
}

// EditorConfig configures each cell editor.
type EditorConfig struct {
	IndentWidth     int  `mapstructure:"indent_width"`
	ShowLineNumbers bool `mapstructure:"show_line_numbers"`
	InitialCells    int  `mapstructure:"initial_cells"`
}

// LogConfig configures the file logger. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			URL:            "ws://localhost:8080/ws",
			ReconnectDelay: 5 * time.Second,
			MessageType:    MessagePython,
		},
		Editor: EditorConfig{
			IndentWidth:     4,
			ShowLineNumbers: true,
			InitialCells:    1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every key with its default so env overrides and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.reconnect_delay", d.Server.ReconnectDelay)
	v.SetDefault("server.message_type", d.Server.MessageType)
	v.SetDefault("editor.indent_width", d.Editor.IndentWidth)
	v.SetDefault("editor.show_line_numbers", d.Editor.ShowLineNumbers)
	v.SetDefault("editor.initial_cells", d.Editor.InitialCells)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// BindEnv enables CODECELL_* environment overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "Loaded config", "file", v.ConfigFileUsed(), "server", cfg.Server.URL)
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Server.URL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("server.url: %w", err))
	case u.Scheme != "ws" && u.Scheme != "wss":
		errs = append(errs, fmt.Errorf("server.url: scheme must be ws or wss, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("server.url: missing host"))
	}

	if c.Server.ReconnectDelay <= 0 {
		errs = append(errs, fmt.Errorf("server.reconnect_delay: must be positive, got %s", c.Server.ReconnectDelay))
	}
	if c.Server.MessageType != MessagePython && c.Server.MessageType != MessageShell {
		errs = append(errs, fmt.Errorf("server.message_type: must be %q or %q, got %q", MessagePython, MessageShell, c.Server.MessageType))
	}
	if c.Editor.IndentWidth < 1 || c.Editor.IndentWidth > 16 {
		errs = append(errs, fmt.Errorf("editor.indent_width: must be in [1,16], got %d", c.Editor.IndentWidth))
	}
	if c.Editor.InitialCells < 1 {
		errs = append(errs, fmt.Errorf("editor.initial_cells: must be at least 1, got %d", c.Editor.InitialCells))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
