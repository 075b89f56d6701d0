package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/codecell/internal/log"
)

// fileConfig mirrors Config with YAML-friendly field types.
type fileConfig struct {
	Server struct {
		URL            string `yaml:"url"`
		ReconnectDelay string `yaml:"reconnect_delay"`
		MessageType    string `yaml:"message_type"`
	} `yaml:"server"`
	Editor struct {
		IndentWidth     int  `yaml:"indent_width"`
		ShowLineNumbers bool `yaml:"show_line_numbers"`
		InitialCells    int  `yaml:"initial_cells"`
	} `yaml:"editor"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func toFile(c Config) fileConfig {
	var f fileConfig
	f.Server.URL = c.Server.URL
	f.Server.ReconnectDelay = c.Server.ReconnectDelay.String()
	f.Server.MessageType = c.Server.MessageType
	f.Editor.IndentWidth = c.Editor.IndentWidth
	f.Editor.ShowLineNumbers = c.Editor.ShowLineNumbers
	f.Editor.InitialCells = c.Editor.InitialCells
	f.Log.File = c.Log.File
	f.Log.Level = c.Log.Level
	return f
}

const header = "# codecell configuration\n# Environment overrides: CODECELL_SERVER_URL, CODECELL_LOG_FILE, ...\n"

// Marshal renders c as YAML.
func Marshal(c Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toFile(c)); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone and reported as an error.
func WriteDefault(path string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", path)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", path)
	return nil
}
