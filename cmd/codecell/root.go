package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/codecell/internal/app"
	"github.com/iw2rmb/codecell/internal/config"
	"github.com/iw2rmb/codecell/internal/log"
	"github.com/iw2rmb/codecell/internal/transport"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply shows up as typed input.
	_ = lipgloss.HasDarkBackground()
}

const dialTimeout = 10 * time.Second

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "codecell",
	Short: "A terminal notebook of code cells",
	Long: `codecell edits code cells in the terminal and runs them on a remote
execution backend. Each cell is exported as plain text, one line per row,
and sent over a WebSocket when submitted with shift+enter (or alt+enter,
ctrl+s).`,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .codecell/config.yaml, then ~/.config/codecell/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "write debug log to this file")
	rootCmd.PersistentFlags().String("log-level", "", "minimum log level (debug, info, warn, error)")

	rootCmd.Flags().StringP("url", "u", "", "execution backend WebSocket URL")
	rootCmd.Flags().Bool("shell", false, "send cells as shell commands instead of python")
	rootCmd.Flags().Bool("offline", false, "start without a backend connection")
	rootCmd.Flags().IntP("cells", "n", 0, "number of empty cells to start with")

	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("server.url", rootCmd.Flags().Lookup("url"))
	_ = viper.BindPFlag("editor.initial_cells", rootCmd.Flags().Lookup("cells"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	path, found := configPath(cfgFile)
	if !found {
		return
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "codecell: reading %s: %v\n", path, err)
	}
}

// configPath resolves the config file to read. Lookup order: the --config
// flag, .codecell/config.yaml in the working directory, then
// ~/.config/codecell/config.yaml. found is false when none exists; an
// explicit flag is always returned.
func configPath(flag string) (path string, found bool) {
	if flag != "" {
		return flag, true
	}
	local := filepath.Join(".codecell", "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, true
	}
	if user := userConfigPath(); user != "" {
		if _, err := os.Stat(user); err == nil {
			return user, true
		}
	}
	return "", false
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "codecell", "config.yaml")
}

// loadConfig applies flags that have no direct config key and validates the
// result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if shell, _ := cmd.Flags().GetBool("shell"); shell {
		viper.Set("server.message_type", config.MessageShell)
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupLogging starts the file logger when cfg asks for one. The returned
// cleanup is never nil.
func setupLogging(cfg config.Config) (func(), error) {
	if cfg.Log.File == "" {
		return func() {}, nil
	}
	cleanup, err := log.InitWithTeaLog(cfg.Log.File, "codecell")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		cleanup()
		return nil, err
	}
	log.SetMinLevel(level)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var backend app.Backend
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		dialCtx, dialCancel := context.WithTimeout(ctx, dialTimeout)
		client, err := transport.Dial(dialCtx, cfg.Server.URL, transport.Options{
			ReconnectDelay: cfg.Server.ReconnectDelay,
		})
		dialCancel()
		if err != nil {
			return fmt.Errorf("connecting to backend: %w (use --offline to edit without one)", err)
		}
		defer func() { _ = client.Close() }()
		backend = client
	}

	log.Info(log.CatUI, "Starting", "server", cfg.Server.URL, "offline", backend == nil)
	model := app.New(ctx, cfg, backend, app.SystemClipboard{})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	rootCmd.Version = v
}
