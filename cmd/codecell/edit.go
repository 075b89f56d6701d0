package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/codecell/editor"
	"github.com/iw2rmb/codecell/internal/app"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a single cell and print its text",
	Long: `Open one code cell, seeded from file when given, without a backend.
Submitting the cell (shift+enter, alt+enter or ctrl+s) prints the exported
text to stdout and exits; ctrl+q exits without printing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

// editModel hosts one editor the way a notebook cell would.
type editModel struct {
	editor    editor.Model
	submitted bool
	text      string
}

func newEditModel(text string, indentWidth int) editModel {
	cfg := editor.DefaultConfig()
	cfg.Text = text
	cfg.IndentWidth = indentWidth
	cfg.Clipboard = app.SystemClipboard{}
	return editModel{editor: editor.New(cfg)}
}

func (m editModel) Init() tea.Cmd { return nil }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
	case editor.SubmitMsg:
		m.submitted = true
		m.text = msg.Text
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m editModel) View() string { return m.editor.View() }

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var text string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		text = string(data)
	}

	p := tea.NewProgram(newEditModel(text, cfg.Editor.IndentWidth), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if m, ok := final.(editModel); ok && m.submitted {
		fmt.Fprintln(cmd.OutOrStdout(), m.text)
	}
	return nil
}
