// Package app contains the root notebook model: a column of code cells, each
// edited by its own editor.Model, with submissions sent to the execution
// backend.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codecell/buffer"
	"github.com/iw2rmb/codecell/editor"
	"github.com/iw2rmb/codecell/internal/config"
	"github.com/iw2rmb/codecell/internal/log"
	"github.com/iw2rmb/codecell/internal/notebook"
	"github.com/iw2rmb/codecell/internal/transport"
)

// Backend runs submitted cell text. *transport.Client implements it.
type Backend interface {
	Submit(ctx context.Context, req transport.Request) error
	RequestEnvInfo(ctx context.Context) error
	Outputs() <-chan transport.Output
	States() <-chan transport.State
}

// Model is the root application state.
type Model struct {
	cfg     config.Config
	backend Backend
	clip    editor.Clipboard
	ctx     context.Context

	nb      *notebook.Notebook
	editors map[notebook.CellID]editor.Model
	focus   notebook.CellID

	keys keyMap
	help help.Model

	width  int
	height int

	connected bool
	env       *transport.EnvInfo
	status    string
}

// New builds the notebook with cfg.Editor.InitialCells empty cells. backend
// may be nil, in which case the notebook runs offline and submissions only
// report an error. A nil clip uses the system clipboard.
func New(ctx context.Context, cfg config.Config, backend Backend, clip editor.Clipboard) Model {
	if clip == nil {
		clip = SystemClipboard{}
	}
	m := Model{
		cfg:       cfg,
		backend:   backend,
		clip:      clip,
		ctx:       ctx,
		nb:        notebook.New(buffer.Options{IndentWidth: cfg.Editor.IndentWidth}),
		editors:   make(map[notebook.CellID]editor.Model),
		keys:      defaultKeyMap(editor.DefaultKeyMap()),
		help:      help.New(),
		connected: backend != nil,
	}

	n := cfg.Editor.InitialCells
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		c := m.nb.AddCell("")
		m.editors[c.ID] = m.newEditor(c)
	}
	first, _ := m.nb.At(0)
	m.setFocus(first.ID)
	m.resizeEditors()
	return m
}

func (m Model) newEditor(c *notebook.Cell) editor.Model {
	ecfg := editor.DefaultConfig()
	ecfg.IndentWidth = m.cfg.Editor.IndentWidth
	ecfg.ShowLineNums = m.cfg.Editor.ShowLineNumbers
	ecfg.Clipboard = m.clip

	id := c.ID
	ecfg.OnChange = func(ev editor.ChangeEvent) {
		log.Debug(log.CatBuffer, "Cell changed", "cell", id, "version", ev.Version,
			"rows", len(ev.Rows), "removed", len(ev.Removed))
	}
	ecfg.Logger = func(cmd editor.Command, ev editor.KeyEvent, err error) {
		log.Debug(log.CatKeys, "Key swallowed", "cell", id, "command", cmd, "key", ev.Key, "error", err)
	}

	ed := editor.NewWithBuffer(c.Buffer, ecfg)
	return ed.Blur()
}

// Init implements tea.Model. It starts listening to the backend and asks for
// its environment description.
func (m Model) Init() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	backend, ctx := m.backend, m.ctx
	return tea.Batch(
		waitForOutput(backend.Outputs()),
		waitForState(backend.States()),
		func() tea.Msg {
			if err := backend.RequestEnvInfo(ctx); err != nil {
				return envErrMsg{err: err}
			}
			return nil
		},
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeEditors()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case cellMsg:
		return m.handleCellMsg(msg)

	case outputMsg:
		m.handleOutput(msg.out)
		return m, waitForOutput(m.backend.Outputs())

	case outputsClosedMsg:
		m.connected = false
		m.status = "backend closed"
		return m, nil

	case stateMsg:
		m.connected = msg.state.Connected
		if msg.state.Connected {
			m.status = "connected"
		} else if msg.state.Err != nil {
			m.status = "disconnected: " + msg.state.Err.Error()
		}
		return m, waitForState(m.backend.States())

	case submitErrMsg:
		log.ErrorErr(log.CatTransport, "Submit failed", msg.Err, "cell", msg.ID)
		if _, err := m.nb.Complete(msg.ID, "error: "+msg.Err.Error()); err != nil {
			log.Warn(log.CatUI, "No cell for submit error", "cell", msg.ID)
		}
		m.status = "submit failed: " + msg.Err.Error()
		return m, nil

	case envErrMsg:
		log.Warn(log.CatTransport, "Env info request failed", "error", msg.err)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NewCell):
		c, err := m.nb.InsertAfter(m.focus, "")
		if err != nil {
			log.ErrorErr(log.CatUI, "New cell failed", err)
			return m, nil
		}
		m.editors[c.ID] = m.newEditor(c)
		m.setFocus(c.ID)
		m.resizeEditors()
		return m, nil
	case key.Matches(msg, m.keys.DeleteCell):
		m.deleteFocused()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil
	}

	ed, ok := m.editors[m.focus]
	if !ok {
		return m, nil
	}
	ed, cmd := ed.Update(msg)
	m.editors[m.focus] = m.sizeEditor(ed)
	return m, tagCell(m.focus, cmd)
}

func (m Model) handleCellMsg(msg cellMsg) (tea.Model, tea.Cmd) {
	switch inner := msg.Msg.(type) {
	case tea.BatchMsg:
		cmds := make([]tea.Cmd, 0, len(inner))
		for _, cmd := range inner {
			cmds = append(cmds, tagCell(msg.ID, cmd))
		}
		return m, tea.Batch(cmds...)

	case editor.SubmitMsg:
		return m, m.submit(msg.ID, inner.Text)

	case editor.CopyMsg:
		if inner.Err != nil {
			log.ErrorErr(log.CatUI, "Clipboard write failed", inner.Err)
			m.status = "copy failed: " + inner.Err.Error()
		} else {
			m.status = fmt.Sprintf("copied %d bytes", len(inner.Text))
		}
	}
	return m, nil
}

// submit records the run and sends text for cell id to the backend.
func (m *Model) submit(id notebook.CellID, text string) tea.Cmd {
	count, err := m.nb.MarkSubmitted(id)
	if err != nil {
		log.Warn(log.CatUI, "Submit for unknown cell", "cell", id)
		return nil
	}
	log.Info(log.CatUI, "Cell submitted", "cell", id, "run", count, "bytes", len(text))

	if m.backend == nil {
		return func() tea.Msg {
			return submitErrMsg{ID: id, Err: transport.ErrNotConnected}
		}
	}

	backend, ctx := m.backend, m.ctx
	req := transport.Request{CellID: int(id), Type: m.cfg.Server.MessageType, Content: text}
	return func() tea.Msg {
		if err := backend.Submit(ctx, req); err != nil {
			return submitErrMsg{ID: id, Err: err}
		}
		return nil
	}
}

func (m *Model) handleOutput(out transport.Output) {
	if out.Type == transport.TypeEnvInfo {
		info, err := transport.ParseEnvInfo(out.Content)
		if err != nil {
			log.Warn(log.CatTransport, "Bad env info", "error", err)
			return
		}
		m.env = &info
		return
	}

	id, err := m.nb.Complete(notebook.CellID(out.CellID), out.Content)
	switch {
	case errors.Is(err, notebook.ErrNoPending):
		log.Warn(log.CatTransport, "Output with no pending cell", "type", out.Type)
		m.status = "unattributed output: " + firstLine(out.Content)
		return
	case errors.Is(err, notebook.ErrNoCell):
		log.Warn(log.CatTransport, "Output for deleted cell", "cell", out.CellID, "type", out.Type)
		m.status = fmt.Sprintf("output for deleted cell %d dropped", out.CellID)
		return
	}
	log.Debug(log.CatTransport, "Output stored", "cell", id, "type", out.Type)
}

func (m *Model) setFocus(id notebook.CellID) {
	if prev, ok := m.editors[m.focus]; ok && m.focus != id {
		m.editors[m.focus] = prev.Blur()
	}
	if ed, ok := m.editors[id]; ok {
		m.editors[id] = ed.Focus()
		m.focus = id
	}
}

func (m *Model) moveFocus(delta int) {
	i := m.nb.Index(m.focus) + delta
	if c, ok := m.nb.At(i); ok {
		m.setFocus(c.ID)
	}
}

func (m *Model) deleteFocused() {
	id := m.focus
	i := m.nb.Index(id)
	if err := m.nb.Remove(id); err != nil {
		m.status = "cannot delete the only cell"
		return
	}
	delete(m.editors, id)
	if i >= m.nb.Len() {
		i = m.nb.Len() - 1
	}
	next, _ := m.nb.At(i)
	m.focus = 0
	m.setFocus(next.ID)
}

// FocusedCell returns the cell that receives keys.
func (m Model) FocusedCell() *notebook.Cell {
	c, _ := m.nb.Cell(m.focus)
	return c
}

// Notebook exposes the cells for inspection.
func (m Model) Notebook() *notebook.Notebook { return m.nb }
