package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codecell/internal/notebook"
	"github.com/iw2rmb/codecell/internal/transport"
)

// cellMsg tags a message emitted by a cell editor with the cell it came
// from, so focus changes before the message arrives cannot misroute it.
type cellMsg struct {
	ID  notebook.CellID
	Msg tea.Msg
}

type outputMsg struct{ out transport.Output }

type outputsClosedMsg struct{}

type stateMsg struct{ state transport.State }

type submitErrMsg struct {
	ID  notebook.CellID
	Err error
}

type envErrMsg struct{ err error }

func tagCell(id notebook.CellID, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return cellMsg{ID: id, Msg: cmd()}
	}
}

func waitForOutput(ch <-chan transport.Output) tea.Cmd {
	return func() tea.Msg {
		out, ok := <-ch
		if !ok {
			return outputsClosedMsg{}
		}
		return outputMsg{out: out}
	}
}

func waitForState(ch <-chan transport.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg{state: s}
	}
}
