package transport

import (
	"encoding/json"
	"fmt"
)

// Request and reply types spoken by the execution backend.
const (
	TypePython  = "python"
	TypeShell   = "shell"
	TypeEnvInfo = "env_info"

	TypePythonOutput = "python_output"
	TypeShellOutput  = "shell_output"
	// TypeText marks a reply that was not a JSON envelope.
	TypeText = "text"
)

// wireMessage is the JSON envelope in both directions. Replies from older
// backends omit cell_id.
type wireMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	CellID  int    `json:"cell_id,omitempty"`
}

// Request asks the backend to run Content in the cell identified by CellID.
type Request struct {
	CellID  int
	Type    string // TypePython when empty
	Content string
}

// Output is one reply from the backend. CellID is 0 when the backend did not
// say which cell the reply belongs to.
type Output struct {
	CellID  int
	Type    string
	Content string
}

// EnvInfo describes the machine the backend runs code on.
type EnvInfo struct {
	PythonPath string `json:"pythonPath"`
	OS         string `json:"os"`
	Username   string `json:"username"`
	Hostname   string `json:"hostname"`
}

func encodeRequest(req Request) ([]byte, error) {
	if req.Type == "" {
		req.Type = TypePython
	}
	data, err := json.Marshal(wireMessage{Type: req.Type, Content: req.Content, CellID: req.CellID})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	return data, nil
}

// decodeOutput accepts a JSON envelope or, failing that, bare text.
func decodeOutput(data []byte) Output {
	var m wireMessage
	if err := json.Unmarshal(data, &m); err != nil || m.Type == "" {
		return Output{Type: TypeText, Content: string(data)}
	}
	return Output{CellID: m.CellID, Type: m.Type, Content: m.Content}
}

// ParseEnvInfo decodes the content of an env_info reply.
func ParseEnvInfo(content string) (EnvInfo, error) {
	var info EnvInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		return EnvInfo{}, fmt.Errorf("decoding env info: %w", err)
	}
	return info, nil
}
