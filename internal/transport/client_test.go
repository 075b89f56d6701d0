package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend echoes python requests as python_output and can drop every
// open connection on demand.
type fakeBackend struct {
	t        *testing.T
	upgrader websocket.Upgrader
	reply    func(wireMessage) []byte

	mu    sync.Mutex
	conns []*websocket.Conn
	dials int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{t: t}
	fb.reply = func(m wireMessage) []byte {
		data, _ := json.Marshal(wireMessage{Type: m.Type + "_output", Content: "ran: " + m.Content})
		return data
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := fb.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	fb.mu.Lock()
	fb.conns = append(fb.conns, conn)
	fb.dials++
	fb.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var m wireMessage
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		if out := fb.reply(m); out != nil {
			_ = conn.WriteMessage(websocket.TextMessage, out)
		}
	}
}

func (fb *fakeBackend) dropAll() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, c := range fb.conns {
		_ = c.Close()
	}
	fb.conns = nil
}

func (fb *fakeBackend) dialCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.dials
}

func dialTest(t *testing.T, url string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, url, Options{ReconnectDelay: 20 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func nextOutput(t *testing.T, c *Client) Output {
	t.Helper()
	select {
	case out, ok := <-c.Outputs():
		require.True(t, ok, "outputs closed")
		return out
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for output")
	}
	return Output{}
}

func TestSubmitRoundTrip(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := dialTest(t, wsURL(srv))

	require.NoError(t, c.Submit(context.Background(), Request{CellID: 3, Content: "print(1)\nprint(2)"}))

	out := nextOutput(t, c)
	assert.Equal(t, TypePythonOutput, out.Type)
	assert.Equal(t, "ran: print(1)\nprint(2)", out.Content)
	assert.Equal(t, 0, out.CellID, "backend replies carry no cell id")
}

func TestSubmitSendsCellID(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.reply = func(m wireMessage) []byte {
		data, _ := json.Marshal(wireMessage{Type: TypeShellOutput, Content: m.Content, CellID: m.CellID})
		return data
	}
	c := dialTest(t, wsURL(srv))

	require.NoError(t, c.Submit(context.Background(), Request{CellID: 7, Type: TypeShell, Content: "ls"}))

	out := nextOutput(t, c)
	assert.Equal(t, Output{CellID: 7, Type: TypeShellOutput, Content: "ls"}, out)
}

func TestBareTextReply(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.reply = func(wireMessage) []byte { return []byte("plain words") }
	c := dialTest(t, wsURL(srv))

	require.NoError(t, c.Submit(context.Background(), Request{Content: "x"}))

	out := nextOutput(t, c)
	assert.Equal(t, Output{Type: TypeText, Content: "plain words"}, out)
}

func TestPongTextIgnored(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.reply = func(m wireMessage) []byte {
		if m.Content == "ping" {
			return []byte("pong")
		}
		return []byte(`{"type":"python_output","content":"after"}`)
	}
	c := dialTest(t, wsURL(srv))

	require.NoError(t, c.Submit(context.Background(), Request{Content: "ping"}))
	require.NoError(t, c.Submit(context.Background(), Request{Content: "next"}))

	out := nextOutput(t, c)
	assert.Equal(t, "after", out.Content)
}

func TestEnvInfoRequest(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.reply = func(m wireMessage) []byte {
		if m.Type != TypeEnvInfo {
			return nil
		}
		info, _ := json.Marshal(EnvInfo{PythonPath: "/usr/bin/python3", OS: "linux", Username: "dev", Hostname: "box"})
		data, _ := json.Marshal(wireMessage{Type: TypeEnvInfo, Content: string(info)})
		return data
	}
	c := dialTest(t, wsURL(srv))

	require.NoError(t, c.RequestEnvInfo(context.Background()))

	out := nextOutput(t, c)
	require.Equal(t, TypeEnvInfo, out.Type)
	info, err := ParseEnvInfo(out.Content)
	require.NoError(t, err)
	assert.Equal(t, "box", info.Hostname)
	assert.Equal(t, "linux", info.OS)
}

func TestParseEnvInfoInvalid(t *testing.T) {
	_, err := ParseEnvInfo("not json")
	require.Error(t, err)
}

func TestReconnectAfterDrop(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := dialTest(t, wsURL(srv))

	waitState(t, c, true)
	fb.dropAll()
	waitState(t, c, false)
	waitState(t, c, true)

	assert.GreaterOrEqual(t, fb.dialCount(), 2)
	require.NoError(t, c.Submit(context.Background(), Request{Content: "again"}))
	out := nextOutput(t, c)
	assert.Equal(t, "ran: again", out.Content)
}

func waitState(t *testing.T, c *Client, connected bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-c.States():
			if s.Connected == connected {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for connected=%v", connected)
		}
	}
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Dial(ctx, "ws://127.0.0.1:1/ws", Options{})
	require.Error(t, err)
}

func TestCloseStopsClient(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := dialTest(t, wsURL(srv))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	err := c.Submit(context.Background(), Request{Content: "late"})
	require.ErrorIs(t, err, ErrClosed)

	_, ok := <-c.Outputs()
	assert.False(t, ok, "outputs should be closed")
}

func TestDecodeOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Output
	}{
		{"envelope", `{"type":"shell_output","content":"ok"}`, Output{Type: TypeShellOutput, Content: "ok"}},
		{"with cell", `{"type":"python_output","content":"1","cell_id":2}`, Output{CellID: 2, Type: TypePythonOutput, Content: "1"}},
		{"missing type", `{"content":"x"}`, Output{Type: TypeText, Content: `{"content":"x"}`}},
		{"plain", "hello", Output{Type: TypeText, Content: "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeOutput([]byte(tt.in)))
		})
	}
}

func TestEncodeRequestDefaultsToPython(t *testing.T) {
	data, err := encodeRequest(Request{Content: "1+1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"python","content":"1+1"}`, string(data))
}
