package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrDecode marks an event that arrived but could not be decoded.
// Callers should log and keep reading; the transport is still up.
var ErrDecode = errors.New("realtime: undecodable event")

// Conn is a connection to the Realtime service. Writes are serialized;
// reads must come from a single goroutine (the upstream relay).
type Conn struct {
	ws *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Dial opens the upstream socket. The caller is expected to send the
// session configuration next.
func Dial(url, apiKey string) (*Conn, error) {
	headers := http.Header{}
	headers.Add("Authorization", "Bearer "+apiKey)
	headers.Add("OpenAI-Beta", "realtime=v1")

	ws, _, err := websocket.DefaultDialer.Dial(url, headers)
	if err != nil {
		return nil, fmt.Errorf("realtime dial: %w", err)
	}
	return &Conn{ws: ws}, nil
}

func (c *Conn) send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// Configure sends the initial session.update event.
func (c *Conn) Configure(cfg SessionConfig) error {
	return c.send(sessionUpdateEvent{Type: "session.update", Session: cfg})
}

// AppendAudio forwards one base64 audio chunk into the input buffer.
func (c *Conn) AppendAudio(b64 string) error {
	return c.send(audioAppendEvent{Type: "input_audio_buffer.append", Audio: b64})
}

// CreateUserText injects a user-role text item into the conversation
// without requesting a response.
func (c *Conn) CreateUserText(text string) error {
	return c.send(itemCreateEvent{
		Type: "conversation.item.create",
		Item: conversationItem{
			Type:    "message",
			Role:    "user",
			Content: []itemContent{{Type: "input_text", Text: text}},
		},
	})
}

// CreateFunctionOutput acknowledges a tool call by call ID.
func (c *Conn) CreateFunctionOutput(callID, output string) error {
	return c.send(itemCreateEvent{
		Type: "conversation.item.create",
		Item: conversationItem{
			Type:   "function_call_output",
			CallID: callID,
			Output: output,
		},
	})
}

// CreateResponse asks the service to generate the next response.
func (c *Conn) CreateResponse() error {
	return c.send(responseCreateEvent{Type: "response.create"})
}

// ReadEvent blocks for the next server event. A nil event with an
// error wrapping ErrDecode means the payload was unparseable but the
// stream is still alive.
func (c *Conn) ReadEvent() (*ServerEvent, error) {
	_, raw, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	var ev ServerEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &ev, nil
}

// Close shuts the socket down. Safe to call from any goroutine, any
// number of times; only the first close counts.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		_ = c.ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
