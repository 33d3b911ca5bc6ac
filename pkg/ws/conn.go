package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aadikrishna04/Devfest-CU/pkg/types"
)

// ErrDecode marks a client message that arrived but was not valid
// JSON. The connection itself is still usable.
var ErrDecode = errors.New("ws: undecodable client message")

const (
	maxMessageSize = 8 << 20 // frames are base64 JPEGs
	writeTimeout   = 5 * time.Second
)

// Conn wraps a client websocket. Reads belong to one goroutine; Send
// is safe from any goroutine, which matters because every session
// loop emits client messages.
type Conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func Wrap(c *websocket.Conn) *Conn {
	c.SetReadLimit(maxMessageSize)
	return &Conn{ws: c}
}

// ReadMessage blocks for the next client message. An error wrapping
// ErrDecode means the payload was garbage but the socket is fine.
func (c *Conn) ReadMessage() (*types.ClientMessage, error) {
	for {
		mt, raw, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		var msg types.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return &msg, nil
	}
}

func (c *Conn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
