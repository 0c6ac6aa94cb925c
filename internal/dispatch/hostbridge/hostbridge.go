// Package hostbridge exposes Core B's Event Output Aggregator to a remote
// host over a WebSocket connection (spec §4.B.4 "deliverPendingEvents").
// Grounded on the teacher's internal/network/websocket.go: a *websocket.Conn
// wrapped in a struct carrying a mutex and a ring-buffered outbound queue,
// identified here with a real github.com/google/uuid rather than the
// teacher's "ws_<unixnano>" string.
package hostbridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/smallnest/ringbuffer"

	"dspcc/internal/dispatch"
)

// outboundRingCapacity bounds the byte-level staging ring between the
// aggregator (producer) and the WebSocket writer goroutine (consumer).
// This leg of the pipeline is not realtime — it runs off the audio thread
// — so a byte-oriented SPSC ring (github.com/smallnest/ringbuffer, the
// same package tphakala-birdnet-go uses to stage its analysis buffers) is
// used, with every ring access serialized by Bridge.mu.
const outboundRingCapacity = 64 * 1024

// Bridge is one WebSocket connection delivering pending output events to a
// remote host.
type Bridge struct {
	ID   string
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
	ring   *ringbuffer.RingBuffer
}

// Dial connects to url and returns a Bridge ready to stream output events.
func Dial(url string) (*Bridge, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("hostbridge dial failed: %w", err)
	}
	return newBridge(conn), nil
}

// Upgrade upgrades an incoming HTTP request to a WebSocket connection and
// returns a Bridge wrapping it, for a host that accepts dspcc connections
// rather than initiating them.
func Upgrade(upgrader websocket.Upgrader, w http.ResponseWriter, r *http.Request) (*Bridge, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("hostbridge upgrade failed: %w", err)
	}
	return newBridge(conn), nil
}

func newBridge(conn *websocket.Conn) *Bridge {
	return &Bridge{
		ID:   uuid.NewString(),
		conn: conn,
		ring: ringbuffer.New(outboundRingCapacity),
	}
}

// StageEvent encodes one output event envelope and stages it in the
// outbound ring, returning false if the ring has no room (spec §7: a
// dropped event is surfaced to the caller, never fatal).
func (b *Bridge) StageEvent(e dispatch.OutputEventEnvelope) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("hostbridge encode: %w", err)
	}
	frame := make([]byte, 4+len(payload))
	frame[0] = byte(len(payload))
	frame[1] = byte(len(payload) >> 8)
	frame[2] = byte(len(payload) >> 16)
	frame[3] = byte(len(payload) >> 24)
	copy(frame[4:], payload)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ring.Free() < len(frame) {
		return false, nil
	}
	_, err = b.ring.Write(frame)
	return err == nil, err
}

// Flush writes every staged frame out over the WebSocket connection as one
// binary message per frame. Intended to be called periodically from a
// dedicated writer goroutine, decoupled from the render thread.
func (b *Bridge) Flush() error {
	for {
		b.mu.Lock()
		frame, ok := b.readFrame()
		b.mu.Unlock()
		if !ok {
			return nil
		}
		if err := b.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return fmt.Errorf("hostbridge write: %w", err)
		}
	}
}

// readFrame pops one length-prefixed frame from the ring, or reports false
// if fewer than a full frame's header is available. Caller holds b.mu.
func (b *Bridge) readFrame() ([]byte, bool) {
	if b.ring.Length() < 4 {
		return nil, false
	}
	header := make([]byte, 4)
	if _, err := b.ring.Read(header); err != nil {
		return nil, false
	}
	length := int(header[0]) | int(header[1])<<8 | int(header[2])<<16 | int(header[3])<<24
	payload := make([]byte, length)
	if _, err := b.ring.Read(payload); err != nil {
		return nil, false
	}
	return payload, true
}

// Close closes the underlying WebSocket connection.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.conn.Close()
}
