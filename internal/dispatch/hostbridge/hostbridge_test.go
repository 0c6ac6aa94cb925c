package hostbridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"dspcc/internal/dispatch"
)

// newBridgePair starts an httptest server that upgrades its one incoming
// connection to a Bridge, dials it with a client-side Bridge, and returns
// both ends once the handshake completes.
func newBridgePair(t *testing.T) (server, client *Bridge) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ready := make(chan *Bridge, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := Upgrade(upgrader, w, r)
		if err != nil {
			t.Errorf("server Upgrade: %v", err)
			return
		}
		ready <- b
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(wsURL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	select {
	case s := <-ready:
		t.Cleanup(func() { s.Close() })
		return s, c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server-side upgrade")
		return nil, nil
	}
}

func TestStageEventThenFlushDeliversOverWebSocket(t *testing.T) {
	server, client := newBridgePair(t)

	env := dispatch.OutputEventEnvelope{EndpointName: "clipDetected", Time: 42, Value: float32(0.75)}
	ok, err := client.StageEvent(env)
	if err != nil || !ok {
		t.Fatalf("StageEvent: ok=%v err=%v", ok, err)
	}
	if err := client.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	msgType, payload, err := server.conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("expected a binary message, got type %d", msgType)
	}

	var got dispatch.OutputEventEnvelope
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.EndpointName != env.EndpointName || got.Time != env.Time {
		t.Fatalf("expected %+v, got %+v", env, got)
	}
}

func TestStageEventOverflowReturnsFalse(t *testing.T) {
	_, client := newBridgePair(t)

	big := strings.Repeat("x", outboundRingCapacity)
	env := dispatch.OutputEventEnvelope{EndpointName: big}

	ok, err := client.StageEvent(env)
	if err != nil {
		t.Fatalf("StageEvent: %v", err)
	}
	if ok {
		t.Fatal("expected StageEvent to report false once the ring cannot hold the frame")
	}
}
