package inbox

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/owbinding/onewire-go/pkg/discovery"
)

// Message is the JSON form of an inbox change sent to feed clients.
// A client first receives one "added" message per existing result.
type Message struct {
	Type         EventType      `json:"type"`
	ThingUID     string         `json:"thingUID"`
	ThingTypeUID string         `json:"thingTypeUID"`
	BridgeUID    string         `json:"bridgeUID"`
	Label        string         `json:"label"`
	Properties   map[string]any `json:"properties,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

func newMessage(typ EventType, r discovery.Result) Message {
	return Message{
		Type:         typ,
		ThingUID:     r.ThingUID,
		ThingTypeUID: r.ThingTypeUID,
		BridgeUID:    r.BridgeUID,
		Label:        r.Label,
		Properties:   r.Properties,
		Timestamp:    r.Timestamp,
	}
}

// feedQueueSize bounds the messages buffered per client. Slow clients are
// disconnected when their queue is full.
const feedQueueSize = 64

// Feed streams inbox changes to websocket clients.
type Feed struct {
	inbox    *Inbox
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewFeed creates a Feed for in. logger may be nil.
func NewFeed(in *Inbox, logger *slog.Logger) *Feed {
	return &Feed{
		inbox:  in,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request to a websocket and streams messages until
// the client goes away.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.debugLog("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	queue := make(chan Message, feedQueueSize)
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	existing, unsubscribe := f.inbox.snapshot(func(e Event) {
		select {
		case queue <- newMessage(e.Type, e.Result):
		default:
			f.debugLog("feed client too slow, dropping", "remote", r.RemoteAddr)
			stop()
		}
	})
	defer unsubscribe()

	// Reader loop only detects the close; clients do not send anything.
	go func() {
		defer stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	f.debugLog("feed client connected", "remote", r.RemoteAddr)
	for _, res := range existing {
		if err := writeJSON(conn, newMessage(EventAdded, res)); err != nil {
			return
		}
	}

	for {
		select {
		case msg := <-queue:
			if err := writeJSON(conn, msg); err != nil {
				f.debugLog("feed write failed", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-done:
			f.debugLog("feed client disconnected", "remote", r.RemoteAddr)
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (f *Feed) debugLog(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
