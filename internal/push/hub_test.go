package push

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-companion/internal/domain/alerts"

	"github.com/gorilla/websocket"
)

func TestHub_PushesAlertsWithFixedDeepLink(t *testing.T) {
	hub := NewHub(nil)
	ts := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.NotifyAlert(alerts.Alert{ID: "a1", Title: "Vacuna", Message: "Milo tiene turno mañana", Link: "/pets/p1"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var n Notification
	if err := conn.ReadJSON(&n); err != nil {
		t.Fatalf("read: %v", err)
	}
	if n.Title != "Vacuna" || n.Body != "Milo tiene turno mañana" || n.URL != "/alerts" {
		t.Fatalf("unexpected notification %#v", n)
	}
}

func TestHub_RejectsUnknownOrigins(t *testing.T) {
	hub := NewHub(nil).WithOrigins([]string{"capacitor://localhost", "http://localhost:5173/"})
	ts := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")

	cases := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"native client without origin", "", true},
		{"configured webview origin", "capacitor://localhost", true},
		{"configured origin with trailing slash in config", "http://localhost:5173", true},
		{"same host", ts.URL, true},
		{"foreign page", "https://evil.example", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := http.Header{}
			if c.origin != "" {
				h.Set("Origin", c.origin)
			}
			conn, res, err := websocket.DefaultDialer.Dial(wsURL, h)
			if c.ok {
				if err != nil {
					t.Fatalf("expected upgrade, got %v", err)
				}
				conn.Close()
				return
			}
			if err == nil {
				conn.Close()
				t.Fatalf("expected handshake to fail for %s", c.origin)
			}
			if res == nil || res.StatusCode != http.StatusForbidden {
				t.Fatalf("expected 403, got %#v", res)
			}
		})
	}
}
