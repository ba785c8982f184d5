// README: Live feed tests; a fresh connection gets an immediate snapshot.
package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialLive(t *testing.T, srv *httptest.Server, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live?role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func TestLiveFeedInitialSnapshot(t *testing.T) {
	a := newApp(t)
	srv := httptest.NewServer(a.engine)
	defer srv.Close()

	pilsID := a.seedDrink(t, "Pils", 300, false)
	body := fmt.Sprintf(`{"items":[{"item_id":%q,"quantity":1}]}`, pilsID)
	if rec := a.do(t, http.MethodPost, "/api/tables/5/orders", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("submit: %d", rec.Code)
	}

	conn := dialLive(t, srv, "bar")
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	var snap struct {
		Role   string `json:"role"`
		Orders []struct {
			TableNumber int    `json:"table_number"`
			Phase       string `json:"phase"`
		} `json:"orders"`
	}
	if err := json.Unmarshal(msg, &snap); err != nil {
		t.Fatalf("decode %q: %v", msg, err)
	}
	if snap.Role != "bar" {
		t.Errorf("role: %s", snap.Role)
	}
	if len(snap.Orders) != 1 || snap.Orders[0].TableNumber != 5 || snap.Orders[0].Phase != "red_blink" {
		t.Errorf("snapshot orders: %+v", snap.Orders)
	}
}

func TestLiveFeedRejectsUnknownRole(t *testing.T) {
	a := newApp(t)
	srv := httptest.NewServer(a.engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live?role=cook"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial with unknown role succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 handshake response, got %+v", resp)
	}
}
