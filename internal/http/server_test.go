// README: End-to-end route tests over the in-memory tree.
package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/config"
	api "bestellapp/internal/http"
	"bestellapp/internal/http/middleware"
	"bestellapp/internal/modules/broadcast"
	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/modules/settings"
	"bestellapp/internal/modules/stats"
	"bestellapp/internal/store"
)

const testPIN = "1234"

type app struct {
	engine *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tree := store.NewMemory()
	bar := config.BarConfig{AutoHideMinutes: 30, MasterPIN: testPIN, PublicBaseURL: "https://example.test"}
	settingsSvc := settings.NewService(tree, bar)
	orderStore := order.NewStore(tree)
	statsSvc := stats.NewService(stats.NewStore(tree, nil), orderStore, nil, nil)
	orderSvc := order.NewService(orderStore, statsSvc, settingsSvc, nil, nil, nil)
	menuSvc := menu.NewService(menu.NewStore(tree))
	broadcastSvc := broadcast.NewService(tree)

	server := api.NewServer(api.ServerDeps{
		Order:     orderSvc,
		Stats:     statsSvc,
		Menu:      menuSvc,
		Settings:  settingsSvc,
		Broadcast: broadcastSvc,
		Hub:       api.NewHub(orderSvc, 1, nil),
		Bar:       bar,
	})
	return &app{engine: server.Routes()}
}

func (a *app) do(t *testing.T, method, path, body, pin string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if pin != "" {
		req.Header.Set(middleware.PinHeader, pin)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func (a *app) seedDrink(t *testing.T, name string, price int64, prompt bool) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"price":%d,"glass_type":"0.5l","requires_glass_prompt":%v,"active":true}`, name, price, prompt)
	rec := a.do(t, http.MethodPost, "/api/menu/drinks", body, testPIN)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed drink: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		DrinkID string `json:"drink_id"`
	}
	decode(t, rec, &resp)
	return resp.DrinkID
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health: %d %q", rec.Code, rec.Body.String())
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	a := newApp(t)
	pilsID := a.seedDrink(t, "Pils", 300, false)
	weizenID := a.seedDrink(t, "Weizen", 380, true)

	// Submit: two Pils plus one Weizen with an extra glass.
	body := fmt.Sprintf(`{"items":[{"item_id":%q,"quantity":2},{"item_id":%q,"quantity":1,"glasses":1}]}`, pilsID, weizenID)
	rec := a.do(t, http.MethodPost, "/api/tables/7/orders", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		OrderID string `json:"order_id"`
	}
	decode(t, rec, &created)
	if created.OrderID == "" {
		t.Fatal("no order_id in response")
	}

	// Bar view: one fresh order, phase red_blink, glass line present.
	rec = a.do(t, http.MethodGet, "/api/bar/orders", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("bar orders: %d", rec.Code)
	}
	var barView struct {
		Orders []struct {
			ID    string `json:"id"`
			Table int    `json:"table_number"`
			Phase string `json:"phase"`
			Total int64  `json:"total"`
			Lines []struct {
				Name     string `json:"name"`
				Quantity int    `json:"quantity"`
			} `json:"lines"`
		} `json:"orders"`
	}
	decode(t, rec, &barView)
	if len(barView.Orders) != 1 {
		t.Fatalf("bar orders: %+v", barView)
	}
	got := barView.Orders[0]
	if got.Phase != "red_blink" || got.Table != 7 || got.Total != 980 {
		t.Errorf("bar order view: %+v", got)
	}
	if len(got.Lines) != 3 || got.Lines[2].Name != "Empty glass (0.5l)" {
		t.Errorf("lines: %+v", got.Lines)
	}

	// Waiter claims it; a second waiter conflicts.
	rec = a.do(t, http.MethodPost, "/api/waiter/orders/"+created.OrderID+"/claim", `{"waiter_name":"Anna"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("claim: %d %s", rec.Code, rec.Body.String())
	}
	rec = a.do(t, http.MethodPost, "/api/waiter/orders/"+created.OrderID+"/claim", `{"waiter_name":"Ben"}`, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("second claim: %d, want 409", rec.Code)
	}

	// Bar hides it: gone from the bar, statistics recorded, waiter keeps it.
	rec = a.do(t, http.MethodPost, "/api/bar/orders/"+created.OrderID+"/hide", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("hide: %d %s", rec.Code, rec.Body.String())
	}
	rec = a.do(t, http.MethodGet, "/api/bar/orders", "", "")
	decode(t, rec, &barView)
	if len(barView.Orders) != 0 {
		t.Errorf("hidden order still in bar view")
	}

	var waiterView struct {
		Orders []struct {
			ID string `json:"id"`
		} `json:"orders"`
	}
	rec = a.do(t, http.MethodGet, "/api/waiter/orders", "", "")
	decode(t, rec, &waiterView)
	if len(waiterView.Orders) != 1 || waiterView.Orders[0].ID != created.OrderID {
		t.Errorf("waiter view after hide: %+v", waiterView)
	}

	var snap struct {
		Global struct {
			TotalOrders int   `json:"total_orders"`
			TotalAmount int64 `json:"total_amount"`
		} `json:"global"`
	}
	rec = a.do(t, http.MethodGet, "/api/bar/statistics", "", "")
	decode(t, rec, &snap)
	if snap.Global.TotalOrders != 1 || snap.Global.TotalAmount != 980 {
		t.Errorf("statistics: %+v", snap.Global)
	}

	// Remove must not double count.
	rec = a.do(t, http.MethodDelete, "/api/orders/"+created.OrderID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: %d", rec.Code)
	}
	rec = a.do(t, http.MethodGet, "/api/bar/statistics", "", "")
	decode(t, rec, &snap)
	if snap.Global.TotalOrders != 1 || snap.Global.TotalAmount != 980 {
		t.Errorf("statistics after remove: %+v", snap.Global)
	}
}

func TestWaiterCallOverHTTP(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, http.MethodPost, "/api/tables/4/call", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("call: %d %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Orders []struct {
			Kind string `json:"kind"`
		} `json:"orders"`
	}
	rec = a.do(t, http.MethodGet, "/api/bar/orders", "", "")
	decode(t, rec, &view)
	if len(view.Orders) != 1 || view.Orders[0].Kind != "waiter_call" {
		t.Errorf("bar view: %+v", view)
	}
}

func TestInvalidTableNumber(t *testing.T) {
	a := newApp(t)
	for _, path := range []string{"/api/tables/0/call", "/api/tables/abc/call"} {
		rec := a.do(t, http.MethodPost, path, "", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: %d, want 400", path, rec.Code)
		}
	}
}

func TestPinGate(t *testing.T) {
	a := newApp(t)
	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/menu/drinks", `{"name":"Pils","price":300,"active":true}`},
		{http.MethodPost, "/api/bar/statistics/reset", ""},
		{http.MethodPost, "/api/broadcast", `{"message":"Last call"}`},
		{http.MethodPut, "/api/settings", `{"auto_hide_minutes":45}`},
	}
	for _, tc := range cases {
		rec := a.do(t, tc.method, tc.path, tc.body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without pin: %d, want 401", tc.method, tc.path, rec.Code)
		}
		rec = a.do(t, tc.method, tc.path, tc.body, "9999")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s with wrong pin: %d, want 401", tc.method, tc.path, rec.Code)
		}
		rec = a.do(t, tc.method, tc.path, tc.body, testPIN)
		if rec.Code != http.StatusOK {
			t.Errorf("%s %s with pin: %d %s", tc.method, tc.path, rec.Code, rec.Body.String())
		}
	}

	// Completion gestures are not protected by default.
	rec := a.do(t, http.MethodPost, "/api/bar/orders/unknown/hide", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("hide without pin: %d", rec.Code)
	}
}

func TestSettingsUpdateRejectsNegative(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, http.MethodPut, "/api/settings", `{"auto_hide_minutes":-1}`, testPIN)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative auto hide: %d, want 400", rec.Code)
	}
}

func TestBroadcastOverHTTP(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPost, "/api/broadcast", `{"message":"Kitchen closed","target":"waiters"}`, testPIN)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: %d %s", rec.Code, rec.Body.String())
	}

	rec = a.do(t, http.MethodPost, "/api/broadcast/read", `{"role":"waiter","reader_id":"anna"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read: %d %s", rec.Code, rec.Body.String())
	}

	var b struct {
		Message string `json:"message"`
		Active  bool   `json:"active"`
		ReadBy  struct {
			Waiters []string `json:"waiters"`
		} `json:"read_by"`
	}
	rec = a.do(t, http.MethodGet, "/api/broadcast", "", "")
	decode(t, rec, &b)
	if !b.Active || b.Message != "Kitchen closed" {
		t.Errorf("banner: %+v", b)
	}
	if len(b.ReadBy.Waiters) != 1 || b.ReadBy.Waiters[0] != "anna" {
		t.Errorf("read set: %+v", b.ReadBy.Waiters)
	}

	rec = a.do(t, http.MethodPost, "/api/broadcast", `{"active":false}`, testPIN)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: %d", rec.Code)
	}
	rec = a.do(t, http.MethodGet, "/api/broadcast", "", "")
	decode(t, rec, &b)
	if b.Active {
		t.Error("banner still active after clear")
	}
}

func TestCSVExportOverHTTP(t *testing.T) {
	a := newApp(t)
	pilsID := a.seedDrink(t, "Pils", 300, false)

	body := fmt.Sprintf(`{"items":[{"item_id":%q,"quantity":2}]}`, pilsID)
	if rec := a.do(t, http.MethodPost, "/api/tables/3/orders", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("submit: %d", rec.Code)
	}

	rec := a.do(t, http.MethodGet, "/api/bar/export/orders.csv", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "orders.csv") {
		t.Errorf("disposition: %s", cd)
	}
	if !strings.Contains(rec.Body.String(), "2x Pils @3.00") {
		t.Errorf("csv body: %s", rec.Body.String())
	}
}

func TestQRCodeOverHTTP(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, http.MethodGet, "/api/tables/7/qrcode.png", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("qrcode: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type: %s", ct)
	}
	// PNG magic number.
	if body := rec.Body.Bytes(); len(body) < 8 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
		t.Error("response is not a PNG")
	}
}
