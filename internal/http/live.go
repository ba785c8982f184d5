// README: WebSocket live feed; a refresh ticker reclassifies and pushes snapshots.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"bestellapp/internal/modules/order"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Table/waiter/bar pages are served from the venue network.
		return true
	},
}

type liveClient struct {
	conn *websocket.Conn
	role string
}

// Hub pushes role-scoped order snapshots to connected bar and waiter
// clients. Nothing is transitioned by the tick: phases and visibility are
// pure functions of wall-clock time, so each tick simply recomputes and
// redisplays.
type Hub struct {
	mu      sync.Mutex
	clients map[*liveClient]struct{}

	order    *order.Service
	interval time.Duration
	log      *zap.Logger
}

func NewHub(orderSvc *order.Service, refreshSeconds int, log *zap.Logger) *Hub {
	if refreshSeconds <= 0 {
		refreshSeconds = 10
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:  make(map[*liveClient]struct{}),
		order:    orderSvc,
		interval: time.Duration(refreshSeconds) * time.Second,
		log:      log,
	}
}

// HandleLive upgrades the request and registers the client for pushes.
func (h *Hub) HandleLive(c *gin.Context) {
	role := c.DefaultQuery("role", "bar")
	if role != "bar" && role != "waiter" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be bar or waiter"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &liveClient{conn: conn, role: role}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	// Send an immediate snapshot so the dashboard renders without waiting
	// for the next tick.
	h.pushTo(client, time.Now())

	go h.readLoop(client)
}

// readLoop discards inbound frames; it exists to detect the close.
func (h *Hub) readLoop(client *liveClient) {
	defer h.drop(client)
	client.conn.SetReadLimit(4 * 1024)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Run recomputes and pushes snapshots on every tick until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.pushAll(time.Now())
		}
	}
}

type liveSnapshot struct {
	Role   string      `json:"role"`
	Now    string      `json:"now"`
	Orders interface{} `json:"orders"`
}

func (h *Hub) snapshot(ctx context.Context, role string, now time.Time) ([]byte, error) {
	var (
		orders []order.Order
		err    error
	)
	if role == "bar" {
		orders, err = h.order.ActiveForBar(ctx, now)
	} else {
		orders, err = h.order.ActiveForWaiter(ctx, now)
	}
	if err != nil {
		return nil, err
	}
	autoHide := h.order.AutoHideMinutes(ctx)

	type wireLine struct {
		Name      string `json:"name"`
		UnitPrice int64  `json:"unit_price"`
		Quantity  int    `json:"quantity"`
	}
	type wireOrder struct {
		ID          string     `json:"id"`
		TableNumber int        `json:"table_number"`
		Kind        string     `json:"kind"`
		Lines       []wireLine `json:"lines,omitempty"`
		Total       int64      `json:"total"`
		CreatedAt   string     `json:"created_at"`
		ClaimedBy   string     `json:"claimed_by,omitempty"`
		Phase       string     `json:"phase"`
	}
	wire := make([]wireOrder, 0, len(orders))
	for _, o := range orders {
		w := wireOrder{
			ID:          string(o.ID),
			TableNumber: o.TableNumber,
			Kind:        string(o.Kind),
			Total:       o.Total.Amount,
			CreatedAt:   o.CreatedAt.Format(time.RFC3339),
			Phase:       string(order.Classify(o.CreatedAt, now, autoHide)),
		}
		if o.ClaimedBy != nil {
			w.ClaimedBy = *o.ClaimedBy
		}
		for _, l := range o.Lines {
			w.Lines = append(w.Lines, wireLine{Name: l.Name, UnitPrice: l.UnitPrice.Amount, Quantity: l.Quantity})
		}
		wire = append(wire, w)
	}
	return json.Marshal(liveSnapshot{Role: role, Now: now.Format(time.RFC3339), Orders: wire})
}

func (h *Hub) pushAll(now time.Time) {
	h.mu.Lock()
	clients := make([]*liveClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.pushTo(c, now)
	}
}

func (h *Hub) pushTo(client *liveClient, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msg, err := h.snapshot(ctx, client.role, now)
	if err != nil {
		h.log.Warn("live snapshot failed", zap.String("role", client.role), zap.Error(err))
		return
	}
	_ = client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		h.drop(client)
	}
}

func (h *Hub) drop(client *liveClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		_ = client.conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, c)
	}
	h.mu.Unlock()
}
