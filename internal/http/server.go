// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bestellapp/internal/config"
	"bestellapp/internal/http/handlers"
	"bestellapp/internal/http/middleware"
	"bestellapp/internal/metrics"
	"bestellapp/internal/modules/broadcast"
	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/modules/settings"
	"bestellapp/internal/modules/stats"
)

type ServerDeps struct {
	Order     *order.Service
	Stats     *stats.Service
	Menu      *menu.Service
	Settings  *settings.Service
	Broadcast *broadcast.Service
	Hub       *Hub
	Metrics   *metrics.Metrics
	Bar       config.BarConfig
	Log       *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() *gin.Engine {
	d := s.deps

	r := gin.New()
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.Logging(d.Log))

	tableHandler := handlers.NewTableHandler(d.Order, d.Menu, d.Bar.PublicBaseURL)
	barHandler := handlers.NewBarHandler(d.Order, d.Stats)
	waiterHandler := handlers.NewWaiterHandler(d.Order)
	menuHandler := handlers.NewMenuHandler(d.Menu, d.Stats)
	broadcastHandler := handlers.NewBroadcastHandler(d.Broadcast)
	settingsHandler := handlers.NewSettingsHandler(d.Settings)

	r.GET("/health", func(c *gin.Context) { c.String(200, "OK") })
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")

	api.GET("/menu", menuHandler.List)
	api.GET("/menu/popularity", menuHandler.Popularity)
	api.POST("/menu/drinks", middleware.PinGate(d.Settings, "menu"), menuHandler.Upsert)
	api.DELETE("/menu/drinks/:id", middleware.PinGate(d.Settings, "menu"), menuHandler.Delete)

	api.POST("/tables/:number/orders", tableHandler.SubmitOrder)
	api.POST("/tables/:number/call", tableHandler.CallWaiter)
	api.GET("/tables/:number/qrcode.png", tableHandler.QRCode)

	api.GET("/bar/orders", barHandler.ActiveOrders)
	api.POST("/bar/orders/:id/hide", middleware.PinGate(d.Settings, "hide_order"), barHandler.Hide)
	api.GET("/bar/statistics", barHandler.Statistics)
	api.POST("/bar/statistics/reset", middleware.PinGate(d.Settings, "reset_statistics"), barHandler.ResetStatistics)
	api.GET("/bar/export/orders.csv", barHandler.ExportOrdersCSV)
	api.GET("/bar/export/statistics.csv", barHandler.ExportStatisticsCSV)

	api.GET("/waiter/orders", waiterHandler.ActiveOrders)
	api.POST("/waiter/orders/:id/claim", waiterHandler.Claim)

	api.DELETE("/orders/:id", middleware.PinGate(d.Settings, "remove_order"), barHandler.Remove)

	api.GET("/broadcast", broadcastHandler.Get)
	api.POST("/broadcast", middleware.PinGate(d.Settings, "broadcast"), broadcastHandler.Publish)
	api.POST("/broadcast/read", broadcastHandler.MarkRead)

	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", middleware.PinGate(d.Settings, "settings"), settingsHandler.Update)

	if d.Hub != nil {
		api.GET("/live", d.Hub.HandleLive)
	}

	return r
}
