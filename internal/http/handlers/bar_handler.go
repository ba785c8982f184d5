// README: Bar dashboard handlers: active orders, completion, statistics, export.
package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/export"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/modules/stats"
	"bestellapp/internal/types"
)

type BarHandler struct {
	order *order.Service
	stats *stats.Service
}

func NewBarHandler(orderSvc *order.Service, statsSvc *stats.Service) *BarHandler {
	return &BarHandler{order: orderSvc, stats: statsSvc}
}

// ActiveOrders returns the bar-visible set with phases classified at now.
func (h *BarHandler) ActiveOrders(c *gin.Context) {
	now := time.Now()
	orders, err := h.order.ActiveForBar(c.Request.Context(), now)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	autoHide := h.order.AutoHideMinutes(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(orders, now, autoHide)})
}

// Hide soft-completes an order: revenue is recorded, the order leaves the
// bar view, the waiter keeps it. Hiding a vanished order succeeds.
func (h *BarHandler) Hide(c *gin.Context) {
	if err := h.order.HideFromBar(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hidden": true})
}

// Remove deletes the order for every client. Removing a vanished order
// succeeds.
func (h *BarHandler) Remove(c *gin.Context) {
	if err := h.order.Remove(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (h *BarHandler) Statistics(c *gin.Context) {
	snap, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *BarHandler) ResetStatistics(c *gin.Context) {
	if err := h.stats.Reset(c.Request.Context()); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

func (h *BarHandler) ExportOrdersCSV(c *gin.Context) {
	orders, err := h.order.List(c.Request.Context())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteOrdersCSV(&buf, orders); err != nil {
		writeError(c, http.StatusInternalServerError, "csv export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *BarHandler) ExportStatisticsCSV(c *gin.Context) {
	snap, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteStatisticsCSV(&buf, snap); err != nil {
		writeError(c, http.StatusInternalServerError, "csv export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="statistics.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
