// README: Waiter handlers: visible orders and claiming.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/modules/order"
	"bestellapp/internal/types"
)

type WaiterHandler struct {
	order *order.Service
}

func NewWaiterHandler(orderSvc *order.Service) *WaiterHandler {
	return &WaiterHandler{order: orderSvc}
}

// ActiveOrders returns the waiter-visible set; soft-completed orders stay
// listed here, only expired ones drop out.
func (h *WaiterHandler) ActiveOrders(c *gin.Context) {
	now := time.Now()
	orders, err := h.order.ActiveForWaiter(c.Request.Context(), now)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	autoHide := h.order.AutoHideMinutes(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(orders, now, autoHide)})
}

type claimReq struct {
	WaiterName string `json:"waiter_name"`
}

// Claim attributes the order to the calling waiter. A 409 means another
// waiter got there first; claiming a vanished order succeeds silently.
func (h *WaiterHandler) Claim(c *gin.Context) {
	var req claimReq
	if err := c.ShouldBindJSON(&req); err != nil || req.WaiterName == "" {
		writeError(c, http.StatusBadRequest, "waiter_name is required")
		return
	}
	err := h.order.Claim(c.Request.Context(), order.ClaimCommand{
		OrderID:    types.ID(c.Param("id")),
		WaiterName: req.WaiterName,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claimed": true})
}
