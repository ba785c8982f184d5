// README: Table-client handlers: cart submission, waiter calls, QR codes.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/export"
	"bestellapp/internal/modules/cart"
	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/types"
)

type TableHandler struct {
	order         *order.Service
	menu          *menu.Service
	publicBaseURL string
}

func NewTableHandler(orderSvc *order.Service, menuSvc *menu.Service, publicBaseURL string) *TableHandler {
	return &TableHandler{order: orderSvc, menu: menuSvc, publicBaseURL: publicBaseURL}
}

type submitItemReq struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	// Glasses is the guest's answer to the glass prompt for this item;
	// ignored for drinks that need no prompt.
	Glasses int `json:"glasses"`
}

type submitOrderReq struct {
	Items []submitItemReq `json:"items"`
}

// SubmitOrder expands the requested items through the glass-prompt queue
// and stores the resulting cart as one order.
func (h *TableHandler) SubmitOrder(c *gin.Context) {
	tableNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil || tableNumber <= 0 {
		writeError(c, http.StatusBadRequest, "invalid table number")
		return
	}
	var req submitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	queue := cart.New(func(id types.ID) (*menu.Drink, bool) {
		d, err := h.menu.Resolve(c.Request.Context(), id)
		if err != nil {
			return nil, false
		}
		return d, true
	})
	for _, it := range req.Items {
		if err := queue.Enqueue([]cart.Item{{ItemID: types.ID(it.ItemID), Quantity: it.Quantity}}); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		if _, _, prompting := queue.Current(); prompting {
			_ = queue.Confirm(it.Glasses)
		}
	}

	id, err := h.order.Submit(c.Request.Context(), order.SubmitCommand{
		TableNumber: tableNumber,
		Lines:       queue.Lines(),
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": id})
}

// CallWaiter stores a waiter-call request for the table.
func (h *TableHandler) CallWaiter(c *gin.Context) {
	tableNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil || tableNumber <= 0 {
		writeError(c, http.StatusBadRequest, "invalid table number")
		return
	}
	id, err := h.order.CallWaiter(c.Request.Context(), tableNumber)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": id})
}

// QRCode serves the PNG code guests scan to reach the table's order page.
func (h *TableHandler) QRCode(c *gin.Context) {
	tableNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil || tableNumber <= 0 {
		writeError(c, http.StatusBadRequest, "invalid table number")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := export.TableCodePNG(h.publicBaseURL, tableNumber, size)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "qr generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
