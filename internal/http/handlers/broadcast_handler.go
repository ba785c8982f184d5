// README: Broadcast banner handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/modules/broadcast"
)

type BroadcastHandler struct {
	broadcast *broadcast.Service
}

func NewBroadcastHandler(svc *broadcast.Service) *BroadcastHandler {
	return &BroadcastHandler{broadcast: svc}
}

func (h *BroadcastHandler) Get(c *gin.Context) {
	b, err := h.broadcast.Get(c.Request.Context())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type publishReq struct {
	Message string `json:"message"`
	Target  string `json:"target"`
	Active  *bool  `json:"active"`
}

// Publish sets a new banner; {"active": false} clears the current one.
func (h *BroadcastHandler) Publish(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Active != nil && !*req.Active {
		if err := h.broadcast.Clear(c.Request.Context()); err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	target := req.Target
	if target == "" {
		target = broadcast.TargetAll
	}
	if err := h.broadcast.Publish(c.Request.Context(), req.Message, target); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true})
}

type markReadReq struct {
	Role     string `json:"role"`
	ReaderID string `json:"reader_id"`
}

func (h *BroadcastHandler) MarkRead(c *gin.Context) {
	var req markReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.broadcast.MarkRead(c.Request.Context(), req.Role, req.ReaderID); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
