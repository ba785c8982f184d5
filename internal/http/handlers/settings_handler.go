// README: Settings handlers; PIN-gated updates.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/modules/settings"
)

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

type settingsView struct {
	AutoHideMinutes  int      `json:"auto_hide_minutes"`
	ProtectedActions []string `json:"protected_actions"`
}

// Get returns the settings without the master PIN.
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsView{
		AutoHideMinutes:  s.AutoHideMinutes,
		ProtectedActions: s.ProtectedActions,
	})
}

type updateSettingsReq struct {
	AutoHideMinutes  *int     `json:"auto_hide_minutes"`
	MasterPIN        *string  `json:"master_pin"`
	ProtectedActions []string `json:"protected_actions"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.AutoHideMinutes != nil && *req.AutoHideMinutes < 0 {
		writeError(c, http.StatusBadRequest, "auto_hide_minutes must be >= 0")
		return
	}
	err := h.settings.Update(c.Request.Context(), settings.UpdateCommand{
		AutoHideMinutes:  req.AutoHideMinutes,
		MasterPIN:        req.MasterPIN,
		ProtectedActions: req.ProtectedActions,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
