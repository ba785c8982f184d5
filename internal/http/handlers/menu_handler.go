// README: Menu handlers: guest-facing list, popularity, admin upsert.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/stats"
	"bestellapp/internal/types"
)

type MenuHandler struct {
	menu  *menu.Service
	stats *stats.Service
}

func NewMenuHandler(menuSvc *menu.Service, statsSvc *stats.Service) *MenuHandler {
	return &MenuHandler{menu: menuSvc, stats: statsSvc}
}

type drinkView struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	Category            string `json:"category,omitempty"`
	GlassType           string `json:"glass_type,omitempty"`
	RequiresGlassPrompt bool   `json:"requires_glass_prompt"`
	Active              bool   `json:"active"`
}

func toDrinkView(d menu.Drink) drinkView {
	return drinkView{
		ID:                  string(d.ID),
		Name:                d.Name,
		Price:               d.Price.Amount,
		Category:            d.Category,
		GlassType:           d.GlassType,
		RequiresGlassPrompt: d.RequiresGlassPrompt,
		Active:              d.Active,
	}
}

func (h *MenuHandler) List(c *gin.Context) {
	drinks, err := h.menu.ListActive(c.Request.Context())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	views := make([]drinkView, 0, len(drinks))
	for _, d := range drinks {
		views = append(views, toDrinkView(d))
	}
	c.JSON(http.StatusOK, gin.H{"drinks": views})
}

// Popularity serves the ranked drink list the table view sorts by.
func (h *MenuHandler) Popularity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	ranked, err := h.stats.Popularity(c.Request.Context(), limit)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drinks": ranked})
}

type upsertDrinkReq struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	Category            string `json:"category"`
	GlassType           string `json:"glass_type"`
	RequiresGlassPrompt bool   `json:"requires_glass_prompt"`
	Active              bool   `json:"active"`
}

func (h *MenuHandler) Upsert(c *gin.Context) {
	var req upsertDrinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.menu.Upsert(c.Request.Context(), menu.UpsertCommand{
		ID:                  types.ID(req.ID),
		Name:                req.Name,
		PriceCents:          req.Price,
		Category:            req.Category,
		GlassType:           req.GlassType,
		RequiresGlassPrompt: req.RequiresGlassPrompt,
		Active:              req.Active,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drink_id": id})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.menu.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
