// README: Shared handler utilities: JSON views and error mapping.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bestellapp/internal/modules/broadcast"
	"bestellapp/internal/modules/menu"
	"bestellapp/internal/modules/order"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest), errors.Is(err, menu.ErrBadRequest), errors.Is(err, broadcast.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, menu.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

type lineView struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type orderView struct {
	ID            string     `json:"id"`
	TableNumber   int        `json:"table_number"`
	Kind          string     `json:"kind"`
	Lines         []lineView `json:"lines,omitempty"`
	Total         int64      `json:"total"`
	CreatedAt     string     `json:"created_at"`
	ClaimedBy     string     `json:"claimed_by,omitempty"`
	HiddenFromBar bool       `json:"hidden_from_bar,omitempty"`
	Phase         string     `json:"phase"`
}

// toOrderView renders an order with its phase classified at "now"; phases
// are computed per response, never read from storage.
func toOrderView(o order.Order, now time.Time, autoHideMinutes int) orderView {
	v := orderView{
		ID:            string(o.ID),
		TableNumber:   o.TableNumber,
		Kind:          string(o.Kind),
		Total:         o.Total.Amount,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		HiddenFromBar: o.HiddenFromBar,
		Phase:         string(order.Classify(o.CreatedAt, now, autoHideMinutes)),
	}
	if o.ClaimedBy != nil {
		v.ClaimedBy = *o.ClaimedBy
	}
	for _, l := range o.Lines {
		v.Lines = append(v.Lines, lineView{Name: l.Name, UnitPrice: l.UnitPrice.Amount, Quantity: l.Quantity})
	}
	return v
}

func toOrderViews(orders []order.Order, now time.Time, autoHideMinutes int) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o, now, autoHideMinutes))
	}
	return views
}
