// README: Revenue aggregate shapes; a pure fold over completed orders.
package stats

import (
	"strconv"

	"bestellapp/internal/modules/order"
)

type ItemTotal struct {
	Quantity int   `json:"quantity"`
	Amount   int64 `json:"amount"`
}

// Aggregate is additive-only: increments happen exactly once per completed
// order, decrements never (reset replaces the whole snapshot with zeros).
type Aggregate struct {
	TotalOrders int                  `json:"total_orders"`
	TotalAmount int64                `json:"total_amount"`
	ItemTotals  map[string]ItemTotal `json:"item_totals,omitempty"`
}

func (a *Aggregate) fold(o *order.Order) {
	a.TotalOrders++
	a.TotalAmount += o.Total.Amount
	if a.ItemTotals == nil {
		a.ItemTotals = make(map[string]ItemTotal)
	}
	for _, l := range o.Lines {
		t := a.ItemTotals[l.Name]
		t.Quantity += l.Quantity
		t.Amount += l.Amount().Amount
		a.ItemTotals[l.Name] = t
	}
}

// Snapshot is the stored statistics tree: one global aggregate plus one per
// table. Table numbers are string keys on the wire.
type Snapshot struct {
	Global Aggregate            `json:"global"`
	Tables map[string]Aggregate `json:"tables,omitempty"`
}

func (s *Snapshot) fold(o *order.Order) {
	s.Global.fold(o)
	if s.Tables == nil {
		s.Tables = make(map[string]Aggregate)
	}
	key := strconv.Itoa(o.TableNumber)
	table := s.Tables[key]
	table.fold(o)
	s.Tables[key] = table
}

// Table returns the aggregate for one table number.
func (s *Snapshot) Table(tableNumber int) Aggregate {
	return s.Tables[strconv.Itoa(tableNumber)]
}
