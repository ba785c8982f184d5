// README: Order aggregate shared by table, waiter, and bar clients.
package order

import (
	"time"

	"bestellapp/internal/types"
)

type Kind string

const (
	KindOrder      Kind = "order"
	KindWaiterCall Kind = "waiter_call"
)

// Line is one drink position of a submitted cart. Lines are immutable after
// creation; only the order-level flags below ever change.
type Line struct {
	Name      string
	UnitPrice types.Money
	Quantity  int
}

func (l Line) Amount() types.Money {
	return types.Money{Amount: l.UnitPrice.Amount * int64(l.Quantity), Currency: l.UnitPrice.Currency}
}

// Order is one guest submission or waiter call. The three flags are
// monotonic: ClaimedBy is set at most once and never cleared,
// HiddenFromBar and StatsRecorded only ever go false→true. That keeps
// out-of-order delivery between clients harmless.
type Order struct {
	ID          types.ID
	TableNumber int
	Kind        Kind
	Lines       []Line
	// Total is precomputed at submission time and never recomputed
	// downstream.
	Total     types.Money
	CreatedAt time.Time
	ClaimedBy *string
	// HiddenFromBar is the bar's soft-complete: the order leaves the bar
	// view but stays visible to the waiter.
	HiddenFromBar bool
	// StatsRecorded guards the statistics fold; it is the sole defence
	// against double counting an order's revenue.
	StatsRecorded bool
}
