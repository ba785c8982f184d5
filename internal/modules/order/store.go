// README: Order store over the shared tree; flag writes are transactions.
package order

import (
	"context"
	"errors"
	"sort"
	"time"

	"bestellapp/internal/store"
	"bestellapp/internal/types"
)

const ordersPath = "orders"

type Store struct {
	tree store.Tree
}

func NewStore(tree store.Tree) *Store {
	return &Store{tree: tree}
}

// record is the wire shape of an order node. Money amounts are cents,
// timestamps unix milliseconds, flags present only when set.
type record struct {
	TableNumber   int          `json:"table_number"`
	Kind          string       `json:"kind"`
	Lines         []lineRecord `json:"lines,omitempty"`
	Total         int64        `json:"total"`
	CreatedAt     int64        `json:"created_at"`
	ClaimedBy     string       `json:"claimed_by,omitempty"`
	HiddenFromBar bool         `json:"hidden_from_bar,omitempty"`
	StatsRecorded bool         `json:"stats_recorded,omitempty"`
}

type lineRecord struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// missing reports whether the node was absent (Get/Unmarshal left the
// record zero).
func (r record) missing() bool {
	return r.Kind == "" && r.CreatedAt == 0
}

func toRecord(o *Order) record {
	rec := record{
		TableNumber:   o.TableNumber,
		Kind:          string(o.Kind),
		Total:         o.Total.Amount,
		CreatedAt:     o.CreatedAt.UnixMilli(),
		HiddenFromBar: o.HiddenFromBar,
		StatsRecorded: o.StatsRecorded,
	}
	if o.ClaimedBy != nil {
		rec.ClaimedBy = *o.ClaimedBy
	}
	for _, l := range o.Lines {
		rec.Lines = append(rec.Lines, lineRecord{Name: l.Name, UnitPrice: l.UnitPrice.Amount, Quantity: l.Quantity})
	}
	return rec
}

func fromRecord(id types.ID, rec record) *Order {
	o := &Order{
		ID:            id,
		TableNumber:   rec.TableNumber,
		Kind:          Kind(rec.Kind),
		Total:         types.EUR(rec.Total),
		CreatedAt:     time.UnixMilli(rec.CreatedAt),
		HiddenFromBar: rec.HiddenFromBar,
		StatsRecorded: rec.StatsRecorded,
	}
	if rec.ClaimedBy != "" {
		claimed := rec.ClaimedBy
		o.ClaimedBy = &claimed
	}
	for _, l := range rec.Lines {
		o.Lines = append(o.Lines, Line{Name: l.Name, UnitPrice: types.EUR(l.UnitPrice), Quantity: l.Quantity})
	}
	return o
}

func (s *Store) Create(ctx context.Context, o *Order) (types.ID, error) {
	key, err := s.tree.Push(ctx, ordersPath, toRecord(o))
	if err != nil {
		return "", err
	}
	return types.ID(key), nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	var rec record
	if err := s.tree.Get(ctx, ordersPath+"/"+string(id), &rec); err != nil {
		return nil, err
	}
	if rec.missing() {
		return nil, ErrNotFound
	}
	return fromRecord(id, rec), nil
}

// List returns all orders sorted by creation time ascending.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	recs := make(map[string]record)
	if err := s.tree.Get(ctx, ordersPath, &recs); err != nil {
		return nil, err
	}
	orders := make([]Order, 0, len(recs))
	for id, rec := range recs {
		orders = append(orders, *fromRecord(types.ID(id), rec))
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// MarkStatsRecorded flips the stats_recorded flag inside a store
// transaction. It returns true only for the caller that performed the
// false→true transition; a vanished or already-recorded order yields
// (false, nil).
func (s *Store) MarkStatsRecorded(ctx context.Context, id types.ID) (bool, error) {
	err := s.tree.Transaction(ctx, ordersPath+"/"+string(id), func(node store.TxnNode) (interface{}, error) {
		var rec record
		if err := node.Unmarshal(&rec); err != nil {
			return nil, err
		}
		if rec.missing() || rec.StatsRecorded {
			return nil, store.ErrAborted
		}
		rec.StatsRecorded = true
		return rec, nil
	})
	if errors.Is(err, store.ErrAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Claim sets claimed_by once. It returns the waiter holding the order after
// the call; ok is false when the order no longer exists.
func (s *Store) Claim(ctx context.Context, id types.ID, waiter string) (claimedBy string, ok bool, err error) {
	err = s.tree.Transaction(ctx, ordersPath+"/"+string(id), func(node store.TxnNode) (interface{}, error) {
		var rec record
		if err := node.Unmarshal(&rec); err != nil {
			return nil, err
		}
		if rec.missing() {
			claimedBy, ok = "", false
			return nil, store.ErrAborted
		}
		if rec.ClaimedBy != "" {
			claimedBy, ok = rec.ClaimedBy, true
			return nil, store.ErrAborted
		}
		rec.ClaimedBy = waiter
		claimedBy, ok = waiter, true
		return rec, nil
	})
	if errors.Is(err, store.ErrAborted) {
		err = nil
	}
	return claimedBy, ok, err
}

// SetHidden flips hidden_from_bar. A vanished order is a silent no-op; a
// plain Update would resurrect a stub node for it.
func (s *Store) SetHidden(ctx context.Context, id types.ID) error {
	err := s.tree.Transaction(ctx, ordersPath+"/"+string(id), func(node store.TxnNode) (interface{}, error) {
		var rec record
		if err := node.Unmarshal(&rec); err != nil {
			return nil, err
		}
		if rec.missing() {
			return nil, store.ErrAborted
		}
		rec.HiddenFromBar = true
		return rec, nil
	})
	if errors.Is(err, store.ErrAborted) {
		return nil
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	return s.tree.Delete(ctx, ordersPath+"/"+string(id))
}
