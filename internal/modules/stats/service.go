// README: Statistics accumulator; exactly-once revenue fold per order.
package stats

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"bestellapp/internal/metrics"
	"bestellapp/internal/modules/order"
	"bestellapp/internal/types"
)

// Flags performs the compare-and-set on the order's stats_recorded flag.
// Implemented by the order store.
type Flags interface {
	MarkStatsRecorded(ctx context.Context, id types.ID) (bool, error)
}

type DrinkCount struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type Service struct {
	store   *Store
	flags   Flags
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewService(store *Store, flags Flags, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, flags: flags, metrics: m, log: log}
}

// RecordIfNeeded folds the order into the aggregates at most once,
// regardless of which client or completion gesture triggers it. The
// compare-and-set on the order node decides a single winner; everyone else
// no-ops. Waiter calls and empty orders never contribute.
//
// If the fold fails after a won CAS the order is under-counted, never
// double-counted; additive updates keep that the worst case.
func (s *Service) RecordIfNeeded(ctx context.Context, o *order.Order) (bool, error) {
	if o == nil || o.Kind != order.KindOrder || len(o.Lines) == 0 {
		return false, nil
	}
	if o.StatsRecorded {
		return false, nil
	}
	won, err := s.flags.MarkStatsRecorded(ctx, o.ID)
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}
	if err := s.store.Fold(ctx, o); err != nil {
		s.log.Error("statistics fold failed after winning the flag", zap.String("order_id", string(o.ID)), zap.Error(err))
		return true, err
	}
	if err := s.store.IncrPopularity(ctx, o.Lines); err != nil {
		s.log.Warn("popularity update failed", zap.String("order_id", string(o.ID)), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.StatsRecorded.Inc()
	}
	return true, nil
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.store.Snapshot(ctx)
}

// Reset is the explicit administrative zeroing; the only non-additive write.
func (s *Service) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}

// Popularity returns the ranked drink list for the table view, from redis
// when available, otherwise derived from the stored aggregate.
func (s *Service) Popularity(ctx context.Context, limit int) ([]DrinkCount, error) {
	if limit <= 0 {
		return nil, nil
	}
	ranked, ok, err := s.store.TopDrinks(ctx, limit)
	if ok {
		return ranked, err
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for name, t := range snap.Global.ItemTotals {
		ranked = append(ranked, DrinkCount{Name: name, Quantity: int64(t.Quantity)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity == ranked[j].Quantity {
			return ranked[i].Name < ranked[j].Name
		}
		return ranked[i].Quantity > ranked[j].Quantity
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
