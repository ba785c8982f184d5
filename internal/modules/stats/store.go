// README: Statistics store; tree transactions plus a redis popularity set.
package stats

import (
	"context"

	"github.com/redis/go-redis/v9"

	"bestellapp/internal/modules/order"
	"bestellapp/internal/store"
)

const (
	statsPath = "statistics"
	// popularityKey is a sorted set of drink name → total quantity.
	popularityKey = "popularity:drinks"
)

type Store struct {
	tree  store.Tree
	redis *redis.Client
}

// NewStore wires the shared tree and an optional redis client; a nil client
// disables the popularity ranking.
func NewStore(tree store.Tree, redis *redis.Client) *Store {
	return &Store{tree: tree, redis: redis}
}

func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := s.tree.Get(ctx, statsPath, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Fold adds one order into the global and per-table aggregates inside a
// transaction, so concurrent folds for different orders cannot lose each
// other's increments.
func (s *Store) Fold(ctx context.Context, o *order.Order) error {
	return s.tree.Transaction(ctx, statsPath, func(node store.TxnNode) (interface{}, error) {
		var snap Snapshot
		if err := node.Unmarshal(&snap); err != nil {
			return nil, err
		}
		snap.fold(o)
		return snap, nil
	})
}

// Reset replaces the whole snapshot with zeros and clears the ranking.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.tree.Set(ctx, statsPath, Snapshot{}); err != nil {
		return err
	}
	if s.redis != nil {
		return s.redis.Del(ctx, popularityKey).Err()
	}
	return nil
}

func (s *Store) IncrPopularity(ctx context.Context, lines []order.Line) error {
	if s.redis == nil || len(lines) == 0 {
		return nil
	}
	pipe := s.redis.Pipeline()
	for _, l := range lines {
		pipe.ZIncrBy(ctx, popularityKey, float64(l.Quantity), l.Name)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// TopDrinks returns up to limit drink names ordered by total quantity.
// ok is false when no redis client is configured.
func (s *Store) TopDrinks(ctx context.Context, limit int) (ranked []DrinkCount, ok bool, err error) {
	if s.redis == nil {
		return nil, false, nil
	}
	results, err := s.redis.ZRevRangeWithScores(ctx, popularityKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, true, err
	}
	for _, r := range results {
		name, _ := r.Member.(string)
		ranked = append(ranked, DrinkCount{Name: name, Quantity: int64(r.Score)})
	}
	return ranked, true, nil
}
