// README: Singleton broadcast banner with per-role read tracking.
package broadcast

import (
	"context"
	"errors"
	"time"

	"bestellapp/internal/store"
)

const broadcastPath = "broadcast"

var ErrBadRequest = errors.New("bad request")

// Targets a broadcast can address.
const (
	TargetAll     = "all"
	TargetTables  = "tables"
	TargetWaiters = "waiters"
	TargetBars    = "bars"
)

type ReadBy struct {
	Tables  []string `json:"tables,omitempty"`
	Waiters []string `json:"waiters,omitempty"`
	Bars    []string `json:"bars,omitempty"`
}

type Broadcast struct {
	Message   string `json:"message"`
	Target    string `json:"target"`
	Timestamp int64  `json:"timestamp"`
	Active    bool   `json:"active"`
	ReadBy    ReadBy `json:"read_by,omitempty"`
}

type Service struct {
	tree store.Tree
}

func NewService(tree store.Tree) *Service {
	return &Service{tree: tree}
}

func (s *Service) Get(ctx context.Context) (Broadcast, error) {
	var b Broadcast
	if err := s.tree.Get(ctx, broadcastPath, &b); err != nil {
		return Broadcast{}, err
	}
	return b, nil
}

// Publish replaces the banner, resetting the read sets.
func (s *Service) Publish(ctx context.Context, message, target string) error {
	if message == "" {
		return ErrBadRequest
	}
	switch target {
	case TargetAll, TargetTables, TargetWaiters, TargetBars:
	default:
		return ErrBadRequest
	}
	return s.tree.Set(ctx, broadcastPath, Broadcast{
		Message:   message,
		Target:    target,
		Timestamp: time.Now().UnixMilli(),
		Active:    true,
	})
}

func (s *Service) Clear(ctx context.Context) error {
	return s.tree.Update(ctx, broadcastPath, map[string]interface{}{"active": false})
}

// MarkRead appends the reader to its role's read set, set-union style; a
// transaction keeps concurrent readers from dropping each other.
func (s *Service) MarkRead(ctx context.Context, role, readerID string) error {
	if readerID == "" {
		return ErrBadRequest
	}
	switch role {
	case "table", "waiter", "bar":
	default:
		return ErrBadRequest
	}
	err := s.tree.Transaction(ctx, broadcastPath, func(node store.TxnNode) (interface{}, error) {
		var b Broadcast
		if err := node.Unmarshal(&b); err != nil {
			return nil, err
		}
		if !b.Active {
			return nil, store.ErrAborted
		}
		switch role {
		case "table":
			b.ReadBy.Tables = appendUnique(b.ReadBy.Tables, readerID)
		case "waiter":
			b.ReadBy.Waiters = appendUnique(b.ReadBy.Waiters, readerID)
		case "bar":
			b.ReadBy.Bars = appendUnique(b.ReadBy.Bars, readerID)
		}
		return b, nil
	})
	if errors.Is(err, store.ErrAborted) {
		return nil
	}
	return err
}

func appendUnique(set []string, member string) []string {
	for _, m := range set {
		if m == member {
			return set
		}
	}
	return append(set, member)
}
