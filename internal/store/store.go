// README: Shared tree-store contract; every client of the system reads and
// writes the same key tree, so this is the only synchronization point.
package store

import (
	"context"
	"errors"
)

// ErrAborted is returned from a transaction function to abandon the update
// and leave the node untouched. Callers treat it as "condition not met",
// not as a failure.
var ErrAborted = errors.New("store: transaction aborted")

// TxnNode exposes the current value of a node inside a transaction.
type TxnNode interface {
	Unmarshal(v interface{}) error
}

// UpdateFn receives the current node value and returns the replacement.
// Returning an error aborts the transaction; the store may invoke the
// function more than once on contention.
type UpdateFn func(node TxnNode) (interface{}, error)

// Tree is the read/write contract of the shared store. Paths are
// slash-separated from the root, e.g. "orders/abc123" or "statistics".
// A Get on a missing path leaves v untouched and returns nil.
type Tree interface {
	Get(ctx context.Context, path string, v interface{}) error
	Set(ctx context.Context, path string, v interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
	// Push stores v under a new store-assigned key below path and returns
	// the key.
	Push(ctx context.Context, path string, v interface{}) (string, error)
	// Transaction runs fn against the node at path as a compare-and-set.
	Transaction(ctx context.Context, path string, fn UpdateFn) error
}
