// README: Best-effort lifecycle event journal backed by PostgreSQL.
package order

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bestellapp/internal/types"
)

// Journal appends one row per lifecycle transition so removed orders leave
// a trace for after-event reconciliation. Writes are best-effort; callers
// ignore failures.
type Journal struct {
	db *pgxpool.Pool
}

func NewJournal(db *pgxpool.Pool) *Journal {
	return &Journal{db: db}
}

type JournalEntry struct {
	OrderID     types.ID
	TableNumber int
	Action      string // submitted | called | claimed | hidden | removed
	Actor       string
	Total       int64
	CreatedAt   time.Time
}

func (j *Journal) Append(ctx context.Context, e *JournalEntry) error {
	_, err := j.db.Exec(ctx, `
        INSERT INTO order_events (
            order_id, table_number, action, actor, total_cents, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID),
		e.TableNumber,
		e.Action,
		e.Actor,
		e.Total,
		e.CreatedAt,
	)
	return err
}
