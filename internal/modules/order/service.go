// README: Order lifecycle service; the single write path for transitions.
package order

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bestellapp/internal/metrics"
	"bestellapp/internal/types"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("order already claimed")
)

// Accumulator is the single idempotent entry point for revenue statistics.
// Both completion gestures (hide and remove) feed it, which is why the
// guard flag lives on the order and not on either action.
type Accumulator interface {
	RecordIfNeeded(ctx context.Context, o *Order) (bool, error)
}

// SettingsSource yields the current auto-hide threshold in minutes.
type SettingsSource interface {
	AutoHideMinutes(ctx context.Context) int
}

type Service struct {
	store    *Store
	stats    Accumulator
	settings SettingsSource
	journal  *Journal
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewService(store *Store, stats Accumulator, settings SettingsSource, journal *Journal, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, stats: stats, settings: settings, journal: journal, metrics: m, log: log}
}

type SubmitCommand struct {
	TableNumber int
	Lines       []Line
}

type ClaimCommand struct {
	OrderID    types.ID
	WaiterName string
}

// Submit stores a guest cart as a new order. The total is computed here,
// once, and never recomputed downstream.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (types.ID, error) {
	if cmd.TableNumber <= 0 || len(cmd.Lines) == 0 {
		return "", ErrBadRequest
	}
	total := types.EUR(0)
	for _, l := range cmd.Lines {
		if l.Name == "" || l.Quantity <= 0 || l.UnitPrice.Amount < 0 {
			return "", ErrBadRequest
		}
		total = total.Add(l.Amount())
	}

	o := &Order{
		TableNumber: cmd.TableNumber,
		Kind:        KindOrder,
		Lines:       cmd.Lines,
		Total:       total,
		CreatedAt:   time.Now(),
	}
	id, err := s.store.Create(ctx, o)
	if err != nil {
		return "", err
	}
	s.appendJournal(ctx, &JournalEntry{OrderID: id, TableNumber: o.TableNumber, Action: "submitted", Actor: "table", Total: total.Amount})
	if s.metrics != nil {
		s.metrics.OrdersSubmitted.Inc()
	}
	return id, nil
}

// CallWaiter stores a waiter call for the table. Calls run through the same
// alert phases as orders but never touch statistics.
func (s *Service) CallWaiter(ctx context.Context, tableNumber int) (types.ID, error) {
	if tableNumber <= 0 {
		return "", ErrBadRequest
	}
	o := &Order{
		TableNumber: tableNumber,
		Kind:        KindWaiterCall,
		Total:       types.EUR(0),
		CreatedAt:   time.Now(),
	}
	id, err := s.store.Create(ctx, o)
	if err != nil {
		return "", err
	}
	s.appendJournal(ctx, &JournalEntry{OrderID: id, TableNumber: tableNumber, Action: "called", Actor: "table"})
	if s.metrics != nil {
		s.metrics.WaiterCalls.Inc()
	}
	return id, nil
}

// Claim attributes the order to a waiter, at most once. Claiming an order
// another waiter already holds returns ErrConflict; re-claiming one's own
// order and claiming a vanished order are no-ops.
func (s *Service) Claim(ctx context.Context, cmd ClaimCommand) error {
	if cmd.OrderID == "" || cmd.WaiterName == "" {
		return ErrBadRequest
	}
	claimedBy, exists, err := s.store.Claim(ctx, cmd.OrderID, cmd.WaiterName)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if claimedBy != cmd.WaiterName {
		return ErrConflict
	}
	s.appendJournal(ctx, &JournalEntry{OrderID: cmd.OrderID, Action: "claimed", Actor: cmd.WaiterName})
	if s.metrics != nil {
		s.metrics.OrdersClaimed.Inc()
	}
	return nil
}

// HideFromBar soft-completes an order: statistics are captured first, so
// revenue is counted the moment the order leaves the bar's active view,
// then the flag is set. The order itself stays for the waiter.
func (s *Service) HideFromBar(ctx context.Context, id types.ID) error {
	o, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := s.stats.RecordIfNeeded(ctx, o); err != nil {
		return err
	}
	if err := s.store.SetHidden(ctx, id); err != nil {
		return err
	}
	s.appendJournal(ctx, &JournalEntry{OrderID: id, TableNumber: o.TableNumber, Action: "hidden", Actor: "bar", Total: o.Total.Amount})
	if s.metrics != nil {
		s.metrics.OrdersHidden.Inc()
	}
	return nil
}

// Remove deletes the order from the shared tree, accumulating statistics
// first when no completion gesture has recorded them yet.
func (s *Service) Remove(ctx context.Context, id types.ID) error {
	o, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := s.stats.RecordIfNeeded(ctx, o); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.appendJournal(ctx, &JournalEntry{OrderID: id, TableNumber: o.TableNumber, Action: "removed", Total: o.Total.Amount})
	if s.metrics != nil {
		s.metrics.OrdersRemoved.Inc()
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.store.List(ctx)
}

// ActiveForBar returns the bar's actionable set at the given instant.
func (s *Service) ActiveForBar(ctx context.Context, now time.Time) ([]Order, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := VisibleToBar(orders, now, s.autoHide(ctx))
	if s.metrics != nil {
		s.metrics.BarActiveOrders.Set(float64(len(visible)))
	}
	return visible, nil
}

// ActiveForWaiter returns the waiter-visible set at the given instant.
func (s *Service) ActiveForWaiter(ctx context.Context, now time.Time) ([]Order, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleToWaiter(orders, now, s.autoHide(ctx)), nil
}

// AutoHideMinutes exposes the current threshold so renderers classify with
// the same value the filters used.
func (s *Service) AutoHideMinutes(ctx context.Context) int {
	return s.autoHide(ctx)
}

func (s *Service) autoHide(ctx context.Context) int {
	if s.settings == nil {
		return 0
	}
	return s.settings.AutoHideMinutes(ctx)
}

func (s *Service) appendJournal(ctx context.Context, e *JournalEntry) {
	if s.journal == nil {
		return
	}
	e.CreatedAt = time.Now()
	if err := s.journal.Append(ctx, e); err != nil {
		s.log.Warn("order journal append failed", zap.String("order_id", string(e.OrderID)), zap.String("action", e.Action), zap.Error(err))
	}
}
