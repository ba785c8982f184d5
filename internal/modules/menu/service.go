// README: Drink catalogue service; resolution for carts, upsert for admins.
package menu

import (
	"context"
	"errors"

	"bestellapp/internal/types"
)

var (
	ErrNotFound   = errors.New("drink not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Resolve returns the drink for an item id; inactive drinks resolve too so
// an in-flight cart survives a menu edit.
func (s *Service) Resolve(ctx context.Context, id types.ID) (*Drink, error) {
	return s.store.Get(ctx, id)
}

// ListActive returns the guest-facing menu.
func (s *Service) ListActive(ctx context.Context) ([]Drink, error) {
	drinks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	active := drinks[:0]
	for _, d := range drinks {
		if d.Active {
			active = append(active, d)
		}
	}
	return active, nil
}

func (s *Service) List(ctx context.Context) ([]Drink, error) {
	return s.store.List(ctx)
}

type UpsertCommand struct {
	ID                  types.ID // empty for create
	Name                string
	PriceCents          int64
	Category            string
	GlassType           string
	RequiresGlassPrompt bool
	Active              bool
}

func (s *Service) Upsert(ctx context.Context, cmd UpsertCommand) (types.ID, error) {
	if cmd.Name == "" || cmd.PriceCents < 0 {
		return "", ErrBadRequest
	}
	d := &Drink{
		ID:                  cmd.ID,
		Name:                cmd.Name,
		Price:               types.EUR(cmd.PriceCents),
		Category:            cmd.Category,
		GlassType:           cmd.GlassType,
		RequiresGlassPrompt: cmd.RequiresGlassPrompt,
		Active:              cmd.Active,
	}
	if d.ID == "" {
		return s.store.Create(ctx, d)
	}
	return d.ID, s.store.Put(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}
