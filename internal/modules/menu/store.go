// README: Drink catalogue store over the shared tree.
package menu

import (
	"context"
	"sort"

	"bestellapp/internal/store"
	"bestellapp/internal/types"
)

const drinksPath = "menu/drinks"

type Store struct {
	tree store.Tree
}

func NewStore(tree store.Tree) *Store {
	return &Store{tree: tree}
}

type record struct {
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	Category            string `json:"category,omitempty"`
	GlassType           string `json:"glass_type,omitempty"`
	RequiresGlassPrompt bool   `json:"requires_glass_prompt,omitempty"`
	Active              bool   `json:"active"`
}

func toRecord(d *Drink) record {
	return record{
		Name:                d.Name,
		Price:               d.Price.Amount,
		Category:            d.Category,
		GlassType:           d.GlassType,
		RequiresGlassPrompt: d.RequiresGlassPrompt,
		Active:              d.Active,
	}
}

func fromRecord(id types.ID, rec record) *Drink {
	return &Drink{
		ID:                  id,
		Name:                rec.Name,
		Price:               types.EUR(rec.Price),
		Category:            rec.Category,
		GlassType:           rec.GlassType,
		RequiresGlassPrompt: rec.RequiresGlassPrompt,
		Active:              rec.Active,
	}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Drink, error) {
	var rec record
	if err := s.tree.Get(ctx, drinksPath+"/"+string(id), &rec); err != nil {
		return nil, err
	}
	if rec.Name == "" {
		return nil, ErrNotFound
	}
	return fromRecord(id, rec), nil
}

// List returns all drinks sorted by category, then name.
func (s *Store) List(ctx context.Context) ([]Drink, error) {
	recs := make(map[string]record)
	if err := s.tree.Get(ctx, drinksPath, &recs); err != nil {
		return nil, err
	}
	drinks := make([]Drink, 0, len(recs))
	for id, rec := range recs {
		drinks = append(drinks, *fromRecord(types.ID(id), rec))
	}
	sort.Slice(drinks, func(i, j int) bool {
		if drinks[i].Category == drinks[j].Category {
			return drinks[i].Name < drinks[j].Name
		}
		return drinks[i].Category < drinks[j].Category
	})
	return drinks, nil
}

func (s *Store) Create(ctx context.Context, d *Drink) (types.ID, error) {
	key, err := s.tree.Push(ctx, drinksPath, toRecord(d))
	if err != nil {
		return "", err
	}
	return types.ID(key), nil
}

func (s *Store) Put(ctx context.Context, d *Drink) error {
	return s.tree.Set(ctx, drinksPath+"/"+string(d.ID), toRecord(d))
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	return s.tree.Delete(ctx, drinksPath+"/"+string(id))
}
