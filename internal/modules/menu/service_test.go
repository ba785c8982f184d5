// README: Drink catalogue tests.
package menu

import (
	"context"
	"errors"
	"testing"

	"bestellapp/internal/store"
)

func TestUpsertAndResolve(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStore(store.NewMemory()))

	id, err := svc.Upsert(ctx, UpsertCommand{
		Name:                "Weizen",
		PriceCents:          380,
		Category:            "beer",
		GlassType:           "0.5l",
		RequiresGlassPrompt: true,
		Active:              true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if id == "" {
		t.Fatal("create returned empty id")
	}

	d, err := svc.Resolve(ctx, id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Name != "Weizen" || d.Price.Amount != 380 || !d.RequiresGlassPrompt {
		t.Errorf("resolved drink: %+v", d)
	}

	// Update in place keeps the id.
	got, err := svc.Upsert(ctx, UpsertCommand{ID: id, Name: "Weizen", PriceCents: 400, Active: true})
	if err != nil {
		t.Fatalf("update Upsert: %v", err)
	}
	if got != id {
		t.Errorf("update changed the id: %s -> %s", id, got)
	}
	d, _ = svc.Resolve(ctx, id)
	if d.Price.Amount != 400 {
		t.Errorf("price not updated: %d", d.Price.Amount)
	}
}

func TestUpsertValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStore(store.NewMemory()))

	if _, err := svc.Upsert(ctx, UpsertCommand{Name: "", PriceCents: 100}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty name: %v", err)
	}
	if _, err := svc.Upsert(ctx, UpsertCommand{Name: "Pils", PriceCents: -1}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("negative price: %v", err)
	}
}

func TestListActiveFiltersInactive(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStore(store.NewMemory()))

	if _, err := svc.Upsert(ctx, UpsertCommand{Name: "Pils", PriceCents: 300, Active: true}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	offID, err := svc.Upsert(ctx, UpsertCommand{Name: "Glühwein", PriceCents: 350, Active: false})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Pils" {
		t.Errorf("active list: %+v", active)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full list: %+v", all)
	}

	// Inactive drinks still resolve so in-flight carts survive menu edits.
	if _, err := svc.Resolve(ctx, offID); err != nil {
		t.Errorf("inactive drink must resolve: %v", err)
	}
}

func TestDeleteAndResolveMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewStore(store.NewMemory()))

	id, err := svc.Upsert(ctx, UpsertCommand{Name: "Pils", PriceCents: 300, Active: true})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Resolve(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
