// README: Broadcast banner tests; publish resets reads, mark-read is a union.
package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bestellapp/internal/store"
)

func TestPublishResetsReadSets(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	if err := svc.Publish(ctx, "Last call", TargetAll); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := svc.MarkRead(ctx, "waiter", "anna"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	if err := svc.Publish(ctx, "Kitchen closed", TargetWaiters); err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	b, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.Message != "Kitchen closed" || b.Target != TargetWaiters || !b.Active {
		t.Errorf("banner: %+v", b)
	}
	if len(b.ReadBy.Waiters) != 0 {
		t.Errorf("read set survived republish: %v", b.ReadBy.Waiters)
	}
	if b.Timestamp == 0 {
		t.Error("timestamp not set")
	}
}

func TestPublishValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	if err := svc.Publish(ctx, "", TargetAll); !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty message: %v", err)
	}
	if err := svc.Publish(ctx, "hi", "cooks"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("unknown target: %v", err)
	}
}

func TestMarkReadIsUnion(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	if err := svc.Publish(ctx, "Last call", TargetAll); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = svc.MarkRead(ctx, "waiter", "anna")
		}()
		go func() {
			defer wg.Done()
			_ = svc.MarkRead(ctx, "waiter", "ben")
		}()
	}
	wg.Wait()

	b, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(b.ReadBy.Waiters) != 2 {
		t.Errorf("read set after concurrent marks: %v", b.ReadBy.Waiters)
	}
}

func TestMarkReadInactiveIsSilent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	// No banner published yet.
	if err := svc.MarkRead(ctx, "bar", "main"); err != nil {
		t.Errorf("mark-read without banner: %v", err)
	}

	if err := svc.Publish(ctx, "Last call", TargetAll); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := svc.MarkRead(ctx, "bar", "main"); err != nil {
		t.Errorf("mark-read on cleared banner: %v", err)
	}
	b, _ := svc.Get(ctx)
	if len(b.ReadBy.Bars) != 0 {
		t.Errorf("cleared banner collected reads: %v", b.ReadBy.Bars)
	}
}

func TestMarkReadValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	if err := svc.MarkRead(ctx, "cook", "x"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("unknown role: %v", err)
	}
	if err := svc.MarkRead(ctx, "waiter", ""); !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty reader: %v", err)
	}
}
