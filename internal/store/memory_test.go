// README: In-memory tree tests; the contract the RTDB wrapper also follows.
package store

import (
	"context"
	"testing"
)

func TestGetMissingPathLeavesTargetUntouched(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	got := map[string]int{"sentinel": 1}
	if err := tree.Get(ctx, "nowhere/at/all", &got); err != nil {
		t.Fatalf("Get missing path: %v", err)
	}
	if got["sentinel"] != 1 {
		t.Error("missing path overwrote the target value")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := tree.Set(ctx, "menu/drinks/d1", payload{Name: "Pils", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if err := tree.Get(ctx, "menu/drinks/d1", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Pils" || got.Count != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	var all map[string]payload
	if err := tree.Get(ctx, "menu/drinks", &all); err != nil {
		t.Fatalf("Get parent: %v", err)
	}
	if len(all) != 1 || all["d1"].Name != "Pils" {
		t.Errorf("parent read mismatch: %+v", all)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	if err := tree.Set(ctx, "settings", map[string]interface{}{"auto_hide_minutes": 30, "master_pin": "1234"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := tree.Update(ctx, "settings", map[string]interface{}{"auto_hide_minutes": 45}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var got struct {
		AutoHide int    `json:"auto_hide_minutes"`
		PIN      string `json:"master_pin"`
	}
	if err := tree.Get(ctx, "settings", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.AutoHide != 45 || got.PIN != "1234" {
		t.Errorf("update did not merge: %+v", got)
	}
}

func TestDeleteRemovesNode(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	if err := tree.Set(ctx, "orders/o1", map[string]interface{}{"total": 100}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := tree.Delete(ctx, "orders/o1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got := map[string]interface{}{"sentinel": true}
	if err := tree.Get(ctx, "orders/o1", &got); err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if _, ok := got["sentinel"]; !ok {
		t.Error("deleted node still readable")
	}
}

func TestPushYieldsDistinctKeys(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := tree.Push(ctx, "orders", map[string]interface{}{"n": i})
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate push key %q", key)
		}
		seen[key] = true
	}

	var all map[string]interface{}
	if err := tree.Get(ctx, "orders", &all); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(all) != 50 {
		t.Errorf("expected 50 children, got %d", len(all))
	}
}

func TestTransactionAbortLeavesValue(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	if err := tree.Set(ctx, "counter", map[string]interface{}{"n": 7}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	err := tree.Transaction(ctx, "counter", func(node TxnNode) (interface{}, error) {
		return nil, ErrAborted
	})
	if err != ErrAborted {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	var got struct {
		N int `json:"n"`
	}
	if err := tree.Get(ctx, "counter", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.N != 7 {
		t.Errorf("aborted transaction changed the value: %d", got.N)
	}
}

func TestTransactionReadsAndReplaces(t *testing.T) {
	ctx := context.Background()
	tree := NewMemory()

	if err := tree.Set(ctx, "counter", map[string]interface{}{"n": 7}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	err := tree.Transaction(ctx, "counter", func(node TxnNode) (interface{}, error) {
		var cur struct {
			N int `json:"n"`
		}
		if err := node.Unmarshal(&cur); err != nil {
			return nil, err
		}
		cur.N++
		return cur, nil
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	var got struct {
		N int `json:"n"`
	}
	if err := tree.Get(ctx, "counter", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.N != 8 {
		t.Errorf("expected 8, got %d", got.N)
	}
}
