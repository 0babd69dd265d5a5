package repository_test

import (
	"context"
	"math"
	"testing"

	"github.com/niveshlabs/nivesh-backend/internal/repository"
	"github.com/niveshlabs/nivesh-backend/internal/testutil"
)

// ---------- WatchlistRepo ----------

func TestWatchlistRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewWatchlistRepo(pool)
	ctx := context.Background()

	const symbol = "TESTWATCH.NS"
	t.Cleanup(func() { repo.Remove(ctx, symbol) })

	// Add
	item, err := repo.Add(ctx, symbol, "Test Watch Ltd")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if item.Name != "Test Watch Ltd" {
		t.Fatalf("name mismatch: got %s", item.Name)
	}
	t.Logf("Added: id=%d symbol=%s", item.ID, item.Symbol)

	// Add again updates the name, keeps one row
	again, err := repo.Add(ctx, symbol, "Test Watch Limited")
	if err != nil {
		t.Fatalf("Add (upsert): %v", err)
	}
	if again.ID != item.ID {
		t.Fatalf("upsert created a new row: %d != %d", again.ID, item.ID)
	}
	if again.Name != "Test Watch Limited" {
		t.Fatalf("name not updated: got %s", again.Name)
	}

	// Get
	got, err := repo.Get(ctx, symbol)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected item")
	}

	// List contains it
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, it := range items {
		if it.Symbol == symbol {
			found = true
		}
	}
	if !found {
		t.Fatal("expected symbol in list")
	}
	t.Logf("List: %d items", len(items))

	// Remove
	removed, err := repo.Remove(ctx, symbol)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}

	// Remove again reports absence
	removed, err = repo.Remove(ctx, symbol)
	if err != nil {
		t.Fatalf("Remove (absent): %v", err)
	}
	if removed {
		t.Fatal("expected no-op removal")
	}

	// Get after removal
	got, err = repo.Get(ctx, symbol)
	if err != nil {
		t.Fatalf("Get after remove: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil after removal")
	}
}

// ---------- PortfolioRepo ----------

func TestPortfolioRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewPortfolioRepo(pool)
	ctx := context.Background()

	const symbol = "TESTHOLD.NS"
	t.Cleanup(func() { repo.Remove(ctx, symbol) })

	// First buy
	h, err := repo.Upsert(ctx, symbol, 10, 100)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if h.Quantity != 10 || h.AvgPrice != 100 {
		t.Fatalf("unexpected holding: %+v", h)
	}
	t.Logf("Holding: id=%d qty=%.2f avg=%.2f", h.ID, h.Quantity, h.AvgPrice)

	// Second buy averages in: 10@100 + 10@200 => 20@150
	h, err = repo.Upsert(ctx, symbol, 10, 200)
	if err != nil {
		t.Fatalf("Upsert (second buy): %v", err)
	}
	if h.Quantity != 20 {
		t.Fatalf("quantity: got %.2f, want 20", h.Quantity)
	}
	if math.Abs(h.AvgPrice-150) > 1e-9 {
		t.Fatalf("avg price: got %.4f, want 150", h.AvgPrice)
	}

	// Get
	got, err := repo.Get(ctx, symbol)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != h.ID {
		t.Fatalf("Get mismatch: %+v", got)
	}

	// List contains it
	holdings, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(holdings) == 0 {
		t.Fatal("expected holdings")
	}
	t.Logf("List: %d holdings", len(holdings))

	// Remove
	removed, err := repo.Remove(ctx, symbol)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
}
