package kitchen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tablesideclub/tableside/services/kitchen/internal/orderstore"
)

func startedBoard(t *testing.T, store orderstore.Client) *Board {
	t.Helper()
	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(10 * time.Millisecond)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = board.Stop(ctx)
	})
	return board
}

func TestBoardInitialFetch(t *testing.T) {
	store := NewMockOrderStore()
	store.Put(testOrder("order-1", "4", map[string]int{"item-chai": 2}))

	board := startedBoard(t, store)

	snap := board.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Fatalf("phase = %q, want %q", snap.Phase, PhaseIdle)
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(snap.Orders))
	}
	if snap.Orders[0].Lines[0].Name != "Masala Chai" {
		t.Errorf("line name = %q, want %q", snap.Orders[0].Lines[0].Name, "Masala Chai")
	}
}

func TestBoardUnknownItemName(t *testing.T) {
	store := NewMockOrderStore()
	store.Put(testOrder("order-1", "4", map[string]int{"item-deleted": 1}))

	board := startedBoard(t, store)

	snap := board.Snapshot()
	if len(snap.Orders) != 1 || len(snap.Orders[0].Lines) != 1 {
		t.Fatalf("unexpected snapshot shape: %+v", snap)
	}
	if got := snap.Orders[0].Lines[0].Name; got != UnknownItemName {
		t.Errorf("line name = %q, want %q", got, UnknownItemName)
	}
}

func TestBoardInitialFetchFailure(t *testing.T) {
	store := NewMockOrderStore()
	store.ListActiveFunc = func(ctx context.Context) ([]orderstore.ActiveOrder, error) {
		return nil, errors.New("order service down")
	}

	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(time.Hour)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = board.Stop(ctx)
	}()

	snap := board.Snapshot()
	if snap.Phase != PhaseError {
		t.Errorf("phase = %q, want %q", snap.Phase, PhaseError)
	}
	if snap.LastError == "" {
		t.Error("LastError should be set after a failed initial fetch")
	}
}

func TestBoardKeepsLastKnownGoodOnFailure(t *testing.T) {
	store := NewMockOrderStore()
	store.Put(testOrder("order-1", "4", map[string]int{"item-chai": 1}))

	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(time.Hour)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = board.Stop(ctx)
	}()

	// The store starts failing after the first successful fetch
	store.ListActiveFunc = func(ctx context.Context) ([]orderstore.ActiveOrder, error) {
		return nil, errors.New("order service down")
	}
	board.fetch(context.Background())

	snap := board.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Errorf("phase = %q, want %q (board must not blank out)", snap.Phase, PhaseIdle)
	}
	if len(snap.Orders) != 1 {
		t.Errorf("orders = %d, want 1 (last known good set)", len(snap.Orders))
	}
	if snap.LastError == "" {
		t.Error("LastError should record the failed poll")
	}
}

func TestBoardPollsPeriodically(t *testing.T) {
	store := NewMockOrderStore()
	startedBoard(t, store)

	deadline := time.After(2 * time.Second)
	for store.ListCalls() < 3 {
		select {
		case <-deadline:
			t.Fatalf("polling stalled: %d fetches", store.ListCalls())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBoardPicksUpNewOrders(t *testing.T) {
	store := NewMockOrderStore()
	board := startedBoard(t, store)

	if got := len(board.Snapshot().Orders); got != 0 {
		t.Fatalf("orders = %d, want 0", got)
	}

	store.Put(testOrder("order-1", "4", map[string]int{"item-chai": 1}))

	deadline := time.After(2 * time.Second)
	for len(board.Snapshot().Orders) != 1 {
		select {
		case <-deadline:
			t.Fatal("board never picked up the new order")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBoardMarkReady(t *testing.T) {
	store := NewMockOrderStore()
	store.Put(testOrder("order-1", "4", map[string]int{"item-chai": 1}))
	store.Put(testOrder("order-2", "7", map[string]int{"item-fries": 1}))

	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(time.Hour)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = board.Stop(ctx)
	}()

	if err := board.MarkReady(context.Background(), "order-1"); err != nil {
		t.Fatalf("MarkReady() error = %v", err)
	}

	// The refetch is synchronous: the removal shows without waiting a poll
	snap := board.Snapshot()
	if len(snap.Orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(snap.Orders))
	}
	if snap.Orders[0].ID != "order-2" {
		t.Errorf("remaining order = %q, want %q", snap.Orders[0].ID, "order-2")
	}
}

func TestBoardMarkReadyFailure(t *testing.T) {
	store := NewMockOrderStore()
	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(time.Hour)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = board.Stop(ctx)
	}()

	if err := board.MarkReady(context.Background(), "order-ghost"); err == nil {
		t.Error("MarkReady() should fail for an unknown order")
	}
}

func TestBoardStop(t *testing.T) {
	store := NewMockOrderStore()
	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(10 * time.Millisecond)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := board.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	calls := store.ListCalls()
	time.Sleep(50 * time.Millisecond)
	if store.ListCalls() != calls {
		t.Error("board kept polling after Stop()")
	}
}

func TestBoardSubscribe(t *testing.T) {
	store := NewMockOrderStore()
	board := NewBoard(store, warmedNames(), nil)
	board.SetPollInterval(time.Hour)
	if err := board.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = board.Stop(ctx)
	}()

	events := board.Subscribe("display-1")
	defer board.Unsubscribe("display-1")

	store.Put(testOrder("order-1", "4", map[string]int{"item-chai": 1}))
	board.fetch(context.Background())

	select {
	case view := <-events:
		if len(view.Orders) != 1 {
			t.Errorf("broadcast orders = %d, want 1", len(view.Orders))
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received after fetch")
	}
}
