package ordering

import (
	"context"
	"testing"
	"time"
)

func newSessionFactory() func() *Checkout {
	return func() *Checkout {
		return newTestCheckout(NewMockSubmitter())
	}
}

func TestSessionStoreEnsureCreatesOnce(t *testing.T) {
	store := NewSessionStore(time.Hour)

	first := store.Ensure("4", newSessionFactory())
	second := store.Ensure("4", newSessionFactory())

	if first != second {
		t.Error("Ensure() should return the same live session for a table")
	}
}

func TestSessionStoreSeparateTables(t *testing.T) {
	store := NewSessionStore(time.Hour)

	a := store.Ensure("4", newSessionFactory())
	b := store.Ensure("7", newSessionFactory())

	if a == b {
		t.Error("different tables must get different sessions")
	}

	_ = a.Checkout.AddItem("item-chai")
	if b.Checkout.Snapshot().TotalItemCount != 0 {
		t.Error("cart contents leaked between tables")
	}
}

func TestSessionStoreReplacesSettledSession(t *testing.T) {
	store := NewSessionStore(time.Hour)

	first := store.Ensure("4", newSessionFactory())
	_ = first.Checkout.AddItem("item-chai")
	_ = first.Checkout.Begin()
	_ = first.Checkout.SelectMethod("cash_on_table")
	if _, err := first.Checkout.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	second := store.Ensure("4", newSessionFactory())
	if first == second {
		t.Error("a settled session should be replaced on the next table entry")
	}
	if got := second.Checkout.State(); got != StateCartReview {
		t.Errorf("fresh session state = %q, want %q", got, StateCartReview)
	}
}

func TestSessionStoreGetExpired(t *testing.T) {
	store := NewSessionStore(-time.Minute)

	store.Ensure("4", newSessionFactory())
	if session := store.Get("4"); session != nil {
		t.Error("Get() should not return an expired session")
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore(time.Hour)

	store.Ensure("4", newSessionFactory())
	store.Delete("4")

	if session := store.Get("4"); session != nil {
		t.Error("Get() should return nil after Delete()")
	}
}
