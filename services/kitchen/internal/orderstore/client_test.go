package orderstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientListActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"order-1","table_number":"4","items":{"item-chai":2},"total_amount":98,"payment_method":"cash_on_table","created_at":"2026-08-20T12:00:00Z"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	orders, err := client.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}

	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if orders[0].ID != "order-1" {
		t.Errorf("ID = %q, want %q", orders[0].ID, "order-1")
	}
	if orders[0].Items["item-chai"] != 2 {
		t.Errorf("items[item-chai] = %d, want 2", orders[0].Items["item-chai"])
	}
}

func TestHTTPClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/orders/order-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	if err := client.Complete(context.Background(), "order-1"); err != nil {
		t.Errorf("Complete() error = %v", err)
	}
}

func TestHTTPClientCompleteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	if err := client.Complete(context.Background(), "order-ghost"); err == nil {
		t.Error("Complete() should fail when the order store answers 404")
	}
}
