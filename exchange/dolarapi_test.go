package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchBuyRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"compra": 1185.0, "venta": 1205.0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	rate, err := c.FetchBuyRate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 1185.0 {
		t.Errorf("rate: got %.2f, want 1185.00", rate)
	}
}

func TestFetchBuyRateBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchBuyRate(context.Background()); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestFetchBuyRateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchBuyRate(context.Background()); err == nil {
		t.Error("expected error on malformed body")
	}
}

func TestFetchBuyRateZeroRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"compra": 0, "venta": 0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.FetchBuyRate(context.Background()); err == nil {
		t.Error("expected error on zero rate")
	}
}
