package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cba-rental-scraper/utils"
)

func newTestGeocoder(url string) *Geocoder {
	return NewGeocoder(url, 0, 5*time.Second, utils.NewLogger())
}

func TestCoordinatesFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("bounded") != "1" {
			t.Error("expected bounded=1 in query")
		}
		w.Write([]byte(`[{"lat": "-31.4201", "lon": "-64.1888"}]`))
	}))
	defer srv.Close()

	lat, lng := newTestGeocoder(srv.URL).Coordinates("Av. Colón 1500 Centro")
	if lat == nil || lng == nil {
		t.Fatal("expected coordinates, got nil")
	}
	if *lat != -31.4201 || *lng != -64.1888 {
		t.Errorf("got (%f, %f), want (-31.4201, -64.1888)", *lat, *lng)
	}
}

func TestCoordinatesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	lat, lng := newTestGeocoder(srv.URL).Coordinates("nowhere at all")
	if lat != nil || lng != nil {
		t.Error("expected nil coordinates for empty result")
	}
}

func TestCoordinatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	lat, lng := newTestGeocoder(srv.URL).Coordinates("Av. Colón 1500")
	if lat != nil || lng != nil {
		t.Error("expected nil coordinates on server error")
	}
}

func TestCoordinatesSpacedByPause(t *testing.T) {
	pause := 200 * time.Millisecond

	var requestTimes []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestTimes = append(requestTimes, time.Now())
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, pause, 5*time.Second, utils.NewLogger())
	g.Coordinates("Av. Colón 1500")
	g.Coordinates("Bv. San Juan 300")

	if len(requestTimes) != 2 {
		t.Fatalf("expected 2 lookups, got %d", len(requestTimes))
	}
	if gap := requestTimes[1].Sub(requestTimes[0]); gap < pause {
		t.Errorf("second lookup fired %v after the first, before the %v pause", gap, pause)
	}
}

func TestCoordinatesUnreachable(t *testing.T) {
	// Point at a closed port: the lookup must degrade, never error out.
	lat, lng := newTestGeocoder("http://127.0.0.1:1").Coordinates("Av. Colón 1500")
	if lat != nil || lng != nil {
		t.Error("expected nil coordinates when the geocoder is unreachable")
	}
}
