// Package geo resolves free-text addresses to coordinates through the
// Nominatim search API.
package geo

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cba-rental-scraper/utils"
)

const userAgent = "cba-rental-scraper"

// Córdoba city bounding box, lon/lat pairs in Nominatim viewbox order.
const cordobaViewbox = "-64.320448,-31.313631,-64.071314,-31.495774"

// Geocoder looks up coordinates for free-text addresses. Lookups are
// bounded to the Córdoba viewbox and throttled so no two requests run
// closer together than the configured pause.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	gate       *utils.Gate
	logger     *utils.Logger
}

// NewGeocoder creates a Geocoder against the given Nominatim endpoint.
func NewGeocoder(baseURL string, pause time.Duration, timeout time.Duration, logger *utils.Logger) *Geocoder {
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		gate:       utils.NewGate(pause),
		logger:     logger,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Coordinates resolves the given address text. It never fails: any
// transport or decode problem, and any not-found result, comes back as
// nil latitude and longitude. Lookups are spaced at least the
// configured pause apart, hit or miss: the gate blocks before the
// request goes out, so no two requests ever start closer together.
func (g *Geocoder) Coordinates(address string) (lat, lng *float64) {
	g.gate.Wait()

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("viewbox", cordobaViewbox)
	query.Set("bounded", "1")

	req, err := http.NewRequest(http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		g.logger.Warn("[geo] build request: %v", err)
		return nil, nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("[geo] lookup %q: %v", address, err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("[geo] lookup %q: status %d", address, resp.StatusCode)
		return nil, nil
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		g.logger.Warn("[geo] decode response for %q: %v", address, err)
		return nil, nil
	}

	if len(results) == 0 {
		g.logger.Debug("[geo] no match for %q", address)
		return nil, nil
	}

	latVal, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lngVal, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		g.logger.Warn("[geo] bad coordinates for %q: %q %q", address, results[0].Lat, results[0].Lon)
		return nil, nil
	}

	return &latVal, &lngVal
}
