// Package zonaprop walks the paginated Zonaprop search results and
// turns listing cards into persisted records.
package zonaprop

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cba-rental-scraper/config"
	"cba-rental-scraper/models"
	"cba-rental-scraper/storage"
	"cba-rental-scraper/utils"
)

// Geocoder resolves an address to optional coordinates. Implementations
// must not fail: a miss is two nil pointers.
type Geocoder interface {
	Coordinates(address string) (lat, lng *float64)
}

// DocumentStore is the slice of the store the scraper needs.
type DocumentStore interface {
	Seen(ctx context.Context, zpID string) (bool, error)
	Upsert(ctx context.Context, listing *models.Listing) error
}

// Scraper orchestrates the scraping run: page traversal, per-card
// assembly and persistence.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	retry      *utils.RetryConfig
	httpClient *http.Client

	store    DocumentStore
	export   storage.ExportWriter
	geocoder Geocoder
	rate     float64

	// Ids handled this run, independent of the store. Keeps a page
	// re-fetched by the retry path from exporting the same row twice.
	runSeen *utils.IDSet

	listings []*models.Listing
}

// New creates a ready-to-use Scraper. rate is the run's ARS-per-USD buy
// rate; callers must have validated it before building the Scraper.
func New(cfg *config.Config, logger *utils.Logger, store DocumentStore,
	export storage.ExportWriter, geocoder Geocoder, rate float64) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		store:      store,
		export:     export,
		geocoder:   geocoder,
		rate:       rate,
		runSeen:    utils.NewIDSet(),
	}
}

// Run walks result pages sequentially until the site starts repeating
// the last page or the hard page cap is reached. Every new listing is
// exported and upserted before the next page is requested. The returned
// slice holds the listings assembled this run.
func (s *Scraper) Run(ctx context.Context) ([]*models.Listing, error) {
	page := 1
	var previous []string

	for page < s.cfg.PagesHardLimit {
		pageURL := s.buildPageURL(page)
		s.logger.Info("[zonaprop] Fetching page %d — %s", page, pageURL)

		doc, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			return s.listings, fmt.Errorf("page %d: %w", page, err)
		}

		nodes := doc.Find(PostingSelector)
		current := renderNodes(nodes)

		if equalNodeSets(previous, current) {
			s.logger.Info("[zonaprop] No more new pages. Stopping.")
			break
		}

		nodes.Each(func(_ int, node *goquery.Selection) {
			listing := s.assemble(ctx, node)
			if listing == nil {
				return
			}
			s.persist(ctx, listing)
			s.listings = append(s.listings, listing)
		})

		s.logger.Info("[zonaprop] Page %d done — %d new listings so far",
			page, len(s.listings))

		previous = current
		page++
	}

	s.logger.Info("[zonaprop] Run complete — %d new listings", len(s.listings))
	return s.listings, nil
}

// buildPageURL constructs the URL for a results page. The first page is
// the bare base URL; later pages insert the page suffix before the
// extension.
func (s *Scraper) buildPageURL(page int) string {
	if page == 1 {
		return s.cfg.BaseURL + htmlExtension
	}
	return fmt.Sprintf("%s%s%d%s", s.cfg.BaseURL, pageURLSuffix, page, htmlExtension)
}

// fetchPage downloads and parses one results page, retrying transient
// failures. A page that still fails after all attempts ends the run.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := s.retry.Do("fetch-page", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", s.cfg.UserAgent)
		req.Header.Set("Accept-Language", "es-AR,es;q=0.9")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("get %s: %w", pageURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("get %s: status %d", pageURL, resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("parse %s: %w", pageURL, err)
		}
		return nil
	})

	return doc, err
}

// persist applies both sink effects independently: the export row is
// written whether or not the upsert succeeds, and vice versa. Either
// failure is logged and the run moves on.
func (s *Scraper) persist(ctx context.Context, l *models.Listing) {
	if err := s.export.Append(l); err != nil {
		s.logger.Error("[zonaprop] export row for %s: %v", l.ZPID, err)
	}
	if err := s.store.Upsert(ctx, l); err != nil {
		s.logger.Error("[zonaprop] upsert %s: %v", l.ZPID, err)
	}
}

// renderNodes serialises each card node so consecutive pages can be
// compared structurally.
func renderNodes(nodes *goquery.Selection) []string {
	var rendered []string
	nodes.Each(func(_ int, node *goquery.Selection) {
		html, err := goquery.OuterHtml(node)
		if err != nil {
			html = node.Text()
		}
		rendered = append(rendered, html)
	})
	return rendered
}

func equalNodeSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
