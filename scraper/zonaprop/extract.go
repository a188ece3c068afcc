package zonaprop

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cba-rental-scraper/models"
	"cba-rental-scraper/services"
)

// extractText returns the text of the first element under node
// matching selector, or empty string when nothing matches. Absence of
// a markup element is a normal outcome, never an error. The text is
// whitespace-trimmed: goquery's Text keeps the markup's indentation
// and newlines, which would otherwise leak into the stored
// address/location fields and the geocoder query.
func extractText(node *goquery.Selection, selector string) string {
	el := node.Find(selector).First()
	if el.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// extractFeatureSpans returns the text of every span inside the card's
// feature block, in document order.
func extractFeatureSpans(node *goquery.Selection) []string {
	block := node.Find(FeaturesSelector).First()
	if block.Length() == 0 {
		return nil
	}

	var spans []string
	block.Find(FeatureSpanSelector).Each(func(_ int, span *goquery.Selection) {
		spans = append(spans, strings.TrimSpace(span.Text()))
	})
	return spans
}

// assemble runs the per-listing pipeline over one card node. It returns
// nil for cards without an id and for ids already known, either from
// the store or from earlier in this run. The dedup check runs before
// any extraction so known listings cost no geocoder call.
func (s *Scraper) assemble(ctx context.Context, node *goquery.Selection) *models.Listing {
	zpID, ok := node.Attr(postingIDAttr)
	if !ok || zpID == "" {
		s.logger.Warn("[zonaprop] card without %s attribute, skipping", postingIDAttr)
		return nil
	}

	if !s.runSeen.Add(zpID) {
		return nil
	}

	known, err := s.store.Seen(ctx, zpID)
	if err != nil {
		// Treat a failed lookup as "not seen": the upsert is idempotent,
		// so the worst case is redundant work, not a duplicate record.
		s.logger.Warn("[zonaprop] dedup lookup for %s failed: %v", zpID, err)
	}
	if known {
		return nil
	}

	l := &models.Listing{
		ZPID:        zpID,
		ScrapedAt:   time.Now(),
		USDBuyPrice: s.rate,
	}

	rentalText := extractText(node, RentalPriceSelector)
	l.RentalPriceOriginal = float64(services.ParseQuantity(rentalText))
	l.RentalCurrencyOriginal = services.ParseCurrency(rentalText)
	l.RentalPriceUSDNormalized = services.NormalizeUSD(
		l.RentalPriceOriginal, l.RentalCurrencyOriginal, s.rate)

	expensesText := extractText(node, ExpensesSelector)
	l.ExpensesPriceOriginal = float64(services.ParseQuantity(expensesText))
	l.ExpensesCurrencyOriginal = services.ParseCurrency(expensesText)
	l.ExpensesPriceUSDNormalized = services.NormalizeUSD(
		l.ExpensesPriceOriginal, l.ExpensesCurrencyOriginal, s.rate)

	l.Address = extractText(node, AddressSelector)
	l.Location = extractText(node, LocationSelector)

	for _, span := range extractFeatureSpans(node) {
		if field := services.FeatureField(span); field != "" {
			l.SetFeature(field, services.ParseQuantity(span))
		}
	}

	// Geocoding runs last and is best-effort: an empty address still
	// gets a lookup, and a miss leaves the coordinates nil.
	l.Latitude, l.Longitude = s.geocoder.Coordinates(l.Address + " " + l.Location)

	return l
}
