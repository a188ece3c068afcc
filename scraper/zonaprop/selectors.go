package zonaprop

// CSS selectors used across the scraper.
// Centralising them makes future updates trivial.
const (
	// One listing card on a search-results page.
	PostingSelector = `div[data-qa='posting PROPERTY']`

	// Card sub-elements.
	RentalPriceSelector = `div[data-qa='POSTING_CARD_PRICE']`
	ExpensesSelector    = `div[data-qa='expensas']`
	AddressSelector     = `div[class*='LocationAddress']`
	LocationSelector    = `h2[data-qa='POSTING_CARD_LOCATION']`
	FeaturesSelector    = `h3[data-qa='POSTING_CARD_FEATURES']`
	FeatureSpanSelector = `span`

	// Site-assigned listing id, the dedup and upsert key.
	postingIDAttr = "data-id"
)

// Pagination URL parts: page 1 is base + extension, page N inserts the
// suffix and number before the extension.
const (
	pageURLSuffix = "-pagina-"
	htmlExtension = ".html"
)
