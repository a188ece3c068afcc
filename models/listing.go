package models

import (
	"strconv"
	"time"
)

// Listing is one rental property as persisted in MongoDB, keyed by ZPID.
// Feature counts default to 0 when the markup does not mention them;
// coordinates stay nil when geocoding finds nothing.
type Listing struct {
	ZPID      string    `bson:"zp_id" json:"zp_id"`
	ScrapedAt time.Time `bson:"scraped_at" json:"scraped_at"`

	RentalPriceOriginal        float64 `bson:"rental_price_original" json:"rental_price_original"`
	RentalCurrencyOriginal     string  `bson:"rental_currency_original" json:"rental_currency_original"`
	RentalPriceUSDNormalized   float64 `bson:"rental_price_usd_normalized" json:"rental_price_usd_normalized"`
	ExpensesPriceOriginal      float64 `bson:"expenses_price_original" json:"expenses_price_original"`
	ExpensesCurrencyOriginal   string  `bson:"expenses_currency_original" json:"expenses_currency_original"`
	ExpensesPriceUSDNormalized float64 `bson:"expenses_price_usd_normalized" json:"expenses_price_usd_normalized"`

	Address  string `bson:"address" json:"address"`
	Location string `bson:"location" json:"location"`

	SquareMetersArea int `bson:"square_meters_area" json:"square_meters_area"`
	Rooms            int `bson:"rooms" json:"rooms"`
	Bedrooms         int `bson:"bedrooms" json:"bedrooms"`
	Bathrooms        int `bson:"bathrooms" json:"bathrooms"`
	Parking          int `bson:"parking" json:"parking"`

	Latitude  *float64 `bson:"latitude" json:"latitude"`
	Longitude *float64 `bson:"longitude" json:"longitude"`

	// Exchange rate the run used, kept on every document for traceability.
	USDBuyPrice float64 `bson:"usd_buy_price" json:"usd_buy_price"`
}

// SetFeature assigns a classified feature count to its field. Unknown
// field names are ignored, matching the silent-drop policy for spans
// that classify to nothing.
func (l *Listing) SetFeature(field string, value int) {
	switch field {
	case "square_meters_area":
		l.SquareMetersArea = value
	case "rooms":
		l.Rooms = value
	case "bedrooms":
		l.Bedrooms = value
	case "bathrooms":
		l.Bathrooms = value
	case "parking":
		l.Parking = value
	}
}

// CSVColumns is the fixed export header. CSVRow must stay in this order.
var CSVColumns = []string{
	"zp_id",
	"scraped_at",
	"rental_price_original",
	"rental_currency_original",
	"rental_price_usd_normalized",
	"expenses_price_original",
	"expenses_currency_original",
	"expenses_price_usd_normalized",
	"address",
	"location",
	"square_meters_area",
	"rooms",
	"bedrooms",
	"bathrooms",
	"parking",
	"latitude",
	"longitude",
	"usd_buy_price",
}

// CSVRow stringifies the listing in CSVColumns order. Nil coordinates
// become empty strings.
func (l *Listing) CSVRow() []string {
	return []string{
		l.ZPID,
		l.ScrapedAt.Format(time.RFC3339),
		formatFloat(l.RentalPriceOriginal),
		l.RentalCurrencyOriginal,
		formatFloat(l.RentalPriceUSDNormalized),
		formatFloat(l.ExpensesPriceOriginal),
		l.ExpensesCurrencyOriginal,
		formatFloat(l.ExpensesPriceUSDNormalized),
		l.Address,
		l.Location,
		strconv.Itoa(l.SquareMetersArea),
		strconv.Itoa(l.Rooms),
		strconv.Itoa(l.Bedrooms),
		strconv.Itoa(l.Bathrooms),
		strconv.Itoa(l.Parking),
		formatOptFloat(l.Latitude),
		formatOptFloat(l.Longitude),
		formatFloat(l.USDBuyPrice),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// RunReport holds the summary computed over one scrape run.
type RunReport struct {
	TotalListings int
	Geocoded      int

	AverageRentalUSD float64
	MinRentalUSD     float64
	MaxRentalUSD     float64

	ListingsByLocation map[string]int
	ListingsByRooms    map[int]int
}
