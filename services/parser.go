package services

import (
	"regexp"
	"strconv"
	"strings"
)

// digitsRegexp captures every run of consecutive digits.
var digitsRegexp = regexp.MustCompile(`\d+`)

// currencySymbol maps a symbol found in price text to its currency code.
// Order matters: the first matching symbol wins.
type currencySymbol struct {
	symbol string
	code   string
}

var currencySymbols = []currencySymbol{
	{"$", "ARS"},
	{"USD", "USD"},
}

// featureUnit maps a unit substring in a feature span to the listing
// field it populates. Order matters: the first matching unit wins.
type featureUnit struct {
	unit  string
	field string
}

var featureUnits = []featureUnit{
	{"m²", "square_meters_area"},
	{"amb", "rooms"},
	{"dorm", "bedrooms"},
	{"baño", "bathrooms"},
	{"coch", "parking"},
}

// ParseQuantity joins every digit run in the text, in order of
// appearance, and parses the result as an integer. "1.234" yields 1234
// and "2 amb 3" yields 23. Texts with no digits yield 0.
func ParseQuantity(text string) int {
	matches := digitsRegexp.FindAllString(text, -1)
	if len(matches) == 0 {
		return 0
	}
	value, err := strconv.Atoi(strings.Join(matches, ""))
	if err != nil {
		return 0
	}
	return value
}

// ParseCurrency returns the code of the first currency symbol found in
// the text, or empty string when none matches.
func ParseCurrency(text string) string {
	for _, cs := range currencySymbols {
		if strings.Contains(text, cs.symbol) {
			return cs.code
		}
	}
	return ""
}

// FeatureField classifies a feature span by its unit substring and
// returns the listing field it belongs to, or empty string when the
// text names no known unit.
func FeatureField(text string) string {
	for _, fu := range featureUnits {
		if strings.Contains(text, fu.unit) {
			return fu.field
		}
	}
	return ""
}
