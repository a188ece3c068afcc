package services

// NormalizeUSD converts an original-currency amount to USD. USD amounts
// pass through unchanged; anything else is divided by the run's
// local-per-USD rate. Callers guarantee a positive rate — the run
// aborts at startup before a zero or missing rate can reach here.
func NormalizeUSD(quantity float64, currency string, localPerUSD float64) float64 {
	if currency == "USD" {
		return quantity
	}
	return quantity / localPerUSD
}
