package services

import "testing"

func TestNormalizeUSDPassthrough(t *testing.T) {
	for _, rate := range []float64{1, 350, 1000, 1234.56} {
		if got := NormalizeUSD(100, "USD", rate); got != 100 {
			t.Errorf("NormalizeUSD(100, USD, %.2f) = %.2f; want 100", rate, got)
		}
	}
}

func TestNormalizeUSDDividesByRate(t *testing.T) {
	tests := []struct {
		quantity float64
		currency string
		rate     float64
		want     float64
	}{
		{100000, "ARS", 1000, 100},
		{50000, "ARS", 500, 100},
		{0, "ARS", 1000, 0},
	}

	for _, tt := range tests {
		got := NormalizeUSD(tt.quantity, tt.currency, tt.rate)
		if got != tt.want {
			t.Errorf("NormalizeUSD(%.0f, %s, %.0f) = %.2f; want %.2f",
				tt.quantity, tt.currency, tt.rate, got, tt.want)
		}
	}
}
