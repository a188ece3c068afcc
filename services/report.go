package services

import (
	"fmt"
	"sort"
	"strings"

	"cba-rental-scraper/models"
	"cba-rental-scraper/utils"
)

// ReportService computes and prints the post-run summary over the
// listings assembled during one scrape.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(listings []*models.Listing) *models.RunReport {
	report := &models.RunReport{
		ListingsByLocation: make(map[string]int),
		ListingsByRooms:    make(map[int]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var priced []*models.Listing
	for _, l := range listings {
		if l.Latitude != nil && l.Longitude != nil {
			report.Geocoded++
		}
		if l.Location != "" {
			report.ListingsByLocation[l.Location]++
		}
		report.ListingsByRooms[l.Rooms]++
		if l.RentalPriceUSDNormalized > 0 {
			priced = append(priced, l)
		}
	}

	if len(priced) > 0 {
		report.MinRentalUSD = priced[0].RentalPriceUSDNormalized
		report.MaxRentalUSD = priced[0].RentalPriceUSDNormalized
		var total float64
		for _, l := range priced {
			p := l.RentalPriceUSDNormalized
			total += p
			if p < report.MinRentalUSD {
				report.MinRentalUSD = p
			}
			if p > report.MaxRentalUSD {
				report.MaxRentalUSD = p
			}
		}
		report.AverageRentalUSD = round2(total / float64(len(priced)))
		report.MinRentalUSD = round2(report.MinRentalUSD)
		report.MaxRentalUSD = round2(report.MaxRentalUSD)
	}

	return report
}

func (s *ReportService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  SCRAPE RUN SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  New listings this run : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Geocoded              : \033[1m%d\033[0m\n", r.Geocoded)
	fmt.Println()

	fmt.Printf("\033[1;33m  Rental Prices (USD, normalized)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AverageRentalUSD > 0 {
		fmt.Printf("  Average : \033[1;32m$%.2f\033[0m\n", r.AverageRentalUSD)
		fmt.Printf("  Minimum : \033[1;32m$%.2f\033[0m\n", r.MinRentalUSD)
		fmt.Printf("  Maximum : \033[1;32m$%.2f\033[0m\n", r.MaxRentalUSD)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Room Count\033[0m\n")
	fmt.Printf("  %s\n", thin)
	var rooms []int
	for n := range r.ListingsByRooms {
		rooms = append(rooms, n)
	}
	sort.Ints(rooms)
	for _, n := range rooms {
		count := r.ListingsByRooms[n]
		bar := strings.Repeat("█", count)
		fmt.Printf("  %2d amb  %s (%d)\n", n, bar, count)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Neighbourhood\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByLocation) == 0 {
		fmt.Printf("  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		var locs []locCount
		for loc, cnt := range r.ListingsByLocation {
			locs = append(locs, locCount{loc, cnt})
		}
		sort.Slice(locs, func(i, j int) bool {
			return locs[i].count > locs[j].count
		})
		for _, lc := range locs {
			fmt.Printf("  %-34s %d\n", truncate(lc.loc, 32), lc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to at most max runes. Slicing runes, not bytes,
// keeps multibyte neighbourhood names like "Bº San Martín" intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
