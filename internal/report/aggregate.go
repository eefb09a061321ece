package report

import (
	"fmt"
	"sort"
	"time"

	"sako/internal/models"
)

// maxRankedProducts caps the ranking at the top entries shown by the
// recap screen and its donut chart.
const maxRankedProducts = 10

// GroupMode selects the key used to group line items when ranking
// products.
type GroupMode int

const (
	// GroupByName merges line items whose products share a display
	// name, even if they are distinct product records. This mirrors the
	// app's historical behavior.
	GroupByName GroupMode = iota
	// GroupByProduct groups line items by product ID, keeping
	// same-named products separate.
	GroupByProduct
)

// ParseGroupMode converts the query-parameter form ("name" or
// "product") into a GroupMode.
func ParseGroupMode(s string) (GroupMode, error) {
	switch s {
	case "", "name":
		return GroupByName, nil
	case "product":
		return GroupByProduct, nil
	default:
		return GroupByName, fmt.Errorf("invalid group mode: %s", s)
	}
}

// ProductStat is one entry of the product ranking: aggregated revenue
// and quantity for a single product (or product name).
type ProductStat struct {
	Name     string `json:"name"`
	Revenue  int    `json:"revenue"`
	Quantity int    `json:"quantity"`
}

// Direction indicates how revenue moved relative to the previous month.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionNone     Direction = "none"
)

// Change is the month-over-month revenue delta. Amount is always
// non-negative; Direction carries the sign.
type Change struct {
	Direction Direction `json:"direction"`
	Amount    int       `json:"amount"`
}

// FilterByMonth returns the sales whose date falls in the same calendar
// year and month as ref, preserving relative order. The comparison uses
// calendar month equality in loc, not a 30-day rolling window. The
// input slice is never mutated.
func FilterByMonth(sales []models.Sale, ref time.Time, loc *time.Location) []models.Sale {
	if loc == nil {
		loc = time.Local
	}
	refYear, refMonth, _ := ref.In(loc).Date()

	var filtered []models.Sale
	for _, sale := range sales {
		year, month, _ := sale.Date.In(loc).Date()
		if year == refYear && month == refMonth {
			filtered = append(filtered, sale)
		}
	}
	return filtered
}

// TotalRevenue sums the total price of the given (already filtered)
// sales.
func TotalRevenue(sales []models.Sale) int {
	total := 0
	for _, sale := range sales {
		total += sale.TotalPrice()
	}
	return total
}

// PreviousMonthRevenue computes the revenue of the calendar month
// preceding selected's month. Subtracting a month from January yields
// December of the prior year. The subtraction is anchored at day 1 of
// the selected month so date normalization cannot skid across a month
// boundary (Mar 31 minus one month must land in February).
func PreviousMonthRevenue(allSales []models.Sale, selected time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	year, month, _ := selected.In(loc).Date()
	previous := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
	return TotalRevenue(FilterByMonth(allSales, previous, loc))
}

// RevenueChange compares current against previous revenue and returns
// the direction of the move plus its absolute magnitude.
func RevenueChange(current, previous int) Change {
	switch {
	case current > previous:
		return Change{Direction: DirectionIncrease, Amount: current - previous}
	case current < previous:
		return Change{Direction: DirectionDecrease, Amount: previous - current}
	default:
		return Change{Direction: DirectionNone, Amount: 0}
	}
}

// RankedProducts groups all line items across the given sales by the
// key selected with groupBy, accumulates revenue and quantity per
// group, and returns at most the top 10 entries sorted descending by
// revenue. Ties keep first-encounter order (the order in which a group
// first appears while walking the sales), via a stable sort.
func RankedProducts(sales []models.Sale, groupBy GroupMode) []ProductStat {
	stats := make(map[string]*ProductStat)
	var order []string

	for _, sale := range sales {
		for _, item := range sale.Items {
			key := item.ProductName
			if groupBy == GroupByProduct {
				key = item.ProductID
			}
			stat, ok := stats[key]
			if !ok {
				stat = &ProductStat{Name: item.ProductName}
				stats[key] = stat
				order = append(order, key)
			}
			stat.Revenue += item.PriceAtSale * item.Quantity
			stat.Quantity += item.Quantity
		}
	}

	ranked := make([]ProductStat, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, *stats[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > maxRankedProducts {
		ranked = ranked[:maxRankedProducts]
	}
	return ranked
}

// RevenuePerWeek buckets the month's sales into four fixed day-of-month
// bands (1-7, 8-14, 15-21, 22-end) and sums each sale's total price
// into its band. The last band absorbs days 29-31 regardless of month
// length. This is a deliberate charting simplification, not ISO weeks.
func RevenuePerWeek(sales []models.Sale, monthOf time.Time, loc *time.Location) [4]int {
	if loc == nil {
		loc = time.Local
	}
	var weekly [4]int
	for _, sale := range FilterByMonth(sales, monthOf, loc) {
		day := sale.Date.In(loc).Day()
		switch {
		case day <= 7:
			weekly[0] += sale.TotalPrice()
		case day <= 14:
			weekly[1] += sale.TotalPrice()
		case day <= 21:
			weekly[2] += sale.TotalPrice()
		default:
			weekly[3] += sale.TotalPrice()
		}
	}
	return weekly
}
