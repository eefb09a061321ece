// Package report derives the monthly sales recap from an in-memory
// snapshot of recorded sales. All functions are pure: they never mutate
// their inputs and the same inputs always produce the same output, so
// callers may recompute freely on every state change.
package report

import (
	"time"

	"sako/internal/models"
)

// Options configures a report computation. The zero value groups the
// ranking by product name and uses the local time zone, matching the
// app's historical behavior.
type Options struct {
	// Location is the calendar time zone used for month and day
	// extraction. Nil means time.Local.
	Location *time.Location
	// GroupBy selects the product-ranking grouping key.
	GroupBy GroupMode
}

// MonthlyReport bundles everything the recap screen renders for one
// selected month.
type MonthlyReport struct {
	Year                 int           `json:"year"`
	Month                time.Month    `json:"month"`
	Sales                []models.Sale `json:"sales"`
	TotalRevenue         int           `json:"total_revenue"`
	PreviousMonthRevenue int           `json:"previous_month_revenue"`
	Change               Change        `json:"change"`
	TopProducts          []ProductStat `json:"top_products"`
	WeeklyRevenue        [4]int        `json:"weekly_revenue"`
}

// BuildMonthlyReport composes the aggregation primitives into a single
// report for the month containing selected. It is pure composition: the
// bundled values always equal the independently computed primitives.
func BuildMonthlyReport(allSales []models.Sale, selected time.Time, opts Options) MonthlyReport {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	year, month, _ := selected.In(loc).Date()

	filtered := FilterByMonth(allSales, selected, loc)
	total := TotalRevenue(filtered)
	previous := PreviousMonthRevenue(allSales, selected, loc)

	return MonthlyReport{
		Year:                 year,
		Month:                month,
		Sales:                filtered,
		TotalRevenue:         total,
		PreviousMonthRevenue: previous,
		Change:               RevenueChange(total, previous),
		TopProducts:          RankedProducts(filtered, opts.GroupBy),
		WeeklyRevenue:        RevenuePerWeek(filtered, selected, loc),
	}
}
