package services

import (
	"fmt"
	"time"

	"sako/internal/models"
	"sako/internal/report"
	"sako/internal/repositories"
)

// ReportService composes the sales snapshot from the repository with
// the pure aggregation functions in the report package.
type ReportService struct {
	saleRepo repositories.SaleRepository
	loc      *time.Location
}

// NewReportService creates a new ReportService. loc is the calendar
// time zone used for month and day extraction; nil means time.Local.
func NewReportService(saleRepo repositories.SaleRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		saleRepo: saleRepo,
		loc:      loc,
	}
}

// MonthlyReport builds the full recap for the month containing
// selected.
func (s *ReportService) MonthlyReport(selected time.Time, groupBy report.GroupMode) (*report.MonthlyReport, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	rep := report.BuildMonthlyReport(sales, selected, report.Options{
		Location: s.loc,
		GroupBy:  groupBy,
	})
	return &rep, nil
}

// SalesInMonth returns only the sales of the selected month, for
// screens that list transactions without the rest of the recap.
func (s *ReportService) SalesInMonth(selected time.Time) ([]models.Sale, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return report.FilterByMonth(sales, selected, s.loc), nil
}

// TopProducts returns only the product ranking of the selected month.
func (s *ReportService) TopProducts(selected time.Time, groupBy report.GroupMode) ([]report.ProductStat, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	filtered := report.FilterByMonth(sales, selected, s.loc)
	return report.RankedProducts(filtered, groupBy), nil
}

// WeeklyRevenue returns only the four weekly revenue buckets of the
// selected month, for the bar chart.
func (s *ReportService) WeeklyRevenue(selected time.Time) ([4]int, error) {
	sales, err := s.snapshot()
	if err != nil {
		return [4]int{}, err
	}
	return report.RevenuePerWeek(sales, selected, s.loc), nil
}

// Location returns the calendar time zone the service aggregates in,
// so callers can construct selected dates consistently.
func (s *ReportService) Location() *time.Location {
	return s.loc
}

func (s *ReportService) snapshot() ([]models.Sale, error) {
	sales, err := s.saleRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sales snapshot: %w", err)
	}
	return sales, nil
}
