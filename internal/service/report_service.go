package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/util"
)

// ReportFilePrefix starts every downloaded report file name
const ReportFilePrefix = "pfd-report-"

// ReportService generates date-range reports and keeps the latest one
type ReportService struct {
	store *store.Store
	clock domain.Clock

	mu   sync.RWMutex
	last *domain.Report
}

// NewReportService creates a new ReportService
func NewReportService(st *store.Store, clock domain.Clock) *ReportService {
	return &ReportService{store: st, clock: clock}
}

// ResolveRange returns the inclusive dates covered by a range preset. from and
// to are only read for ReportRangeCustom.
func ResolveRange(r domain.ReportRange, today civil.Date, from, to string) (civil.Date, civil.Date, error) {
	switch r {
	case domain.ReportRangeMonthly, "":
		start, end := util.MonthBounds(today.Year, today.Month)
		return start, end, nil
	case domain.ReportRangeQuarter:
		start, end := util.QuarterBounds(today)
		return start, end, nil
	case domain.ReportRangeYear:
		start, end := util.YearBounds(today.Year)
		return start, end, nil
	case domain.ReportRangeCustom:
		start, err := domain.ParseDate(strings.TrimSpace(from))
		if err != nil {
			return civil.Date{}, civil.Date{}, err
		}
		end, err := domain.ParseDate(strings.TrimSpace(to))
		if err != nil {
			return civil.Date{}, civil.Date{}, err
		}
		if start.After(end) {
			return civil.Date{}, civil.Date{}, domain.ErrInvalidRange
		}
		return start, end, nil
	}
	return civil.Date{}, civil.Date{}, domain.ErrInvalidRange
}

// GenerateReport computes totals for the requested range and remembers the
// result as the latest report.
func (s *ReportService) GenerateReport(r domain.ReportRange, from, to string) (*domain.Report, error) {
	if r == "" {
		r = domain.ReportRangeMonthly
	}
	start, end, err := ResolveRange(r, domain.Today(s.clock), from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Range:       r,
		GeneratedAt: s.clock.Now().UTC(),
		RangeTotals: CalculateRangeTotals(s.store.Snapshot(), start, end),
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	return report, nil
}

// GetLatestReport returns the last generated report, or nil
func (s *ReportService) GetLatestReport() *domain.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// RenderText renders the latest report as plain text
func (s *ReportService) RenderText() string {
	return RenderReport(s.GetLatestReport())
}

// RenderReport renders a report as plain text. A nil report renders the
// placeholder text.
func RenderReport(r *domain.Report) string {
	if r == nil {
		return domain.EmptyReportText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Report range %s to %s\n", r.From, r.To)
	fmt.Fprintf(&b, "Total Income\n%s\n", domain.FormatMoney(r.Income))
	fmt.Fprintf(&b, "Total Expense\n%s\n", domain.FormatMoney(r.Expense))
	fmt.Fprintf(&b, "Net\n%s\n", domain.FormatMoney(r.Net))
	return b.String()
}

// ReportFilename returns the download name for a report rendered at t
func ReportFilename(t time.Time) string {
	return ReportFilePrefix + t.UTC().Format(time.RFC3339) + ".txt"
}

// Filename returns the download name for a report rendered now
func (s *ReportService) Filename() string {
	return ReportFilename(s.clock.Now())
}
