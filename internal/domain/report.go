package domain

import "time"

type ReportRange string

const (
	ReportRangeMonthly ReportRange = "monthly"
	ReportRangeQuarter ReportRange = "quarter"
	ReportRangeYear    ReportRange = "year"
	ReportRangeCustom  ReportRange = "custom"
)

// EmptyReportText is exported when no report has been generated yet
const EmptyReportText = "No report generated."

// Report is a generated date-range summary
type Report struct {
	Range       ReportRange `json:"range"`
	GeneratedAt time.Time   `json:"generatedAt"`
	RangeTotals
}
