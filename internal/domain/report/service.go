package report

import "context"

// ReportService aggregates the attendance ledger, holidays and approved
// leaves into monthly payroll inputs.
type ReportService interface {
	GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummary, error)
}
