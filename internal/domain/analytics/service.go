package analytics

import "context"

// AnalyticsService fetches employees and their attendance and derives the
// dashboard views from them.
type AnalyticsService interface {
	// GetGlobalAnalytics aggregates attendance across all employees
	GetGlobalAnalytics(ctx context.Context) (GlobalAnalyticsResponse, error)

	// GenerateMonthlyReport builds the report for one calendar month
	GenerateMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// GetTimeline merges attendance records newest first
	GetTimeline(ctx context.Context, req TimelineRequest) (TimelineResponse, error)
}
