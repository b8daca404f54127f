package domain

import "context"

// UnknownSite is reported when a month's top site cannot be determined
const UnknownSite = "Unknown"

// MonthlyReport aggregates stored articles for one calendar month (UTC)
type MonthlyReport struct {
	Month   string `json:"month"`
	Total   int64  `json:"total"`
	TopSite string `json:"top_site"`
}

// ReportCache stores the computed monthly report between syncs
type ReportCache interface {
	GetMonthly(ctx context.Context) ([]MonthlyReport, bool, error)
	SetMonthly(ctx context.Context, reports []MonthlyReport) error
	Invalidate(ctx context.Context) error
}
