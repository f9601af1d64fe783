package client

import (
	"context"
	"time"

	"github.com/thislife/planner/analytics"
)

// Report is the full analytics rollup for a date range.
type Report struct {
	Summary analytics.Summary         `json:"summary"`
	Weekly  []analytics.PeriodSummary `json:"weekly"`
	Monthly []analytics.PeriodSummary `json:"monthly"`
	Revenue []analytics.BrandRevenue  `json:"revenue"`
}

// Report fetches the day logs and live brands for [start, end] through the
// range hooks and aggregates them. Aggregation is recomputed from the stored
// logs on every call; nothing derived is persisted.
func (c *Client) Report(ctx context.Context, start, end time.Time) (*Report, error) {
	logs := c.DayLogs()
	timetable, err := logs.TimetableRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	protocol, err := logs.ProtocolRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	connections, err := logs.ConnectionsRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	live, err := c.Brands().Live(ctx)
	if err != nil {
		return nil, err
	}

	rows := analytics.DailyRows(start, end, timetable, protocol, connections)
	return &Report{
		Summary: analytics.Summarize(rows),
		Weekly:  analytics.WeeklySummaries(rows),
		Monthly: analytics.MonthlySummaries(rows),
		Revenue: analytics.RevenueBreakdown(start, end, live),
	}, nil
}
