// Package analytics computes derived rollups over persisted day logs:
// per-day completion rows, streaks, weekly/monthly summaries, and brand
// revenue breakdowns. Everything here is pure; callers fetch the log maps
// (via the client range hooks) and pass them in.
package analytics

import (
	"time"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/plan"
)

// DayRow is the aggregate for one calendar day in a range.
type DayRow struct {
	Date           string        `json:"date"`
	Zone           dates.Zone    `json:"zone"`
	DayType        dates.DayType `json:"dayType"`
	RequiredTasks  int           `json:"requiredTasks"`
	CompletedTasks int           `json:"completedTasks"`
	CompletionPct  int           `json:"completionPct"`
	ProtocolPassed int           `json:"protocolPassed"`
	ProtocolFailed int           `json:"protocolFailed"`
	Connections    int           `json:"connections"`
}

// TimetableLogs maps date key -> task id -> log entry.
type TimetableLogs map[string]map[string]*model.TimetableLog

// ProtocolLogs maps date key -> item id -> log entry.
type ProtocolLogs map[string]map[string]*model.ProtocolLog

// ConnectionLogs maps date key -> connection log entry.
type ConnectionLogs map[string]*model.ConnectionLog

// DailyRows builds one row per day in [start, end]. An inverted range
// yields an empty slice. Days without any logs still get a row with zero
// counts so streak and average math sees the gap.
func DailyRows(start, end time.Time, timetable TimetableLogs, protocol ProtocolLogs, connections ConnectionLogs) []DayRow {
	days := dates.Range(start, end)
	rows := make([]DayRow, 0, len(days))
	for _, day := range days {
		key := dates.Key(day)
		zone := dates.ZoneFor(day)
		dayType := dates.DayTypeFor(day)

		required := plan.RequiredTasks(plan.Timetable(zone, dayType))
		completed := 0
		for _, task := range required {
			if log, ok := timetable[key][task.ID]; ok && log.Status == model.TaskComplete {
				completed++
			}
		}
		pct := 0
		if len(required) > 0 {
			pct = roundPct(completed*100, len(required))
		}

		passed, failed := 0, 0
		for _, log := range protocol[key] {
			switch log.Status {
			case model.ProtocolPassed:
				passed++
			case model.ProtocolFailed:
				failed++
			}
		}

		conns := 0
		if log, ok := connections[key]; ok {
			conns = log.Count
		}

		rows = append(rows, DayRow{
			Date:           key,
			Zone:           zone,
			DayType:        dayType,
			RequiredTasks:  len(required),
			CompletedTasks: completed,
			CompletionPct:  pct,
			ProtocolPassed: passed,
			ProtocolFailed: failed,
			Connections:    conns,
		})
	}
	return rows
}

// roundPct divides with half-up rounding so percentages match the stored
// presentation values rather than truncating.
func roundPct(sum, n int) int {
	return (sum + n/2) / n
}

// Summary is the rollup over a full range of day rows.
type Summary struct {
	Days              []DayRow `json:"days"`
	AverageCompletion int      `json:"averageCompletion"`
	BestDay           *DayRow  `json:"bestDay,omitempty"`
	BestStreak        int      `json:"bestStreak"`
	CurrentStreak     int      `json:"currentStreak"`
	TotalConnections  int      `json:"totalConnections"`
}

// Summarize rolls a range of day rows into a Summary. The best day is the
// highest completion percentage, ties going to the earliest day in range.
// Streaks count consecutive 100%-completion days: the best streak scans the
// whole range forward, the current streak scans backward from the range end
// and stops at the first day below 100%.
func Summarize(rows []DayRow) Summary {
	s := Summary{Days: rows}
	if len(rows) == 0 {
		return s
	}

	total := 0
	bestIdx := 0
	run := 0
	for i, row := range rows {
		total += row.CompletionPct
		s.TotalConnections += row.Connections
		if row.CompletionPct > rows[bestIdx].CompletionPct {
			bestIdx = i
		}
		if row.CompletionPct == 100 {
			run++
			if run > s.BestStreak {
				s.BestStreak = run
			}
		} else {
			run = 0
		}
	}
	s.AverageCompletion = roundPct(total, len(rows))
	best := rows[bestIdx]
	s.BestDay = &best

	for i := len(rows) - 1; i >= 0 && rows[i].CompletionPct == 100; i-- {
		s.CurrentStreak++
	}
	return s
}

// PeriodSummary is the rollup for one calendar week or month.
type PeriodSummary struct {
	Key               string  `json:"key"`
	Days              int     `json:"days"`
	AverageCompletion int     `json:"averageCompletion"`
	Connections       int     `json:"connections"`
	ProtocolPassRate  float64 `json:"protocolPassRate"`
}

// WeeklySummaries groups day rows by calendar week, in range order.
func WeeklySummaries(rows []DayRow) []PeriodSummary {
	return periodSummaries(rows, func(t time.Time) string { return dates.WeekKey(t) })
}

// MonthlySummaries groups day rows by calendar month, in range order.
func MonthlySummaries(rows []DayRow) []PeriodSummary {
	return periodSummaries(rows, func(t time.Time) string { return dates.MonthKey(t) })
}

func periodSummaries(rows []DayRow, keyFor func(time.Time) string) []PeriodSummary {
	var out []PeriodSummary
	index := map[string]int{}
	completion := map[string]int{}
	passed := map[string]int{}
	decided := map[string]int{}

	for _, row := range rows {
		day, err := dates.ParseKey(row.Date)
		if err != nil {
			continue
		}
		key := keyFor(day)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, PeriodSummary{Key: key})
		}
		out[i].Days++
		out[i].Connections += row.Connections
		completion[key] += row.CompletionPct
		passed[key] += row.ProtocolPassed
		decided[key] += row.ProtocolPassed + row.ProtocolFailed
	}

	for i := range out {
		key := out[i].Key
		out[i].AverageCompletion = roundPct(completion[key], out[i].Days)
		if decided[key] > 0 {
			out[i].ProtocolPassRate = float64(passed[key]) / float64(decided[key])
		}
	}
	return out
}

// RevenueRow is one day's revenue for one brand. Present rows with a zero
// amount are real entries; days without an entry produce no row at all.
type RevenueRow struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// BrandRevenue is the revenue breakdown for a single live brand over a range.
type BrandRevenue struct {
	BrandID       string             `json:"brandId"`
	Name          string             `json:"name"`
	Daily         []RevenueRow       `json:"daily"`
	MonthlyTotals map[string]float64 `json:"monthlyTotals"`
	Total         float64            `json:"total"`
}

// RevenueBreakdown builds per-brand daily revenue rows and monthly totals
// for the given range. Only dates with an explicit entry appear in Daily.
func RevenueBreakdown(start, end time.Time, brands []*model.LiveBrand) []BrandRevenue {
	keys := dates.RangeKeys(start, end)
	out := make([]BrandRevenue, 0, len(brands))
	for _, brand := range brands {
		br := BrandRevenue{
			BrandID:       brand.ID,
			Name:          brand.Name,
			MonthlyTotals: map[string]float64{},
		}
		for _, key := range keys {
			amount, ok := brand.RevenueLog[key]
			if !ok {
				continue
			}
			br.Daily = append(br.Daily, RevenueRow{Date: key, Amount: amount})
			br.MonthlyTotals[key[:7]] += amount
			br.Total += amount
		}
		out = append(out, br)
	}
	return out
}
