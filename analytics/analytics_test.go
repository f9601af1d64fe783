package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/plan"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := dates.ParseKey(key)
	require.NoError(t, err)
	return d
}

// completeDay marks every required task for the date as complete.
func completeDay(logs TimetableLogs, d time.Time) {
	key := dates.Key(d)
	entry := map[string]*model.TimetableLog{}
	for _, task := range plan.RequiredTasks(plan.TimetableForDate(d)) {
		entry[task.ID] = &model.TimetableLog{Date: key, TaskID: task.ID, Status: model.TaskComplete}
	}
	logs[key] = entry
}

func TestDailyRowsInvertedRangeIsEmpty(t *testing.T) {
	rows := DailyRows(day(t, "2026-09-10"), day(t, "2026-09-07"), TimetableLogs{}, ProtocolLogs{}, ConnectionLogs{})
	assert.Empty(t, rows)
}

func TestDailyRowsComputesCompletionAndCounts(t *testing.T) {
	start := day(t, "2026-09-07") // Monday, working zone
	end := day(t, "2026-09-09")

	timetable := TimetableLogs{}
	completeDay(timetable, start)

	// One complete, one skipped on the second day.
	required := plan.RequiredTasks(plan.TimetableForDate(start.AddDate(0, 0, 1)))
	require.NotEmpty(t, required)
	timetable["2026-09-08"] = map[string]*model.TimetableLog{
		required[0].ID: {Date: "2026-09-08", TaskID: required[0].ID, Status: model.TaskComplete},
		required[1].ID: {Date: "2026-09-08", TaskID: required[1].ID, Status: model.TaskSkipped},
	}

	protocol := ProtocolLogs{
		"2026-09-07": {
			plan.ProtocolNoFap:   {Date: "2026-09-07", ItemID: plan.ProtocolNoFap, Status: model.ProtocolPassed},
			plan.ProtocolNoSugar: {Date: "2026-09-07", ItemID: plan.ProtocolNoSugar, Status: model.ProtocolFailed},
			plan.ProtocolNoPhone: {Date: "2026-09-07", ItemID: plan.ProtocolNoPhone, Status: model.ProtocolNA},
		},
	}
	connections := ConnectionLogs{
		"2026-09-08": {Date: "2026-09-08", Count: 3},
	}

	rows := DailyRows(start, end, timetable, protocol, connections)
	require.Len(t, rows, 3)

	assert.Equal(t, "2026-09-07", rows[0].Date)
	assert.Equal(t, dates.ZoneWorking, rows[0].Zone)
	assert.Equal(t, 100, rows[0].CompletionPct)
	assert.Equal(t, 1, rows[0].ProtocolPassed)
	assert.Equal(t, 1, rows[0].ProtocolFailed)

	assert.Equal(t, 1, rows[1].CompletedTasks)
	assert.Equal(t, roundPct(100, len(required)), rows[1].CompletionPct)
	assert.Equal(t, 3, rows[1].Connections)

	// Wednesday has its own template and no logs at all.
	assert.Equal(t, dates.DayWednesday, rows[2].DayType)
	assert.Equal(t, 0, rows[2].CompletionPct)
	assert.Equal(t, 0, rows[2].Connections)
}

func TestCompletionPercentageRoundsHalfUp(t *testing.T) {
	d := day(t, "2026-09-07") // working-zone weekday, 19 required tasks
	required := plan.RequiredTasks(plan.TimetableForDate(d))
	require.Len(t, required, 19)

	entry := map[string]*model.TimetableLog{}
	for _, task := range required[:10] {
		entry[task.ID] = &model.TimetableLog{Date: "2026-09-07", TaskID: task.ID, Status: model.TaskComplete}
	}
	timetable := TimetableLogs{"2026-09-07": entry}

	rows := DailyRows(d, d, timetable, ProtocolLogs{}, ConnectionLogs{})
	require.Len(t, rows, 1)
	assert.Equal(t, 53, rows[0].CompletionPct) // 10/19 = 52.6%, rounded not truncated
}

func TestSummarizeStreaks(t *testing.T) {
	rows := []DayRow{
		{Date: "2026-09-01", CompletionPct: 100},
		{Date: "2026-09-02", CompletionPct: 100},
		{Date: "2026-09-03", CompletionPct: 50},
		{Date: "2026-09-04", CompletionPct: 100},
		{Date: "2026-09-05", CompletionPct: 100},
		{Date: "2026-09-06", CompletionPct: 100},
	}
	s := Summarize(rows)
	assert.Equal(t, 3, s.BestStreak)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 92, s.AverageCompletion) // 550/6 rounds up
	require.NotNil(t, s.BestDay)
	assert.Equal(t, "2026-09-01", s.BestDay.Date)

	// A non-perfect final day resets the current streak only.
	rows[5].CompletionPct = 80
	s = Summarize(rows)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.GreaterOrEqual(t, s.BestStreak, s.CurrentStreak)
}

func TestSummarizeNoPerfectDays(t *testing.T) {
	s := Summarize([]DayRow{
		{Date: "2026-09-01", CompletionPct: 40},
		{Date: "2026-09-02", CompletionPct: 90},
	})
	assert.Equal(t, 0, s.BestStreak)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, "2026-09-02", s.BestDay.Date)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Nil(t, s.BestDay)
	assert.Equal(t, 0, s.AverageCompletion)
}

func TestBestDayTieGoesToFirstInRange(t *testing.T) {
	s := Summarize([]DayRow{
		{Date: "2026-09-01", CompletionPct: 75},
		{Date: "2026-09-02", CompletionPct: 75},
	})
	require.NotNil(t, s.BestDay)
	assert.Equal(t, "2026-09-01", s.BestDay.Date)
}

func TestMonthlySummariesGroupAcrossBoundary(t *testing.T) {
	rows := []DayRow{
		{Date: "2026-09-29", CompletionPct: 100, Connections: 2, ProtocolPassed: 3, ProtocolFailed: 1},
		{Date: "2026-09-30", CompletionPct: 50, Connections: 1},
		{Date: "2026-10-01", CompletionPct: 80, ProtocolPassed: 2},
	}
	months := MonthlySummaries(rows)
	require.Len(t, months, 2)

	assert.Equal(t, "2026-09", months[0].Key)
	assert.Equal(t, 2, months[0].Days)
	assert.Equal(t, 75, months[0].AverageCompletion)
	assert.Equal(t, 3, months[0].Connections)
	assert.InDelta(t, 0.75, months[0].ProtocolPassRate, 1e-9)

	assert.Equal(t, "2026-10", months[1].Key)
	assert.InDelta(t, 1.0, months[1].ProtocolPassRate, 1e-9)
}

func TestWeeklySummariesKeepRangeOrder(t *testing.T) {
	rows := []DayRow{
		{Date: "2026-09-05", CompletionPct: 100}, // Saturday
		{Date: "2026-09-06", CompletionPct: 60},  // Sunday, same ISO week
		{Date: "2026-09-07", CompletionPct: 80},  // Monday, next week
	}
	weeks := WeeklySummaries(rows)
	require.Len(t, weeks, 2)
	assert.Equal(t, 2, weeks[0].Days)
	assert.Equal(t, 80, weeks[0].AverageCompletion)
	assert.Equal(t, 1, weeks[1].Days)
}

func TestRevenueBreakdownKeepsExplicitZeros(t *testing.T) {
	brand := &model.LiveBrand{
		ID:   "b1",
		Name: "Acme",
		RevenueLog: map[string]float64{
			"2026-09-01": 120.5,
			"2026-09-02": 0, // explicit zero, still a row
			"2026-10-01": 40,
			"2026-12-25": 999, // outside range
		},
	}
	out := RevenueBreakdown(day(t, "2026-09-01"), day(t, "2026-10-05"), []*model.LiveBrand{brand})
	require.Len(t, out, 1)

	br := out[0]
	require.Len(t, br.Daily, 3)
	assert.Equal(t, RevenueRow{Date: "2026-09-02", Amount: 0}, br.Daily[1])
	assert.Equal(t, 120.5, br.MonthlyTotals["2026-09"])
	assert.Equal(t, 40.0, br.MonthlyTotals["2026-10"])
	assert.Equal(t, 160.5, br.Total)
}
