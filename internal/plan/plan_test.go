package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thislife/planner/internal/dates"
)

func TestTimetableSelection(t *testing.T) {
	assert.Len(t, Timetable(dates.ZoneWorking, dates.DayNormal), 19)
	assert.Len(t, Timetable(dates.ZoneNomad, dates.DayNormal), 10)
	assert.Len(t, Timetable(dates.ZoneWorking, dates.DaySunday), 4)
	// Sunday wins over zone.
	assert.Equal(t,
		Timetable(dates.ZoneWorking, dates.DaySunday),
		Timetable(dates.ZoneNomad, dates.DaySunday))
}

func TestWednesdayTimetablePerZone(t *testing.T) {
	working := Timetable(dates.ZoneWorking, dates.DayWednesday)
	nomad := Timetable(dates.ZoneNomad, dates.DayWednesday)

	ids := func(tasks []Task) map[string]bool {
		m := map[string]bool{}
		for _, task := range tasks {
			m[task.ID] = true
		}
		return m
	}

	assert.True(t, ids(working)["wed-working-1"])
	assert.True(t, ids(nomad)["wed-nomad-1"])
	assert.True(t, ids(working)["wed-w3"], "working Wednesday keeps the gym block")
	assert.False(t, ids(nomad)["wed-w3"])
}

func TestTimetableForDate(t *testing.T) {
	// 2026-03-04 is a Wednesday within the working zone.
	wed := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	require.Equal(t, Timetable(dates.ZoneWorking, dates.DayWednesday), TimetableForDate(wed))

	// 2026-03-22 is a Sunday in the nomad zone.
	sun := time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC)
	require.Equal(t, sundayTimetable, TimetableForDate(sun))
}

func TestRequiredTasksDropsOptional(t *testing.T) {
	required := RequiredTasks(sundayTimetable)
	assert.Len(t, required, 3)
	for _, task := range required {
		assert.False(t, task.Optional)
	}
}

func TestWorkoutItems(t *testing.T) {
	normal := WorkoutItems(workingTimetable, dates.DayNormal)
	assert.NotEmpty(t, normal)
	for _, task := range normal {
		assert.Equal(t, CategoryFitness, task.Category)
	}

	// On Wednesday only pre-11:00 fitness blocks count.
	wed := WorkoutItems(Timetable(dates.ZoneWorking, dates.DayWednesday), dates.DayWednesday)
	for _, task := range wed {
		hour, ok := startHour(task.Time)
		require.True(t, ok)
		assert.Less(t, hour, 11)
	}
	// Evening yoga (18:00) must be filtered out.
	for _, task := range wed {
		assert.NotEqual(t, "wed-w5", task.ID)
	}
}

func TestDietItems(t *testing.T) {
	for _, task := range DietItems(nomadTimetable) {
		assert.Equal(t, CategoryFood, task.Category)
	}
}

func TestProtocolItems(t *testing.T) {
	assert.Len(t, ProtocolItems(dates.ZoneWorking, dates.DayNormal), 6)
	assert.Len(t, ProtocolItems(dates.ZoneNomad, dates.DayNormal), 5)
	assert.Len(t, ProtocolItems(dates.ZoneWorking, dates.DaySunday), 2)
}

func TestAutoProtocolItems(t *testing.T) {
	assert.Empty(t, AutoProtocolItems(dates.ZoneWorking, dates.DayNormal))
	assert.Equal(t, []string{ProtocolNoPhone}, AutoProtocolItems(dates.ZoneNomad, dates.DayNormal))
	assert.Len(t, AutoProtocolItems(dates.ZoneWorking, dates.DaySunday), 4)
}

func TestStartHour(t *testing.T) {
	hour, ok := startHour("07:30-09:00")
	require.True(t, ok)
	assert.Equal(t, 7, hour)

	_, ok = startHour("Anytime")
	assert.False(t, ok)
}
