package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestZoneBoundaries(t *testing.T) {
	assert.Equal(t, ZoneWorking, ZoneFor(day(2026, time.March, 1)))
	assert.Equal(t, ZoneWorking, ZoneFor(day(2026, time.March, 15)))
	assert.Equal(t, ZoneNomad, ZoneFor(day(2026, time.March, 16)))
	assert.Equal(t, ZoneNomad, ZoneFor(day(2026, time.March, 31)))
}

func TestDaysRemainingInZone(t *testing.T) {
	assert.Equal(t, 14, DaysRemainingInZone(day(2026, time.March, 1)))
	assert.Equal(t, 0, DaysRemainingInZone(day(2026, time.March, 15)))
	// March has 31 days, so the 16th has 15 nomad days left.
	assert.Equal(t, 15, DaysRemainingInZone(day(2026, time.March, 16)))
	assert.Equal(t, 0, DaysRemainingInZone(day(2026, time.March, 31)))
	// February 2026 is 28 days.
	assert.Equal(t, 0, DaysRemainingInZone(day(2026, time.February, 28)))
}

func TestDayTypeFor(t *testing.T) {
	// 2026-03-01 is a Sunday, 2026-03-04 a Wednesday.
	assert.Equal(t, DaySunday, DayTypeFor(day(2026, time.March, 1)))
	assert.Equal(t, DayWednesday, DayTypeFor(day(2026, time.March, 4)))
	assert.Equal(t, DayNormal, DayTypeFor(day(2026, time.March, 5)))
}

func TestKeys(t *testing.T) {
	d := day(2026, time.January, 2)
	assert.Equal(t, "2026-01-02", Key(d))
	assert.Equal(t, "2026-01", MonthKey(d))
	// 2026-01-02 falls in ISO week 1 of 2026.
	assert.Equal(t, "2026-01", WeekKey(d))
	// 2027-01-01 is a Friday in ISO week 53 of 2026.
	assert.Equal(t, "2026-53", WeekKey(day(2027, time.January, 1)))
}

func TestParseKeyRoundTrip(t *testing.T) {
	d, err := ParseKey("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", Key(d))

	_, err = ParseKey("not-a-date")
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	days := Range(day(2026, time.March, 1), day(2026, time.March, 3))
	require.Len(t, days, 3)
	assert.Equal(t, "2026-03-01", Key(days[0]))
	assert.Equal(t, "2026-03-03", Key(days[2]))

	assert.Len(t, Range(day(2026, time.March, 1), day(2026, time.March, 1)), 1)

	// Inverted range is empty, not an error.
	assert.Empty(t, Range(day(2026, time.March, 3), day(2026, time.March, 1)))
}

func TestRangeKeysCrossesMonth(t *testing.T) {
	keys := RangeKeys(day(2026, time.January, 30), day(2026, time.February, 2))
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, keys)
}
