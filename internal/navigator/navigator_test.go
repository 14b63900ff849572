package navigator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWeekRoundTrip(t *testing.T) {
	start := date("2025-01-06")

	next := NextWeek(start)
	assert.Equal(t, date("2025-01-13"), next)
	assert.Equal(t, time.Monday, next.Weekday())

	assert.Equal(t, start, PrevWeek(next))
}

func TestPage(t *testing.T) {
	start := date("2025-01-06")

	assert.Equal(t, date("2025-02-03"), NextPage(start))
	assert.Equal(t, date("2024-12-09"), PrevPage(start))
	assert.Equal(t, start, PrevPage(NextPage(start)))

	assert.Equal(t, NextPage(start), Page(start, DirectionNext))
	assert.Equal(t, PrevPage(start), Page(start, DirectionPrev))
	assert.Equal(t, start, Page(start, DirectionNone))
	assert.Equal(t, NextWeek(start), Week(start, DirectionNext))
}

func TestWeekKeepsClock(t *testing.T) {
	loc := time.FixedZone("X", 0)
	d := time.Date(2025, 3, 24, 9, 0, 0, 0, loc)

	assert.Equal(t, 9, NextWeek(d).Hour())
	assert.Equal(t, "2025-03-31", NextWeek(d).Format(domain.DateFormat))
}

func TestPageDays(t *testing.T) {
	days := PageDays(date("2025-03-12"))

	require.Len(t, days, 28)
	assert.Equal(t, date("2025-03-10"), days[0])
	assert.Equal(t, date("2025-04-06"), days[27])
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
	}
}

func TestDirection_IsValid(t *testing.T) {
	assert.True(t, DirectionNext.IsValid())
	assert.True(t, DirectionNone.IsValid())
	assert.False(t, Direction("sideways").IsValid())
}
