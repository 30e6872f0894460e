package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundry-sim/laundry-sim/sim"
)

// at returns the instant of day (0 = Monday) at hh:mm.
func at(day, hh, mm int) float64 {
	return DayStart(day) + float64(hh*60+mm)
}

func TestCalendar_Closing_WorkingDay(t *testing.T) {
	c := Default()
	assert.Equal(t, at(1, 17, 0), c.Closing(at(1, 9, 30)))
	assert.Equal(t, at(1, 17, 0), c.Closing(at(1, 3, 0)), "before opening the day's close is still ahead")
	assert.Equal(t, at(1, 18, 0), c.Closing(at(1, 18, 0)), "after close the facility is already shut")
}

func TestCalendar_Closing_ClosedDay_IsNow(t *testing.T) {
	c := Default()
	sat := at(5, 10, 0)
	assert.Equal(t, sat, c.Closing(sat))
}

func TestCalendar_Closing_CappedAtWeekendStart(t *testing.T) {
	// GIVEN a calendar whose Friday close would fall at midnight
	c := Calendar{OpenMinute: 8 * 60, CloseMinute: MinutesPerDay, WorkDays: 5}

	// THEN the close never passes the weekend boundary
	assert.Equal(t, DayStart(5), c.Closing(at(4, 20, 0)))
}

func TestCalendar_NextOpen(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		now  float64
		want float64
	}{
		{"weekday reopens next morning", at(1, 16, 0), at(2, 8, 0)},
		{"friday reopens monday", at(4, 16, 0), at(7, 8, 0)},
		{"saturday reopens monday", at(5, 12, 0), at(7, 8, 0)},
		{"before opening reopens tomorrow after today's close", at(2, 6, 0), at(3, 8, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.NextOpen(tt.now)
			assert.Equal(t, tt.want, got)
			assert.Greater(t, got, c.Closing(tt.now), "reopen must be strictly after close")
		})
	}
}

func TestCalendar_NextOpening(t *testing.T) {
	c := Default()
	assert.Equal(t, at(0, 8, 0), c.NextOpening(0))
	assert.Equal(t, at(0, 10, 0), c.NextOpening(at(0, 10, 0)))
	assert.Equal(t, at(1, 8, 0), c.NextOpening(at(0, 17, 0)))
	assert.Equal(t, at(7, 8, 0), c.NextOpening(at(4, 17, 0)))
	assert.Equal(t, at(7, 8, 0), c.NextOpening(at(6, 23, 0)))
}

func TestCalendar_Plan_FitsBeforeClose(t *testing.T) {
	c := Default()
	split := c.Plan(at(0, 9, 0), 90)
	assert.Equal(t, Split{Before: 90}, split)
}

func TestCalendar_Plan_SplitsOnce(t *testing.T) {
	c := Default()
	// 900 minutes from 16:00 Monday: 60 before close, pause overnight, 840 after
	split := c.Plan(at(0, 16, 0), 900)
	assert.Equal(t, 60.0, split.Before)
	assert.Equal(t, at(1, 8, 0)-at(0, 17, 0), split.Pause)
	assert.Equal(t, 840.0, split.Remainder, "remainder overruns Tuesday's close and is not split again")
}

func TestCalendar_Wait_StraddlesFridayClose(t *testing.T) {
	// GIVEN a 120 minute wait starting Friday 16:00
	c := Default()
	s := sim.NewSimulator(0)
	start := at(4, 16, 0)
	var resumed float64
	s.Spawn("washer", func(p *sim.Process) {
		WaitUntil(p, start)
		c.Wait(p, 120)
		resumed = p.Now()
	})

	// WHEN run
	s.Run()

	// THEN the weekend gap is fully absorbed: close + (monday open - close) + remainder
	closing := at(4, 17, 0)
	monday := at(7, 8, 0)
	assert.Equal(t, closing+(monday-closing)+60, resumed)
	assert.Equal(t, "Mon 09:00 w2", FormatTime(resumed))
}

func TestCalendar_Wait_WithinHours_Uninterrupted(t *testing.T) {
	c := Default()
	s := sim.NewSimulator(0)
	var resumed float64
	s.Spawn("w", func(p *sim.Process) {
		WaitUntil(p, at(2, 10, 0))
		c.Wait(p, 45.5)
		resumed = p.Now()
	})
	s.Run()
	assert.Equal(t, at(2, 10, 45)+0.5, resumed)
}

func TestCalendar_Wait_OnClosedDay_DefersToMonday(t *testing.T) {
	c := Default()
	s := sim.NewSimulator(0)
	var resumed float64
	s.Spawn("w", func(p *sim.Process) {
		WaitUntil(p, at(5, 11, 0))
		c.Wait(p, 30)
		resumed = p.Now()
	})
	s.Run()
	assert.Equal(t, at(7, 8, 30), resumed)
}

func TestCalendar_Wait_ZeroDuration_DoesNotAdvance(t *testing.T) {
	c := Default()
	s := sim.NewSimulator(0)
	var resumed float64 = -1
	s.Spawn("w", func(p *sim.Process) {
		WaitUntil(p, at(5, 11, 0))
		c.Wait(p, 0)
		resumed = p.Now()
	})
	s.Run()
	assert.Equal(t, at(5, 11, 0), resumed)
}

func TestCalendar_IsOpen(t *testing.T) {
	c := Default()
	assert.False(t, c.IsOpen(at(0, 7, 59)))
	assert.True(t, c.IsOpen(at(0, 8, 0)))
	assert.True(t, c.IsOpen(at(4, 16, 59)))
	assert.False(t, c.IsOpen(at(4, 17, 0)))
	assert.False(t, c.IsOpen(at(5, 12, 0)))
	assert.True(t, c.IsOpen(at(7, 12, 0)))
}

func TestCalendar_SpansClosedDay(t *testing.T) {
	c := Default()
	assert.True(t, c.SpansClosedDay(at(4, 17, 0), at(7, 8, 0)))
	assert.False(t, c.SpansClosedDay(at(1, 17, 0), at(2, 8, 0)))
}

func TestCalendar_Validate(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Error(t, Calendar{OpenMinute: 600, CloseMinute: 500, WorkDays: 5}.Validate())
	assert.Error(t, Calendar{OpenMinute: 0, CloseMinute: 500, WorkDays: 0}.Validate())
	assert.Error(t, Calendar{OpenMinute: 0, CloseMinute: 2000, WorkDays: 5}.Validate())
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "Mon 00:00", FormatTime(0))
	assert.Equal(t, "Wed 13:05", FormatTime(at(2, 13, 5)))
	assert.Equal(t, "Fri 16:59", FormatTime(at(4, 16, 59)+0.7))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("12:30")
	require.NoError(t, err)
	assert.Equal(t, 750.0, m)

	_, err = ParseClock("noon")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}
