// Package calendar implements the facility's business hours: a fixed daily
// opening window on working days, closed days at the end of each week, and a
// wait primitive that pauses busy time across closing boundaries.
//
// Simulated time is measured in minutes; minute 0 is Monday 00:00.
package calendar

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/laundry-sim/laundry-sim/sim"
)

const (
	// MinutesPerDay is the length of a simulated day.
	MinutesPerDay = 24 * 60
	// DaysPerWeek is the length of a simulated week.
	DaysPerWeek = 7
	// MinutesPerWeek is the length of a simulated week in minutes.
	MinutesPerWeek = DaysPerWeek * MinutesPerDay
)

var dayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Calendar is a stateless business-hours policy. Days 0..WorkDays-1 of each
// week are working days open from OpenMinute to CloseMinute; the rest of the
// week is closed.
type Calendar struct {
	OpenMinute  float64 // minute of day the facility opens (480 = 08:00)
	CloseMinute float64 // minute of day the facility closes (1020 = 17:00)
	WorkDays    int     // working days at the start of each week
}

// Default returns the facility's standard hours: Monday to Friday, 08:00–17:00.
func Default() Calendar {
	return Calendar{OpenMinute: 8 * 60, CloseMinute: 17 * 60, WorkDays: 5}
}

// Validate checks that the calendar has at least one working day and a
// non-empty opening window inside the day.
func (c Calendar) Validate() error {
	if c.WorkDays < 1 || c.WorkDays > DaysPerWeek {
		return fmt.Errorf("work days must be in [1, %d], got %d", DaysPerWeek, c.WorkDays)
	}
	if c.OpenMinute < 0 || c.CloseMinute > MinutesPerDay || c.OpenMinute >= c.CloseMinute {
		return fmt.Errorf("opening window [%v, %v) must be non-empty and within a day", c.OpenMinute, c.CloseMinute)
	}
	return nil
}

// Day returns the zero-based day index containing t.
func Day(t float64) int {
	return int(math.Floor(t / MinutesPerDay))
}

// DayStart returns the instant of midnight on day.
func DayStart(day int) float64 {
	return float64(day) * MinutesPerDay
}

// DayOfWeek returns 0 (Monday) to 6 (Sunday) for the day containing t.
func DayOfWeek(t float64) int {
	return weekday(Day(t))
}

func weekday(day int) int {
	return ((day % DaysPerWeek) + DaysPerWeek) % DaysPerWeek
}

// IsWorkingDay reports whether the given day index is a working day.
func (c Calendar) IsWorkingDay(day int) bool {
	return weekday(day) < c.WorkDays
}

// IsOpen reports whether the facility is open at t.
func (c Calendar) IsOpen(t float64) bool {
	day := Day(t)
	if !c.IsWorkingDay(day) {
		return false
	}
	m := t - DayStart(day)
	return m >= c.OpenMinute && m < c.CloseMinute
}

// OpeningOf returns the opening instant of day.
func (c Calendar) OpeningOf(day int) float64 {
	return DayStart(day) + c.OpenMinute
}

// ClosingOf returns the closing instant of day.
func (c Calendar) ClosingOf(day int) float64 {
	return DayStart(day) + c.CloseMinute
}

// weekendStart returns midnight of the first closed day of the week
// containing day.
func (c Calendar) weekendStart(day int) float64 {
	weekStart := day - weekday(day)
	return DayStart(weekStart + c.WorkDays)
}

// Closing returns the instant the current busy period must stop. On a working
// day up to closing time that is today's close, capped at the start of the
// weekend. Once the facility has shut (after close, or on a closed day) the
// closing instant is now.
func (c Calendar) Closing(now float64) float64 {
	day := Day(now)
	if !c.IsWorkingDay(day) {
		return now
	}
	closing := c.ClosingOf(day)
	if ws := c.weekendStart(day); now < ws {
		closing = math.Min(closing, ws)
	}
	if now >= closing {
		return now
	}
	return closing
}

// NextOpen returns the first working-day opening strictly after Closing(now).
// A Friday close therefore reopens on Monday.
func (c Calendar) NextOpen(now float64) float64 {
	closing := c.Closing(now)
	day := Day(closing)
	if c.OpeningOf(day) <= closing {
		day++
	}
	for !c.IsWorkingDay(day) {
		day++
	}
	return c.OpeningOf(day)
}

// NextOpening returns now if the facility is open, otherwise the next opening
// instant.
func (c Calendar) NextOpening(now float64) float64 {
	if c.IsOpen(now) {
		return now
	}
	day := Day(now)
	if c.IsWorkingDay(day) && now < c.OpeningOf(day) {
		return c.OpeningOf(day)
	}
	day++
	for !c.IsWorkingDay(day) {
		day++
	}
	return c.OpeningOf(day)
}

// SpansClosedDay reports whether the interval [from, to) contains a whole
// closed day, i.e. a weekend is skipped between the two instants.
func (c Calendar) SpansClosedDay(from, to float64) bool {
	for day := Day(from); DayStart(day) < to; day++ {
		if !c.IsWorkingDay(day) {
			return true
		}
	}
	return false
}

// Split describes how a busy duration is laid out around a closing boundary.
type Split struct {
	Before    float64 // busy time before the boundary
	Pause     float64 // closed time between the boundary and reopening
	Remainder float64 // busy time after reopening
}

// Plan splits a busy duration d starting at now. When the work fits before
// closing, Pause and Remainder are zero. At most one boundary is absorbed: a
// remainder long enough to overrun the following close is not split again.
func (c Calendar) Plan(now, d float64) Split {
	closing := c.Closing(now)
	if now+d <= closing {
		return Split{Before: d}
	}
	before := closing - now
	return Split{
		Before:    before,
		Pause:     c.NextOpen(now) - closing,
		Remainder: d - before,
	}
}

// Wait suspends p for d minutes of busy time, pausing across the next closing
// boundary when the work would overrun it.
func (c Calendar) Wait(p *sim.Process, d float64) {
	split := c.Plan(p.Now(), d)
	if split.Pause == 0 && split.Remainder == 0 {
		if d > 0 {
			p.Wait(d)
		}
		return
	}
	reopen := c.NextOpen(p.Now())
	p.WaitUntil(c.Closing(p.Now()))
	logrus.Debugf("[%s] %s paused (end of day/week), resuming next working day", FormatTime(p.Now()), p.Name)
	p.WaitUntil(reopen)
	logrus.Debugf("[%s] %s resuming operation", FormatTime(p.Now()), p.Name)
	p.Wait(split.Remainder)
}

// WaitUntil suspends p until the instant t without any calendar split. It is
// a no-op when t is not in the future.
func WaitUntil(p *sim.Process, t float64) {
	if t > p.Now() {
		p.WaitUntil(t)
	}
}

// FormatTime renders t as "Mon 08:00", suffixed with the week number past
// the first week.
func FormatTime(t float64) string {
	day := Day(t)
	m := int(math.Floor(t - DayStart(day)))
	stamp := fmt.Sprintf("%s %02d:%02d", dayNames[weekday(day)], m/60, m%60)
	if week := day/DaysPerWeek + 1; week > 1 {
		stamp += fmt.Sprintf(" w%d", week)
	}
	return stamp
}

// ParseClock parses "HH:MM" into a minute of day.
func ParseClock(s string) (float64, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("clock time %q is not HH:MM: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock time %q is out of range", s)
	}
	return float64(h*60 + m), nil
}
