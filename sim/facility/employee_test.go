package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/calendar"
	"github.com/laundry-sim/laundry-sim/sim/trace"
)

func newTestEmployee(t *testing.T, cfg EmployeeConfig) (*Env, *Employee) {
	t.Helper()
	env := NewEnv(0, 1, calendar.Default())
	env.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStages})
	t.Cleanup(env.Sim.Shutdown)
	return env, NewEmployee(env, cfg, 30)
}

func presenceOf(st *trace.SimulationTrace, name string) []trace.PresenceRecord {
	var out []trace.PresenceRecord
	for _, r := range st.Presence {
		if r.Employee == name {
			out = append(out, r)
		}
	}
	return out
}

func TestEmployee_DailyCycle(t *testing.T) {
	// GIVEN an employee with a 12:00 break
	env, e := newTestEmployee(t, EmployeeConfig{Name: "Employee 1", BreakStart: 12 * 60})
	assert.Equal(t, StateNotYetArrived, e.State())

	// WHEN Monday runs
	env.Sim.RunUntil(at(0, 23, 0))

	// THEN arrival, break, return and departure follow the calendar
	assert.Equal(t, []trace.PresenceRecord{
		{Employee: "Employee 1", State: "available", Clock: at(0, 8, 0)},
		{Employee: "Employee 1", State: "on-break", Clock: at(0, 12, 0)},
		{Employee: "Employee 1", State: "available", Clock: at(0, 12, 30)},
		{Employee: "Employee 1", State: "departed", Clock: at(0, 17, 0)},
	}, presenceOf(env.Trace, "Employee 1"))
	assert.Equal(t, StateDeparted, e.State())
}

func TestEmployee_UnavailableForWholeBreakWindow(t *testing.T) {
	// GIVEN a probe sampling availability every half minute, off the minute grid
	env, e := newTestEmployee(t, EmployeeConfig{Name: "Employee 2", BreakStart: 12*60 + 30})
	samples := make(map[float64]bool)
	env.Sim.Spawn("probe", func(p *sim.Process) {
		calendar.WaitUntil(p, at(0, 8, 0)+0.25)
		for p.Now() < at(0, 17, 0) {
			samples[p.Now()] = e.Available()
			p.Wait(0.5)
		}
	})

	// WHEN Monday runs
	env.Sim.RunUntil(at(0, 18, 0))

	// THEN availability is false exactly inside the break window
	require.NotEmpty(t, samples)
	breakStart, breakEnd := at(0, 12, 30), at(0, 13, 0)
	for ts, available := range samples {
		inBreak := ts >= breakStart && ts < breakEnd
		assert.Equal(t, !inBreak, available, "availability at %s", calendar.FormatTime(ts))
	}
}

func TestEmployee_BreakPastClosing_NextDayStillTakesBreak(t *testing.T) {
	// GIVEN a break starting 15 minutes before closing
	env, _ := newTestEmployee(t, EmployeeConfig{Name: "Late", BreakStart: 16*60 + 45})

	// WHEN Monday to Wednesday run
	env.Sim.RunUntil(at(2, 23, 0))

	// THEN each break finishes the next morning and that day's break is still taken
	assert.Equal(t, []trace.PresenceRecord{
		{Employee: "Late", State: "available", Clock: at(0, 8, 0)},
		{Employee: "Late", State: "on-break", Clock: at(0, 16, 45)},
		{Employee: "Late", State: "available", Clock: at(1, 8, 15)},
		{Employee: "Late", State: "on-break", Clock: at(1, 16, 45)},
		{Employee: "Late", State: "available", Clock: at(2, 8, 15)},
		{Employee: "Late", State: "on-break", Clock: at(2, 16, 45)},
	}, presenceOf(env.Trace, "Late"))
}

func TestEmployee_SkipsWeekend(t *testing.T) {
	// GIVEN an employee over the first week and a half
	env, _ := newTestEmployee(t, EmployeeConfig{Name: "Employee 3", BreakStart: 13 * 60})

	// WHEN run to the second Tuesday
	env.Sim.RunUntil(at(8, 0, 0))

	// THEN no transition happens on Saturday or Sunday
	records := presenceOf(env.Trace, "Employee 3")
	for _, r := range records {
		assert.Less(t, calendar.DayOfWeek(r.Clock), 5, "transition on a closed day at %s", calendar.FormatTime(r.Clock))
	}
	// AND the first arrival after Friday is Monday 08:00 of week 2
	var afterFriday []trace.PresenceRecord
	for _, r := range records {
		if r.Clock > at(4, 17, 0) {
			afterFriday = append(afterFriday, r)
		}
	}
	require.NotEmpty(t, afterFriday)
	assert.Equal(t, trace.PresenceRecord{Employee: "Employee 3", State: "available", Clock: at(7, 8, 0)}, afterFriday[0])
	// 4 transitions per working day, five days
	assert.Len(t, records, 4*5+4)
}

func TestEmployee_Free_RequiresIdleTask(t *testing.T) {
	env, e := newTestEmployee(t, EmployeeConfig{Name: "Employee 1", BreakStart: 12 * 60})
	env.Sim.RunUntil(at(0, 9, 0))
	require.True(t, e.Free())

	env.Sim.Spawn("worker", func(p *sim.Process) {
		e.Task.Use(p, func() { p.Wait(10) })
	})
	env.Sim.RunUntil(at(0, 9, 5))
	assert.True(t, e.Available(), "holding a task does not change presence")
	assert.False(t, e.Free())

	env.Sim.RunUntil(at(0, 9, 10))
	assert.True(t, e.Free())
}

func TestPresenceState_String(t *testing.T) {
	assert.Equal(t, "on-break", StateOnBreak.String())
	assert.Equal(t, "unknown", PresenceState(99).String())
}
