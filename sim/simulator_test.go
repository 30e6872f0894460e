package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Wait_AdvancesClock(t *testing.T) {
	// GIVEN a process that waits twice
	s := NewSimulator(0)
	var stamps []float64
	s.Spawn("worker", func(p *Process) {
		stamps = append(stamps, p.Now())
		p.Wait(10)
		stamps = append(stamps, p.Now())
		p.Wait(2.5)
		stamps = append(stamps, p.Now())
	})

	// WHEN the simulation runs to completion
	s.Run()

	// THEN the process observed each wait as elapsed simulated time
	assert.Equal(t, []float64{0, 10, 12.5}, stamps)
	assert.Equal(t, 12.5, s.Now())
	assert.Equal(t, 0, s.Live())
}

func TestSimulator_EqualTimestamps_ResumeInScheduleOrder(t *testing.T) {
	// GIVEN three processes that all wait 5 minutes in the same instant
	s := NewSimulator(0)
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		s.Spawn(name, func(p *Process) {
			p.Wait(5)
			order = append(order, p.Name)
		})
	}

	// WHEN run
	s.Run()

	// THEN they resume first-scheduled first
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSimulator_InterleavesAtSuspensionPoints(t *testing.T) {
	s := NewSimulator(0)
	var log []string
	s.Spawn("slow", func(p *Process) {
		log = append(log, "slow:start")
		p.Wait(10)
		log = append(log, "slow:end")
	})
	s.Spawn("fast", func(p *Process) {
		log = append(log, "fast:start")
		p.Wait(3)
		log = append(log, "fast:end")
	})
	s.Run()

	assert.Equal(t, []string{"slow:start", "fast:start", "fast:end", "slow:end"}, log)
}

func TestSimulator_Horizon_StopsPendingProcesses(t *testing.T) {
	// GIVEN a process that would run forever
	s := NewSimulator(100)
	ticks := 0
	released := false
	r := NewResource(s, "machine", 1)
	s.Spawn("forever", func(p *Process) {
		r.Use(p, func() {
			defer func() { released = true }()
			for {
				p.Wait(30)
				ticks++
			}
		})
	})

	// WHEN run to the horizon
	s.Run()

	// THEN events after the horizon never execute and the scoped release ran on shutdown
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 100.0, s.Now())
	assert.True(t, released)
	assert.Equal(t, 0, r.Count())
	assert.Equal(t, 0, s.Pending())
}

func TestSimulator_RunUntil_IsResumable(t *testing.T) {
	s := NewSimulator(0)
	count := 0
	s.Spawn("ticker", func(p *Process) {
		for i := 0; i < 10; i++ {
			p.Wait(1)
			count++
		}
	})

	s.RunUntil(4)
	assert.Equal(t, 4, count, "events at exactly the bound execute")
	assert.Equal(t, 4.0, s.Now())

	s.RunUntil(7.5)
	assert.Equal(t, 7, count)
	assert.Equal(t, 7.5, s.Now())

	s.Run()
	assert.Equal(t, 10, count)
}

func TestSimulator_SpawnFromProcess_StartsSameInstant(t *testing.T) {
	s := NewSimulator(0)
	var childStart float64 = -1
	s.Spawn("parent", func(p *Process) {
		p.Wait(7)
		p.Sim().Spawn("child", func(c *Process) {
			childStart = c.Now()
		})
		p.Wait(1)
	})
	s.Run()
	assert.Equal(t, 7.0, childStart)
}

func TestProcess_Wait_NegativeDuration_Panics(t *testing.T) {
	s := NewSimulator(0)
	p := &Process{sim: s, Name: "bad"}
	require.Panics(t, func() { p.Wait(-1) })
}

func TestSimulator_Schedule_PastEvent_Panics(t *testing.T) {
	s := NewSimulator(0)
	s.Clock = 10
	assert.Panics(t, func() {
		s.Schedule(NewFuncEvent(5, func(*Simulator) {}))
	})
}

func TestSimulator_FuncEvent_Executes(t *testing.T) {
	s := NewSimulator(0)
	fired := 0.0
	s.Schedule(NewFuncEvent(42, func(sim *Simulator) { fired = sim.Now() }))
	s.Run()
	assert.Equal(t, 42.0, fired)
}

func TestSimulator_Shutdown_Idempotent(t *testing.T) {
	s := NewSimulator(10)
	s.Spawn("sleeper", func(p *Process) { p.Wait(1000) })
	s.Run()
	assert.NotPanics(t, s.Shutdown)
	assert.False(t, s.Step())
}

func TestProcess_WaitUntil_ResumesAtExactInstant(t *testing.T) {
	// GIVEN a process that has drifted off a round clock value
	s := NewSimulator(0)
	var resumed float64
	s.Spawn("worker", func(p *Process) {
		p.Wait(0.1)
		p.Wait(0.2)
		p.WaitUntil(1020)
		resumed = p.Now()
	})

	// WHEN run
	s.Run()

	// THEN the absolute wait lands exactly on the target
	assert.Equal(t, 1020.0, resumed)
}

func TestProcess_WaitUntil_Past_Panics(t *testing.T) {
	s := NewSimulator(0)
	s.Clock = 10
	p := &Process{sim: s, Name: "bad"}
	require.Panics(t, func() { p.WaitUntil(5) })
}
