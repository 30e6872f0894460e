package facility

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/calendar"
	"github.com/laundry-sim/laundry-sim/sim/trace"
)

func newTestDetergent(t *testing.T) (*Env, *DetergentManager) {
	t.Helper()
	env := NewEnv(0, 1, calendar.Default())
	env.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStages})
	t.Cleanup(env.Sim.Shutdown)
	return env, NewDetergentManager(env, DefaultConfig().Detergent)
}

func TestDetergent_Use_BelowThreshold_RestocksAfterLeadTime(t *testing.T) {
	// GIVEN 1000g in stock
	env, d := newTestDetergent(t)

	// WHEN 850g are used
	d.Use(850)

	// THEN stock is 150 and one order is pending
	assert.Equal(t, 150.0, d.Stock())
	assert.True(t, d.RestockPending())

	env.Sim.RunUntil(239)
	assert.Equal(t, 150.0, d.Stock())
	assert.True(t, d.RestockPending())

	// AND after the 240-minute lead time the pack has arrived
	env.Sim.RunUntil(240)
	assert.Equal(t, 1150.0, d.Stock())
	assert.False(t, d.RestockPending())
	assert.Equal(t, 1, d.Orders())
	assert.Equal(t, 1150.0, testutil.ToFloat64(env.Metrics.detergentStock))
}

func TestDetergent_UseWhilePending_DoesNotOrderTwice(t *testing.T) {
	env, d := newTestDetergent(t)

	d.Use(850)
	d.Use(50)

	assert.Equal(t, 100.0, d.Stock())
	assert.Equal(t, 1, d.Orders())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.Metrics.restocks))

	env.Sim.RunUntil(240)
	assert.Equal(t, 1100.0, d.Stock())
	assert.Equal(t, 1, d.Orders())
	assert.Len(t, env.Trace.Restocks, 1)
}

func TestDetergent_AboveThreshold_NoOrder(t *testing.T) {
	_, d := newTestDetergent(t)
	d.Use(820)
	assert.Equal(t, 180.0, d.Stock())
	assert.False(t, d.RestockPending())
	assert.Equal(t, 0, d.Orders())
}

func TestDetergent_StockMayGoNegative(t *testing.T) {
	_, d := newTestDetergent(t)
	d.Use(1200)
	assert.Equal(t, -200.0, d.Stock())
	assert.True(t, d.RestockPending())
}

func TestDetergent_LeadTimePausesOverClosing(t *testing.T) {
	// GIVEN an order placed Monday 16:00
	env, d := newTestDetergent(t)
	env.Sim.Schedule(sim.NewFuncEvent(at(0, 16, 0), func(*sim.Simulator) { d.Use(850) }))

	// WHEN the night passes
	env.Sim.RunUntil(at(1, 10, 59))
	assert.True(t, d.RestockPending())

	// THEN the pack arrives after 60 minutes Monday and 180 minutes Tuesday
	env.Sim.RunUntil(at(1, 11, 0))
	assert.False(t, d.RestockPending())
	require.Len(t, env.Trace.Restocks, 1)
	assert.Equal(t, trace.RestockRecord{Ordered: at(0, 16, 0), Arrived: at(1, 11, 0), StockNow: 1150}, env.Trace.Restocks[0])
}

func TestDetergent_OrdersAgainAfterDelivery(t *testing.T) {
	env, d := newTestDetergent(t)
	d.Use(850)
	env.Sim.RunUntil(240)

	d.Use(1000)

	assert.Equal(t, 150.0, d.Stock())
	assert.Equal(t, 2, d.Orders())
	assert.True(t, d.RestockPending())
}
