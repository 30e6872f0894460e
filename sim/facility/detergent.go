package facility

import (
	"github.com/sirupsen/logrus"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/trace"
)

// DetergentManager tracks detergent stock and reorders a pack whenever stock
// falls below the threshold. At most one order is in flight at a time.
type DetergentManager struct {
	env *Env
	cfg DetergentConfig

	stock          float64
	restockPending bool
	orders         int
}

// NewDetergentManager creates a manager holding cfg.InitialStock grams.
func NewDetergentManager(env *Env, cfg DetergentConfig) *DetergentManager {
	d := &DetergentManager{env: env, cfg: cfg, stock: cfg.InitialStock}
	env.Metrics.SetDetergentStock(d.stock)
	return d
}

// Stock returns the current stock in grams. It may be negative: usage is
// debited before the reorder check and never clamped.
func (d *DetergentManager) Stock() float64 {
	return d.stock
}

// RestockPending reports whether an order is on its way.
func (d *DetergentManager) RestockPending() bool {
	return d.restockPending
}

// Orders returns the number of packs ordered so far.
func (d *DetergentManager) Orders() int {
	return d.orders
}

// Use debits amount grams and orders a pack if stock fell below the threshold
// and no order is pending.
func (d *DetergentManager) Use(amount float64) {
	d.stock -= amount
	d.env.Metrics.SetDetergentStock(d.stock)
	if d.stock < d.cfg.Threshold && !d.restockPending {
		d.restockPending = true
		d.orders++
		d.env.Metrics.RecordRestock()
		d.env.Sim.Spawn("restock", d.restock)
	}
}

func (d *DetergentManager) restock(p *sim.Process) {
	logrus.Infof("[%s] Ordering detergent pack (stock %.0fg)", d.env.Stamp(), d.stock)
	idx := d.env.Trace.RecordRestock(trace.RestockRecord{Ordered: p.Now()})

	d.env.Calendar.Wait(p, d.cfg.LeadTime)

	d.stock += d.cfg.PackSize
	d.restockPending = false
	d.env.Metrics.SetDetergentStock(d.stock)
	d.env.Trace.CompleteRestock(idx, p.Now(), d.stock)
	logrus.Infof("[%s] New detergent pack arrived. Stock = %.0fg", d.env.Stamp(), d.stock)
}
