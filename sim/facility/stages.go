package facility

import (
	"github.com/sirupsen/logrus"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/trace"
	"github.com/laundry-sim/laundry-sim/sim/workload"
)

// lookup resolves the load's laundry type, dropping the load if it is unknown.
func (f *Facility) lookup(load *workload.Load) (workload.LaundryType, bool) {
	lt, ok := f.types.Lookup(load.Type)
	if !ok {
		f.dropped++
		logrus.Errorf("[%s] %s has unknown laundry type %q, dropping it", f.env.Stamp(), load, load.Type)
	}
	return lt, ok
}

// withEmployee runs fn while holding a free employee's task unit.
func (f *Facility) withEmployee(p *sim.Process, fn func(e *Employee)) {
	e := f.awaitEmployee(p)
	defer e.Task.Release()
	fn(e)
}

func (f *Facility) recordStage(load *workload.Load, stage, resource string, e *Employee, start, busy float64) {
	f.env.Metrics.RecordStage(stage)
	f.env.Trace.RecordStage(trace.StageRecord{
		BasketID: load.BasketID,
		Type:     load.Type,
		Stage:    stage,
		Resource: resource,
		Employee: e.Name,
		Start:    start,
		End:      f.env.Now(),
		Busy:     busy,
	})
}

// washing holds a washer and an employee for loading and the wash cycle,
// then routes the load to its dryer queue.
func (f *Facility) washing(p *sim.Process, load *workload.Load) {
	lt, ok := f.lookup(load)
	if !ok {
		return
	}
	cal := f.env.Calendar

	f.Washers.Use(p, func() {
		f.withEmployee(p, func(e *Employee) {
			start := p.Now()
			logrus.Infof("[%s] %s loads Basket %d in washing machine and adds detergent", f.env.Stamp(), e.Name, load.BasketID)
			loading := f.cfg.Loading.Sample(f.durations)
			cal.Wait(p, loading)

			f.Detergent.Use(f.cfg.Detergent.DosePerWash)
			wash := lt.Washing.Sample(f.durations)
			logrus.Infof("[%s] Washing starts for Basket %d (Duration: %.1f min)", f.env.Stamp(), load.BasketID, wash)
			cal.Wait(p, wash)

			logrus.Infof("[%s] %s unloads Basket %d", f.env.Stamp(), e.Name, load.BasketID)
			f.recordStage(load, trace.StageWash, f.Washers.Name, e, start, loading+wash)
		})
	})

	if lt.Dryer == workload.DryerSpecial {
		f.SpecialDryQ.Put(load)
	} else {
		f.DryQ.Put(load)
	}
}

// drying holds a dryer from the selected pool and an employee for loading and
// the dry cycle, then sends the load to the iron queue.
func (f *Facility) drying(p *sim.Process, load *workload.Load, special bool) {
	lt, ok := f.lookup(load)
	if !ok {
		return
	}
	cal := f.env.Calendar

	dryer, stage, machine := f.Dryers, trace.StageDry, "STANDARD"
	if special {
		dryer, stage, machine = f.SpecialDryer, trace.StageSpecialDry, "SPECIAL"
	}

	dryer.Use(p, func() {
		f.withEmployee(p, func(e *Employee) {
			start := p.Now()
			logrus.Infof("[%s] %s loads Basket %d in %s dryer", f.env.Stamp(), e.Name, load.BasketID, machine)
			loading := f.cfg.Loading.Sample(f.durations)
			cal.Wait(p, loading)

			dry := lt.Drying.Sample(f.durations)
			logrus.Infof("[%s] Drying starts for Basket %d (Duration: %.1f min)", f.env.Stamp(), load.BasketID, dry)
			cal.Wait(p, dry)

			logrus.Infof("[%s] %s unloads Basket %d", f.env.Stamp(), e.Name, load.BasketID)
			f.recordStage(load, stage, dryer.Name, e, start, loading+dry)
		})
	})

	f.IronQ.Put(load)
}

// ironing irons the load if its type requires it. Every load leaves the
// facility here.
func (f *Facility) ironing(p *sim.Process, load *workload.Load) {
	lt, ok := f.lookup(load)
	if !ok {
		return
	}
	if lt.Ironing {
		f.withEmployee(p, func(e *Employee) {
			start := p.Now()
			iron := f.cfg.Ironing.Sample(f.durations)
			logrus.Infof("[%s] Ironing starts for Basket %d (Duration: %.1f min)", f.env.Stamp(), load.BasketID, iron)
			f.env.Calendar.Wait(p, iron)
			f.recordStage(load, trace.StageIron, "", e, start, iron)
		})
	}
	f.finish(load)
}

func (f *Facility) finish(load *workload.Load) {
	c := Completion{Load: load, Finished: f.env.Now()}
	f.completed = append(f.completed, c)
	f.env.Metrics.RecordCompleted(c.Turnaround())
	logrus.Infof("[%s] Basket %d is done (%.0f min in the facility)", f.env.Stamp(), load.BasketID, c.Turnaround())
}
