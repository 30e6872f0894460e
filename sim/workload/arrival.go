package workload

import (
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/laundry-sim/laundry-sim/sim"
	"github.com/laundry-sim/laundry-sim/sim/calendar"
)

// Client delivery windows, as offsets in minutes from opening.
const (
	// Client1SecondDelivery is when client 1 brings its second batch (12:00).
	Client1SecondDelivery = 240
	// Client2FirstWindow bounds the offset of client 2's first delivery (08:00–11:00).
	Client2FirstWindow = 180
	// Client2Cutoff is the latest offset for client 2's second delivery (12:00).
	Client2Cutoff = 240
	// Client2MeanGap is the mean gap between client 2's two deliveries.
	Client2MeanGap = 60
)

// Arrivals drives deliveries from external clients into a Sink. Each client
// runs as its own process and skips closed days.
type Arrivals struct {
	Calendar calendar.Calendar
	Sink     Sink
	Chooser  *TypeChooser
	// RNG supplies basket counts and delivery offsets.
	RNG *rand.Rand

	delivered int
}

// Delivered returns the number of baskets handed to the sink so far.
func (a *Arrivals) Delivered() int {
	return a.delivered
}

// Start spawns both client processes.
func (a *Arrivals) Start(s *sim.Simulator) {
	s.Spawn("client1", a.client1)
	s.Spawn("client2", a.client2)
}

func (a *Arrivals) deliver(p *sim.Process, clientID int, basketID *int, n int, label string) {
	logrus.Infof("[%s] Client %d delivers %d baskets (%s)", calendar.FormatTime(p.Now()), clientID, n, label)
	for i := 0; i < n; i++ {
		*basketID++
		load := NewLoad(clientID, *basketID, a.Chooser.Choose(), p.Now())
		logrus.Debugf("[%s] Client %d delivers %s", calendar.FormatTime(p.Now()), clientID, load)
		a.delivered++
		a.Sink.Enqueue(load)
	}
}

// skipClosedDay waits out a closed day and reports whether it did.
func (a *Arrivals) skipClosedDay(p *sim.Process, clientID int) bool {
	if a.Calendar.IsWorkingDay(calendar.Day(p.Now())) {
		return false
	}
	logrus.Infof("[%s] Client %d skips weekend delivery", calendar.FormatTime(p.Now()), clientID)
	calendar.WaitUntil(p, a.Calendar.NextOpening(p.Now()))
	return true
}

// client1 delivers 6–8 baskets at opening and 1–3 more at 12:00.
func (a *Arrivals) client1(p *sim.Process) {
	basketID := 10000
	for {
		if a.skipClosedDay(p, 1) {
			continue
		}
		day := calendar.Day(p.Now())
		start := a.Calendar.OpeningOf(day)
		calendar.WaitUntil(p, start)

		a.deliver(p, 1, &basketID, randInt(a.RNG, 6, 8), "first morning delivery")

		calendar.WaitUntil(p, start+Client1SecondDelivery)
		a.deliver(p, 1, &basketID, randInt(a.RNG, 1, 3), "second morning delivery")

		calendar.WaitUntil(p, a.Calendar.OpeningOf(day+1))
	}
}

// client2 delivers 3–5 baskets at a random time before 11:00, then 2–4 more
// after an exponential gap capped at 12:00.
func (a *Arrivals) client2(p *sim.Process) {
	basketID := 20000
	gap := distuv.Exponential{Rate: 1.0 / Client2MeanGap, Src: a.RNG}
	for {
		if a.skipClosedDay(p, 2) {
			continue
		}
		day := calendar.Day(p.Now())
		start := a.Calendar.OpeningOf(day)
		noon := start + Client2Cutoff
		calendar.WaitUntil(p, start)

		calendar.WaitUntil(p, start+float64(randInt(a.RNG, 0, Client2FirstWindow)))
		a.deliver(p, 2, &basketID, randInt(a.RNG, 3, 5), "first delivery")

		wait := gap.Rand()
		if maxGap := noon - p.Now(); maxGap > 0 {
			wait = math.Min(wait, maxGap)
		} else {
			wait = 0
		}
		p.Wait(wait)

		if p.Now() <= noon {
			a.deliver(p, 2, &basketID, randInt(a.RNG, 2, 4), "second delivery")
		} else {
			logrus.Infof("[%s] Client 2 missed second delivery window today", calendar.FormatTime(p.Now()))
		}

		calendar.WaitUntil(p, a.Calendar.OpeningOf(day+1))
	}
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
