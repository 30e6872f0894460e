package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	StageVisits     map[string]int     // stage → number of visits
	BusyMinutes     map[string]float64 // stage → total sampled busy time
	EmployeeVisits  map[string]int     // employee → stages performed
	UniqueBaskets   int
	Restocks        int
	PendingRestocks int
	PresenceChanges int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StageVisits:    make(map[string]int),
		BusyMinutes:    make(map[string]float64),
		EmployeeVisits: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	baskets := make(map[int]bool)
	for _, r := range st.Stages {
		summary.StageVisits[r.Stage]++
		summary.BusyMinutes[r.Stage] += r.Busy
		if r.Employee != "" {
			summary.EmployeeVisits[r.Employee]++
		}
		baskets[r.BasketID] = true
	}
	summary.UniqueBaskets = len(baskets)

	summary.Restocks = len(st.Restocks)
	for _, r := range st.Restocks {
		if r.Arrived == 0 {
			summary.PendingRestocks++
		}
	}
	summary.PresenceChanges = len(st.Presence)

	return summary
}
