package trace

// TraceLevel controls the verbosity of stage tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelStages captures stage visits, presence changes and restocks.
	TraceLevelStages TraceLevel = "stages"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelStages: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a facility simulation.
type SimulationTrace struct {
	Config   TraceConfig
	Stages   []StageRecord
	Presence []PresenceRecord
	Restocks []RestockRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Stages:   make([]StageRecord, 0),
		Presence: make([]PresenceRecord, 0),
		Restocks: make([]RestockRecord, 0),
	}
}

// Enabled reports whether st records anything. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelStages
}

// RecordStage appends a stage visit record.
func (st *SimulationTrace) RecordStage(record StageRecord) {
	if !st.Enabled() {
		return
	}
	st.Stages = append(st.Stages, record)
}

// RecordPresence appends an employee presence transition.
func (st *SimulationTrace) RecordPresence(record PresenceRecord) {
	if !st.Enabled() {
		return
	}
	st.Presence = append(st.Presence, record)
}

// RecordRestock appends a restock order. It returns the record index so the
// arrival can be filled in later, or -1 when tracing is disabled.
func (st *SimulationTrace) RecordRestock(record RestockRecord) int {
	if !st.Enabled() {
		return -1
	}
	st.Restocks = append(st.Restocks, record)
	return len(st.Restocks) - 1
}

// CompleteRestock fills in the arrival of the restock at index i.
func (st *SimulationTrace) CompleteRestock(i int, arrived, stock float64) {
	if !st.Enabled() || i < 0 || i >= len(st.Restocks) {
		return
	}
	st.Restocks[i].Arrived = arrived
	st.Restocks[i].StockNow = stock
}

// StagesFor returns the stages visited by one basket, in record order.
func (st *SimulationTrace) StagesFor(basketID int) []string {
	if st == nil {
		return nil
	}
	var stages []string
	for _, r := range st.Stages {
		if r.BasketID == basketID {
			stages = append(stages, r.Stage)
		}
	}
	return stages
}
