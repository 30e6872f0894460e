// Package trace provides stage-visit recording for facility analysis.
// This package has no dependencies on sim/ or sim/facility/; it stores pure data types.
package trace

// Stage names as recorded in StageRecord.Stage.
const (
	StageWash       = "wash"
	StageDry        = "dry"
	StageSpecialDry = "special-dry"
	StageIron       = "iron"
)

// StageRecord captures one load's visit to a processing stage.
type StageRecord struct {
	BasketID int
	Type     string
	Stage    string
	Resource string  // machine pool held during the stage ("" for ironing)
	Employee string  // employee who performed the work
	Start    float64 // employee acquired
	End      float64 // employee released
	Busy     float64 // sampled busy time, excluding calendar pauses
}

// PresenceRecord captures an employee presence transition.
type PresenceRecord struct {
	Employee string
	State    string
	Clock    float64
}

// RestockRecord captures one detergent reorder.
type RestockRecord struct {
	Ordered  float64
	Arrived  float64 // zero while the pack is still on its way
	StockNow float64 // stock after arrival
}
