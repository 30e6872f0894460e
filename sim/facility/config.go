package facility

import (
	"fmt"

	"github.com/laundry-sim/laundry-sim/sim/calendar"
	"github.com/laundry-sim/laundry-sim/sim/workload"
)

// EmployeeConfig describes one member of staff.
type EmployeeConfig struct {
	Name       string
	BreakStart float64 // minute of day the daily break begins
}

// DetergentConfig groups detergent stock parameters (grams, minutes).
type DetergentConfig struct {
	InitialStock float64 // stock at simulation start
	Threshold    float64 // reorder when stock falls below this
	PackSize     float64 // grams added per delivered pack
	LeadTime     float64 // busy minutes between order and delivery
	DosePerWash  float64 // grams used per washing cycle
}

// Config is the validated facility layout.
type Config struct {
	Calendar      calendar.Calendar
	Washers       int
	Dryers        int
	SpecialDryers int
	Employees     []EmployeeConfig
	BreakMinutes  float64 // length of each employee's daily break
	PollInterval  float64 // minutes between free-employee checks
	Detergent     DetergentConfig
	Loading       workload.DurationSampler // time to load a machine
	Ironing       workload.DurationSampler // time to iron one load
	Types         []workload.LaundryType
}

// DefaultConfig returns the standard facility: four washers, two dryers, one
// special dryer and three employees with staggered lunch breaks.
func DefaultConfig() Config {
	return Config{
		Calendar:      calendar.Default(),
		Washers:       4,
		Dryers:        2,
		SpecialDryers: 1,
		Employees: []EmployeeConfig{
			{Name: "Employee 1", BreakStart: 12 * 60},
			{Name: "Employee 2", BreakStart: 12*60 + 30},
			{Name: "Employee 3", BreakStart: 13 * 60},
		},
		BreakMinutes: 30,
		PollInterval: 1,
		Detergent: DetergentConfig{
			InitialStock: 1000,
			Threshold:    180,
			PackSize:     1000,
			LeadTime:     240,
			DosePerWash:  20,
		},
		Loading: workload.MustParseDuration("triangular(2,5,10)"),
		Ironing: workload.MustParseDuration("gamma(40,0.4)"),
		Types:   workload.DefaultTypes(),
	}
}

// Validate checks the configuration for values the facility cannot run with.
func (c Config) Validate() error {
	if err := c.Calendar.Validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if c.Washers < 1 || c.Dryers < 1 || c.SpecialDryers < 1 {
		return fmt.Errorf("machine counts must be positive (washers=%d, dryers=%d, special dryers=%d)",
			c.Washers, c.Dryers, c.SpecialDryers)
	}
	if len(c.Employees) == 0 {
		return fmt.Errorf("at least one employee is required")
	}
	seen := make(map[string]bool, len(c.Employees))
	for _, e := range c.Employees {
		if e.Name == "" {
			return fmt.Errorf("employee name must not be empty")
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate employee %q", e.Name)
		}
		seen[e.Name] = true
		if e.BreakStart < 0 || e.BreakStart >= calendar.MinutesPerDay {
			return fmt.Errorf("employee %q break start %v is outside the day", e.Name, e.BreakStart)
		}
	}
	if c.BreakMinutes < 0 {
		return fmt.Errorf("break minutes must be non-negative, got %v", c.BreakMinutes)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	d := c.Detergent
	if d.PackSize <= 0 || d.LeadTime < 0 || d.DosePerWash < 0 {
		return fmt.Errorf("detergent pack size must be positive and lead time and dose non-negative")
	}
	if c.Loading == nil || c.Ironing == nil {
		return fmt.Errorf("loading and ironing times are required")
	}
	return nil
}
