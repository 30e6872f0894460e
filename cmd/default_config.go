package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/laundry-sim/laundry-sim/sim/calendar"
	"github.com/laundry-sim/laundry-sim/sim/facility"
	"github.com/laundry-sim/laundry-sim/sim/workload"
)

// FacilityFile represents the facility YAML structure. Every section is
// optional; omitted values keep the built-in defaults.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type FacilityFile struct {
	Calendar     CalendarSection    `yaml:"calendar"`
	Machines     MachinesSection    `yaml:"machines"`
	Employees    []EmployeeEntry    `yaml:"employees"`
	BreakMinutes *float64           `yaml:"break_minutes"`
	PollInterval *float64           `yaml:"poll_interval"`
	Detergent    DetergentSection   `yaml:"detergent"`
	LoadingTime  string             `yaml:"loading_time"`
	IroningTime  string             `yaml:"ironing_time"`
	LaundryTypes []LaundryTypeEntry `yaml:"laundry_types"`
}

// CalendarSection holds opening hours as "HH:MM" wall-clock values.
type CalendarSection struct {
	Open     string `yaml:"open"`
	Close    string `yaml:"close"`
	WorkDays int    `yaml:"work_days"`
}

type MachinesSection struct {
	Washers       int `yaml:"washers"`
	Dryers        int `yaml:"dryers"`
	SpecialDryers int `yaml:"special_dryers"`
}

type EmployeeEntry struct {
	Name       string `yaml:"name"`
	BreakStart string `yaml:"break_start"` // "HH:MM"
}

// DetergentSection uses pointers so an explicit zero is distinguishable from
// an omitted field.
type DetergentSection struct {
	InitialStock *float64 `yaml:"initial_stock"`
	Threshold    *float64 `yaml:"threshold"`
	PackSize     *float64 `yaml:"pack_size"`
	LeadTime     *float64 `yaml:"lead_time"`
	DosePerWash  *float64 `yaml:"dose_per_wash"`
}

// LaundryTypeEntry is one row of the routing and timing table. Times are
// duration descriptors such as "normal(90,10)" or "30".
type LaundryTypeEntry struct {
	Name        string  `yaml:"name"`
	Share       float64 `yaml:"share"`
	WashingTime string  `yaml:"washing_time"`
	Dryer       string  `yaml:"dryer"`
	DryingTime  string  `yaml:"drying_time"`
	Ironing     bool    `yaml:"ironing"`
}

// parseFacilityFile decodes facility YAML with strict field checking, so a
// typo in a key is an error rather than a silently ignored setting.
func parseFacilityFile(data []byte) (FacilityFile, error) {
	var ff FacilityFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ff); err != nil {
		return FacilityFile{}, fmt.Errorf("parse facility YAML: %w", err)
	}
	return ff, nil
}

// loadFacilityConfig returns the default facility, overlaid with the file at
// path when one is given.
func loadFacilityConfig(path string) (facility.Config, error) {
	cfg := facility.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return facility.Config{}, fmt.Errorf("read facility config: %w", err)
	}
	ff, err := parseFacilityFile(data)
	if err != nil {
		return facility.Config{}, err
	}
	cfg, err = ff.Apply(cfg)
	if err != nil {
		return facility.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return facility.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Apply overlays the file's settings onto base. Employee and laundry type
// lists replace the defaults wholesale when present.
func (ff FacilityFile) Apply(base facility.Config) (facility.Config, error) {
	cfg := base

	if err := applyClock(ff.Calendar.Open, &cfg.Calendar.OpenMinute, "calendar.open"); err != nil {
		return cfg, err
	}
	if err := applyClock(ff.Calendar.Close, &cfg.Calendar.CloseMinute, "calendar.close"); err != nil {
		return cfg, err
	}
	if ff.Calendar.WorkDays != 0 {
		cfg.Calendar.WorkDays = ff.Calendar.WorkDays
	}

	if ff.Machines.Washers != 0 {
		cfg.Washers = ff.Machines.Washers
	}
	if ff.Machines.Dryers != 0 {
		cfg.Dryers = ff.Machines.Dryers
	}
	if ff.Machines.SpecialDryers != 0 {
		cfg.SpecialDryers = ff.Machines.SpecialDryers
	}

	if len(ff.Employees) > 0 {
		cfg.Employees = make([]facility.EmployeeConfig, 0, len(ff.Employees))
		for i, e := range ff.Employees {
			start, err := calendar.ParseClock(e.BreakStart)
			if err != nil {
				return cfg, fmt.Errorf("employees[%d].break_start: %w", i, err)
			}
			cfg.Employees = append(cfg.Employees, facility.EmployeeConfig{Name: e.Name, BreakStart: start})
		}
	}
	applyFloat(ff.BreakMinutes, &cfg.BreakMinutes)
	applyFloat(ff.PollInterval, &cfg.PollInterval)

	applyFloat(ff.Detergent.InitialStock, &cfg.Detergent.InitialStock)
	applyFloat(ff.Detergent.Threshold, &cfg.Detergent.Threshold)
	applyFloat(ff.Detergent.PackSize, &cfg.Detergent.PackSize)
	applyFloat(ff.Detergent.LeadTime, &cfg.Detergent.LeadTime)
	applyFloat(ff.Detergent.DosePerWash, &cfg.Detergent.DosePerWash)

	if err := applyDuration(ff.LoadingTime, &cfg.Loading, "loading_time"); err != nil {
		return cfg, err
	}
	if err := applyDuration(ff.IroningTime, &cfg.Ironing, "ironing_time"); err != nil {
		return cfg, err
	}

	if len(ff.LaundryTypes) > 0 {
		types, err := convertLaundryTypes(ff.LaundryTypes)
		if err != nil {
			return cfg, err
		}
		cfg.Types = types
	}
	return cfg, nil
}

func convertLaundryTypes(entries []LaundryTypeEntry) ([]workload.LaundryType, error) {
	types := make([]workload.LaundryType, 0, len(entries))
	for i, e := range entries {
		washing, err := workload.ParseDuration(e.WashingTime)
		if err != nil {
			return nil, fmt.Errorf("laundry_types[%d].washing_time: %w", i, err)
		}
		drying, err := workload.ParseDuration(e.DryingTime)
		if err != nil {
			return nil, fmt.Errorf("laundry_types[%d].drying_time: %w", i, err)
		}
		dryer := workload.DryerKind(e.Dryer)
		if e.Dryer == "" {
			dryer = workload.DryerStandard
		}
		types = append(types, workload.LaundryType{
			Name:    e.Name,
			Share:   e.Share,
			Washing: washing,
			Dryer:   dryer,
			Drying:  drying,
			Ironing: e.Ironing,
		})
	}
	return types, nil
}

func applyClock(value string, dst *float64, field string) error {
	if value == "" {
		return nil
	}
	m, err := calendar.ParseClock(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = m
	return nil
}

func applyDuration(desc string, dst *workload.DurationSampler, field string) error {
	if desc == "" {
		return nil
	}
	s, err := workload.ParseDuration(desc)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = s
	return nil
}

func applyFloat(v *float64, dst *float64) {
	if v != nil {
		*dst = *v
	}
}
