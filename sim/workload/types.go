package workload

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Laundry type names.
const (
	TypeBoilWash = "Boil-wash"
	TypeColored  = "Colored wash"
	TypeDelicate = "Delicate wash"
	TypeWool     = "Wool"
)

// DryerKind selects which dryer pool a laundry type uses.
type DryerKind string

const (
	DryerStandard DryerKind = "standard"
	DryerSpecial  DryerKind = "special"
)

// LaundryType is one row of the routing and timing table.
type LaundryType struct {
	Name    string
	Share   float64         // fraction of incoming baskets of this type
	Washing DurationSampler // washing machine time
	Dryer   DryerKind       // post-wash route
	Drying  DurationSampler // dryer time
	Ironing bool            // whether the load is ironed after drying
}

// DefaultTypes returns the built-in laundry mix.
func DefaultTypes() []LaundryType {
	return []LaundryType{
		{Name: TypeBoilWash, Share: 0.4, Washing: MustParseDuration("normal(90,10)"), Dryer: DryerStandard, Drying: MustParseDuration("uniform(60,90)"), Ironing: true},
		{Name: TypeColored, Share: 0.3, Washing: MustParseDuration("normal(60,10)"), Dryer: DryerStandard, Drying: MustParseDuration("normal(40,10)"), Ironing: true},
		{Name: TypeDelicate, Share: 0.2, Washing: MustParseDuration("uniform(40,60)"), Dryer: DryerStandard, Drying: MustParseDuration("normal(50,15)"), Ironing: false},
		{Name: TypeWool, Share: 0.1, Washing: MustParseDuration("30"), Dryer: DryerSpecial, Drying: MustParseDuration("uniform(30,40)"), Ironing: false},
	}
}

// TypeTable is a read-only lookup of laundry types by name.
type TypeTable struct {
	types  []LaundryType
	byName map[string]int
}

// NewTypeTable validates the types and builds a lookup table.
func NewTypeTable(types []LaundryType) (*TypeTable, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("laundry type table is empty")
	}
	tt := &TypeTable{types: types, byName: make(map[string]int, len(types))}
	for i, lt := range types {
		if lt.Name == "" {
			return nil, fmt.Errorf("laundry type %d has no name", i)
		}
		if _, dup := tt.byName[lt.Name]; dup {
			return nil, fmt.Errorf("duplicate laundry type %q", lt.Name)
		}
		if lt.Share < 0 {
			return nil, fmt.Errorf("laundry type %q has negative share %v", lt.Name, lt.Share)
		}
		if lt.Washing == nil || lt.Drying == nil {
			return nil, fmt.Errorf("laundry type %q is missing a washing or drying time", lt.Name)
		}
		if lt.Dryer != DryerStandard && lt.Dryer != DryerSpecial {
			return nil, fmt.Errorf("laundry type %q has unknown dryer %q", lt.Name, lt.Dryer)
		}
		tt.byName[lt.Name] = i
	}
	return tt, nil
}

// Lookup returns the laundry type with the given name.
func (tt *TypeTable) Lookup(name string) (LaundryType, bool) {
	i, ok := tt.byName[name]
	if !ok {
		return LaundryType{}, false
	}
	return tt.types[i], true
}

// Types returns the table rows in declaration order.
func (tt *TypeTable) Types() []LaundryType {
	return tt.types
}

// TypeChooser draws laundry type names according to their shares.
type TypeChooser struct {
	names []string
	dist  distuv.Categorical
}

// NewTypeChooser builds a chooser over the table's shares. At least one share
// must be positive.
func NewTypeChooser(tt *TypeTable, src rand.Source) (*TypeChooser, error) {
	weights := make([]float64, len(tt.types))
	names := make([]string, len(tt.types))
	total := 0.0
	for i, lt := range tt.types {
		weights[i] = lt.Share
		names[i] = lt.Name
		total += lt.Share
	}
	if total <= 0 {
		return nil, fmt.Errorf("laundry type shares sum to %v, want > 0", total)
	}
	return &TypeChooser{names: names, dist: distuv.NewCategorical(weights, src)}, nil
}

// Choose returns the name of a randomly selected laundry type.
func (c *TypeChooser) Choose() string {
	return c.names[int(c.dist.Rand())]
}
