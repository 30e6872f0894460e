package workload

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrUnrecognizedDuration is returned when a duration descriptor matches none
// of the supported shapes.
var ErrUnrecognizedDuration = errors.New("unrecognized duration format")

// DurationSampler produces process times in minutes.
type DurationSampler interface {
	// Sample returns a non-negative duration drawn using src.
	Sample(src rand.Source) float64
	// String returns the descriptor the sampler was parsed from.
	String() string
}

// FixedDuration always returns the same value.
type FixedDuration struct {
	Value float64
}

func (s FixedDuration) Sample(_ rand.Source) float64 { return nonNegative(s.Value) }
func (s FixedDuration) String() string               { return strconv.FormatFloat(s.Value, 'g', -1, 64) }

// UniformDuration draws uniformly from [Min, Max).
type UniformDuration struct {
	Min, Max float64
}

func (s UniformDuration) Sample(src rand.Source) float64 {
	return nonNegative(distuv.Uniform{Min: s.Min, Max: s.Max, Src: src}.Rand())
}

func (s UniformDuration) String() string { return fmt.Sprintf("uniform(%g,%g)", s.Min, s.Max) }

// NormalDuration draws from a Gaussian, clamped at zero.
type NormalDuration struct {
	Mean, StdDev float64
}

func (s NormalDuration) Sample(src rand.Source) float64 {
	return nonNegative(distuv.Normal{Mu: s.Mean, Sigma: s.StdDev, Src: src}.Rand())
}

func (s NormalDuration) String() string { return fmt.Sprintf("normal(%g,%g)", s.Mean, s.StdDev) }

// TriangularDuration draws from a triangular distribution on [Min, Max]
// peaking at Mode.
type TriangularDuration struct {
	Min, Mode, Max float64
}

func (s TriangularDuration) Sample(src rand.Source) float64 {
	return nonNegative(distuv.NewTriangle(s.Min, s.Max, s.Mode, src).Rand())
}

func (s TriangularDuration) String() string {
	return fmt.Sprintf("triangular(%g,%g,%g)", s.Min, s.Mode, s.Max)
}

// GammaDuration draws from Gamma(Shape, Scale); the mean is Shape*Scale.
type GammaDuration struct {
	Shape, Scale float64
}

func (s GammaDuration) Sample(src rand.Source) float64 {
	// distuv parameterizes Gamma by rate.
	return nonNegative(distuv.Gamma{Alpha: s.Shape, Beta: 1 / s.Scale, Src: src}.Rand())
}

func (s GammaDuration) String() string { return fmt.Sprintf("gamma(%g,%g)", s.Shape, s.Scale) }

// ExponentialDuration draws exponentially distributed times with the given mean.
type ExponentialDuration struct {
	Mean float64
}

func (s ExponentialDuration) Sample(src rand.Source) float64 {
	return nonNegative(distuv.Exponential{Rate: 1 / s.Mean, Src: src}.Rand())
}

func (s ExponentialDuration) String() string { return fmt.Sprintf("exponential(%g)", s.Mean) }

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

var (
	descriptorPattern = regexp.MustCompile(`^([a-z]+)\s*\(([^()]*)\)$`)
	numberPattern     = regexp.MustCompile(`^[+]?(\d+\.?\d*|\.\d+)$`)
)

// ParseDuration parses a duration descriptor:
//
//	30                     fixed value
//	uniform(a,b)           uniform on [a, b)
//	normal(mean,stddev)    Gaussian, clamped at zero
//	triangular(min,mode,max)
//	gamma(shape,scale)
//	exponential(mean)
//
// Names are case-insensitive. Any other text fails with ErrUnrecognizedDuration.
func ParseDuration(desc string) (DurationSampler, error) {
	val := strings.ToLower(strings.TrimSpace(desc))
	if numberPattern.MatchString(val) {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedDuration, desc)
		}
		return FixedDuration{Value: v}, nil
	}

	m := descriptorPattern.FindStringSubmatch(val)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedDuration, desc)
	}
	args, err := parseArgs(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnrecognizedDuration, desc, err)
	}

	switch m[1] {
	case "uniform":
		if err := requireArgs(args, 2); err != nil {
			return nil, fmt.Errorf("%q: %w", desc, err)
		}
		if args[0] > args[1] {
			return nil, fmt.Errorf("%q: uniform lower bound exceeds upper bound", desc)
		}
		return UniformDuration{Min: args[0], Max: args[1]}, nil

	case "normal":
		if err := requireArgs(args, 2); err != nil {
			return nil, fmt.Errorf("%q: %w", desc, err)
		}
		if args[1] < 0 {
			return nil, fmt.Errorf("%q: normal standard deviation must be non-negative", desc)
		}
		return NormalDuration{Mean: args[0], StdDev: args[1]}, nil

	case "triangular":
		if err := requireArgs(args, 3); err != nil {
			return nil, fmt.Errorf("%q: %w", desc, err)
		}
		lo, mode, hi := args[0], args[1], args[2]
		if !(lo < hi) || mode < lo || mode > hi {
			return nil, fmt.Errorf("%q: triangular requires min <= mode <= max and min < max", desc)
		}
		return TriangularDuration{Min: lo, Mode: mode, Max: hi}, nil

	case "gamma":
		if err := requireArgs(args, 2); err != nil {
			return nil, fmt.Errorf("%q: %w", desc, err)
		}
		if args[0] <= 0 || args[1] <= 0 {
			return nil, fmt.Errorf("%q: gamma shape and scale must be positive", desc)
		}
		return GammaDuration{Shape: args[0], Scale: args[1]}, nil

	case "exponential":
		if err := requireArgs(args, 1); err != nil {
			return nil, fmt.Errorf("%q: %w", desc, err)
		}
		if args[0] <= 0 {
			return nil, fmt.Errorf("%q: exponential mean must be positive", desc)
		}
		return ExponentialDuration{Mean: args[0]}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedDuration, desc)
	}
}

// MustParseDuration is like ParseDuration but panics on error. It is meant
// for built-in tables.
func MustParseDuration(desc string) DurationSampler {
	s, err := ParseDuration(desc)
	if err != nil {
		panic(err)
	}
	return s
}

// SampleDuration parses desc and draws one sample from it.
func SampleDuration(desc string, src rand.Source) (float64, error) {
	s, err := ParseDuration(desc)
	if err != nil {
		return 0, err
	}
	return s.Sample(src), nil
}

func parseArgs(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	args := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not a number", strings.TrimSpace(part))
		}
		args = append(args, v)
	}
	return args, nil
}

// requireArgs checks the number of parsed descriptor arguments.
func requireArgs(args []float64, n int) error {
	if len(args) != n {
		return fmt.Errorf("distribution requires %d arguments, got %d", n, len(args))
	}
	return nil
}
