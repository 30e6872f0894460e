package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/laundry-sim/laundry-sim/sim/facility"
	"github.com/laundry-sim/laundry-sim/sim/trace"
)

var (
	// CLI flags for the run command
	seed         int64   // Seed of the first replication
	horizon      float64 // Simulated minutes per replication
	logLevel     string  // Log verbosity level
	configPath   string  // Optional facility YAML
	replications int     // Number of independent runs, seeds seed..seed+n-1
	traceLevel   string  // Stage trace level ("none" or "stages")
	metricsOut   string  // Optional file for the first run's metrics
	jsonOutput   bool    // Print reports as JSON instead of text
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "laundry-sim",
	Short: "Discrete-event simulator for a laundry facility",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the laundry simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (want none or stages)", traceLevel)
		}
		if replications < 1 {
			logrus.Fatalf("--replications must be at least 1, got %d", replications)
		}
		if horizon <= 0 {
			logrus.Fatalf("--horizon must be positive, got %v", horizon)
		}

		cfg, err := loadFacilityConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load facility config: %v", err)
		}

		logrus.Infof("Starting %d replication(s) from seed %d, horizon=%v min", replications, seed, horizon)
		startTime := time.Now()

		runs, reports, err := runReplications(cmd.Context(), cfg, seed, replications, horizon, trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := writeReportsJSON(out, reports); err != nil {
				logrus.Fatalf("Failed to encode reports: %v", err)
			}
		} else {
			printReports(out, runs, reports)
		}

		if metricsOut != "" {
			if err := writeMetrics(metricsOut, runs[0].Env.Metrics); err != nil {
				logrus.Fatalf("Failed to write metrics: %v", err)
			}
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// runReplications executes n independent runs in parallel, seeded seed+i.
// Results are returned in seed order regardless of completion order.
func runReplications(ctx context.Context, cfg facility.Config, seed int64, n int, horizon float64, level trace.TraceLevel) ([]*facility.Run, []facility.Report, error) {
	runs := make([]*facility.Run, n)
	reports := make([]facility.Report, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := facility.NewRun(cfg, seed+int64(i), horizon, level)
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			runs[i] = r
			reports[i] = r.Execute()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return runs, reports, nil
}

func printReports(w io.Writer, runs []*facility.Run, reports []facility.Report) {
	for i, r := range reports {
		r.Print(w)
		if st := runs[i].Env.Trace; st.Enabled() {
			printTraceSummary(w, trace.Summarize(st))
		}
	}
	if len(reports) > 1 {
		printReplicationSummary(w, reports)
	}
}

// writeReportsJSON writes one JSON array holding every replication's report.
func writeReportsJSON(w io.Writer, reports []facility.Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Baskets traced       : %d\n", s.UniqueBaskets)
	for _, stage := range []string{trace.StageWash, trace.StageDry, trace.StageSpecialDry, trace.StageIron} {
		fmt.Fprintf(w, "  %-11s : %4d visits, %8.1f busy min\n", stage, s.StageVisits[stage], s.BusyMinutes[stage])
	}
	fmt.Fprintf(w, "Presence changes     : %d\n", s.PresenceChanges)
	fmt.Fprintf(w, "Restocks             : %d (%d pending)\n", s.Restocks, s.PendingRestocks)
}

func printReplicationSummary(w io.Writer, reports []facility.Report) {
	completed := make([]float64, len(reports))
	turnaround := make([]float64, 0, len(reports))
	for i, r := range reports {
		completed[i] = float64(r.Completed)
		if r.Completed > 0 {
			turnaround = append(turnaround, r.TurnaroundMean)
		}
	}
	mean, std := stat.MeanStdDev(completed, nil)
	fmt.Fprintf(w, "=== Replication Summary (%d runs) ===\n", len(reports))
	fmt.Fprintf(w, "Baskets completed    : %.1f ± %.1f\n", mean, std)
	if len(turnaround) > 1 {
		tm, ts := stat.MeanStdDev(turnaround, nil)
		fmt.Fprintf(w, "Turnaround mean      : %.1f ± %.1f min\n", tm, ts)
	}
}

// writeMetrics dumps the registry in the Prometheus text exposition format.
func writeMetrics(path string, m *facility.Metrics) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed of the first replication")
	runCmd.Flags().Float64Var(&horizon, "horizon", 2700, "Simulated minutes per replication (minute 0 is Monday 00:00)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Facility YAML overriding the built-in defaults")
	runCmd.Flags().IntVar(&replications, "replications", 1, "Number of independent replications, seeded seed, seed+1, ...")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Stage trace level (none, stages)")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print reports as a JSON array instead of text")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write the first replication's metrics in Prometheus text format to this file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
