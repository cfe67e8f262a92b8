package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	sim "github.com/outbreak-sim/outbreak-sim/sim"
	"github.com/outbreak-sim/outbreak-sim/sim/model"
	_ "github.com/outbreak-sim/outbreak-sim/sim/plugins"
	"github.com/outbreak-sim/outbreak-sim/sim/trace"
)

var (
	// CLI flags for the population
	popSize         int     // Number of individuals
	preQuarantine   float64 // Quarantine individual 0 at time 0 until this time
	keepSymptomatic bool    // Symptomatic individuals keep infecting after incubation

	// CLI flags for the run
	seed         int64  // Seed of the first realization stream
	repeats      int    // Number of realizations
	firstID      int    // Id of the first realization
	scenarioPath string // Scenario YAML file
	paramsPath   string // Model parameter YAML file
	logFile      string // Record output file ("-" = stdout)
	sqlitePath   string // SQLite record database
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "outbreak-sim",
	Short: "Discrete-event simulator of an outbreak in a closed population",
}

// runCmd executes the realizations using parameters from the scenario and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run outbreak realizations",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if err := runRealizations(cmd); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runRealizations resolves the scenario from the flags of cmd and runs every
// realization, writing records to the configured outputs.
func runRealizations(cmd *cobra.Command) error {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	plugins, err := sc.plugins()
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	sink, closeSinks, err := openSinks(logFile, sqlitePath)
	if err != nil {
		return fmt.Errorf("unable to open record output: %w", err)
	}
	// flush records on every exit path, including logrus.Fatalf
	atexit.Register(closeSinks)
	defer closeSinks()

	runSeed := seed
	if sc.Seed != nil && !cmd.Flags().Changed("seed") {
		runSeed = *sc.Seed
	}

	summary := trace.NewSummary()
	s, err := sim.NewSimulator(sc.config(), model.Factory(sc.Model), trace.Tee{sink, summary}, runSeed, plugins)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.Infof("Starting %d realization(s): popsize=%d, pre_quarantine=%v, keep_symptomatic=%v, seed=%d, plugins=%d",
		sc.Repeats, sc.PopSize, formatOptional(sc.PreQuarantine), sc.KeepSymptomatic, runSeed, len(plugins))

	startTime := time.Now()
	aborted := 0
	for i := 0; i < sc.Repeats; i++ {
		summary.Reset()
		res := s.Simulate(firstID + i)
		if res.Aborted {
			aborted++
		}
		logrus.Debugf("realization %d: end=%.2f popsize=%d infected=%d removed=%d avoided=%d failed=%d aborted=%v",
			res.Realization, summary.EndTime, summary.EndPopSize, len(summary.Infections),
			len(summary.Removals), summary.CountByType["INFECTION_AVOIDED"], summary.CountByType["INFECTION_FAILED"],
			summary.Aborted)
	}

	logrus.Infof("Simulation complete: %d realization(s), %d aborted, wall time %v",
		sc.Repeats, aborted, time.Since(startTime))
	return nil
}

// pluginsCmd lists the plugins that scenarios may reference
var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List registered plugins",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.RegisteredPlugins() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

// resolveScenario loads the scenario file, if any, and applies explicitly set flags on top.
func resolveScenario(cmd *cobra.Command) (Scenario, error) {
	sc := defaultScenario()
	if scenarioPath != "" {
		loaded, err := loadScenario(scenarioPath)
		if err != nil {
			return sc, err
		}
		sc = loaded
	}
	if paramsPath != "" {
		params, err := model.LoadParams(paramsPath)
		if err != nil {
			return sc, err
		}
		sc.Model = *params
	}

	flags := cmd.Flags()
	if scenarioPath == "" || flags.Changed("popsize") {
		sc.PopSize = popSize
	}
	if flags.Changed("pre-quarantine") {
		pq := preQuarantine
		sc.PreQuarantine = &pq
	}
	if flags.Changed("keep-symptomatic") {
		sc.KeepSymptomatic = keepSymptomatic
	}
	if scenarioPath == "" || flags.Changed("repeats") {
		sc.Repeats = repeats
	}
	return sc, nil
}

// openSinks builds the record sink from the output flags and returns a closer
// that flushes every sink.
func openSinks(logPath, dbPath string) (trace.Sink, func(), error) {
	var sinks trace.Tee
	var closers []func() error

	if logPath != "" {
		var w io.Writer = nopCloser{os.Stdout}
		if logPath != "-" {
			f, err := os.Create(logPath)
			if err != nil {
				return nil, nil, err
			}
			w = f
		}
		fs := trace.NewFileSink(w)
		sinks = append(sinks, fs)
		closers = append(closers, fs.Close)
	}
	if dbPath != "" {
		db, err := trace.NewSQLiteSink(dbPath)
		if err != nil {
			return nil, nil, err
		}
		logrus.Infof("Records are collected in database %s (run %s)", db.Path(), db.RunID())
		sinks = append(sinks, db)
		closers = append(closers, func() error {
			if err := db.Flush(); err != nil {
				db.Close()
				return err
			}
			if n, err := db.Count(""); err == nil {
				logrus.Infof("%d records stored in %s (run %s)", n, db.Path(), db.RunID())
			}
			return db.Close()
		})
	}

	closed := false
	closeAll := func() {
		if closed {
			return
		}
		closed = true
		for _, c := range closers {
			if err := c(); err != nil {
				logrus.Errorf("Writing records failed: %v", err)
			}
		}
	}
	return sinks, closeAll, nil
}

// nopCloser keeps FileSink from closing stdout.
type nopCloser struct {
	io.Writer
}

func formatOptional(v *float64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%.2f", *v)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// registerRunFlags binds the run flags of cmd to the package-level flag variables.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&popSize, "popsize", 64, "Number of individuals in the population")
	cmd.Flags().Float64Var(&preQuarantine, "pre-quarantine", 0, "Quarantine the first individual at time 0 until this time (days); unset disables")
	cmd.Flags().BoolVar(&keepSymptomatic, "keep-symptomatic", false, "Keep symptomatic individuals infectious after their incubation period")

	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the realization RNG streams")
	cmd.Flags().IntVar(&repeats, "repeats", 1, "Number of realizations to run")
	cmd.Flags().IntVar(&firstID, "first-id", 0, "Id of the first realization")
	cmd.Flags().StringVar(&scenarioPath, "config", "", "Scenario YAML file (population, model, plugins)")
	cmd.Flags().StringVar(&paramsPath, "params", "", "Model parameter YAML file; overrides the scenario's model section")
	cmd.Flags().StringVar(&logFile, "logfile", "-", "Record output file ('-' for stdout, empty to disable)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also write records to this SQLite database")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

}

// init sets up CLI flags and subcommands
func init() {
	// logrus.Fatalf exits through atexit so that buffered records are flushed
	logrus.RegisterExitHandler(func() { atexit.Exit(1) })

	registerRunFlags(runCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pluginsCmd)
}
