package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/config"
	"github.com/vovakirdan/robotsim/internal/facts"
	"github.com/vovakirdan/robotsim/internal/sim"
	"github.com/vovakirdan/robotsim/internal/storage"
)

var (
	flagOut       string
	flagFormat    string
	flagHeaders   bool
	flagCompress  bool
	flagCheck     bool
	flagNoCatalog bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation and write its facts",
	Long: `Generate a world, place the robots and play the configured number of
turns. Every turn is written as fact rows.

Output formats:
  tsv     - One file per table in --out (dym_*.tsv, fact_*.tsv)
  sqlite  - The same rows in the run catalog database, tagged with a run id

Examples:
  robotsim run
  robotsim run --seed 42 --turns 1000 --out ./out --headers
  robotsim run --compress
  robotsim run --format sqlite --db ./runs.db
  robotsim run --config ./robotsim.yaml --check`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	addWorldFlags(runCmd)
	f := runCmd.Flags()
	f.StringVar(&flagOut, "out", "", "Output directory for TSV files (default from config)")
	f.StringVar(&flagFormat, "format", "", "Output format: tsv or sqlite (default from config)")
	f.BoolVar(&flagHeaders, "headers", false, "Write a header line in each TSV file")
	f.BoolVar(&flagCompress, "compress", false, "zstd-compress TSV files")
	f.BoolVar(&flagCheck, "check", false, "Verify world invariants after every turn")
	f.BoolVar(&flagNoCatalog, "no-catalog", false, "Do not record the run in the catalog")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err == nil {
		err = applyOutputFlags(cmd, &cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, cfg, logger); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func applyOutputFlags(cmd *cobra.Command, cfg *config.SimConfig) error {
	f := cmd.Flags()
	if f.Changed("out") {
		cfg.Output.Dir = flagOut
	}
	if f.Changed("format") {
		cfg.Output.Format = flagFormat
	}
	if f.Changed("headers") {
		cfg.Output.Headers = flagHeaders
	}
	if f.Changed("compress") {
		cfg.Output.Compress = flagCompress
	}
	return cfg.Validate()
}

// execute plays one run end to end: catalog entry, sink, simulation and
// final counters.
func execute(ctx context.Context, cfg config.SimConfig, logger *log.Logger) (err error) {
	sqliteOut := cfg.Output.Format == config.FormatSQLite

	var (
		store *storage.Store
		runID int64
	)
	if sqliteOut || !flagNoCatalog {
		store, err = storage.Open(cfg.Output.DB)
		switch {
		case err != nil && sqliteOut:
			return err
		case err != nil:
			// The catalog is optional for TSV output
			logger.Warn("run catalog unavailable", "db", cfg.Output.DB, "err", err)
			store = nil
		default:
			defer store.Close()
		}
	}
	if store != nil {
		runID, err = store.StartRun(storage.RunRecord{
			Seed:          cfg.Seed,
			Width:         cfg.Map.Width,
			Height:        cfg.Map.Height,
			Normal:        cfg.Roster.Normal,
			Broken:        cfg.Roster.Broken,
			Liar:          cfg.Roster.Liar,
			ItemDestroyer: cfg.Roster.ItemDestroyer,
			Arsonist:      cfg.Roster.Arsonist,
			Turns:         cfg.Turns,
			Format:        cfg.Output.Format,
			Output:        outputLocation(cfg),
		})
		if err != nil {
			return err
		}
		logger.Info("run catalogued", "run", runID, "db", cfg.Output.DB)
	}

	var sink facts.Sink
	if sqliteOut {
		sink = store.FactSink(runID)
	} else {
		sink, err = facts.NewTSVSink(cfg.Output.Dir, facts.TSVOptions{
			Headers:  cfg.Output.Headers,
			Compress: cfg.Output.Compress,
		})
		if err != nil {
			return err
		}
	}
	defer func() {
		err = errors.Join(err, sink.Close())
	}()

	s, err := sim.New(cfg, sink, logger)
	if err != nil {
		return err
	}
	if flagCheck {
		s.EnableChecks()
	}

	runErr := s.Run(ctx, cfg.Turns)
	sum := s.Summary()

	if store != nil {
		finishErr := store.FinishRun(runID, storage.RunCounters{
			TurnsPlayed:     int(sum.Turns),
			ItemsGenerated:  sum.ItemsGenerated,
			ItemsCollected:  sum.ItemsCollected,
			ItemsDestroyed:  sum.ItemsDestroyed,
			RobotsDestroyed: sum.RobotsDestroyed,
		})
		if finishErr != nil {
			logger.Warn("cannot finish catalog entry", "run", runID, "err", finishErr)
		}
	}
	if runErr != nil {
		return runErr
	}

	printSummary(sum)
	if !sqliteOut {
		fmt.Printf("Facts written to %s\n", cfg.Output.Dir)
	}
	return nil
}

func outputLocation(cfg config.SimConfig) string {
	if cfg.Output.Format == config.FormatSQLite {
		return cfg.Output.DB
	}
	return cfg.Output.Dir
}

func printSummary(sum sim.Summary) {
	fmt.Printf("Turns played:       %d\n", sum.Turns)
	fmt.Printf("Items collected:    %d of %d available (%.1f%%)\n",
		sum.ItemsCollected, sum.ItemsGenerated-sum.ItemsDestroyed, sum.CollectionRate()*100)
	fmt.Printf("Items destroyed:    %d\n", sum.ItemsDestroyed)
	fmt.Printf("Robots destroyed:   %d\n", sum.RobotsDestroyed)
	fmt.Printf("Beacons at the end: %d\n", sum.Beacons)
}
