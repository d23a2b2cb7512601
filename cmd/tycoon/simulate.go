package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"MusicTycoon/internal/clock"
	"MusicTycoon/internal/model"
	"MusicTycoon/internal/notifier"
	"MusicTycoon/internal/random"
	"MusicTycoon/internal/recorder"
	"MusicTycoon/internal/scheduler"
	"MusicTycoon/internal/studio"
)

func newSimulateCmd() *cobra.Command {
	var (
		cfgPath       string
		seconds       float64
		dt            float64
		seed          int64
		quiet         bool
		record        bool
		snapshotEvery float64
		out           string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fast-forward a headless session and print what happened",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if seed != 0 {
				cfg.Simulation.Seed = seed
			}
			if cfg.Simulation.Seed == 0 {
				cfg.Simulation.Seed = 1
			}
			if dt <= 0 {
				return fmt.Errorf("--dt must be positive, got %v", dt)
			}
			if !record {
				cfg.Database.Dialect = "none"
			}

			rec, err := recorder.New(cfg)
			if err != nil {
				return fmt.Errorf("open recorder: %w", err)
			}
			defer rec.Close()

			events := notifier.NewEventLog(cfg.Simulation.LogSize)
			sinks := notifier.Fanout{events, recorder.NewSink(rec)}
			if !quiet {
				sinks = append(sinks, notifier.NewConsoleNotifier(os.Stdout))
			}

			rng := random.NewEngine(cfg.Simulation.Seed)
			st := studio.New(cfg, rng, sinks, rec)
			pilot := studio.NewAutopilot(cfg.Autopilot, cfg.Trend.Genres, st, rng)
			sched := scheduler.NewScheduler(st, pilot, nil, rec)

			printHeader(fmt.Sprintf("Simulating %.0fs at dt=%.4f (seed %d)", seconds, dt, cfg.Simulation.Seed))
			snapshots := clock.NewAccumulator(snapshotEvery)
			frames := int(seconds / dt)
			for i := 0; i < frames; i++ {
				sched.Step(dt)
				if record && snapshots.Add(dt) {
					snap := st.Snapshot()
					if err := rec.RecordSnapshot(&snap); err != nil {
						log.Printf("[ERROR] record snapshot: %v", err)
					}
				}
			}

			snap := st.Snapshot()
			fmt.Println()
			printSummary(&snap, events)
			if out != "" {
				if err := notifier.ExportSnapshot(out, &snap, events.Entries()); err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("report written to %s", out))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the YAML config")
	cmd.Flags().Float64Var(&seconds, "seconds", 600, "simulated seconds to run")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "simulated seconds per frame")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the config seed)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "only print the summary")
	cmd.Flags().BoolVar(&record, "record", false, "write history to the configured database")
	cmd.Flags().Float64Var(&snapshotEvery, "snapshot-every", 10, "simulated seconds between recorded snapshots")
	cmd.Flags().StringVar(&out, "out", "", "also write a JSON report to this path")
	return cmd
}

func printSummary(snap *model.Snapshot, events *notifier.EventLog) {
	printHeader("Session summary")
	fmt.Print(notifier.FormatSnapshot(snap))
	fmt.Println()
	printHeader("Catalog")
	fmt.Print(notifier.FormatCatalog(snap.Releases))

	entries := events.Entries()
	if n := events.Dropped(); n > 0 {
		printWarn(fmt.Sprintf("%d older events not shown", n))
	}
	if len(entries) == 0 {
		return
	}
	fmt.Println()
	printHeader("Recent events")
	for _, evt := range entries {
		fmt.Println(notifier.ColorizeEvent(evt))
	}
	printSuccess(fmt.Sprintf("%d events, %d releases retired", len(entries)+events.Dropped(), snap.Retired))
}
