package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"MusicTycoon/internal/notifier"
	"MusicTycoon/internal/random"
	"MusicTycoon/internal/recorder"
	"MusicTycoon/internal/scheduler"
	"MusicTycoon/internal/studio"
)

func newRunCmd() *cobra.Command {
	var (
		cfgPath  string
		duration time.Duration
		commands bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a live session in real time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			rec, err := recorder.New(cfg)
			if err != nil {
				log.Printf("[WARN] init recorder failed, using noop: %v", err)
				rec = recorder.NewNoopRecorder()
			}
			defer rec.Close()

			console := notifier.NewConsoleNotifier(os.Stdout)
			events := notifier.NewEventLog(cfg.Simulation.LogSize)
			sink := notifier.Fanout{events, console, recorder.NewSink(rec)}

			rng := random.NewEngine(cfg.Simulation.Seed)
			st := studio.New(cfg, rng, sink, rec)
			pilot := studio.NewAutopilot(cfg.Autopilot, cfg.Trend.Genres, st, rng)

			sched := scheduler.NewScheduler(st, pilot, console, rec)
			if err := sched.RegisterAll(cfg.Schedule.SnapshotCron, cfg.Schedule.ReportCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			if commands {
				go readCommands(sched)
			}

			log.Printf("[INFO] %s is in the studio. Press Ctrl+C to stop.", cfg.Player.Name)
			sched.RunFrames(ctx, cfg.Simulation.FrameRate, cfg.Simulation.Speed)

			log.Println("[INFO] session over")
			sched.RunReportNow()
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to the YAML config")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this much wall time (0 runs until interrupted)")
	cmd.Flags().BoolVar(&commands, "commands", true, "read operator commands from stdin")
	return cmd
}

// readCommands answers operator commands typed on stdin until it closes.
func readCommands(sched *scheduler.Scheduler) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if reply := sched.HandleCommand(scanner.Text()); reply != "" {
			fmt.Println(reply)
		}
	}
}
