package scheduler

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"MusicTycoon/internal/notifier"
	"MusicTycoon/internal/recorder"
	"MusicTycoon/internal/studio"
)

// Sender delivers a formatted report.
type Sender interface {
	Send(text string) error
}

// Scheduler runs the wall-clock side of a live session: cron snapshot and
// report tasks next to the frame loop.
type Scheduler struct {
	Cron      *cron.Cron
	Studio    *studio.Studio
	Autopilot *studio.Autopilot
	Notifier  Sender
	Recorder  recorder.Recorder
}

// NewScheduler creates a new Scheduler. A nil autopilot leaves the artist idle.
func NewScheduler(st *studio.Studio, pilot *studio.Autopilot, n Sender, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Studio:    st,
		Autopilot: pilot,
		Notifier:  n,
		Recorder:  rec,
	}
}

// RegisterAll registers the snapshot and report tasks. An empty expression skips
// that task.
func (s *Scheduler) RegisterAll(snapshotCron, reportCron string) error {
	if snapshotCron != "" {
		if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
			return fmt.Errorf("register snapshot task: %w", err)
		}
	}
	if reportCron != "" {
		if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
			return fmt.Errorf("register report task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportNow sends the report immediately.
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) snapshotTask() {
	snap := s.Studio.Snapshot()
	if err := s.Recorder.RecordSnapshot(&snap); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
		return
	}
	log.Printf("[INFO] snapshot at t=%.1fs: fans=%d cash=%.2f", snap.At, snap.Fans, snap.Cash)
}

func (s *Scheduler) reportTask() {
	snap := s.Studio.Snapshot()
	s.trySend(notifier.FormatSnapshot(&snap) + "\n" + notifier.FormatCatalog(snap.Releases))
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/status", "status":
		snap := s.Studio.Snapshot()
		return notifier.FormatSnapshot(&snap)
	case "/catalog", "catalog":
		return notifier.FormatCatalog(s.Studio.Snapshot().Releases)
	case "/record", "record":
		genre := ""
		if len(fields) > 1 {
			genre = fields[1]
		}
		name := strings.Join(fields[min(2, len(fields)):], " ")
		song := s.Studio.Record(name, genre)
		single, err := s.Studio.ReleaseSingle(song.ID, 0)
		if err != nil {
			return fmt.Sprintf("release failed: %v", err)
		}
		return fmt.Sprintf("released %q (quality %.1f) at $%.2f", single.Name, single.Quality, single.Price)
	case "/snapshot", "snapshot":
		s.snapshotTask()
		return "snapshot recorded"
	case "/study", "study":
		if len(fields) < 2 {
			return "usage: study <skill>"
		}
		skill := strings.Join(fields[1:], " ")
		level, err := s.Studio.Study(skill)
		if err != nil {
			return fmt.Sprintf("study failed: %v", err)
		}
		return fmt.Sprintf("%s is now level %.1f", skill, level)
	case "/upgrade", "upgrade":
		if len(fields) < 4 || (fields[1] != string(studio.UpgradeSkill) && fields[1] != string(studio.UpgradeTool)) {
			return "usage: upgrade skill|tool <tier> <name>"
		}
		name := strings.Join(fields[3:], " ")
		level, err := s.Studio.Upgrade(studio.UpgradeKind(fields[1]), name, fields[2])
		if err != nil {
			return fmt.Sprintf("upgrade failed: %v", err)
		}
		return fmt.Sprintf("%s is now level %.1f", name, level)
	case "/busk", "busk":
		if len(fields) < 2 {
			return "usage: busk <minutes>"
		}
		minutes, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Sprintf("busk failed: bad minutes %q", fields[1])
		}
		earned, err := s.Studio.Busk(minutes)
		if err != nil {
			return fmt.Sprintf("busk failed: %v", err)
		}
		return fmt.Sprintf("made $%.2f busking", earned)
	case "/rest", "rest":
		return fmt.Sprintf("energy restored to %.0f", s.Studio.Rest())
	default:
		return "commands: status | catalog | record [genre] [name] | snapshot | study <skill> | upgrade skill|tool <tier> <name> | busk <minutes> | rest"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	}
}
