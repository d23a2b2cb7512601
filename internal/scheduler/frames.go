package scheduler

import (
	"context"
	"log"
	"time"
)

// maxFrameSeconds caps a single frame after a stall so one late tick does
// not dump minutes of simulated time at once.
const maxFrameSeconds = 0.25

// RunFrames drives the studio from a ticker at fps frames per second until
// ctx is done. Each frame advances by the measured wall time times speed.
func (s *Scheduler) RunFrames(ctx context.Context, fps int, speed float64) {
	if fps <= 0 {
		fps = 60
	}
	if speed <= 0 {
		speed = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] frame loop stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > maxFrameSeconds {
				dt = maxFrameSeconds
			}
			s.Step(dt * speed)
		}
	}
}

// Step advances the studio and the autopilot by dt simulated seconds.
func (s *Scheduler) Step(dt float64) {
	s.Studio.Frame(dt)
	if s.Autopilot == nil {
		return
	}
	if err := s.Autopilot.Step(dt); err != nil {
		log.Printf("[ERROR] autopilot: %v", err)
	}
}
