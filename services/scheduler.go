// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSweepScheduler runs the expiry sweep over every live engine on a
// fixed interval. The sweep is purely corrective (voucher use and bonus
// claims re-check time themselves), so missed or repeated runs are harmless.
func (s *ClubService) StartSweepScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			for userID, engine := range s.liveEngines() {
				if engine.Sweep() {
					log.Printf("[Sweep] reconciled state for %s", userID)
				}
			}
		}),
	)

	s.sweeper = sched
}

// StopSweepScheduler tears the sweep timer down on service shutdown.
func (s *ClubService) StopSweepScheduler() {
	if s.sweeper != nil {
		if err := s.sweeper.Shutdown(); err != nil {
			log.Printf("[Sweep] scheduler shutdown: %v", err)
		}
		s.sweeper = nil
	}
}
