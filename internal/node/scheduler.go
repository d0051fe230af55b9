package node

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// miningCronSpec fires once on second 30 of every minute.
const miningCronSpec = "30 * * * * *"

// Scheduler emits a MiningTickEvent on a wall-clock cron schedule.
type Scheduler struct {
	cron *cron.Cron
	tick chan MiningTickEvent
}

// NewScheduler starts the cron schedule and returns the scheduler. Emission
// is one-shot per fire onto a channel that holds one pending tick; a fire
// that finds the previous tick still unconsumed is dropped and logged, not
// queued.
func NewScheduler(logger *zap.Logger) *Scheduler {
	s := &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		tick: make(chan MiningTickEvent, 1),
	}
	_, err := s.cron.AddFunc(miningCronSpec, func() {
		select {
		case s.tick <- MiningTickEvent{}:
		default:
			logger.Warn("mining tick dropped, previous tick still pending")
		}
	})
	if err != nil {
		// the cron spec is a compile-time constant; a parse failure here is
		// a programmer error, not a runtime condition.
		panic(err)
	}
	s.cron.Start()
	return s
}

// Tick returns the channel of mining schedule firings.
func (s *Scheduler) Tick() <-chan MiningTickEvent {
	return s.tick
}

// Stop halts the cron schedule.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
