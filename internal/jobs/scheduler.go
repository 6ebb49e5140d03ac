package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper is implemented by authstate.Registry.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	spec    string
	idle    time.Duration
	log     zerolog.Logger
}

func NewScheduler(sweeper Sweeper, spec string, idle time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		spec:    spec,
		idle:    idle,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if s.sweeper == nil || s.idle <= 0 {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop waits up to five seconds for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) sweep() {
	if n := s.sweeper.Sweep(s.idle); n > 0 {
		s.log.Debug().Int("evicted", n).Msg("idle browsers swept")
	}
}
