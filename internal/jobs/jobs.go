package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled task: a cron spec and a run function.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context, log *slog.Logger) error
}

// Scheduler runs registered jobs on their cron schedules. Each run gets a
// deadline so a wedged job cannot hold its slot forever.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(),
		log:     logger,
		timeout: 10 * time.Minute,
	}
}

// Register schedules a job. An invalid cron spec is a startup error.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		log := s.log.With("job", job.Name)
		start := time.Now()
		if err := job.Run(ctx, log); err != nil {
			log.Error("job failed", "err", err, "took", time.Since(start))
			return
		}
		log.Info("job finished", "took", time.Since(start))
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
