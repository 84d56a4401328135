package scheduler

import (
	"context"
	"fmt"
	"time"

	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/robfig/cron/v3"
)

// CronScheduler drives the periodic sweeps. Jobs are chained with
// SkipIfStillRunning so a slow sweep delays, rather than stacks, the next
// firing; the sweeps' own TryLock guards stay as a second line for the
// on-demand entry points.
type CronScheduler struct {
	cron   *cron.Cron
	logger coreport.Logger
}

// NewCronScheduler creates a scheduler ready to register jobs
func NewCronScheduler(logger coreport.Logger) *CronScheduler {
	adapter := &cronLogAdapter{logger: logger}
	return &CronScheduler{
		cron: cron.New(
			cron.WithChain(
				cron.SkipIfStillRunning(adapter),
				cron.Recover(adapter),
			),
		),
		logger: logger,
	}
}

// Every registers a job to run at a fixed interval
func (s *CronScheduler) Every(interval time.Duration, name string, job func()) error {
	spec := fmt.Sprintf("@every %s", interval)
	_, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	s.logger.Info("Scheduled periodic job", map[string]any{
		"job":      name,
		"interval": interval.String(),
	})
	return nil
}

// Start begins running registered jobs in their own goroutine
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once the jobs
// already in flight have finished
func (s *CronScheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler", nil)
	return s.cron.Stop()
}

// cronLogAdapter bridges the cron logger interface onto the core logger
type cronLogAdapter struct {
	logger coreport.Logger
}

func (a *cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, kvToFields(keysAndValues))
}

func (a *cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kvToFields(keysAndValues)
	fields["error"] = err.Error()
	a.logger.Error(msg, fields)
}

func kvToFields(keysAndValues []interface{}) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
