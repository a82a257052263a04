package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// SLATicker runs one SLA monitor pass.
type SLATicker interface {
	Tick(ctx context.Context) (domain.MonitorRun, error)
}

// SLAWorker schedules the SLA monitor on a cron expression such as "@every 5m".
type SLAWorker struct {
	cron     *cron.Cron
	ticker   SLATicker
	schedule string
	timeout  time.Duration
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewSLAWorker builds the worker. Overlapping runs are skipped.
func NewSLAWorker(ticker SLATicker, schedule string, timeout time.Duration, logger *zap.Logger) *SLAWorker {
	cronLogger := zapCronLogger{logger.Sugar().Named("cron")}
	return &SLAWorker{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		ticker:   ticker,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start registers the job and starts the scheduler. ctx bounds every run.
func (w *SLAWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.run(ctx) }); err != nil {
		return fmt.Errorf("schedule SLA monitor %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.logger.Info("SLA monitor scheduled", zap.String("schedule", w.schedule))
	return nil
}

func (w *SLAWorker) run(ctx context.Context) {
	w.wg.Add(1)
	defer w.wg.Done()

	runCtx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if _, err := w.ticker.Tick(runCtx); err != nil {
		w.logger.Error("SLA monitor run failed", zap.Error(err))
	}
}

// Stop stops scheduling and waits for an in-flight run.
func (w *SLAWorker) Stop() {
	<-w.cron.Stop().Done()
	w.wg.Wait()
}

type zapCronLogger struct {
	s *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
