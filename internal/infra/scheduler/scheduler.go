package scheduler

import (
	"context"
	"fmt"
	"time"

	"hospital_duty_kiosk/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher is the part of the schedule service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, date time.Time) app.RefreshReport
}

// Notifier is told about every scheduled refresh.
type Notifier interface {
	NotifyRefresh(report app.RefreshReport)
}

// RefreshScheduler refreshes the duty schedule on a cron spec in the kiosk's time zone.
type RefreshScheduler struct {
	cronEngine *cron.Cron
	service    Refresher
	notifier   Notifier
	logger     *logrus.Entry
	location   *time.Location
	cronSpec   string
	jobTimeout time.Duration
	now        func() time.Time
}

func NewRefreshScheduler(
	service Refresher,
	logger *logrus.Entry,
	loc *time.Location,
	cronSpec string, // e.g. "0 8 * * *" (08:00 daily)
	jobTimeout time.Duration,
) *RefreshScheduler {
	return &RefreshScheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger{logger}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
		service:    service,
		logger:     logger,
		location:   loc,
		cronSpec:   cronSpec,
		jobTimeout: jobTimeout,
		now:        time.Now,
	}
}

// SetNotifier attaches an optional notifier.
func (s *RefreshScheduler) SetNotifier(n Notifier) {
	s.notifier = n
}

// Start registers the refresh job and starts the cron engine.
func (s *RefreshScheduler) Start() error {
	s.logger.WithField("cron", s.cronSpec).Info("Starting refresh scheduler")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runRefresh); err != nil {
		return fmt.Errorf("could not add refresh cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.Info("Refresh scheduler started")
	return nil
}

func (s *RefreshScheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	s.logger.Info("Cron job triggered for duty refresh")
	report := s.service.Refresh(ctx, s.now().In(s.location))
	s.logger.WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"origin":  report.Origin,
		"status":  report.Status,
		"records": report.Records,
	}).Info("Scheduled refresh finished")

	if s.notifier != nil {
		s.notifier.NotifyRefresh(report)
	}
}

func (s *RefreshScheduler) Stop() {
	s.logger.Info("Stopping refresh scheduler")
	ctx := s.cronEngine.Stop() // waits for a running refresh
	<-ctx.Done()
	s.logger.Info("Refresh scheduler gracefully stopped")
}

// cronLogger routes cron's own messages to logrus.
type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
