package jobs

import (
	"context"
	"log/slog"
	"time"
)

const (
	JobSessionPurge      = "session_purge"
	JobDocumentRetention = "document_retention"
)

// SessionPurger drops expired sessions. Only the in-memory store needs it;
// Redis expires keys itself.
type SessionPurger interface {
	Purge(now time.Time) int
}

// DocumentPruner removes generated documents last modified before cutoff.
type DocumentPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

type Config struct {
	SessionPurgeInterval time.Duration
	RetentionInterval    time.Duration
	RetentionPeriod      time.Duration
}

type Service struct {
	cfg      Config
	sessions SessionPurger
	files    DocumentPruner
	logger   *slog.Logger
	queue    chan job
	now      func() time.Time
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(cfg Config, sessions SessionPurger, files DocumentPruner, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		sessions: sessions,
		files:    files,
		logger:   logger,
		queue:    make(chan job, 16),
		now:      time.Now,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.sessions != nil && s.cfg.SessionPurgeInterval > 0 {
		go s.schedule(ctx, s.cfg.SessionPurgeInterval, JobSessionPurge, s.purgeSessions)
	}
	if s.files != nil && s.cfg.RetentionInterval > 0 && s.cfg.RetentionPeriod > 0 {
		go s.schedule(ctx, s.cfg.RetentionInterval, JobDocumentRetention, s.pruneDocuments)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		s.logger.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.logger.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	start := s.now()
	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	s.logger.Info("job run", "jobType", j.Type, "status", status, "details", details, "durationMs", s.now().Sub(start).Milliseconds())
	return details, err
}

func (s *Service) schedule(ctx context.Context, interval time.Duration, jobType string, run func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(jobType, run)
		}
	}
}

func (s *Service) purgeSessions(context.Context) (any, error) {
	return map[string]any{"purged": s.sessions.Purge(s.now())}, nil
}

func (s *Service) pruneDocuments(ctx context.Context) (any, error) {
	cutoff := s.now().Add(-s.cfg.RetentionPeriod)
	deleted, err := s.files.Prune(ctx, cutoff)
	return map[string]any{"cutoff": cutoff, "deleted": deleted}, err
}
