package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-marks-api/internal/dto"
)

// HealthTimestampLayout matches the millisecond ISO form clients already parse.
const HealthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const defaultProbeTimeout = 2 * time.Second

// Pinger is anything reachable with a round trip.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService probes the store and the optional cache.
type HealthService struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewHealthService constructs a HealthService. cache may be nil.
func NewHealthService(db, cache Pinger, timeout time.Duration, logger *zap.Logger) *HealthService {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{db: db, cache: cache, timeout: timeout, logger: logger, now: time.Now}
}

// Check never fails; an unreachable dependency is reported in the payload.
func (s *HealthService) Check(ctx context.Context) dto.HealthStatus {
	status := dto.HealthStatus{
		Status:    "ok",
		Database:  s.probe(ctx, "database", s.db),
		Timestamp: s.now().UTC().Format(HealthTimestampLayout),
	}
	if s.cache != nil {
		status.Cache = s.probe(ctx, "cache", s.cache)
	}
	return status
}

func (s *HealthService) probe(ctx context.Context, target string, p Pinger) string {
	if p == nil {
		return "disconnected"
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		s.logger.Warn("health probe failed", zap.String("target", target), zap.Error(err))
		return "disconnected"
	}
	return "connected"
}
