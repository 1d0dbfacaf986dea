package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/careerconnect/client/domain"
)

// SessionStore is the slice of the session store the refresher needs.
type SessionStore interface {
	IsAuthenticated() bool
	Revalidate(ctx context.Context) error
}

// ConnectionHealth abstracts the connection monitor.
type ConnectionHealth interface {
	IsOnline() bool
}

// SessionRefresher periodically revalidates the cached session against the
// backend so an expired or revoked credential is noticed without waiting
// for the next user-initiated request. An unauthorized result flows through
// the transport's standard forced-logout path.
type SessionRefresher struct {
	store    SessionStore
	monitor  ConnectionHealth
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
}

func NewSessionRefresher(store SessionStore, monitor ConnectionHealth, interval time.Duration, logger *zap.Logger) *SessionRefresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sr := &SessionRefresher{
		store:    store,
		monitor:  monitor,
		logger:   logger,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = sr.cron.AddFunc(schedule, sr.refresh)

	return sr
}

// Start launches the cron scheduler.
func (sr *SessionRefresher) Start() {
	if sr == nil || sr.cron == nil {
		return
	}
	sr.cron.Start()
	sr.logger.Info("session refresher started", zap.Duration("interval", sr.interval))
}

// Stop gracefully stops the scheduler.
func (sr *SessionRefresher) Stop(ctx context.Context) {
	if sr == nil || sr.cron == nil {
		return
	}
	stopCtx := sr.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	sr.logger.Info("session refresher stopped")
}

func (sr *SessionRefresher) refresh() {
	if !sr.store.IsAuthenticated() {
		return
	}
	if sr.monitor != nil && !sr.monitor.IsOnline() {
		sr.logger.Debug("skipping session refresh (offline)")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sr.interval)
	defer cancel()

	if err := sr.store.Revalidate(ctx); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			// forced logout already happened via the transport hook
			sr.logger.Info("session no longer valid")
			return
		}
		sr.logger.Warn("session refresh failed", zap.Error(err))
	}
}
