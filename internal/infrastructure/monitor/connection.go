package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/careerconnect/client/api/transport"
	"github.com/careerconnect/client/repository"
)

// Monitor tracks whether the backend is reachable and the local keystore is
// usable. The refresher consults it to skip revalidation while offline, and
// the status command surfaces it to the user.
type Monitor struct {
	api   *transport.Client
	creds repository.CredentialStore

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(api *transport.Client, creds repository.CredentialStore, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		api:      api,
		creds:    creds,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Backend
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh probes everything once, synchronously.
func (m *Monitor) Refresh() Status {
	status := Status{
		Backend:   m.checkBackend(),
		Keystore:  m.checkKeystore(),
		LastCheck: time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkBackend() bool {
	if m.api == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var out struct {
		Status string `json:"status"`
	}
	if err := m.api.Get(ctx, "/health", nil, &out); err != nil {
		m.logger.Debug("backend health check failed", zap.Error(err))
		return false
	}
	return out.Status == "healthy"
}

func (m *Monitor) checkKeystore() bool {
	if m.creds == nil {
		return false
	}
	if _, err := m.creds.Token(); err != nil {
		m.logger.Warn("keystore check failed", zap.Error(err))
		return false
	}
	return true
}
