package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/internal/infrastructure/buffer"
)

const (
	postgresPingTimeout = 3 * time.Second
	redisPingTimeout    = 2 * time.Second
)

// Monitor periodically pings the backing stores so the health endpoint and
// the buffer processor can act on connectivity state.
type Monitor struct {
	pg     *pgxpool.Pool
	redis  *redislib.Client
	buffer *buffer.Store

	interval time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}

	mu     sync.RWMutex
	status Status
}

func New(pg *pgxpool.Pool, redis *redislib.Client, buf *buffer.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		buffer:   buf,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.refresh()
		for {
			select {
			case <-ticker.C:
				m.refresh()
			case <-m.stopCh:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsOnline reports whether the primary task store is reachable. Redis
// being down blocks logins but buffered task writes only need Postgres.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.PostgreSQL
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) refresh() {
	status := Status{LastCheck: time.Now()}

	if m.pg != nil {
		ctx, cancel := context.WithTimeout(context.Background(), postgresPingTimeout)
		status.PostgreSQL = m.pg.Ping(ctx) == nil
		cancel()
	}

	if m.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		status.Redis = m.redis.Ping(ctx).Err() == nil
		cancel()
	}

	if m.buffer != nil {
		size, err := m.buffer.Size()
		if err != nil {
			m.logger.Warn("buffer size check failed", zap.Error(err))
		}
		status.Buffer = err == nil
		status.BufferSize = size
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
