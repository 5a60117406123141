package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services. A dependency
// that is not configured reports true.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last probe.
func (h HealthStatus) Healthy() bool { return h.Mongo && h.Redis }

// HealthMonitor keeps the latest dependency snapshot in memory.
type HealthMonitor struct {
	mongo    *mongo.Client
	redis    *redis.Client
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongoClient *mongo.Client, redisClient *redis.Client, interval time.Duration, logger *zap.Logger) *HealthMonitor {
	return &HealthMonitor{mongo: mongoClient, redis: redisClient, interval: interval, logger: logger}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Start probes once immediately and then on every tick until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.check(ctx)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

func (m *HealthMonitor) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now().UTC()}
	status.Mongo = m.mongo == nil || m.mongo.Ping(ctx, nil) == nil
	status.Redis = m.redis == nil || m.redis.Ping(ctx).Err() == nil
	if !status.Healthy() {
		m.logger.Warn("Dependency health check failed", zap.Bool("mongo", status.Mongo), zap.Bool("redis", status.Redis))
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
}
