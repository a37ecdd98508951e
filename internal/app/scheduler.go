package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurger удаляет истёкшие сессии
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	purger   SessionPurger
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(purger SessionPurger, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		purger:   purger,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("purge_interval", s.interval))
	go s.runSessionPurgeTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) runSessionPurgeTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.purgeSessions(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeSessions(ctx)
		case <-s.stopChan:
			s.logger.Info("Session purge task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session purge task cancelled")
			return
		}
	}
}

func (s *Scheduler) purgeSessions(ctx context.Context) {
	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to purge expired sessions", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Expired sessions purged", zap.Int64("count", n))
	}
}
