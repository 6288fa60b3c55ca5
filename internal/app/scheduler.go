package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Roller переносит прошедшие интервалы доступности
type Roller interface {
	RolloverExpired(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	roller   Roller
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(roller Roller, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		roller:   roller,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("rollover_interval", s.interval))

	go s.runRolloverTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

// runRolloverTask периодически переносит прошедшие интервалы на следующие недели
func (s *Scheduler) runRolloverTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.rollover(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.rollover(ctx)
		case <-s.stopChan:
			s.logger.Info("Rollover task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Rollover task cancelled")
			return
		}
	}
}

func (s *Scheduler) rollover(ctx context.Context) {
	moved, err := s.roller.RolloverExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to roll over availability", zap.Error(err))
		return
	}

	s.logger.Debug("Rollover pass completed", zap.Int("records", moved))
}
