package concurrency

import (
	"fmt"
	"time"

	"github.com/alitto/pond"
)

// PoolConfig holds configuration for a worker pool.
type PoolConfig struct {
	Name        string
	MaxWorkers  int
	MaxCapacity int
	IdleTimeout time.Duration
	NonBlocking bool // If true, Submit() returns an error instead of blocking when full
	// OnPanic is called with the recovered value when a task panics.
	OnPanic func(any)
}

// WorkerPool wraps alitto/pond with standardized config.
type WorkerPool struct {
	pool   *pond.WorkerPool
	config PoolConfig
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(cfg PoolConfig) *WorkerPool {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 10
	}
	if cfg.MaxCapacity <= 0 {
		cfg.MaxCapacity = 100
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.OnPanic == nil {
		cfg.OnPanic = func(any) {}
	}

	pool := pond.New(
		cfg.MaxWorkers,
		cfg.MaxCapacity,
		pond.MinWorkers(1),
		pond.IdleTimeout(cfg.IdleTimeout),
		pond.Strategy(pond.Balanced()),
		pond.PanicHandler(cfg.OnPanic),
	)

	return &WorkerPool{pool: pool, config: cfg}
}

// Submit adds a task to the pool.
func (wp *WorkerPool) Submit(task func()) error {
	if wp.config.NonBlocking {
		if !wp.pool.TrySubmit(task) {
			return fmt.Errorf("worker pool %q is full (capacity: %d)", wp.config.Name, wp.config.MaxCapacity)
		}
		return nil
	}
	wp.pool.Submit(task)
	return nil
}

// StopAndWait stops the pool after all submitted tasks finish.
func (wp *WorkerPool) StopAndWait() {
	wp.pool.StopAndWait()
}

// Stats returns pool counters for diagnostics.
func (wp *WorkerPool) Stats() map[string]any {
	return map[string]any{
		"running_workers":  wp.pool.RunningWorkers(),
		"idle_workers":     wp.pool.IdleWorkers(),
		"submitted_tasks":  wp.pool.SubmittedTasks(),
		"waiting_tasks":    wp.pool.WaitingTasks(),
		"successful_tasks": wp.pool.SuccessfulTasks(),
		"failed_tasks":     wp.pool.FailedTasks(),
	}
}
