package subm

import (
	"context"
	"log/slog"
	"sync"
)

// workerPool runs background units detached from the request path. Units are
// never cancelled once scheduled; Drain only waits for them.
type workerPool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	logger *slog.Logger
}

func newWorkerPool(workers int, queueSize int, logger *slog.Logger) *workerPool {
	p := &workerPool{
		tasks:  make(chan func(), queueSize),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *workerPool) run() {
	for task := range p.tasks {
		task()
		p.wg.Done()
	}
}

// Submit enqueues a background unit. When the queue is full the unit is
// spawned directly instead of being dropped: a silently lost unit would
// leave its submission pending forever.
func (p *workerPool) Submit(task func()) {
	p.wg.Add(1)
	select {
	case p.tasks <- task:
	default:
		p.logger.Warn("background queue is full, running unit in a dedicated goroutine")
		go func() {
			task()
			p.wg.Done()
		}()
	}
}

func (p *workerPool) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
