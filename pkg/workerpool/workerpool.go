package workerpool

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("workerpool: closed")

// Task is a unit of work for the pool.
// Fn must be safe to run concurrently with other tasks; it receives the
// context the task was submitted with.
// ResultC receives the outcome when set; it should be buffered.
type Task struct {
	Ctx     context.Context
	Fn      func(ctx context.Context) (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

type WorkerPool struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewWorkerPool starts workerCount workers sharing a queue of queueSize tasks.
func NewWorkerPool(workerCount int, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			wp.run(task)
		}
	}
}

func (wp *WorkerPool) run(task Task) {
	ctx := task.Ctx
	if ctx == nil {
		ctx = wp.ctx
	}
	var res Result
	if err := ctx.Err(); err != nil {
		res.Err = err
	} else {
		res.Value, res.Err = task.Fn(ctx)
	}
	if task.ResultC != nil {
		task.ResultC <- res
	}
}

// Submit queues a task. It blocks while the queue is full and gives up when
// the task context ends or the pool is closed.
func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrClosed
	}
	var done <-chan struct{}
	if task.Ctx != nil {
		done = task.Ctx.Done()
	}
	select {
	case wp.tasks <- task:
		return nil
	case <-done:
		return task.Ctx.Err()
	case <-wp.ctx.Done():
		return ErrClosed
	}
}

// Close stops the workers. Queued tasks that have not started are dropped.
func (wp *WorkerPool) Close() {
	wp.cancel()
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.tasks)
	}
	wp.mu.Unlock()
	wp.wg.Wait()
}

// Done is closed once the pool starts shutting down.
func (wp *WorkerPool) Done() <-chan struct{} {
	return wp.ctx.Done()
}
