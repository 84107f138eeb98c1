package service

import (
	"context"

	"gestion-bot/pkg/metrics"
	"gestion-bot/pkg/workerpool"
)

// AsyncService runs blocking calls on the shared worker pool so a burst of
// chat updates never opens more API connections than there are workers.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

// SubmitAsync blocks until fn has run on a worker or ctx is done.
func (a *AsyncService) SubmitAsync(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	metrics.AddPoolPending(1)
	defer metrics.AddPoolPending(-1)

	if err := a.Pool.Submit(workerpool.Task{Ctx: ctx, Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.Pool.Done():
		return nil, workerpool.ErrClosed
	}
}

func runAsync[T any](ctx context.Context, a *AsyncService, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if a == nil {
		return fn(ctx)
	}
	v, err := a.SubmitAsync(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}
