package actorkit

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Spawner 决定 [Context.Async] 提交的工作在何处执行。默认实现
// [GoSpawner] 无限制地启动新 goroutine；[SemaphoreSpawner] 用
// [golang.org/x/sync/semaphore] 限制同时在运行的异步工作数量。
type Spawner interface {
	Spawn(fn func())
}

// GoSpawner 为每个提交的工作启动一个新的 goroutine，不做任何限流。
type GoSpawner struct{}

// Spawn 实现 [Spawner]。
func (GoSpawner) Spawn(fn func()) {
	go fn()
}

// SemaphoreSpawner 用带权重的信号量限制同时运行的异步工作数量，超出
// 限制的 Spawn 调用会阻塞，直到有名额释放。
type SemaphoreSpawner struct {
	sem *semaphore.Weighted
}

// NewSemaphoreSpawner 创建一个最多同时运行 n 个异步工作的 Spawner。
func NewSemaphoreSpawner(n int64) *SemaphoreSpawner {
	return &SemaphoreSpawner{sem: semaphore.NewWeighted(n)}
}

// Spawn 实现 [Spawner]；阻塞获取信号量后才会启动 goroutine。
func (s *SemaphoreSpawner) Spawn(fn func()) {
	ctx := context.Background()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return
	}
	go func() {
		defer s.sem.Release(1)
		fn()
	}()
}
