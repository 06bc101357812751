package actorkit

import (
	"sync"
	"sync/atomic"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 主题分派统计信息
// ═══════════════════════════════════════════════════════════════════════════

// DispatchStats 记录主题处理器的运行时统计信息。
type DispatchStats struct {
	// 分派计数
	Dispatched int64 // 进入过处理器的主题分派次数（包含 Next 链的每一跳）
	Handled    int64 // 成功返回（未 panic）的分派次数
	Errors     int64 // 处理器 panic 的次数（记录后仍会重新抛出）

	// 延迟统计
	TotalLatency   time.Duration
	AverageLatency time.Duration
	MaxLatency     time.Duration
	MinLatency     time.Duration

	// 时间戳
	StartedAt       time.Time
	LastDispatchAt  time.Time
	LastErrorAt     time.Time

	// 错误信息
	LastError any // panic 恢复出来的原始值，类型不定
}

// Clone 克隆统计信息（线程安全的快照）。
func (s *DispatchStats) Clone() *DispatchStats {
	clone := *s
	return &clone
}

// ═══════════════════════════════════════════════════════════════════════════
// StatsCollector 统计收集器
// ═══════════════════════════════════════════════════════════════════════════

// StatsCollector 线程安全的统计收集器。
type StatsCollector struct {
	mu    sync.RWMutex
	stats DispatchStats
}

// NewStatsCollector 创建统计收集器。
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		stats: DispatchStats{
			StartedAt:  time.Now(),
			MinLatency: time.Duration(1<<63 - 1),
		},
	}
}

// RecordDispatch 记录一次进入处理器。
func (c *StatsCollector) RecordDispatch() {
	c.mu.Lock()
	c.stats.Dispatched++
	c.stats.LastDispatchAt = time.Now()
	c.mu.Unlock()
}

// RecordHandled 记录一次成功返回的处理器调用。
func (c *StatsCollector) RecordHandled(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Handled++
	c.stats.TotalLatency += latency
	if c.stats.Handled > 0 {
		c.stats.AverageLatency = c.stats.TotalLatency / time.Duration(c.stats.Handled)
	}
	if latency > c.stats.MaxLatency {
		c.stats.MaxLatency = latency
	}
	if latency < c.stats.MinLatency {
		c.stats.MinLatency = latency
	}
}

// RecordError 记录一次处理器 panic，err 是 recover() 拿到的原始值。
func (c *StatsCollector) RecordError(err any) {
	c.mu.Lock()
	c.stats.Errors++
	c.stats.LastError = err
	c.stats.LastErrorAt = time.Now()
	c.mu.Unlock()
}

// Stats 获取统计快照。
func (c *StatsCollector) Stats() *DispatchStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats.Clone()
}

// Reset 重置统计。
func (c *StatsCollector) Reset() {
	c.mu.Lock()
	c.stats = DispatchStats{
		StartedAt:  time.Now(),
		MinLatency: time.Duration(1<<63 - 1),
	}
	c.mu.Unlock()
}

// ═══════════════════════════════════════════════════════════════════════════
// WithStats 装饰器
// ═══════════════════════════════════════════════════════════════════════════

// WithStats 包装 h 中的每个主题处理器（包括 Default，不包括生命周期
// 槛位）以记录分派延迟到 collector。它不吞掉 panic：处理器的 panic 会
// 先被 recover 并记录到 collector.RecordError，然后原样重新抛出，保持
// 运行时"核心不捕获处理器 panic"的约定不被破坏。
func WithStats[S any](h Handlers[S], collector *StatsCollector) Handlers[S] {
	wrapped := Handlers[S]{
		Init:              h.Init,
		OnEvent:           h.OnEvent,
		OnCancel:          h.OnCancel,
		OnInternalMessage: h.OnInternalMessage,
		Topics:            make(map[string]Handler[S], len(h.Topics)),
	}
	for topic, fn := range h.Topics {
		wrapped.Topics[topic] = instrument(fn, collector)
	}
	if h.Default != nil {
		wrapped.Default = instrument(h.Default, collector)
	}
	return wrapped
}

func instrument[S any](fn Handler[S], collector *StatsCollector) Handler[S] {
	return func(ctx *Context[S], payload any, topic string, from string) Reply {
		collector.RecordDispatch()
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				collector.RecordError(r)
				panic(r)
			}
			collector.RecordHandled(time.Since(start))
		}()
		return fn(ctx, payload, topic, from)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 原子统计收集器（更高性能版本）
// ═══════════════════════════════════════════════════════════════════════════

// AtomicStatsCollector 使用原子操作的高性能统计收集器，适用于高吞吐
// 场景，但功能较 StatsCollector 简化（没有 Min/Max 延迟）。
type AtomicStatsCollector struct {
	dispatched     atomic.Int64
	handled        atomic.Int64
	errors         atomic.Int64
	totalLatencyNs atomic.Int64

	mu             sync.RWMutex
	startedAt      time.Time
	lastDispatchAt time.Time
	lastError      any
}

// NewAtomicStatsCollector 创建原子统计收集器。
func NewAtomicStatsCollector() *AtomicStatsCollector {
	return &AtomicStatsCollector{startedAt: time.Now()}
}

// RecordDispatch 记录一次进入处理器（原子操作）。
func (c *AtomicStatsCollector) RecordDispatch() {
	c.dispatched.Add(1)
	c.mu.Lock()
	c.lastDispatchAt = time.Now()
	c.mu.Unlock()
}

// RecordHandled 记录一次成功返回（原子操作）。
func (c *AtomicStatsCollector) RecordHandled(latency time.Duration) {
	c.handled.Add(1)
	c.totalLatencyNs.Add(int64(latency))
}

// RecordError 记录一次处理器 panic。
func (c *AtomicStatsCollector) RecordError(err any) {
	c.errors.Add(1)
	c.mu.Lock()
	c.lastError = err
	c.mu.Unlock()
}

// Stats 获取统计快照。
func (c *AtomicStatsCollector) Stats() *DispatchStats {
	dispatched := c.dispatched.Load()
	handled := c.handled.Load()
	errors := c.errors.Load()
	totalLatency := time.Duration(c.totalLatencyNs.Load())

	var avgLatency time.Duration
	if handled > 0 {
		avgLatency = totalLatency / time.Duration(handled)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return &DispatchStats{
		Dispatched:     dispatched,
		Handled:        handled,
		Errors:         errors,
		TotalLatency:   totalLatency,
		AverageLatency: avgLatency,
		StartedAt:      c.startedAt,
		LastDispatchAt: c.lastDispatchAt,
		LastError:      c.lastError,
	}
}
