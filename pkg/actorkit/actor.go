package actorkit

import (
	"log/slog"
	"sync/atomic"
)

// Actor 是运行时实例，由 [New] 构造。泛型参数 S 是私有状态的类型。
type Actor[S any] struct {
	state    S
	handlers *handlerRegistry[S]
	init     Handler[S]
	onEvent  EventHandler[S]
	onCancel EventHandler[S]
	onIntMsg Handler[S]
	deflt    Handler[S]

	channels *channelRegistry[S]
	spawner  Spawner
	internal chan *InternalMessage
	cfg      *Config
	logger   *slog.Logger

	droppedInternal atomic.Int64
}

// DroppedInternal 返回主循环自身投递内部消息（Next 延续以及
// [Context.PostInternal] 的消息）时因内部通道缓冲区打满而丢弃的数量。
// 正常运行下应为零；非零说明 InternalBufferSize 配置过小，追不上主循环
// 自身产生内部消息的速度。
func (a *Actor[S]) DroppedInternal() int64 {
	return a.droppedInternal.Load()
}

// New 用初始状态和一组处理器构造一个 Actor。Handlers.Topics 中出现保留
// 槛位名或 nil 处理器会被拒绝。
func New[S any](initial S, handlers Handlers[S], opts ...Option[S]) (*Actor[S], error) {
	if err := validateHandlers(handlers); err != nil {
		return nil, err
	}

	a := &Actor[S]{
		state:    initial,
		handlers: newHandlerRegistry(handlers.Topics),
		init:     handlers.Init,
		onEvent:  handlers.OnEvent,
		onCancel: handlers.OnCancel,
		onIntMsg: handlers.OnInternalMessage,
		deflt:    handlers.Default,
		channels: newChannelRegistry[S](),
		spawner:  GoSpawner{},
		cfg:      DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.internal = make(chan *InternalMessage, a.cfg.InternalBufferSize)
	return a, nil
}

// Result 是 [Actor.Run] 的返回值，原样携带 Exit 提供的结果。
type Result any

// Completed 是 Run 在核心自己的三个通道（inbox、events、internal）中任意
// 一个被关闭时自然结束返回的结果，区分于处理器主动调用 Exit 的情形。
// 调用者可以对 [Actor.Run] 的返回值做 `result.(actorkit.Completed)` 类型
// 断言来判断"自然结束"而不是"处理器退出"，Status 固定为 "completed"。
type Completed struct {
	Status string
}

func newCompleted() Completed {
	return Completed{Status: "completed"}
}
