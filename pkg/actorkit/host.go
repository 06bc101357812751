package actorkit

import (
	"github.com/google/uuid"
)

// Process 是 Actor 运行时对外部世界的唯一依赖：提供收件箱、事件流、
// 发送能力和自身标识。宿主负责把 Inbox 和 Events 两个通道的生命周期
// 管理妥当（关闭时机、缓冲大小），运行时只负责从中接收。
type Process interface {
	// Inbox 返回收件箱通道，每次 Run 调用只应被排空一次。
	Inbox() <-chan *Message
	// Events 返回事件通道。
	Events() <-chan *Event
	// Send 把一条消息投递给 dest 标识的进程，语义由宿主决定（本地投递、
	// 网络转发等），Actor 核心本身不关心。
	Send(dest, topic string, payload any)
	// PID 返回当前进程自身的标识。
	PID() string
	// EventKinds 返回本次 Run 使用的事件种类命名约定。
	EventKinds() EventKindNames
}

// LocalHost 是 [Process] 的内存实现：一对 buffered channel 充当收件箱
// 和事件流，Send 通过一个用户提供的路由函数投递到其它 LocalHost。
type LocalHost struct {
	pid    string
	inbox  chan *Message
	events chan *Event
	kinds  EventKindNames
	router func(to, topic string, payload any)
}

// NewLocalHost 创建一个内存宿主，pid 为空时用 [github.com/google/uuid]
// 铸造一个新标识。bufferSize 控制 Inbox 和 Events 两个通道各自的容量。
func NewLocalHost(pid string, bufferSize int, kinds EventKindNames, router func(to, topic string, payload any)) *LocalHost {
	if pid == "" {
		pid = uuid.NewString()
	}
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &LocalHost{
		pid:    pid,
		inbox:  make(chan *Message, bufferSize),
		events: make(chan *Event, bufferSize),
		kinds:  kinds,
		router: router,
	}
}

// Inbox 实现 [Process].
func (h *LocalHost) Inbox() <-chan *Message { return h.inbox }

// Events 实现 [Process].
func (h *LocalHost) Events() <-chan *Event { return h.events }

// PID 实现 [Process].
func (h *LocalHost) PID() string { return h.pid }

// EventKinds 实现 [Process].
func (h *LocalHost) EventKinds() EventKindNames { return h.kinds }

// Send 实现 [Process]，委托给构造时传入的 router；router 为 nil 时
// Send 是空操作。
func (h *LocalHost) Send(dest, topic string, payload any) {
	if h.router != nil {
		h.router(dest, topic, payload)
	}
}

// Deliver 把一条消息放进本地收件箱，用于测试或进程内路由。
func (h *LocalHost) Deliver(msg *Message) {
	h.inbox <- msg
}

// Cancel 把一个 Kind 与取消事件名一致的 Event 放进事件流，用于测试
// 或进程内触发 OnCancel。
func (h *LocalHost) Cancel(from string) {
	h.events <- &Event{Kind: h.kinds.Cancel, From: from}
}

// Emit 把一条任意事件放进事件流。
func (h *LocalHost) Emit(ev *Event) {
	h.events <- ev
}

// Close 关闭收件箱和事件流。核心通道关闭是立即终止信号：Run 一旦在
// select 中观察到其中任意一个关闭就返回，不保证另一个通道里已经排队
// 的消息会先被处理完。只关闭收件箱（事件流保持打开）时，收件箱里已排队
// 的消息一定先于它的关闭信号被收到；只关闭事件流时，事件流同理。
func (h *LocalHost) Close() {
	close(h.inbox)
	close(h.events)
}
