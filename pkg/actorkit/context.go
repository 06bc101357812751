package actorkit

// Context 是处理器唯一能拿到的能力对象，在一次 Run 期间标识稳定不变，
// 处理器可以安全地把 Context 存入闭包跨多次调用复用。State 暴露给
// 处理器直接读写；同一次 Run 的所有分派共用这一个 Context，所以对
// State 的修改在后续分派中可见。约定 S 通常是指针类型，这样 Run 之外
// 持有同一指针的调用方也能看到修改；S 是值类型时，修改只留在这个
// Context 的副本里，传给 [New] 的初始值不变。
type Context[S any] struct {
	State S

	act  *Actor[S]
	host Process
}

// Self 返回宿主赋予的进程标识。
func (c *Context[S]) Self() string {
	return c.host.PID()
}

// AddHandler 安装或替换一个主题处理器。topic 不能是保留的生命周期槛位名。
func (c *Context[S]) AddHandler(topic string, fn Handler[S]) error {
	return c.act.handlers.add(topic, fn)
}

// RemoveHandler 移除一个主题处理器，返回是否确实存在过。
func (c *Context[S]) RemoveHandler(topic string) bool {
	return c.act.handlers.remove(topic)
}

// RegisterChannel 把 ch 加入运行时的 select 循环。ch 必须是可接收方向的
// channel（双向或只收），否则返回 [ErrInvalidChannel]。返回值 id 是该
// 通道的稳定标识，会在 cb 的调用中被重新传回，也会出现在通道关闭后的
// 最后一次回调里。对同一个 ch 重复注册会替换回调而不改变其在 select
// 中的相对位置。
func (c *Context[S]) RegisterChannel(ch any, cb ChannelCallback[S]) (string, error) {
	return c.act.channels.register(ch, cb)
}

// UnregisterChannel 从 select 循环中移除 ch，返回是否确实存在过。
func (c *Context[S]) UnregisterChannel(ch any) bool {
	return c.act.channels.unregister(ch)
}

// PostInternal 直接向内部通道投递一条自定义类型的消息，绕开 Next/Exit
// 控制令牌。msgType 不能是 "__next"（那是主题链延续专用的保留类型，
// 用 Next 生成）。消息最终会被 OnInternalMessage 槛位以
// (ctx, payload, msgType, from) 的形式收到。只能从处理器内部调用
// （即主循环自己所在的 goroutine），因此用非阻塞发送，通道打满时
// 丢弃并记录日志，语义与 Next 链产生的内部消息一致。
func (c *Context[S]) PostInternal(msgType string, payload any, from string) error {
	if msgType == internalTypeNext {
		return newHandlerError(msgType, "PostInternal: msgType %q is reserved for Next continuations", msgType)
	}
	c.act.enqueueFromLoop(&InternalMessage{Type: msgType, Payload: payload, HasPayload: true, From: from})
	return nil
}

// Async 在一个新的 goroutine 中运行 fn，并把其返回的 Reply 作为一条
// Next 来源为 "async" 的内部消息重新送回主循环。fn 不会拿到 Context 或
// State：这是状态单写者约束的唯一合法出口——异步工作只能通过返回值
// 参与状态变更，不能绕过主循环直接读写状态。fn 返回 Exit 时也会让 Run
// 结束（比"任何非 Next 返回值都被丢弃"多支持了一种情形，好让异步工作
// 也能触发退出）。
func (c *Context[S]) Async(fn func() Reply) {
	c.act.spawner.Spawn(func() {
		reply := fn()
		im := replyToInternal(reply, "async")
		if im == nil {
			return
		}
		// 生产者在主循环之外，阻塞发送是可以接受的：消费者（主循环）
		// 始终在排空这个 channel。
		c.act.internal <- im
	})
}

// replyToInternal 把一个处理器/异步函数的 Reply 转换成要重新注入主循环
// 的内部消息；Reply 是 nil 或者既非 Exit 也非 Next 时返回 nil（不产生
// 内部消息）。Exit 被包成一条携带退出语义的内部消息，由主循环在取出时
// 立即结束 Run。
func replyToInternal(reply Reply, from string) *InternalMessage {
	switch r := reply.(type) {
	case NextReply:
		return &InternalMessage{Type: internalTypeNext, Topic: r.Topic, Payload: r.Payload, HasPayload: r.HasPayload, From: from, exitRequested: false}
	case ExitReply:
		return &InternalMessage{From: from, exitRequested: true, exitResult: r.Result}
	default:
		return nil
	}
}
