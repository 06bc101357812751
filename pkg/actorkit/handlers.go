package actorkit

// validateHandlers 检查 Handlers.Topics 不包含保留槛位名，也不包含 nil 处理器。
// 生命周期槛位（Init/OnEvent/OnCancel/OnInternalMessage/Default）允许为 nil，
// 代表"未安装该槛位"。
func validateHandlers[S any](h Handlers[S]) error {
	for topic, fn := range h.Topics {
		if isReservedSlot(topic) {
			return newHandlersError("topic %q is a reserved lifecycle slot and cannot appear in Topics", topic)
		}
		if fn == nil {
			return newHandlersError("handler for topic %q is nil", topic)
		}
	}
	return nil
}

// handlerRegistry 持有运行期可变的主题映射，只由主循环所在的 goroutine
// 读写（Init/OnEvent/topic 处理器通过 Context 调用 AddHandler/RemoveHandler
// 都发生在同一个 goroutine 内，异步回调只能通过 Reply 间接生效），因此不
// 需要互斥锁保护。
type handlerRegistry[S any] struct {
	topics map[string]Handler[S]
}

func newHandlerRegistry[S any](initial map[string]Handler[S]) *handlerRegistry[S] {
	topics := make(map[string]Handler[S], len(initial))
	for k, v := range initial {
		topics[k] = v
	}
	return &handlerRegistry[S]{topics: topics}
}

func (r *handlerRegistry[S]) add(topic string, fn Handler[S]) error {
	if topic == "" {
		return newHandlerError(topic, "topic must not be empty")
	}
	if isReservedSlot(topic) {
		return newHandlerError(topic, "cannot add a handler for reserved slot %q", topic)
	}
	if fn == nil {
		return newHandlerError(topic, "cannot add a nil handler for topic %q", topic)
	}
	r.topics[topic] = fn
	return nil
}

func (r *handlerRegistry[S]) remove(topic string) bool {
	if _, ok := r.topics[topic]; !ok {
		return false
	}
	delete(r.topics, topic)
	return true
}

func (r *handlerRegistry[S]) lookup(topic string) Handler[S] {
	return r.topics[topic]
}
