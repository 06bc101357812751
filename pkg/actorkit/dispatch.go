package actorkit

import "reflect"

// caseInbox/caseEvents/caseInternal 是 reflect.Select case 切片里固定的
// 前三个位置，动态注册的通道从索引 3 开始追加。
const (
	caseInbox = iota
	caseEvents
	caseInternal
	fixedCaseCount
)

// Run 驱动 Actor 的主循环，直到处理器调用 Exit、或 host 的收件箱、事件流、
// 内部通道三者中任意一个被关闭（这三个是核心自己的通道，不同于用户注册
// 的动态通道：关闭其中任意一个就立即结束，不等另外两个也关闭）。处理器
// 中的 panic 不会被这里捕获，会直接从 Run 传播给调用者。
func (a *Actor[S]) Run(host Process) Result {
	ctx := &Context[S]{State: a.state, act: a, host: host}

	if a.init != nil {
		reply := a.init(ctx, nil, slotInit, "")
		switch r := reply.(type) {
		case ExitReply:
			return r.Result
		case NextReply:
			a.enqueueFromLoop(&InternalMessage{Type: internalTypeNext, Topic: r.Topic, Payload: r.Payload, HasPayload: r.HasPayload, From: "init"})
		}
		// 任何其它返回值（包括 nil）被忽略，Init 只在这两种情形下
		// 影响主循环的起点。
	}

	for {
		cases := a.buildSelectCases(host)
		chosen, value, ok := reflect.Select(cases)

		switch {
		case chosen == caseInbox:
			if !ok {
				// 收件箱关闭本身就是终止信号，不等事件流和内部通道——
				// 否则已关闭的收件箱在重建的 case 集合里永远就绪，
				// select 会一直命中这一条分支，主循环将不会继续前进。
				return newCompleted()
			}
			msg := value.Interface().(*Message)
			reply := a.topicDispatch(ctx, msg.Topic, msg.Payload, msg.From)
			if r, isExit := reply.(ExitReply); isExit {
				return r.Result
			}

		case chosen == caseEvents:
			if !ok {
				return newCompleted()
			}
			ev := value.Interface().(*Event)
			if result, exit := a.dispatchEvent(ctx, host, ev); exit {
				return result
			}

		case chosen == caseInternal:
			if !ok {
				// 内部通道由运行时自己创建，正常运行中不会被关闭；一旦
				// 观察到关闭，按同样的核心通道关闭语义立即结束。
				return newCompleted()
			}
			im := value.Interface().(*InternalMessage)
			if result, exit := a.dispatchInternal(ctx, im); exit {
				return result
			}

		default:
			entry := a.channels.entryAt(chosen - fixedCaseCount)
			if entry == nil {
				continue
			}
			if !ok {
				a.channels.removeClosed(entry)
				a.logger.Debug("actorkit: registered channel closed, removing", "channel", entry.id)
				if reply := entry.callback(ctx, nil, false, entry.id); reply != nil {
					if r, isExit := reply.(ExitReply); isExit {
						return r.Result
					}
					if r, isNext := reply.(NextReply); isNext {
						a.enqueueFromLoop(eventNextMessage(r, entry.id))
					}
				}
				continue
			}
			if reply := entry.callback(ctx, value.Interface(), true, entry.id); reply != nil {
				if r, isExit := reply.(ExitReply); isExit {
					return r.Result
				}
				if r, isNext := reply.(NextReply); isNext {
					a.enqueueFromLoop(eventNextMessage(r, entry.id))
				}
			}
		}
	}
}

// buildSelectCases 按固定顺序 [inbox, events, internal, ...用户通道]
// 重建 select case 集合，每轮主循环都重新构建一次，反映上一轮处理器
// 可能新增或移除的通道。
func (a *Actor[S]) buildSelectCases(host Process) []reflect.SelectCase {
	base := []reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(host.Inbox())},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(host.Events())},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(a.internal)},
	}
	return a.channels.buildCases(base)
}

// topicDispatch 是 Next 链的同步分派器：用循环实现而不是递归调用，
// 这样任意长度的主题链都不会消耗额外的调用栈。
func (a *Actor[S]) topicDispatch(ctx *Context[S], topic string, payload any, from string) Reply {
	currentTopic := topic
	currentPayload := payload

	for {
		h := a.handlers.lookup(currentTopic)
		if h == nil {
			h = a.deflt
		}
		if h == nil {
			a.logger.Debug("actorkit: dropping message, no handler for topic", "topic", currentTopic, "from", from)
			return nil
		}

		reply := h(ctx, currentPayload, currentTopic, from)
		nr, isNext := reply.(NextReply)
		if !isNext {
			return reply
		}

		if nr.HasPayload {
			currentPayload = nr.Payload
		}
		if nr.Topic == "" {
			currentTopic = slotDefault
		} else {
			currentTopic = nr.Topic
		}
	}
}

// dispatchEvent 先调用 OnEvent（如果安装了），再在事件种类与取消事件名
// 匹配时额外调用 OnCancel。两个槛位都可能返回 Exit 结束运行；如果
// OnEvent 已经返回 Exit，OnCancel 不会再被调用。
func (a *Actor[S]) dispatchEvent(ctx *Context[S], host Process, ev *Event) (Result, bool) {
	if a.onEvent != nil {
		reply := a.onEvent(ctx, ev, ev.Kind, ev.From)
		switch r := reply.(type) {
		case ExitReply:
			return r.Result, true
		case NextReply:
			a.enqueueFromLoop(eventNextMessage(r, "event_handler"))
		}
	}

	if ev.Kind == host.EventKinds().Cancel && a.onCancel != nil {
		reply := a.onCancel(ctx, ev, ev.Kind, ev.From)
		switch r := reply.(type) {
		case ExitReply:
			return r.Result, true
		case NextReply:
			a.enqueueFromLoop(eventNextMessage(r, "on_cancel"))
		}
	}

	return nil, false
}

func eventNextMessage(r NextReply, from string) *InternalMessage {
	im := &InternalMessage{Type: internalTypeNext, Topic: r.Topic, From: from}
	if r.HasPayload {
		im.Payload = r.Payload
		im.HasPayload = true
	}
	return im
}

// dispatchInternal 处理一条从内部通道取出的消息：Type 为 "__next" 的是
// Next 链的延续，直接重新进入 topicDispatch；Async 产生的 Exit 会在这里
// 直接结束 Run；其余 Type（包括 [Context.PostInternal] 直接投递的）交给
// OnInternalMessage 槛位，原样把 Type 作为第三个参数传入。
func (a *Actor[S]) dispatchInternal(ctx *Context[S], im *InternalMessage) (Result, bool) {
	if im.exitRequested {
		return im.exitResult, true
	}

	if im.Type == internalTypeNext {
		reply := a.topicDispatch(ctx, im.Topic, im.Payload, im.From)
		if r, isExit := reply.(ExitReply); isExit {
			return r.Result, true
		}
		return nil, false
	}

	if a.onIntMsg == nil {
		return nil, false
	}
	reply := a.onIntMsg(ctx, im.Payload, im.Type, im.From)
	switch r := reply.(type) {
	case ExitReply:
		return r.Result, true
	case NextReply:
		a.enqueueFromLoop(eventNextMessage(r, im.From))
	}
	return nil, false
}

// enqueueFromLoop 把主循环自己产生的内部消息（Init/OnEvent/OnCancel/
// OnInternalMessage 返回的 Next）放进内部通道。这里必须是非阻塞的：
// 主循环同时是这个通道唯一的消费者，阻塞发送会导致死锁。缓冲区按
// InternalBufferSize 配置，正常情况下足够容纳一轮分派产生的 Next；
// 万一打满，消息会被丢弃——这与 Context.Async 里对异步生产者允许
// 阻塞发送是两种不同的场景，不能用同一种处理方式。
func (a *Actor[S]) enqueueFromLoop(im *InternalMessage) {
	select {
	case a.internal <- im:
	default:
		a.droppedInternal.Add(1)
		a.logger.Warn("actorkit: internal channel full, dropping Next", "topic", im.Topic, "from", im.From)
	}
}
