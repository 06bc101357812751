package actorkit

import (
	"fmt"
	"strings"
)

// 保留的生命周期槛位名，不允许出现在 Handlers.Topics 中。
const (
	slotInit              = "__init"
	slotOnEvent           = "__on_event"
	slotOnCancel          = "__on_cancel"
	slotOnInternalMessage = "__on_internal_message"
	slotDefault           = "__default"
)

// internalTypeNext 是内部消息里唯一被核心特殊解释的 Type：携带它的消息
// 重新进入主题分派（topicDispatch），其它 Type 都转交给
// OnInternalMessage 槛位，原样传入 Type 作为第三个参数。
const internalTypeNext = "__next"

// Message 是从收件箱投递给 Actor 的一条用户消息。
type Message struct {
	// From 是发送者的标识，宿主决定其格式（通常是 PID 字符串）。
	From string
	// Topic 选择初始分派进入的主题处理器。
	Topic string
	// Payload 是任意类型的消息内容。
	Payload any
}

// Event 是宿主推送给 Actor 的带外通知（取消、超时、宿主自定义事件等）。
type Event struct {
	// Kind 标识事件种类，与 [EventKindNames] 中登记的名字比较。
	Kind string
	// From 是事件来源标识，可为空。
	From string
	// Fields 携带事件的附加数据。
	Fields map[string]any
}

// InternalMessage 是 Actor 自身通过内部通道重新进入主循环的消息，
// 合法的生产者是主题链产生的 Next、生命周期槛位返回的 Next、
// [Context.Async] 中异步函数返回的 Reply，以及 [Context.PostInternal]
// 直接投递的自定义类型消息。
type InternalMessage struct {
	// Type 区分内部消息的种类。核心只对 [internalTypeNext]（"__next"）
	// 赋予特殊含义：重新进入主题分派。其它 Type 一律转交
	// OnInternalMessage 槛位，原样作为第三个参数传入。
	Type string
	// Topic 是 Type 为 "__next" 时携带的目标主题；其它 Type 下
	// Topic 保持为空，由 OnInternalMessage 槛位解释 Payload。
	Topic string
	// Payload 是消息负载。
	Payload any
	// HasPayload 区分"负载为 nil"与"未提供负载"（沿用原主题负载）。
	HasPayload bool
	// From 标识内部消息的产生来源（如 "init"、"event_handler"、"async"）。
	From string

	// exitRequested/exitResult 承载一次 Async 回调产生的 Exit：由于 Exit
	// 必须让 Run 返回，而内部消息本身要经过同一条 channel 才能保证与
	// 其它内部消息的顺序，这两个字段让 Exit 也能安全地走这条通道。
	exitRequested bool
	exitResult    any
}

// Reply 是处理器的返回值类型，只能是 [ExitReply] 或 [NextReply]，
// 由 [Exit] 和 [Next] 构造。nil 也是合法的 Reply：表示处理器既不
// 退出也不链接到其它主题，主循环继续等待下一次外部输入。
type Reply interface {
	replyMarker()
}

// ExitReply 让 Actor 的主循环返回，Run 的返回值即 Result。
type ExitReply struct {
	Result any
}

func (ExitReply) replyMarker() {}

// NextReply 将当前主题切换到 Topic，并按 HasPayload 决定是否用
// Payload 替换当前负载继续分派。
type NextReply struct {
	Topic      string
	Payload    any
	HasPayload bool
}

func (NextReply) replyMarker() {}

// Exit 构造一个终止运行的 [Reply]，result 会原样出现在 [Actor.Run] 的返回值中。
func Exit(result any) Reply {
	return ExitReply{Result: result}
}

// Next 构造一个继续分派的 [Reply]，切换到 topic。payload 是可选参数：
//   - 不传：沿用当前负载（HasPayload=false）
//   - 传一个值（包括 nil）：替换当前负载（HasPayload=true）
//
// 这个区分是为了让"没有新负载"与"新负载恰好是 nil"可以被区分开。
func Next(topic string, payload ...any) Reply {
	nr := NextReply{Topic: topic}
	if len(payload) > 0 {
		nr.HasPayload = true
		nr.Payload = payload[0]
	}
	return nr
}

// Handler 是按主题分派的处理器签名，同时也是 Init、OnInternalMessage
// 槛位的签名：ctx 提供能力，payload 是当前负载，topic 是当前主题名
// （unknown topic 落到 Default 时仍保留原始主题名），from 是来源标识。
type Handler[S any] func(ctx *Context[S], payload any, topic string, from string) Reply

// EventHandler 是 OnEvent、OnCancel 槛位的签名。
type EventHandler[S any] func(ctx *Context[S], event *Event, kind string, from string) Reply

// Handlers 是 Actor 的处理器集合：五个保留槛位加一个可变的主题映射。
type Handlers[S any] struct {
	// Init 在 Run 开始时调用一次，可以返回 Next 为第一条分派预热主题链，
	// 或返回 Exit 让 Actor 在收到任何外部输入之前就结束。返回其它值
	// （包括 nil）会被忽略。
	Init Handler[S]
	// OnEvent 在每个事件到达时先被调用（如果非 nil）。
	OnEvent EventHandler[S]
	// OnCancel 在事件的 Kind 与宿主登记的取消事件名匹配时额外被调用，
	// 在 OnEvent 之后。
	OnCancel EventHandler[S]
	// OnInternalMessage 处理 Type 不是 "__next" 的内部消息，以
	// (ctx, payload, Type, from) 的形式调用。
	OnInternalMessage Handler[S]
	// Default 是未知主题的兜底处理器。
	Default Handler[S]
	// Topics 是主题名到处理器的映射，键不能是保留槛位名。
	Topics map[string]Handler[S]
}

// ErrorKind 区分 [ActorError] 的错误类别。
type ErrorKind int

const (
	// ErrInvalidHandlers 表示 Handlers 配置本身不合法（如保留名冲突）。
	ErrInvalidHandlers ErrorKind = iota
	// ErrInvalidHandler 表示某个具体的处理器值不合法（如 AddHandler 收到
	// 空主题或 nil 处理器）。
	ErrInvalidHandler
	// ErrInvalidChannel 表示传给 RegisterChannel 的值不是可接收的 channel。
	ErrInvalidChannel
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidHandlers:
		return "invalid_handlers"
	case ErrInvalidHandler:
		return "invalid_handler"
	case ErrInvalidChannel:
		return "invalid_channel"
	default:
		return "unknown"
	}
}

// ActorError 是 actorkit 返回的结构化错误，Kind 用于编程式判断，
// Topic 在与某个具体主题相关时被填充。
type ActorError struct {
	Kind    ErrorKind
	Topic   string
	Message string
}

func (e *ActorError) Error() string {
	if e.Topic != "" {
		return fmt.Sprintf("actorkit: %s: %s (topic=%q)", e.Kind, e.Message, e.Topic)
	}
	return fmt.Sprintf("actorkit: %s: %s", e.Kind, e.Message)
}

func newHandlersError(format string, args ...any) *ActorError {
	return &ActorError{Kind: ErrInvalidHandlers, Message: fmt.Sprintf(format, args...)}
}

func newHandlerError(topic, format string, args ...any) *ActorError {
	return &ActorError{Kind: ErrInvalidHandler, Topic: topic, Message: fmt.Sprintf(format, args...)}
}

func newChannelError(format string, args ...any) *ActorError {
	return &ActorError{Kind: ErrInvalidChannel, Message: fmt.Sprintf(format, args...)}
}

// isReservedSlot 报告 topic 是否是保留的生命周期槛位名：五个槛位名以及
// 任何以 "__" 开头的名字。
func isReservedSlot(topic string) bool {
	switch topic {
	case slotInit, slotOnEvent, slotOnCancel, slotOnInternalMessage, slotDefault:
		return true
	default:
		return strings.HasPrefix(topic, "__")
	}
}
