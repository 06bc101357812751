package actorkit

import (
	"fmt"
	"reflect"
)

// ChannelCallback 是动态注册通道的回调签名。value 是从通道收到的值
// （已从 reflect.Value 还原为 any），ok 为 false 表示通道已关闭，
// 运行时会在调用完 ok=false 的回调后自动移除该通道。id 是
// [Context.RegisterChannel] 返回的稳定标识，用于在回调里区分来源。
// 返回值与主题处理器一样是一个 [Reply]：Exit 结束 Run，Next 把当前
// 主题链从这个来源继续下去，nil 表示"只是副作用，不驱动任何链"。
type ChannelCallback[S any] func(ctx *Context[S], value any, ok bool, id string) Reply

// channelEntry 是已注册通道的内部记录。
type channelEntry[S any] struct {
	ch       any
	id       string
	value    reflect.Value
	callback ChannelCallback[S]
}

// channelRegistry 管理动态注册的通道集合，只由主循环所在的 goroutine
// 访问（RegisterChannel/UnregisterChannel 都通过 Context 从处理器内部
// 调用），不需要互斥锁保护。order 保存稳定的注册顺序，用来在每轮主循环
// 前重建 select case 集合。
type channelRegistry[S any] struct {
	order  []*channelEntry[S]
	byChan map[any]*channelEntry[S]
}

func newChannelRegistry[S any]() *channelRegistry[S] {
	return &channelRegistry[S]{byChan: make(map[any]*channelEntry[S])}
}

// register 校验 ch 是一个可接收的 channel，生成稳定标识并登记回调。
// 对同一个 channel 值重复注册会替换其回调，保持原有的顺序位置。
func (r *channelRegistry[S]) register(ch any, cb ChannelCallback[S]) (string, error) {
	if ch == nil {
		return "", newChannelError("channel value is nil")
	}
	rv := reflect.ValueOf(ch)
	if rv.Kind() != reflect.Chan {
		return "", newChannelError("value of type %T is not a channel", ch)
	}
	if rv.Type().ChanDir() == reflect.SendDir {
		return "", newChannelError("channel of type %s is send-only and cannot be registered for receiving", rv.Type())
	}
	if cb == nil {
		return "", newChannelError("callback is nil")
	}

	id := fmt.Sprintf("chan-%#x", rv.Pointer())
	if existing, ok := r.byChan[ch]; ok {
		existing.callback = cb
		return existing.id, nil
	}

	entry := &channelEntry[S]{ch: ch, id: id, value: rv, callback: cb}
	r.byChan[ch] = entry
	r.order = append(r.order, entry)
	return id, nil
}

// unregister 移除先前注册的 channel，返回是否确实存在过。
func (r *channelRegistry[S]) unregister(ch any) bool {
	entry, ok := r.byChan[ch]
	if !ok {
		return false
	}
	delete(r.byChan, ch)
	for i, e := range r.order {
		if e == entry {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// removeClosed 移除一个已经确认关闭的通道，在主循环检测到 ok=false 后调用。
func (r *channelRegistry[S]) removeClosed(entry *channelEntry[S]) {
	r.unregister(entry.ch)
}

// buildCases 把 base 之后追加注册通道的 select case，返回值与
// r.order 按同一顺序对应，用来在 reflect.Select 返回索引后反查 entry。
func (r *channelRegistry[S]) buildCases(base []reflect.SelectCase) []reflect.SelectCase {
	cases := make([]reflect.SelectCase, len(base), len(base)+len(r.order))
	copy(cases, base)
	for _, entry := range r.order {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: entry.value})
	}
	return cases
}

func (r *channelRegistry[S]) entryAt(i int) *channelEntry[S] {
	if i < 0 || i >= len(r.order) {
		return nil
	}
	return r.order[i]
}
