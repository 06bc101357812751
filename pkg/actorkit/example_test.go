package actorkit_test

import (
	"fmt"

	"github.com/lwmacct/go-pkg-actorkit/pkg/actorkit"
)

// counterState 示例状态，保存累加结果。
type counterState struct {
	total int
}

// Example_basic 演示主题处理器的基本使用：每条消息按 Topic 分派，
// 处理器直接修改状态并决定何时结束运行。
func Example_basic() {
	handlers := actorkit.Handlers[*counterState]{
		Topics: map[string]actorkit.Handler[*counterState]{
			"add": func(ctx *actorkit.Context[*counterState], payload any, topic string, from string) actorkit.Reply {
				ctx.State.total += payload.(int)
				fmt.Printf("total=%d\n", ctx.State.total)
				return nil
			},
			"stop": func(ctx *actorkit.Context[*counterState], payload any, topic string, from string) actorkit.Reply {
				return actorkit.Exit(ctx.State.total)
			},
		},
	}

	act, err := actorkit.New(&counterState{}, handlers)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	host := actorkit.NewLocalHost("counter-1", 4, actorkit.EventKindNames{Cancel: "cancel"}, nil)
	host.Deliver(&actorkit.Message{Topic: "add", Payload: 1})
	host.Deliver(&actorkit.Message{Topic: "add", Payload: 2})
	host.Deliver(&actorkit.Message{Topic: "stop"})

	result := act.Run(host)
	fmt.Println("result:", result)

	// Output:
	// total=1
	// total=3
	// result: 3
}

// Example_nextChain 演示 Next 如何在不回到外部 select 的情况下把一条
// 消息在多个主题之间同步传递。
func Example_nextChain() {
	handlers := actorkit.Handlers[*counterState]{
		Topics: map[string]actorkit.Handler[*counterState]{
			"validate": func(ctx *actorkit.Context[*counterState], payload any, topic string, from string) actorkit.Reply {
				n := payload.(int)
				if n < 0 {
					return actorkit.Exit("rejected")
				}
				return actorkit.Next("apply", n*2)
			},
			"apply": func(ctx *actorkit.Context[*counterState], payload any, topic string, from string) actorkit.Reply {
				ctx.State.total += payload.(int)
				return actorkit.Exit(ctx.State.total)
			},
		},
	}

	act, err := actorkit.New(&counterState{}, handlers)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	host := actorkit.NewLocalHost("counter-2", 4, actorkit.EventKindNames{Cancel: "cancel"}, nil)
	host.Deliver(&actorkit.Message{Topic: "validate", Payload: 5})

	result := act.Run(host)
	fmt.Println("result:", result)

	// Output:
	// result: 10
}
