// Command actorkit-demo 是一个薄命令行外壳，用来挑选并运行
// examples/ 下的某个演示程序。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/go-pkg-actorkit/examples/registry"
	"github.com/lwmacct/go-pkg-actorkit/examples/supervision"
	"github.com/lwmacct/go-pkg-actorkit/examples/timer"
	"github.com/lwmacct/go-pkg-actorkit/pkg/actorkit"
)

func main() {
	cmd := &cli.Command{
		Name:  "actorkit-demo",
		Usage: "run one of the actorkit example applications",
		Commands: []*cli.Command{
			timerCommand(),
			registryCommand(),
			supervisionCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func timerCommand() *cli.Command {
	return &cli.Command{
		Name:  "timer",
		Usage: "run the ticking counter demo",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "ticks", Value: 5},
			&cli.DurationFlag{Name: "interval", Value: 200 * time.Millisecond},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			count, err := timer.Run(c.Int("ticks"), c.Duration("interval"))
			if err != nil {
				return err
			}
			fmt.Printf("finished after %d ticks\n", count)
			return nil
		},
	}
}

func registryCommand() *cli.Command {
	return &cli.Command{
		Name:  "registry",
		Usage: "run the multi-publisher aggregation demo",
		Action: func(_ context.Context, _ *cli.Command) error {
			publishers := []registry.Publisher{
				{Name: "alpha", Feed: make(chan string, 4)},
				{Name: "beta", Feed: make(chan string, 4)},
			}
			for i, pub := range publishers {
				go func(i int, feed chan string) {
					for n := 0; n < 3; n++ {
						feed <- fmt.Sprintf("msg-%d-%d", i, n)
					}
					close(feed)
				}(i, pub.Feed)
			}

			log, err := registry.Run(publishers)
			if err != nil {
				return err
			}
			for _, line := range log {
				fmt.Println(line)
			}
			return nil
		},
	}
}

func supervisionCommand() *cli.Command {
	return &cli.Command{
		Name:  "supervision",
		Usage: "run the restart-on-panic demo",
		Action: func(_ context.Context, _ *cli.Command) error {
			result := demoSupervise()
			fmt.Println("final result:", result)
			return nil
		},
	}
}

// flakyState 故意在第三次尝试之前 panic，演示重启如何恢复。
type flakyState struct {
	attempt int
}

func demoSupervise() any {
	attempt := 0

	factory := func() (*actorkit.Actor[*flakyState], actorkit.Process) {
		attempt++
		handlers := actorkit.Handlers[*flakyState]{
			Topics: map[string]actorkit.Handler[*flakyState]{
				"work": func(ctx *actorkit.Context[*flakyState], _ any, _ string, _ string) actorkit.Reply {
					if ctx.State.attempt < 3 {
						panic(fmt.Sprintf("transient failure on attempt %d", ctx.State.attempt))
					}
					return actorkit.Exit("recovered")
				},
			},
		}
		act, err := actorkit.New(&flakyState{attempt: attempt}, handlers)
		if err != nil {
			panic(err)
		}
		host := actorkit.NewLocalHost("supervised-1", 1, actorkit.DefaultConfig().EventKinds, nil)
		host.Deliver(&actorkit.Message{Topic: "work"})
		return act, host
	}

	policy := supervision.RestartPolicy{InitialDelay: 10 * time.Millisecond, MaxDelay: 100 * time.Millisecond, MaxRestarts: 3}
	return supervision.Supervise(factory, policy, slog.Default())
}
