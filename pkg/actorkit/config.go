package actorkit

import (
	"fmt"
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config 控制 Actor 运行时的可调参数，不涉及处理器本身的业务逻辑。
type Config struct {
	// InternalBufferSize 是内部重入通道的缓冲容量。异步回调产生的内部
	// 消息通过这个通道送回主循环；缓冲写满后生产者（异步 goroutine）
	// 会阻塞，这在设计上是可以接受的，因为主循环始终在排空它。
	InternalBufferSize int `koanf:"internal_buffer_size"`
	// EventKinds 登记宿主用来区分取消事件与其它事件的名字。
	EventKinds EventKindNames `koanf:"event_kinds"`
}

// EventKindNames 把事件种类的字符串常量集中到一处，便于不同宿主约定
// 不同的命名而不影响核心的分派逻辑。核心只对 Cancel 赋予特殊含义（触发
// OnCancel 槛位）；Exit 和 LinkDown 作为约定名字传给 OnEvent，具体怎么
// 响应完全由处理器决定，核心不对它们做任何分支判断。
type EventKindNames struct {
	// Cancel 是触发 OnCancel 槛位的事件 Kind。
	Cancel string `koanf:"cancel"`
	// Exit 是宿主用来通知"某个被监视的进程已退出"的事件 Kind。
	Exit string `koanf:"exit"`
	// LinkDown 是宿主用来通知"一条链路/连接已断开"的事件 Kind。
	LinkDown string `koanf:"link_down"`
}

// DefaultConfig 返回内部缓冲容量为 100、事件名沿用参考实现约定
// （cancel/exit/link_down）的配置。
func DefaultConfig() *Config {
	return &Config{
		InternalBufferSize: 100,
		EventKinds:         EventKindNames{Cancel: "cancel", Exit: "exit", LinkDown: "link_down"},
	}
}

// LoadConfig 用 koanf 从一个 YAML 文件加载配置，未出现在文件里的字段
// 保留 [DefaultConfig] 的值。
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("actorkit: load config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("actorkit: unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}

// Option 配置 [New] 构造出的 Actor。
type Option[S any] func(*Actor[S])

// WithConfig 用给定的 Config 覆盖默认配置。
func WithConfig[S any](cfg *Config) Option[S] {
	return func(a *Actor[S]) {
		if cfg != nil {
			a.cfg = cfg
		}
	}
}

// WithSpawner 替换调度异步工作的 [Spawner]，默认是 [GoSpawner]。
func WithSpawner[S any](sp Spawner) Option[S] {
	return func(a *Actor[S]) {
		if sp != nil {
			a.spawner = sp
		}
	}
}

// WithLogger 替换运行时使用的 [log/slog.Logger]，默认是 slog.Default()。
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(a *Actor[S]) {
		if logger != nil {
			a.logger = logger
		}
	}
}
