// Package actorkit 提供基于字符串主题（topic）分派的轻量级 Actor 运行时
//
// 每个 Actor 是一个独立的计算单元：
//   - 拥有私有状态，单个 goroutine 独占访问，无需锁保护
//   - 通过收件箱（inbox）、事件流（events）接收外部输入
//   - 可动态注册任意数量的用户通道，与收件箱、事件流一并参与同一个 select 循环
//   - 消息处理串行化（一次处理一条），处理器以返回值（而非副作用）驱动下一步动作
//
// # 核心组件
//
// [Actor] 是运行时的入口，由 [New] 构造，[Actor.Run] 驱动其主循环直到退出：
//
//	act, err := actorkit.New(initialState, actorkit.Handlers[State]{...})
//	result := act.Run(host)
//
// [Context] 是处理器能拿到的唯一能力对象：访问状态、注册/移除主题处理器、
// 注册/移除通道回调、调度异步工作。
//
// [Handler] 是主题处理器的函数签名，返回一个 [Reply]：[Exit] 结束运行并携带
// 结果，[Next] 将当前主题切换到另一个主题并可选地替换负载，由运行时同步地、
// 非递归地继续分派（主题链）。
//
// # 保留槛位
//
// [Handlers] 中的 Init、OnEvent、OnCancel、OnInternalMessage、Default 是保留
// 的生命周期槛位，不会出现在按主题派发的 Topics 映射中；Topics 中不允许使用
// 以 "__" 开头的键，[New] 会拒绝这样的配置。
//
// # 宿主契约
//
// [Process] 是运行时对外部世界的唯一依赖：提供收件箱、事件流、发送、自身
// 标识。默认实现 [LocalHost] 使用内存 channel 和 [github.com/google/uuid]
// 铸造进程标识。
//
// # 最佳实践
//
//  1. 状态变更只能发生在处理器内部（同一 goroutine），异步回调只能通过
//     [Context.Async] 返回 [Reply]，不得直接持有并修改状态
//  2. 处理器不应阻塞；耗时工作交给 [Context.Async]
//  3. 未知主题的 Next 链最终落到 Default 槛位，留空则消息被丢弃
//  4. 处理器中的 panic 不会被运行时捕获，会直接从 [Actor.Run] 传播出去
//  5. 关闭的已注册通道被运行时自动移除，回调会收到一次 ok=false 的通知
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package actorkit
