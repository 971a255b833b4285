package push

import (
	"sync"

	"go.uber.org/zap"

	"kama_chat_client/internal/store"
	"kama_chat_client/pkg/constants"
)

// Listener 实时更新监听器
// 生产方（事件源、测试）把归一化事件放进队列，唯一的消费协程把事件
// 依次应用到副本——单消费者保证同一频道内的追加顺序等于事件到达顺序，
// 即使生产是并发的
type Listener struct {
	replica   *store.Replica
	queue     chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewListener 创建监听器（尚未启动消费循环）
func NewListener(replica *store.Replica) *Listener {
	return &Listener{
		replica: replica,
		queue:   make(chan Event, constants.EVENT_CHANNEL_SIZE),
		done:    make(chan struct{}),
	}
}

// Start 启动消费循环
func (l *Listener) Start() {
	go func() {
		zap.L().Info("push listener started")
		for {
			select {
			case <-l.done:
				zap.L().Info("push listener stopped")
				return
			case ev := <-l.queue:
				l.apply(ev)
			}
		}
	}()
}

// Submit 向队列提交一个归一化事件
// 监听器已关闭时事件被丢弃；队列满时阻塞生产方而不是丢事件，
// 顺序保证比推送端的吞吐更重要
func (l *Listener) Submit(ev Event) {
	select {
	case <-l.done:
		// 已关闭，丢弃
	case l.queue <- ev:
	}
}

// Run 持续把事件源的输出灌进队列，直到事件源关闭
// 连接级错误由事件源内部处理并关闭通道，这里不做自动重连
func (l *Listener) Run(src EventSource) {
	for ev := range src.Events() {
		l.Submit(ev)
	}
	zap.L().Info("push event source closed")
}

// Close 停止消费循环，幂等
func (l *Listener) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// apply 把单个事件折叠进副本
// 未识别的事件类型记日志后丢弃，绝不向上抛错
func (l *Listener) apply(ev Event) {
	switch ev.Type {
	case EventNewMessage:
		message := ev.Message
		l.replica.AppendMessage(message.ChatID, &message)
	default:
		zap.L().Warn("unrecognized push event, discarded", zap.String("event", ev.Type))
	}
}
