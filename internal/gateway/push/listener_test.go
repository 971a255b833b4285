package push

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kama_chat_client/internal/model"
	"kama_chat_client/internal/store"
)

func TestListenerAppliesNewMessagesInOrder(t *testing.T) {
	replica := store.NewReplica()
	listener := NewListener(replica)
	listener.Start()
	defer listener.Close()

	const n = 20
	for i := 0; i < n; i++ {
		listener.Submit(Event{
			Type: EventNewMessage,
			Message: model.Message{
				ID:       fmt.Sprintf("m%d", i),
				ChatID:   "c1",
				SenderID: "u2",
				Content:  "hi",
			},
		})
	}

	require.Eventually(t, func() bool {
		return len(replica.HistoryOf("c1")) == n
	}, time.Second, 5*time.Millisecond)

	history := replica.HistoryOf("c1")
	for i, msg := range history {
		require.Equal(t, fmt.Sprintf("m%d", i), msg.ID)
	}
}

func TestListenerCreatesHistoryForUnknownChannel(t *testing.T) {
	replica := store.NewReplica()
	listener := NewListener(replica)
	listener.Start()
	defer listener.Close()

	// 推送先于任何拉取到达：频道对副本还是未知的
	listener.Submit(Event{
		Type:    EventNewMessage,
		Message: model.Message{ID: "m1", ChatID: "c2", Content: "early"},
	})

	require.Eventually(t, func() bool {
		return len(replica.HistoryOf("c2")) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "early", replica.HistoryOf("c2")[0].Content)
}

func TestListenerDiscardsUnknownEventTypes(t *testing.T) {
	replica := store.NewReplica()
	listener := NewListener(replica)
	listener.Start()
	defer listener.Close()

	listener.Submit(Event{Type: "Typing", Message: model.Message{ChatID: "c1"}})
	listener.Submit(Event{
		Type:    EventNewMessage,
		Message: model.Message{ID: "m1", ChatID: "c1"},
	})

	// 后提交的 NewMessage 被应用，说明未知事件被丢弃而且没有中断消费
	require.Eventually(t, func() bool {
		return len(replica.HistoryOf("c1")) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "m1", replica.HistoryOf("c1")[0].ID)
}

func TestListenerSubmitAfterClose(t *testing.T) {
	replica := store.NewReplica()
	listener := NewListener(replica)
	listener.Start()
	listener.Close()
	listener.Close() // 幂等

	// 关闭后提交被丢弃，不 panic 也不阻塞
	listener.Submit(Event{
		Type:    EventNewMessage,
		Message: model.Message{ID: "m1", ChatID: "c1"},
	})

	time.Sleep(20 * time.Millisecond)
	require.Len(t, replica.HistoryOf("c1"), 0)
}

func TestListenerRunDrainsSourceUntilClosed(t *testing.T) {
	replica := store.NewReplica()
	listener := NewListener(replica)
	listener.Start()
	defer listener.Close()

	src := &chanSource{events: make(chan Event, 4)}
	go listener.Run(src)

	src.events <- Event{Type: EventNewMessage, Message: model.Message{ID: "m1", ChatID: "c1"}}
	src.events <- Event{Type: EventNewMessage, Message: model.Message{ID: "m2", ChatID: "c1"}}
	close(src.events)

	require.Eventually(t, func() bool {
		return len(replica.HistoryOf("c1")) == 2
	}, time.Second, 5*time.Millisecond)
}

// chanSource 测试用事件源
type chanSource struct {
	events chan Event
}

func (s *chanSource) Events() <-chan Event { return s.events }
func (s *chanSource) Close() error         { close(s.events); return nil }
