package push

import (
	"encoding/json"
	"net/url"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kama_chat_client/pkg/constants"
	"kama_chat_client/pkg/errorx"
)

// WebsocketSource 基于 WebSocket 的事件源实现
// 以当前凭证为键订阅：token 挂在连接 URL 的查询参数上
type WebsocketSource struct {
	conn   *websocket.Conn
	events chan Event
}

// 编译期接口断言
var _ EventSource = (*WebsocketSource)(nil)

// DialWebsocket 建立推送订阅并启动读协程
// eventsURL: 事件流基础地址，如 ws://localhost:6687/events
// token: 当前凭证
func DialWebsocket(eventsURL, token string) (*WebsocketSource, error) {
	u := eventsURL + "?token=" + url.QueryEscape(token)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeFetchFailed, "推送订阅建立失败")
	}
	s := &WebsocketSource{
		conn:   conn,
		events: make(chan Event, constants.EVENT_CHANNEL_SIZE),
	}
	go s.read()
	return s, nil
}

// read 读取 websocket 消息并发送给事件通道
// 连接级错误关闭订阅（通道随之关闭），不在这里做自动重连——
// 重连策略属于外围传输层
func (s *WebsocketSource) read() {
	zap.L().Info("ws read goroutine start")
	defer close(s.events)
	for {
		_, raw, err := s.conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Error("ws read failed, subscription closed", zap.Error(err))
			return
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			// 坏帧只影响自己，丢弃后继续读
			zap.L().Warn("ws frame unmarshal failed, discarded", zap.Error(err))
			continue
		}
		s.events <- ev
	}
}

// Events 归一化事件通道
func (s *WebsocketSource) Events() <-chan Event {
	return s.events
}

// Close 主动关闭订阅连接
func (s *WebsocketSource) Close() error {
	return s.conn.Close()
}
