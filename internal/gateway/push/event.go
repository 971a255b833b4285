// Package push 实现实时推送路径：事件契约、事件源和应用到副本的消费循环
// 与拉取驱动的路径完全解耦，两条路径可以并发落在同一频道
package push

import (
	"kama_chat_client/internal/model"
)

// 推送事件类型
// 目前只消费 NewMessage，其他类型记日志后丢弃
const (
	EventNewMessage = "NewMessage"
)

// Event 事件流下发的归一化事件
// 线格式是单个 JSON 对象，event 字段标识类型，消息字段平铺在同级
type Event struct {
	Type          string `json:"event"`
	model.Message        // 消息字段内联：chatId、senderId、content、createdAt
}

// EventSource 一路单向的服务端推送事件源
// 连接、重连、帧解析等传输细节都在实现内部，本核心只消费归一化事件；
// 事件通道关闭即订阅结束
type EventSource interface {
	// Events 归一化事件通道，事件源关闭时通道随之关闭
	Events() <-chan Event
	// Close 主动关闭事件源
	Close() error
}
