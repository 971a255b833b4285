package model

import "time"

// Message 聊天消息
// 只会通过两条路径进入本地副本：
//  1. 发送成功后服务端回执的消息记录（带服务端分配的 ID 和时间戳）
//  2. 推送事件流下发的新消息
//
// 客户端视角下消息只增不改，没有编辑/删除契约
type Message struct {
	ID        string    `json:"id"`        // 消息 ID，服务端分配
	ChatID    string    `json:"chatId"`    // 所属频道 ID
	SenderID  string    `json:"senderId"`  // 发送者用户 ID
	Content   string    `json:"content"`   // 消息内容
	CreatedAt time.Time `json:"createdAt"` // 服务端时间戳
}
