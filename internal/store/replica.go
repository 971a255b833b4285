// Package store 实现客户端状态同步的内存副本（Replica）
// 副本是 UI 消费的唯一事实来源，独占持有会话、工作区、频道列表、
// 频道消息映射、用户名录和活跃频道指针
//
// 变更只允许通过本文件定义的固定操作集进行，绝不直接写字段；
// 每个操作都是一次对读者不可分割的状态迁移
package store

import (
	"sync"

	"kama_chat_client/internal/model"
	"kama_chat_client/pkg/errorx"
)

// Replica 服务端实体的内存副本
// 读写锁保证每个变更操作对读者原子可见；
// 懒拉取路径和推送路径可以并发落在同一频道，锁的粒度覆盖整个历史切片
type Replica struct {
	mu        sync.RWMutex
	user      *model.User                 // 当前用户，登录时由凭证声明解出
	token     string                      // 凭证原文，存在即视为已认证
	workspace *model.Workspace            // 当前工作区
	channels  []*model.Channel            // 频道列表，保持创建/拉取顺序
	messages  map[string][]*model.Message // 频道 ID → 消息历史，按到达顺序追加
	users     map[string]*model.User      // 用户 ID → 用户记录
	active    *model.Channel              // 活跃频道，指向 channels 中的元素或为 nil
}

// NewReplica 创建空副本
func NewReplica() *Replica {
	return &Replica{
		messages: make(map[string][]*model.Message),
		users:    make(map[string]*model.User),
	}
}

// SetSession 整体替换会话（当前用户 + 凭证）
// 传入空 token 即清除会话
func (r *Replica) SetSession(user *model.User, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user
	r.token = token
}

// SetWorkspace 整体替换工作区
func (r *Replica) SetWorkspace(ws *model.Workspace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspace = ws
}

// SetChannelList 整体替换频道列表
// 新列表中尚无历史条目的频道会补一个空历史，保证"频道已知则历史存在"；
// 已有历史不会被覆盖。若活跃频道不在新列表中，活跃指针被清空
func (r *Replica) SetChannelList(channels []*model.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = make([]*model.Channel, len(channels))
	copy(r.channels, channels)
	for _, ch := range r.channels {
		if _, ok := r.messages[ch.ID]; !ok {
			r.messages[ch.ID] = []*model.Message{}
		}
	}
	if r.active != nil {
		r.active = r.findChannelLocked(r.active.ID)
	}
}

// SetUserDirectory 整体替换工作区用户名录
// 名录在登录时全量拉取一次，此后只读，不做增量刷新
func (r *Replica) SetUserDirectory(users map[string]*model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]*model.User, len(users))
	for id, u := range users {
		r.users[id] = u
	}
}

// SetAllMessageHistories 整体替换频道消息映射
func (r *Replica) SetAllMessageHistories(messages map[string][]*model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = make(map[string][]*model.Message, len(messages))
	for id, history := range messages {
		r.messages[id] = append([]*model.Message(nil), history...)
	}
}

// SetChannelHistory 整体替换单个频道的消息历史（懒拉取提交用）
//
// 已知竞态：拉取发起后、提交前，推送路径可能已向同一频道追加了消息，
// 替换语义会把这些消息覆盖掉。这是有意保留并明示的限制，不做合并掩盖；
// 被覆盖的消息在服务端仍然存在，重启后的全量拉取会找回它们
func (r *Replica) SetChannelHistory(channelId string, messages []*model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[channelId] = append([]*model.Message(nil), messages...)
}

// AppendChannel 追加新频道并初始化其空历史（单次原子步骤）
// 频道 ID 已存在时拒绝追加——列表内 ID 必须唯一
func (r *Replica) AppendChannel(channel *model.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findChannelLocked(channel.ID) != nil {
		return errorx.Newf(errorx.CodeChannelExist, "频道 %s 已存在", channel.ID)
	}
	r.channels = append(r.channels, channel)
	// 频道一旦已知，历史必须存在（可以为空）
	r.messages[channel.ID] = []*model.Message{}
	return nil
}

// AppendMessage 向频道历史追加一条消息
// 频道未知时创建只含该消息的新历史——推送事件可能先于懒拉取到达
func (r *Replica) AppendMessage(channelId string, message *model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if history, ok := r.messages[channelId]; ok {
		r.messages[channelId] = append(history, message)
	} else {
		r.messages[channelId] = []*model.Message{message}
	}
}

// SetActiveChannel 将 ID 解析为频道并设为活跃频道
// 找不到时活跃频道置空，静默处理，不视为错误
func (r *Replica) SetActiveChannel(channelId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = r.findChannelLocked(channelId)
}

// findChannelLocked 按 ID 查找频道，调用前必须已持锁
func (r *Replica) findChannelLocked(channelId string) *model.Channel {
	for _, ch := range r.channels {
		if ch.ID == channelId {
			return ch
		}
	}
	return nil
}
