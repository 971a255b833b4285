// queries.go
// 副本之上的只读投影，无副作用
// 返回的切片都是拷贝，防止调用方与后续追加共享底层数组
package store

import (
	"go.uber.org/zap"

	"kama_chat_client/internal/model"
)

// DirectChannel 单聊频道视图，附带解析好的对端用户
type DirectChannel struct {
	*model.Channel
	Recipient *model.User // 成员中不是当前用户的那一位
}

// IsAuthenticated 是否已认证（凭证存在即已认证）
func (r *Replica) IsAuthenticated() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token != ""
}

// Token 当前凭证原文，未认证时为空字符串
func (r *Replica) Token() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

// CurrentUser 当前用户，未登录时为 nil
func (r *Replica) CurrentUser() *model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.user
}

// Workspace 当前工作区，未登录时为 nil
func (r *Replica) Workspace() *model.Workspace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.workspace
}

// UserByID 按 ID 查用户名录，未收录时为 nil
func (r *Replica) UserByID(id string) *model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id]
}

// Channels 频道列表拷贝，保持插入顺序
func (r *Replica) Channels() []*model.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*model.Channel(nil), r.channels...)
}

// AllMessageHistories 频道消息映射的浅拷贝（持久化时序列化用）
func (r *Replica) AllMessageHistories() map[string][]*model.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]*model.Message, len(r.messages))
	for id, history := range r.messages {
		out[id] = append([]*model.Message(nil), history...)
	}
	return out
}

// DirectChannels 单聊频道列表，每项附带解析好的对端用户
// 成员中"非当前用户"恰好一人才算合法单聊；找不到或找到多个时
// 该频道被跳过并记日志（宁可不显示，也不显示错误的对端）
func (r *Replica) DirectChannels() []*DirectChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*DirectChannel, 0)
	for _, ch := range r.channels {
		if !ch.IsDirect() {
			continue
		}
		recipientId, ok := r.soleRecipientLocked(ch)
		if !ok {
			zap.L().Warn("单聊频道成员数异常，已跳过",
				zap.String("channelId", ch.ID),
				zap.Int("members", len(ch.Members)))
			continue
		}
		recipient := r.users[recipientId]
		if recipient == nil {
			zap.L().Warn("单聊频道对端不在用户名录中，已跳过",
				zap.String("channelId", ch.ID),
				zap.String("recipientId", recipientId))
			continue
		}
		out = append(out, &DirectChannel{Channel: ch, Recipient: recipient})
	}
	return out
}

// soleRecipientLocked 找出频道成员中唯一的非当前用户
// 0 个或多于 1 个非自己成员都视为不合法，调用前必须已持锁
func (r *Replica) soleRecipientLocked(ch *model.Channel) (string, bool) {
	selfId := ""
	if r.user != nil {
		selfId = r.user.ID
	}
	found := ""
	for _, memberId := range ch.Members {
		if memberId == selfId {
			continue
		}
		if found != "" {
			return "", false // 第二个非自己成员，不是合法单聊
		}
		found = memberId
	}
	return found, found != ""
}

// GroupChannels 非单聊频道列表
func (r *Replica) GroupChannels() []*model.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Channel, 0)
	for _, ch := range r.channels {
		if !ch.IsDirect() {
			out = append(out, ch)
		}
	}
	return out
}

// HistoryOf 指定频道的消息历史，频道未知时返回空切片，永不报错
func (r *Replica) HistoryOf(channelId string) []*model.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history, ok := r.messages[channelId]
	if !ok {
		return []*model.Message{}
	}
	return append([]*model.Message(nil), history...)
}

// ActiveChannel 当前活跃频道，未选择时为 nil
func (r *Replica) ActiveChannel() *model.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// HistoryOfActive 活跃频道的消息历史，未选择活跃频道时返回空切片
func (r *Replica) HistoryOfActive() []*model.Message {
	r.mu.RLock()
	active := r.active
	r.mu.RUnlock()
	if active == nil {
		return []*model.Message{}
	}
	return r.HistoryOf(active.ID)
}
