// Package chat 提供频道与消息访问的业务逻辑
// 懒拉取频道历史、发送消息、创建频道、切换活跃频道
package chat

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"kama_chat_client/internal/dao/snapshot"
	"kama_chat_client/internal/dto/request"
	"kama_chat_client/internal/gateway/api"
	"kama_chat_client/internal/infrastructure/validate"
	"kama_chat_client/internal/model"
	"kama_chat_client/internal/store"
	"kama_chat_client/pkg/errorx"
)

// Service 频道/消息访问服务实现
type Service struct {
	api     api.ChatAPI    // REST 接口（依赖倒置）
	replica *store.Replica // 内存副本
	snap    snapshot.Store // 快照库
}

// NewChatService 创建频道/消息访问服务实例（依赖注入）
func NewChatService(apiClient api.ChatAPI, replica *store.Replica, snap snapshot.Store) *Service {
	return &Service{
		api:     apiClient,
		replica: replica,
		snap:    snap,
	}
}

// EnsureChannelHistory 保证频道历史已装载（懒拉取）
// 历史缺失或为空才发起拉取，已有内容则命中缓存直接返回——
// 本核心从不对已填充的历史做刷新，服务端新增的旧消息要等推送事件；
// 拉取失败返回 CodeFetchFailed，副本保持原状
func (s *Service) EnsureChannelHistory(ctx context.Context, channelId string) error {
	if len(s.replica.HistoryOf(channelId)) > 0 {
		return nil // 缓存命中
	}
	messages, err := s.api.ListMessages(ctx, s.replica.Token(), channelId)
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeFetchFailed, "拉取频道 %s 的消息失败", channelId)
	}
	s.replica.SetChannelHistory(channelId, messages)
	return nil
}

// CreateChannel 追加新频道并同步持久化频道列表与消息映射
// 追加和空历史初始化是一步原子操作（见 store.AppendChannel）
func (s *Service) CreateChannel(channel *model.Channel) error {
	if err := s.replica.AppendChannel(channel); err != nil {
		return err
	}
	s.persistChannels()
	return nil
}

// SendMessage 发送消息
// 成功后追加的是服务端回执的消息记录（带服务端分配的 ID 和时间戳），
// 不是本地请求体——不做乐观回显；失败时什么都不追加，错误原样上抛
func (s *Service) SendMessage(ctx context.Context, channelId string, req request.SendMessageRequest) (*model.Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	message, err := s.api.SendMessage(ctx, s.replica.Token(), channelId, req)
	if err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeFetchFailed, "向频道 %s 发送消息失败", channelId)
	}
	s.replica.AppendMessage(channelId, message)
	return message, nil
}

// SetActiveChannel 切换活跃频道
// ID 不存在时活跃频道置空（静默处理，见 store.SetActiveChannel）
func (s *Service) SetActiveChannel(channelId string) {
	s.replica.SetActiveChannel(channelId)
}

// persistChannels 异步持久化频道列表与消息映射（fire-and-forget）
func (s *Service) persistChannels() {
	channels := s.replica.Channels()
	messages := s.replica.AllMessageHistories()
	snapshot.SubmitTask(func() {
		for key, obj := range map[string]any{
			snapshot.KeyChannels: channels,
			snapshot.KeyMessages: messages,
		} {
			raw, err := json.Marshal(obj)
			if err != nil {
				zap.L().Warn("序列化快照条目失败，已跳过", zap.String("key", key), zap.Error(err))
				continue
			}
			if err := s.snap.Write(key, raw); err != nil {
				zap.L().Warn("持久化快照条目失败", zap.String("key", key), zap.Error(err))
			}
		}
	})
}
