// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 UI 绑定层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"kama_chat_client/internal/dto/request"
	"kama_chat_client/internal/model"
)

// AuthService 会话引导接口
// 处理注册、登录、登录后的全量状态装载和登出
type AuthService interface {
	// Signup 注册并装载全量状态，返回当前用户
	Signup(ctx context.Context, req request.SignupRequest) (*model.User, error)
	// Signin 登录并装载全量状态，返回当前用户
	Signin(ctx context.Context, req request.SigninRequest) (*model.User, error)
	// Logout 清除会话（内存副本和快照库），幂等且永不失败
	Logout()
}

// ChatService 频道/消息访问接口
// 处理懒拉取、消息发送、频道创建和活跃频道切换
type ChatService interface {
	// EnsureChannelHistory 频道历史为空时拉取一次，已有历史则为空操作
	EnsureChannelHistory(ctx context.Context, channelId string) error
	// CreateChannel 追加新频道并同步持久化频道列表与消息映射
	CreateChannel(channel *model.Channel) error
	// SendMessage 发送消息，成功后把服务端回执的记录追加进历史
	SendMessage(ctx context.Context, channelId string, req request.SendMessageRequest) (*model.Message, error)
	// SetActiveChannel 切换活跃频道，ID 不存在时活跃频道置空
	SetActiveChannel(channelId string)
}
