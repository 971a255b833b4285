// Package api 封装服务端 REST 接口的客户端访问
// 本文件定义接口，遵循依赖倒置原则，Service 层依赖此接口而非具体 HTTP 实现
package api

import (
	"context"

	"kama_chat_client/internal/dto/request"
	"kama_chat_client/internal/model"
)

// ChatAPI 服务端 REST 接口契约
// 所有带凭证的调用都显式传入 token，接口层不持有会话状态
type ChatAPI interface {
	// Signup 注册并返回凭证
	Signup(ctx context.Context, req request.SignupRequest) (string, error)
	// Signin 登录并返回凭证
	Signin(ctx context.Context, req request.SigninRequest) (string, error)
	// ListUsers 拉取工作区全量用户
	ListUsers(ctx context.Context, token string) ([]*model.User, error)
	// ListChannels 拉取当前用户的全量频道
	ListChannels(ctx context.Context, token string) ([]*model.Channel, error)
	// ListMessages 拉取单个频道的消息历史
	ListMessages(ctx context.Context, token string, channelId string) ([]*model.Message, error)
	// SendMessage 发送消息，返回服务端落库后的消息记录
	SendMessage(ctx context.Context, token string, channelId string, req request.SendMessageRequest) (*model.Message, error)
}
