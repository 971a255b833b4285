// Package auth 提供会话引导的业务逻辑
// 注册/登录 → 解码凭证声明 → 全量装载用户名录与频道列表 → 一并提交副本与快照
package auth

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
	"kama_chat_client/pkg/util/jwt"
)

// Service 会话引导服务实现
type Service struct {
	api     api.ChatAPI    // REST 接口（依赖倒置）
	replica *store.Replica // 内存副本
	snap    snapshot.Store // 快照库
}

// NewAuthService 创建会话引导服务实例（依赖注入）
func NewAuthService(apiClient api.ChatAPI, replica *store.Replica, snap snapshot.Store) *Service {
	return &Service{
		api:     apiClient,
		replica: replica,
		snap:    snap,
	}
}

// Signup 注册并装载全量状态
// 注册失败（网络或凭证被拒）返回 CodeAuthFailed，不做重试
func (s *Service) Signup(ctx context.Context, req request.SignupRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	token, err := s.api.Signup(ctx, req)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeAuthFailed, "注册失败")
	}
	return s.loadState(ctx, token)
}

// Signin 登录并装载全量状态
// 登录失败（网络或凭证被拒）返回 CodeAuthFailed，不做重试
func (s *Service) Signin(ctx context.Context, req request.SigninRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	token, err := s.api.Signin(ctx, req)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeAuthFailed, "登录失败")
	}
	return s.loadState(ctx, token)
}

// loadState 用新凭证完成登录后的全量装载
//  1. 解码凭证声明，得到当前用户和工作区（解码失败对本次调用是致命的）
//  2. 拉取全量用户名录和频道列表（任一失败返回 CodeStateLoadFailed，
//     此时凭证本身已签发有效，但副本保持原状，不做部分提交）
//  3. 两次拉取都成功后，把会话、工作区、频道列表、用户名录一并提交副本，
//     并把同一份状态作为一个逻辑单元持久化到快照库
func (s *Service) loadState(ctx context.Context, token string) (*model.User, error) {
	claims, err := jwt.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:       claims.UserID,
		Fullname: claims.Fullname,
		Email:    claims.Email,
	}
	workspace := &model.Workspace{
		ID:   claims.WorkspaceID,
		Name: claims.WorkspaceName,
	}

	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeStateLoadFailed, "拉取用户名录失败")
	}
	channels, err := s.api.ListChannels(ctx, token)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeStateLoadFailed, "拉取频道列表失败")
	}

	userMap := make(map[string]*model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	// 提交副本——到这里才开始改内存状态，之前任何失败副本都原封不动
	s.replica.SetSession(user, token)
	s.replica.SetWorkspace(workspace)
	s.replica.SetChannelList(channels)
	s.replica.SetUserDirectory(userMap)

	// 同一逻辑单元的快照持久化；副本已是权威，写失败只记日志
	s.persistLoginState(user, token, workspace, channels, userMap)

	zap.L().Info("登录状态装载完成",
		zap.String("userId", user.ID),
		zap.String("workspaceId", workspace.ID),
		zap.Int("users", len(userMap)),
		zap.Int("channels", len(channels)))
	return user, nil
}

// persistLoginState 把登录装载的五个条目作为一个任务异步写入快照库
func (s *Service) persistLoginState(user *model.User, token string, workspace *model.Workspace, channels []*model.Channel, users map[string]*model.User) {
	entries := map[string][]byte{
		snapshot.KeyToken: []byte(token),
	}
	for key, obj := range map[string]any{
		snapshot.KeyUser:      user,
		snapshot.KeyWorkspace: workspace,
		snapshot.KeyChannels:  channels,
		snapshot.KeyUsers:     users,
	} {
		raw, err := json.Marshal(obj)
		if err != nil {
			zap.L().Warn("序列化快照条目失败，已跳过", zap.String("key", key), zap.Error(err))
			continue
		}
		entries[key] = raw
	}

	snapshot.SubmitTask(func() {
		for key, raw := range entries {
			if err := s.snap.Write(key, raw); err != nil {
				zap.L().Warn("持久化快照条目失败", zap.String("key", key), zap.Error(err))
			}
		}
	})
}

// Logout 登出：同时清除内存副本与快照库中的会话态数据
// 用户名录有意保留——当作缓存的参考数据，不随会话走
// 幂等且永不失败
func (s *Service) Logout() {
	s.replica.SetSession(nil, "")
	s.replica.SetWorkspace(nil)
	s.replica.SetChannelList(nil)
	s.replica.SetAllMessageHistories(map[string][]*model.Message{})

	snapshot.SubmitTask(func() {
		for _, key := range []string{
			snapshot.KeyUser,
			snapshot.KeyToken,
			snapshot.KeyWorkspace,
			snapshot.KeyChannels,
			snapshot.KeyMessages,
		} {
			if err := s.snap.Delete(key); err != nil {
				zap.L().Warn("删除快照条目失败", zap.String("key", key), zap.Error(err))
			}
		}
	})
	zap.L().Info("已登出")
}
