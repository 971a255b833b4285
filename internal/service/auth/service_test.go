package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"kama_chat_client/internal/dao/snapshot"
	"kama_chat_client/internal/dto/request"
	"kama_chat_client/internal/model"
	"kama_chat_client/internal/store"
	"kama_chat_client/pkg/errorx"
)

// stubAPI 纯桩实现，按字段控制每个端点的返回
type stubAPI struct {
	token       string
	authErr     error
	users       []*model.User
	usersErr    error
	channels    []*model.Channel
	channelsErr error
}

func (s *stubAPI) Signup(ctx context.Context, req request.SignupRequest) (string, error) {
	return s.token, s.authErr
}
func (s *stubAPI) Signin(ctx context.Context, req request.SigninRequest) (string, error) {
	return s.token, s.authErr
}
func (s *stubAPI) ListUsers(ctx context.Context, token string) ([]*model.User, error) {
	return s.users, s.usersErr
}
func (s *stubAPI) ListChannels(ctx context.Context, token string) ([]*model.Channel, error) {
	return s.channels, s.channelsErr
}
func (s *stubAPI) ListMessages(ctx context.Context, token string, channelId string) ([]*model.Message, error) {
	return nil, nil
}
func (s *stubAPI) SendMessage(ctx context.Context, token string, channelId string, req request.SendMessageRequest) (*model.Message, error) {
	return nil, nil
}

// makeToken 签发一个可解码的测试凭证（客户端解码不校验签名）
func makeToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":       "u1",
		"fullname": "Alice",
		"email":    "alice@acme.com",
		"wsId":     "w1",
		"wsName":   "acme",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func signinReq() request.SigninRequest {
	return request.SigninRequest{Email: "alice@acme.com", Password: "secret1"}
}

func TestSigninCommitsWholeState(t *testing.T) {
	api := &stubAPI{
		token: makeToken(t),
		users: []*model.User{
			{ID: "u1", Fullname: "Alice"},
			{ID: "u2", Fullname: "Bob"},
		},
		channels: []*model.Channel{
			{ID: "c1", Type: model.ChannelTypeDirect, Members: []string{"u1", "u2"}},
		},
	}
	replica := store.NewReplica()
	snap := snapshot.NewMemoryStore()
	svc := NewAuthService(api, replica, snap)

	user, err := svc.Signin(context.Background(), signinReq())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	// 副本：会话、工作区、频道列表、用户名录一并提交
	require.True(t, replica.IsAuthenticated())
	require.Equal(t, "w1", replica.Workspace().ID)
	require.Equal(t, "acme", replica.Workspace().Name)
	require.Len(t, replica.Channels(), 1)
	require.Equal(t, "Bob", replica.UserByID("u2").Fullname)

	// 单聊视图立即可用
	direct := replica.DirectChannels()
	require.Len(t, direct, 1)
	require.Equal(t, "Bob", direct[0].Recipient.Fullname)

	// 快照：同一逻辑单元落盘（Worker 未初始化时同步执行）
	for _, key := range []string{
		snapshot.KeyUser, snapshot.KeyToken, snapshot.KeyWorkspace,
		snapshot.KeyChannels, snapshot.KeyUsers,
	} {
		raw, err := snap.Read(key)
		require.NoError(t, err)
		require.NotNil(t, raw, "missing snapshot entry %s", key)
	}
}

func TestSigninAuthFailed(t *testing.T) {
	api := &stubAPI{authErr: errors.New("401 unauthorized")}
	replica := store.NewReplica()
	svc := NewAuthService(api, replica, snapshot.NewMemoryStore())

	_, err := svc.Signin(context.Background(), signinReq())
	require.Error(t, err)
	require.Equal(t, errorx.CodeAuthFailed, errorx.GetCode(err))
	require.False(t, replica.IsAuthenticated())
}

func TestSigninMalformedToken(t *testing.T) {
	api := &stubAPI{token: "not-a-jwt"}
	replica := store.NewReplica()
	svc := NewAuthService(api, replica, snapshot.NewMemoryStore())

	_, err := svc.Signin(context.Background(), signinReq())
	require.Error(t, err)
	require.Equal(t, errorx.CodeAuthFailed, errorx.GetCode(err))
	require.False(t, replica.IsAuthenticated())
}

func TestSigninStateLoadFailedLeavesReplicaUntouched(t *testing.T) {
	api := &stubAPI{
		token:       makeToken(t),
		users:       []*model.User{{ID: "u1"}},
		channelsErr: errors.New("boom"),
	}
	replica := store.NewReplica()
	snap := snapshot.NewMemoryStore()
	svc := NewAuthService(api, replica, snap)

	_, err := svc.Signin(context.Background(), signinReq())
	require.Error(t, err)
	require.Equal(t, errorx.CodeStateLoadFailed, errorx.GetCode(err))

	// 凭证已签发但状态未提交：不允许只有会话没有频道的部分提交
	require.False(t, replica.IsAuthenticated())
	require.Nil(t, replica.Workspace())
	require.Empty(t, replica.Channels())
	raw, err := snap.Read(snapshot.KeyToken)
	require.NoError(t, err)
	require.Nil(t, raw)
}

func TestSigninRejectsInvalidPayload(t *testing.T) {
	api := &stubAPI{token: makeToken(t)}
	svc := NewAuthService(api, store.NewReplica(), snapshot.NewMemoryStore())

	_, err := svc.Signin(context.Background(), request.SigninRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestSignupCommitsWholeState(t *testing.T) {
	api := &stubAPI{
		token:    makeToken(t),
		users:    []*model.User{{ID: "u1", Fullname: "Alice"}},
		channels: []*model.Channel{},
	}
	replica := store.NewReplica()
	svc := NewAuthService(api, replica, snapshot.NewMemoryStore())

	user, err := svc.Signup(context.Background(), request.SignupRequest{
		Email:     "alice@acme.com",
		Fullname:  "Alice",
		Password:  "secret1",
		Workspace: "acme",
	})
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.True(t, replica.IsAuthenticated())
}

func TestLogoutClearsSessionKeepsDirectory(t *testing.T) {
	api := &stubAPI{
		token:    makeToken(t),
		users:    []*model.User{{ID: "u1"}, {ID: "u2", Fullname: "Bob"}},
		channels: []*model.Channel{{ID: "c1", Type: model.ChannelTypeGroup}},
	}
	replica := store.NewReplica()
	snap := snapshot.NewMemoryStore()
	svc := NewAuthService(api, replica, snap)

	_, err := svc.Signin(context.Background(), signinReq())
	require.NoError(t, err)
	replica.AppendMessage("c1", &model.Message{ID: "m1", ChatID: "c1"})

	svc.Logout()

	require.False(t, replica.IsAuthenticated())
	require.Empty(t, replica.Channels())
	require.Len(t, replica.HistoryOf("c1"), 0)
	// 用户名录有意保留
	require.Equal(t, "Bob", replica.UserByID("u2").Fullname)

	// 快照里的会话态条目被删除，名录保留
	for _, key := range []string{
		snapshot.KeyUser, snapshot.KeyToken, snapshot.KeyWorkspace,
		snapshot.KeyChannels, snapshot.KeyMessages,
	} {
		raw, err := snap.Read(key)
		require.NoError(t, err)
		require.Nil(t, raw, "snapshot entry %s should be deleted", key)
	}
	raw, err := snap.Read(snapshot.KeyUsers)
	require.NoError(t, err)
	require.NotNil(t, raw)

	// 幂等：重复登出不报错也不 panic
	svc.Logout()
	require.False(t, replica.IsAuthenticated())
}
