package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"kama_chat_client/internal/dto/request"
	"kama_chat_client/internal/dto/respond"
	"kama_chat_client/internal/model"
)

// Client 基于 net/http 的 ChatAPI 实现
// 不设超时策略：挂起的请求只阻塞发起它的那次逻辑操作，
// 调用方可以通过 context 自行取消
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// 编译期接口断言
var _ ChatAPI = (*Client)(nil)

// NewClient 创建 REST 客户端
// baseURL: REST 接口基础地址，如 http://localhost:6688/api
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Signup 注册并返回凭证
func (c *Client) Signup(ctx context.Context, req request.SignupRequest) (string, error) {
	var resp respond.AuthRespond
	if err := c.doJSON(ctx, http.MethodPost, "/signup", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Signin 登录并返回凭证
func (c *Client) Signin(ctx context.Context, req request.SigninRequest) (string, error) {
	var resp respond.AuthRespond
	if err := c.doJSON(ctx, http.MethodPost, "/signin", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListUsers 拉取工作区全量用户
func (c *Client) ListUsers(ctx context.Context, token string) ([]*model.User, error) {
	var users []*model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListChannels 拉取当前用户的全量频道
func (c *Client) ListChannels(ctx context.Context, token string) ([]*model.Channel, error) {
	var channels []*model.Channel
	if err := c.doJSON(ctx, http.MethodGet, "/chats", token, nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// ListMessages 拉取单个频道的消息历史
func (c *Client) ListMessages(ctx context.Context, token string, channelId string) ([]*model.Message, error) {
	var messages []*model.Message
	path := fmt.Sprintf("/chats/%s/messages", channelId)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage 发送消息，返回服务端落库后的消息记录
func (c *Client) SendMessage(ctx context.Context, token string, channelId string, req request.SendMessageRequest) (*model.Message, error) {
	message := new(model.Message)
	path := fmt.Sprintf("/chats/%s", channelId)
	if err := c.doJSON(ctx, http.MethodPost, path, token, req, message); err != nil {
		return nil, err
	}
	return message, nil
}

// doJSON 执行一次 JSON 请求/响应往返
// body 为 nil 时不带请求体；out 为 nil 时丢弃响应体
// 每个请求带唯一的 X-Request-Id，便于和服务端日志对账
func (c *Client) doJSON(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// 读一小段响应体进错误信息，排查时比裸状态码有用得多
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, string(snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
