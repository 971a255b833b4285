package request

// SendMessageRequest 发送消息请求
// 注意：本地不做乐观回显，发送成功后追加的是服务端回执的消息记录，
// 而不是这里的请求体
// 使用位置:
//   - internal/gateway/api/client.go: SendMessage
//   - internal/service/chat/service.go: SendMessage
type SendMessageRequest struct {
	Content string   `json:"content" validate:"required"`
	Files   []string `json:"files,omitempty"` // 附件 URL 列表，可为空
}
