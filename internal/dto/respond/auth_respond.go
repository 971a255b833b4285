package respond

// AuthRespond 注册/登录响应
// 服务端只返回凭证，用户与工作区信息由凭证声明解出
// 使用位置:
//   - internal/gateway/api/client.go: Signup, Signin
type AuthRespond struct {
	Token string `json:"token"`
}
