package request

// SigninRequest 用户登录请求
// 使用位置:
//   - internal/gateway/api/client.go: Signin
//   - internal/service/auth/service.go: Signin
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
