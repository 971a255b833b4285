package request

// SignupRequest 用户注册请求
// 使用位置:
//   - internal/gateway/api/client.go: Signup
//   - internal/service/auth/service.go: Signup
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Fullname  string `json:"fullname" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Workspace string `json:"workspace" validate:"required"`
}
