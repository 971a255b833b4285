// Package jwt 提供凭证声明的解码能力
// 客户端只负责读取服务端签发凭证中的声明，不做签名校验
// 签名校验由服务端完成，客户端拿到的凭证只在 TLS 信道内流转
package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"kama_chat_client/pkg/errorx"
)

// Claims 服务端签发凭证携带的声明
// 登录成功后由凭证一次性解出，此后不再重复解析
type Claims struct {
	UserID        string `json:"id"`       // 用户 ID
	Fullname      string `json:"fullname"` // 用户昵称
	Email         string `json:"email"`    // 用户邮箱
	WorkspaceID   string `json:"wsId"`     // 工作区 ID
	WorkspaceName string `json:"wsName"`   // 工作区名称
	jwt.RegisteredClaims
}

// DecodeToken 解码凭证中的声明（不校验签名）
// 解码失败说明凭证格式非法，对调用方是致命错误
func DecodeToken(tokenString string) (*Claims, error) {
	claims := new(Claims)
	// ParseUnverified 只做 base64 解码和 JSON 反序列化
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeAuthFailed, "凭证解析失败")
	}
	if claims.UserID == "" {
		return nil, errorx.New(errorx.CodeAuthFailed, "凭证缺少用户标识")
	}
	return claims, nil
}
