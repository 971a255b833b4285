package jwt

import (
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"kama_chat_client/pkg/errorx"
)

func TestDecodeToken(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"id":       "u1",
		"fullname": "Alice",
		"email":    "alice@acme.com",
		"wsId":     "w1",
		"wsName":   "acme",
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	// 客户端不持有签名密钥，解码不校验签名
	claims, err := DecodeToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "Alice", claims.Fullname)
	require.Equal(t, "w1", claims.WorkspaceID)
	require.Equal(t, "acme", claims.WorkspaceName)
}

func TestDecodeTokenMalformed(t *testing.T) {
	_, err := DecodeToken("garbage")
	require.Error(t, err)
	require.Equal(t, errorx.CodeAuthFailed, errorx.GetCode(err))
}

func TestDecodeTokenMissingUserID(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"wsId": "w1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = DecodeToken(token)
	require.Error(t, err)
	require.Equal(t, errorx.CodeAuthFailed, errorx.GetCode(err))
}
