// Package auth はセッショントークンの発行・検証とパスワードハッシュを提供する。
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager はHMAC署名付きセッショントークンの発行・検証を行う。
// トークンはHTTP Only Cookieで運搬され、サーバー側に状態を持たない。
// 署名鍵がプロセスごとにランダム生成された場合、再起動で全セッションが失効する。
type TokenManager struct {
	secret []byte
	maxAge time.Duration
}

// NewTokenManager はTokenManagerを生成する。
// maxAgeSecondsはトークンの有効期間（秒）。
func NewTokenManager(secret []byte, maxAgeSeconds int) *TokenManager {
	return &TokenManager{
		secret: secret,
		maxAge: time.Duration(maxAgeSeconds) * time.Second,
	}
}

// Issue は指定ユーザーIDを主体とするセッショントークンを発行する。
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、有効であればユーザーIDを返す。
// 署名不正・期限切れ・主体欠落はすべてエラーになる。
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return claims.Subject, nil
}
