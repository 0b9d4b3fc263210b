package api

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret           []byte
	jwtExpiresIn        time.Duration
	jwtRefreshExpiresIn time.Duration
)

// TokenInit 初始化 JWT 配置
func TokenInit(secret string, expiresIn, refreshExpiresIn time.Duration) error {
	if secret == "" {
		return errors.New("JWT secret must not be empty")
	}
	jwtSecret = []byte(secret)
	jwtExpiresIn = expiresIn
	jwtRefreshExpiresIn = refreshExpiresIn

	log.Printf("JWT config loaded - access: %v, refresh: %v", jwtExpiresIn, jwtRefreshExpiresIn)
	return nil
}

// GenerateAccessToken 为用户签发访问令牌
func GenerateAccessToken(username string, userID uint, role string) (token string, expiry time.Time, err error) {
	if len(jwtSecret) == 0 {
		return "", time.Time{}, errors.New("JWT secret is not initialized")
	}

	expiry = time.Now().Add(jwtExpiresIn)
	claims := jwt.MapClaims{
		"username": username,
		"user_id":  userID,
		"role":     role,
		"type":     "access",
		"exp":      expiry.Unix(),
		"iat":      time.Now().Unix(),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiry, nil
}

// GenerateRefreshToken 为用户签发刷新令牌
// 刷新令牌同样是 HS256 JWT，claims 标记 type=refresh，有效期更长
func GenerateRefreshToken(username string, userID uint, role string) (token string, expiry time.Time, err error) {
	if len(jwtSecret) == 0 {
		return "", time.Time{}, errors.New("JWT secret is not initialized")
	}

	expiry = time.Now().Add(jwtRefreshExpiresIn)
	claims := jwt.MapClaims{
		"username": username,
		"user_id":  userID,
		"role":     role,
		"type":     "refresh",
		"exp":      expiry.Unix(),
		"iat":      time.Now().Unix(),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return token, expiry, nil
}

// ParseRefreshToken 解析刷新令牌并校验其类型
func ParseRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}

// Parse 解析并校验 JWT
func Parse(tokenString string) (jwt.MapClaims, error) {
	if len(jwtSecret) == 0 {
		return nil, errors.New("JWT secret is not initialized")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
