package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"stayhub/errors"
)

// Claims là payload của token đăng nhập
type Claims struct {
	Role  string `json:"role"`
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenService signs and verifies HS256 tokens with one secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

func (s *TokenService) Generate(role, id, email string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Role:  role,
		ID:    id,
		Email: email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Subject:   id,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Internal("Could not sign token", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized, "Invalid or expired token", err)
	}
	if claims.ID == "" || claims.Role == "" {
		return nil, errors.Unauthorized("Invalid token payload")
	}
	return claims, nil
}
