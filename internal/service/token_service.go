package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/easysocial/easysocial-server/internal/config"
	"github.com/easysocial/easysocial-server/internal/models"
)

var _ TokenGenerator = (*TokenService)(nil)

// TokenService signs JWTs with a fixed claim set over the user fields.
type TokenService struct {
	secret   []byte
	issuer   string
	subject  string
	lifetime time.Duration
}

// NewTokenService creates a TokenService. The signing secret is
// validated at config load, before the server starts.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		subject:  cfg.Subject,
		lifetime: cfg.Lifetime,
	}
}

// GenerateToken creates a signed JWT carrying the user fields.
func (s *TokenService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":            user.ID,
		"email":         user.Email,
		"oauthProvider": user.Provider.String(),
		"iss":           s.issuer,
		"sub":           s.subject,
		"iat":           now.Unix(),
		"exp":           now.Add(s.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry and returns the user
// fields carried by the token.
func (s *TokenService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	email, _ := claims["email"].(string)
	provider, _ := claims["oauthProvider"].(string)

	return &models.User{
		ID:       id,
		Email:    email,
		Provider: models.Provider(provider),
	}, nil
}
