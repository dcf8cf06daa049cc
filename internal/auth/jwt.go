package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"auction-backend/internal/auctionerrors"
	"auction-backend/internal/config"
	"auction-backend/internal/models"
)

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the JWT payload for both access and refresh tokens
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is the login/refresh response payload
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenManager issues and validates HS256 bearer tokens
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
}

// NewTokenManager creates a TokenManager from the JWT configuration section
func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		accessTTL:  time.Duration(cfg.AccessExpiryHours) * time.Hour,
		refreshTTL: time.Duration(cfg.RefreshExpiryDays) * 24 * time.Hour,
		issuer:     cfg.Issuer,
	}
}

// IssuePair signs a fresh access/refresh token pair for the user
func (m *TokenManager) IssuePair(user *models.User) (*TokenPair, error) {
	access, err := m.issue(user, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.issue(user, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess signs a fresh access token for the user
func (m *TokenManager) IssueAccess(user *models.User) (string, error) {
	return m.issue(user, TokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) issue(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse validates signature, expiry and token type, and returns the claims
func (m *TokenManager) Parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("auth: %w", auctionerrors.ErrTokenInvalid)
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("auth: wrong token type %q: %w", claims.TokenType, auctionerrors.ErrTokenInvalid)
	}
	return claims, nil
}
