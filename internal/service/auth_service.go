package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mobility-profile/internal/cache"
	"mobility-profile/internal/config"
	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/logger"
	"mobility-profile/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrTokenRevoked    = errors.New("token has been revoked")
)

// AuthService issues and checks the bearer tokens of anonymous poll sessions.
type AuthService interface {
	IssueToken(ctx context.Context, userID string) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)

	// RevokeToken rejects the token on every later ValidateJWT until it expires.
	RevokeToken(ctx context.Context, claims *dto.AuthClaims) error
}

type authServiceImpl struct {
	cache     domain.Cache
	jwtConfig config.JWTConfig
	now       func() time.Time
}

// NewAuthService creates the service. The cache holds revoked token ids.
func NewAuthService(cache domain.Cache, jwtConfig config.JWTConfig) (AuthService, error) {
	if jwtConfig.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if cache == nil {
		return nil, errors.New("auth service requires a cache for token revocation")
	}
	return &authServiceImpl{
		cache:     cache,
		jwtConfig: jwtConfig,
		now:       time.Now,
	}, nil
}

func (s *authServiceImpl) IssueToken(ctx context.Context, userID string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Debug("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess || claims.UserID == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: unexpected claims", ErrInvalidJWTToken)
	}

	revoked, err := s.cache.Exists(ctx, cache.RevokedTokenKey(claims.ID))
	if err != nil {
		// Revocation cannot be ruled out.
		appLogger.Error("Failed to check token revocation", zap.Error(err), zap.String("jti", claims.ID))
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (s *authServiceImpl) RevokeToken(ctx context.Context, claims *dto.AuthClaims) error {
	if claims == nil || claims.ID == "" {
		return errors.New("token has no id to revoke")
	}

	ttl := s.jwtConfig.AccessTokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, cache.RevokedTokenKey(claims.ID), claims.UserID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	logger.Get().Info("Token revoked", zap.String("userID", claims.UserID), zap.Duration("ttl", ttl))
	return nil
}
