package service

import (
	"time"

	"academy-manager/pkg/errors"
	"academy-manager/pkg/types"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const SessionCookieName = "session"

type SessionClaims struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) Principal() types.Principal {
	return types.Principal{ID: c.UserID, Username: c.Username, Role: c.Role}
}

type SessionService interface {
	GenerateToken(principal types.Principal) (string, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
	GetTTL() time.Duration
}

type sessionService struct {
	secretKey string
	ttl       time.Duration
	logger    *zap.Logger
}

func NewSessionService(secretKey string, ttl time.Duration, logger *zap.Logger) SessionService {
	return &sessionService{
		secretKey: secretKey,
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *sessionService) GenerateToken(principal types.Principal) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   principal.ID,
		Username: principal.Username,
		Role:     principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *sessionService) GetTTL() time.Duration {
	return s.ttl
}

func (s *sessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, errors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		s.logger.Debug("Falha ao validar token de sessão", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.ErrTokenNotYetValid
		}
		return nil, errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, errors.ErrInvalidToken
	}

	return claims, nil
}
