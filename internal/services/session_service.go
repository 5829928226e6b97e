package services

import (
	"errors"
	"fmt"
	"time"

	"pkbmadmin/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "pkbm-admin"

// SessionClaims is the JWT payload for a logged-in user.
type SessionClaims struct {
	TenantID    string   `json:"tid"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Name        *string  `json:"name,omitempty"`
	FullName    *string  `json:"fullName,omitempty"`
	Permissions []string `json:"perms"`
	jwt.RegisteredClaims
}

type SessionService interface {
	Issue(sess *models.Session) (string, time.Time, error)
	Parse(token string) (*models.Session, error)
}

type sessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) SessionService {
	return &sessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *sessionService) Issue(sess *models.Session) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := SessionClaims{
		TenantID:    sess.TenantID,
		Email:       sess.Email,
		Role:        string(sess.Role),
		Name:        sess.Name,
		FullName:    sess.FullName,
		Permissions: sess.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   sess.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

func (s *sessionService) Parse(token string) (*models.Session, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("session token validation failed: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	role, ok := models.ParseRole(claims.Role)
	if !ok || claims.Subject == "" || claims.TenantID == "" {
		return nil, errors.New("invalid session claims")
	}
	return &models.Session{
		ID:          claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		FullName:    claims.FullName,
		Role:        role,
		TenantID:    claims.TenantID,
		Permissions: claims.Permissions,
	}, nil
}
