package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/repositories"

	"github.com/sirupsen/logrus"
)

const (
	msgUserNotFound    = "User tidak ditemukan."
	msgWrongPassword   = "Password salah."
	msgPasswordMissing = "Password wajib diisi."
	msgTooManyAttempts = "Terlalu banyak percobaan login. Silakan coba lagi nanti."
)

var demoEmails = map[string]models.Role{
	"admin@penahikmah.com": models.RoleAdmin,
	"tutor@penahikmah.com": models.RoleTutor,
	"siswa@penahikmah.com": models.RoleSiswa,
}

// IsDemoEmail reports whether email is one of the built-in demo accounts.
func IsDemoEmail(email string) bool {
	_, ok := demoEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// LoginLimiter throttles repeated failed logins. Implementations must be safe for concurrent use.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type AuthOptions struct {
	AllowQuickLogin bool
	DefaultTenantID string
}

type AuthService interface {
	// Authenticate resolves email within tenantID. A nil password is the quick-login path.
	Authenticate(ctx context.Context, email string, password *string, tenantID string) (*models.AuthResult, error)
}

type authService struct {
	users    repositories.UserRepository
	tenants  repositories.TenantRepository
	rbac     RBACService
	hasher   *PasswordHasher
	sessions SessionService
	limiter  LoginLimiter
	opts     AuthOptions
	log      *logrus.Logger
}

func NewAuthService(users repositories.UserRepository, tenants repositories.TenantRepository, rbac RBACService,
	hasher *PasswordHasher, sessions SessionService, limiter LoginLimiter, opts AuthOptions, log *logrus.Logger) AuthService {
	return &authService{
		users:    users,
		tenants:  tenants,
		rbac:     rbac,
		hasher:   hasher,
		sessions: sessions,
		limiter:  limiter,
		opts:     opts,
		log:      log,
	}
}

func (s *authService) Authenticate(ctx context.Context, email string, password *string, tenantID string) (*models.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, common.Validation("Email wajib diisi.")
	}
	if tenantID == "" {
		tenantID = s.opts.DefaultTenantID
	}
	throttleKey := tenantID + "|" + email

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, throttleKey)
		if err != nil {
			s.log.WithError(err).Warn("Login throttle unavailable, continuing without it")
		} else if !allowed {
			return nil, common.Forbidden(msgTooManyAttempts)
		}
	}

	user, err := s.users.GetByEmail(ctx, tenantID, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.provisionDemoUser(ctx, email, tenantID)
		if err != nil {
			if common.KindOf(err) == common.KindNotFound {
				s.recordFailure(ctx, throttleKey)
			}
			return nil, err
		}
	case err != nil:
		return nil, s.classifyLoginError(err)
	}

	if password != nil && *password != "" {
		if !s.hasher.Verify(*password, user.Password) {
			s.recordFailure(ctx, throttleKey)
			return nil, common.WrongPassword(msgWrongPassword)
		}
	} else if !s.opts.AllowQuickLogin || !IsDemoEmail(email) {
		return nil, common.WrongPassword(msgPasswordMissing)
	}

	sess := &models.Session{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		FullName:    user.FullName,
		Role:        user.Role,
		TenantID:    user.TenantID,
		Permissions: s.rbac.GetPermissionsForRole(ctx, user.Role),
	}
	token, expires, err := s.sessions.Issue(sess)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, throttleKey); err != nil {
			s.log.WithError(err).Warn("Failed to reset login throttle")
		}
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "tenant_id": user.TenantID, "role": user.Role}).Info("User authenticated")

	return &models.AuthResult{User: sess, Token: token, ExpiresAt: expires}, nil
}

// provisionDemoUser creates one of the demo accounts on first login. Any other
// unknown address is reported as not found.
func (s *authService) provisionDemoUser(ctx context.Context, email, tenantID string) (*models.User, error) {
	role, ok := demoEmails[email]
	if !ok {
		return nil, common.NotFound(msgUserNotFound)
	}

	exists, err := s.tenants.Exists(ctx, tenantID)
	if err != nil {
		return nil, s.classifyLoginError(err)
	}
	if !exists {
		return nil, common.Uninitialized(fmt.Errorf("tenant %s not found", tenantID))
	}

	displayName := strings.ToUpper(strings.SplitN(email, "@", 2)[0])
	s.log.WithField("email", email).Info("Auto-creating demo user")
	created, err := s.users.Create(ctx, models.NewUser{
		Email:        email,
		Name:         displayName,
		FullName:     displayName,
		Role:         role,
		TenantID:     tenantID,
		PasswordHash: s.hasher.Hash(DefaultPassword),
	})
	if err != nil {
		return nil, s.classifyLoginError(err)
	}
	hash := s.hasher.Hash(DefaultPassword)
	created.Password = &hash
	return created, nil
}

// classifyLoginError maps storage failures on the login path. Besides the usual
// classification, schema-looking messages are reported as uninitialized.
func (s *authService) classifyLoginError(err error) error {
	s.log.WithError(err).Error("Authentication query failed")
	classified := common.Classify(err)
	if kind := common.KindOf(classified); kind != "" && kind != common.KindConflict {
		return classified
	}
	if common.LooksUninitialized(err) {
		return common.Uninitialized(err)
	}
	return classified
}

func (s *authService) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, key); err != nil {
		s.log.WithError(err).Warn("Failed to record login failure")
	}
}
