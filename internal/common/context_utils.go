package common

import (
	"context"
	"fmt"
	"html"
	"strings"

	"pkbmadmin/internal/models"
)

type contextKey string

const (
	SessionKey   contextKey = "session"
	RequestIDKey contextKey = "request_id"
)

// WithSession stores the caller's session descriptor on ctx.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// GetSessionFromContext extracts the session placed by the session middleware
func GetSessionFromContext(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*models.Session)
	return sess, ok && sess != nil
}

// GetTenantIDFromContext extracts the session tenant from the request context
func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := GetSessionFromContext(ctx)
	if !ok || sess.TenantID == "" {
		return "", false
	}
	return sess.TenantID, true
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// StringPtr returns nil for blank input.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SanitizeHTMLField escapes a free-text field and limits its length
func SanitizeHTMLField(field *string, fieldName string) error {
	if field != nil && *field != "" {
		sanitized := html.EscapeString(*field)
		if len(sanitized) > 1000 {
			return fmt.Errorf("%s content exceeds maximum allowed length", fieldName)
		}
		*field = sanitized
	}
	return nil
}
