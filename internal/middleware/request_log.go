package middleware

import (
	"context"
	"time"

	"pkbmadmin/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger assigns a request id and writes one structured log line per request.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), common.RequestIDKey, requestID)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			entry := log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"method":      req.Method,
				"path":        req.URL.Path,
				"status":      c.Response().Status,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_ip":   c.RealIP(),
			})
			if sess, ok := common.GetSessionFromContext(c.Request().Context()); ok {
				entry = entry.WithField("user_id", sess.ID)
			}
			if tenantID, ok := common.GetTenantIDFromContext(c.Request().Context()); ok {
				entry = entry.WithField("tenant_id", tenantID)
			}

			switch {
			case c.Response().Status >= 500:
				entry.Error("Request failed")
			case c.Response().Status >= 400:
				entry.Warn("Request rejected")
			default:
				entry.Info("Request handled")
			}
			return nil
		}
	}
}
