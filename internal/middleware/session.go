package middleware

import (
	"errors"

	"pkbmadmin/internal/common"
	"pkbmadmin/internal/models"
	"pkbmadmin/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const sessionContextKey = "session"

// SessionMiddleware parses an optional "Authorization: Bearer" token and stores the
// session on the request context. Requests without a valid token continue anonymously;
// the RPC guards decide whether that is enough.
func SessionMiddleware(sessions services.SessionService, log *logrus.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: sessionContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return sessions.Parse(auth)
		},
		SuccessHandler: func(c echo.Context) {
			sess, ok := c.Get(sessionContextKey).(*models.Session)
			if !ok {
				return
			}
			ctx := common.WithSession(c.Request().Context(), sess)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var parseErr *echojwt.TokenParsingError
			if errors.As(err, &parseErr) {
				log.WithError(err).WithField("path", c.Path()).Debug("Ignoring invalid session token")
			}
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}
