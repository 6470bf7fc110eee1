package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core/session"
	"github.com/trezcool/thk/core/user"
)

// sessionMiddleware loads the session named by the token claims. It must run after the JWT middleware.
func sessionMiddleware(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			sess, err := store.Get(claims.SessionID)
			if err != nil {
				if err == session.ErrNotFound {
					return errSessionClosed
				}
				return errors.Wrap(err, "getting session")
			}
			if sess.User().ID != claims.Subject {
				return errUnauthorized
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

// adminMiddleware lets through sessions currently holding the Admin role.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := getContextSession(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context session")
			}
			if sess.Role() == user.RoleAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// chatRateMiddleware rejects messages above the per-session rate.
func chatRateMiddleware(allow func(clientID string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := getContextSession(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context session")
			}
			if !allow(sess.ID) {
				return errTooManyRequests
			}
			return next(ctx)
		}
	}
}
