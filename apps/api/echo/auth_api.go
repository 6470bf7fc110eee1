package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/session"
	"github.com/trezcool/thk/core/user"
)

const headerAcceptLanguage = "Accept-Language"

const passwordResetSent = "If the email address supplied is associated with an active account on this system, " +
	"an email will arrive in your inbox shortly with instructions to reset your password."

type (
	loginResponse struct {
		Token   string        `json:"token"`
		Session session.State `json:"session"`
	}

	tokenResponse struct {
		Token string `json:"token"`
	}

	successResponse struct {
		Success string `json:"success"`
	}

	passwordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)

type authApi struct {
	*server
}

func registerAuthAPI(g *echo.Group, authed []echo.MiddlewareFunc, s *server) {
	api := authApi{s}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.POST("/password-reset", api.resetPassword)
	ag.POST("/password-reset-confirm", api.confirmPasswordReset)

	// authed endpoints
	sg := ag.Group("", authed...)
	sg.POST("/token-refresh", api.refreshToken)
	sg.POST("/logout", api.logout)
}

func (api *authApi) lang(ctx echo.Context) string {
	if accept := ctx.Request().Header.Get(headerAcceptLanguage); accept != "" {
		return accept
	}
	return api.deps.Conf.DefaultLang
}

// openSession starts a session for usr and answers with its token.
func (api *authApi) openSession(ctx echo.Context, code int, usr user.User) error {
	sess := api.deps.Sessions.Open(usr, api.lang(ctx))
	token, err := api.tokens.issue(sess)
	if err != nil {
		api.deps.Sessions.Close(sess.ID)
		return errors.Wrap(err, "issuing token")
	}
	return ctx.JSON(code, loginResponse{Token: token, Session: sess.State()})
}

func (api *authApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.deps.UserSvc); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.Login(data)
	if err != nil {
		if errors.Cause(err) == user.ErrAuthenticationFailed {
			api.record(activity.TypeWarning, "Failed Login Attempt", data.Email)
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "logging in")
	}
	return api.openSession(ctx, http.StatusOK, usr)
}

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.deps.UserSvc); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	api.record(activity.TypeInfo, "New User Registered", usr.Name)
	return api.openSession(ctx, http.StatusCreated, usr)
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data passwordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to passwordResetRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	if err := api.deps.UserSvc.RequestPasswordReset(data.Email); !(err == nil || errors.Cause(err) == user.ErrNotFound) {
		// do not return errors to attackers
		api.deps.Logger.Error("requesting password reset", errors.Wrap(err, "requesting password reset"))
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: passwordResetSent})
}

func (api *authApi) confirmPasswordReset(ctx echo.Context) error {
	var data user.ResetUserPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetUserPassword")
	}
	if err := data.Validate(api.deps.UserSvc); err != nil {
		return err
	}
	if err := api.deps.UserSvc.ResetPassword(data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: "Your password has been reset."})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := api.tokens.refresh(ctx)
	if err != nil {
		if err == errRefreshExpired {
			return err
		}
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (api *authApi) logout(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	api.deps.Sessions.Close(sess.ID)
	return ctx.NoContent(http.StatusNoContent)
}
