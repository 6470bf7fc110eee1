package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/session"
	"github.com/trezcool/thk/core/user"
)

const (
	contextTokenKey   = "userToken"
	contextSessionKey = "session"
	tokenAudience     = "Learners"
)

// Claims represents the authorization claims transmitted via a JWT.
// The role is informative: the session holds the authoritative one.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64     `json:"oriat,omitempty"`
	SessionID    string    `json:"sid"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Role         user.Role `json:"role,omitempty"`
}

type tokenIssuer struct {
	conf      *core.Config
	jwtConfig middleware.JWTConfig
}

func newTokenIssuer(conf *core.Config) *tokenIssuer {
	return &tokenIssuer{
		conf: conf,
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

func (ti *tokenIssuer) middleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(ti.jwtConfig)
}

func (ti *tokenIssuer) claims(usr user.User, sess *session.Session, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    ti.conf.AppName,
			Subject:   usr.ID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(ti.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		SessionID:    sess.ID,
		Name:         usr.Name,
		Email:        usr.Email,
		Role:         usr.Role,
	}
}

// generateToken generates a signed JWT token string representing the Claims.
func (ti *tokenIssuer) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(ti.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(ti.jwtConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (ti *tokenIssuer) issue(sess *session.Session) (string, error) {
	return ti.generateToken(ti.claims(sess.User(), sess))
}

// refresh issues a new token for the session of the context, within the refresh window.
func (ti *tokenIssuer) refresh(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context session")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(ti.conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}
	return ti.generateToken(ti.claims(sess.User(), sess, claims.OrigIssuedAt))
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (*session.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(*session.Session); ok {
		return sess, nil
	}
	return nil, errUnauthorized
}
