package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/blog"
	"github.com/trezcool/thk/core/chatbot"
	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/faculty"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/payment"
	"github.com/trezcool/thk/core/search"
	"github.com/trezcool/thk/core/session"
	"github.com/trezcool/thk/core/student"
	"github.com/trezcool/thk/core/user"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Mapper     *navigation.Mapper
		Dispatcher *navigation.Dispatcher
		Sessions   *session.Store

		UserSvc     *user.Service
		CourseSvc   *course.Service
		StudentSvc  *student.Service
		MentorSvc   *mentor.Service
		BlogSvc     *blog.Service
		ActivitySvc *activity.Service
		FacultySvc  *faculty.Service
		PaymentSvc  *payment.Service
		SearchSvc   *search.Service
		ChatBot     *chatbot.Bot
		ChatLimiter *chatbot.Limiter

		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		tokens   *tokenIssuer
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		tokens:   newTokenIssuer(deps.Conf),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator)
	s.app.Debug = conf.Debug

	// chat limiters live as long as their session
	s.deps.Sessions.OnClose(s.deps.ChatLimiter.Forget)

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	authed := []echo.MiddlewareFunc{s.tokens.middleware(), sessionMiddleware(s.deps.Sessions)}

	registerAuthAPI(v1, authed, s)
	registerSessionAPI(v1, authed, s)
	registerCatalogAPI(v1, authed, s)
	registerCommunityAPI(v1, authed, s)

	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Errors() <-chan error { return s.errors }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

// record logs an activity; failures are logged and never fail the request.
func (s *server) record(typ activity.Type, action, by string) {
	if _, err := s.deps.ActivitySvc.Record(typ, action, by); err != nil {
		s.deps.Logger.Error("recording activity: "+err.Error(), err)
	}
}
