package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register the /debug/pprof handlers
	"os"

	echoapi "github.com/trezcool/thk/apps/api/echo"
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
	emailsvc "github.com/trezcool/thk/services/email"
	logsvc "github.com/trezcool/thk/services/logger"
	inmemdb "github.com/trezcool/thk/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)

	// set up DB & repos
	db := inmemdb.NewSeededDB()
	usrRepo := inmemdb.NewUserRepository(db)

	// set up validation
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	blog.InitValidators(validate, translator)
	faculty.InitValidators(validate, translator)
	payment.InitValidators(validate, translator)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(stdLogger, logger, conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}
	usrSvc := user.NewService(usrRepo, mailSvc, conf, validate)
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db), validate)
	studentSvc := student.NewService(inmemdb.NewStudentRepository(db), validate)
	mentorSvc := mentor.NewService(inmemdb.NewMentorRepository(db), validate)

	mapper := navigation.DefaultMapper()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.ParseEmailTemplates(logger, conf.Debug)

	admin, err := usrSvc.SeedAdmin()
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding admin: %v", err), err)
	}
	if admin.ID == "" {
		logger.Warn("no admin password hash configured; run `admin hashpassword` to create one")
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Validate:    validate,
			Translator:  translator,
			Mapper:      mapper,
			Dispatcher:  navigation.NewDispatcher(logger),
			Sessions:    session.NewStore(mapper, logger, conf.HistorySize, conf.Server.SessionLifetime()),
			UserSvc:     usrSvc,
			CourseSvc:   courseSvc,
			StudentSvc:  studentSvc,
			MentorSvc:   mentorSvc,
			BlogSvc:     blog.NewService(inmemdb.NewPostRepository(db), validate),
			ActivitySvc: activity.NewService(inmemdb.NewLogRepository(db)),
			FacultySvc:  faculty.NewService(inmemdb.NewApplicationRepository(db), mailSvc, validate),
			PaymentSvc:  payment.NewService(mailSvc, validate, conf),
			SearchSvc:   search.NewService(courseSvc, studentSvc, mentorSvc),
			ChatBot:     chatbot.NewBot(),
			ChatLimiter: chatbot.NewLimiter(conf.Server.ChatRate, conf.Server.ChatBurst),
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
