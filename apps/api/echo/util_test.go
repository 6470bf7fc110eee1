package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/thk/apps/api/echo"
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
	testutil "github.com/trezcool/thk/tests"
)

const pwd = "Str0ng!Pass"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	Server
	conf     *core.Config
	logger   *logsvc.MemoryLogger
	mailSvc  *emailsvc.ConsoleServiceMock
	usrRepo  user.Repository
	sessions *session.Store
	limiter  *chatbot.Limiter
}

func setup(t *testing.T, configure ...func(*core.Config)) testApp {
	t.Helper()

	conf := core.NewTestConfig()
	for _, fn := range configure {
		fn(conf)
	}
	logger := logsvc.NewMemoryLogger()
	core.ParseEmailTemplates(logger, true)
	validate, translator := testutil.NewValidator()

	// set up DB & repos
	db := inmemdb.NewSeededDB()
	usrRepo := inmemdb.NewUserRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(logger, conf)
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db), validate)
	studentSvc := student.NewService(inmemdb.NewStudentRepository(db), validate)
	mentorSvc := mentor.NewService(inmemdb.NewMentorRepository(db), validate)
	mapper := navigation.DefaultMapper()
	limiter := chatbot.NewLimiter(conf.Server.ChatRate, conf.Server.ChatBurst)
	sessions := session.NewStore(mapper, logger, conf.HistorySize, conf.Server.SessionLifetime())

	// set up server
	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		Mapper:         mapper,
		Dispatcher:     navigation.NewDispatcher(logger),
		Sessions:       sessions,
		UserSvc:        user.NewService(usrRepo, mailSvc, conf, validate),
		CourseSvc:      courseSvc,
		StudentSvc:     studentSvc,
		MentorSvc:      mentorSvc,
		BlogSvc:        blog.NewService(inmemdb.NewPostRepository(db), validate),
		ActivitySvc:    activity.NewService(inmemdb.NewLogRepository(db)),
		FacultySvc:     faculty.NewService(inmemdb.NewApplicationRepository(db), mailSvc, validate),
		PaymentSvc:     payment.NewService(mailSvc, validate, conf),
		SearchSvc:      search.NewService(courseSvc, studentSvc, mentorSvc),
		ChatBot:        chatbot.NewBot(),
		ChatLimiter:    limiter,
		DisableReqLogs: true,
	})
	t.Cleanup(func() { _ = srv.Close() })

	return testApp{
		Server:   srv,
		conf:     conf,
		logger:   logger,
		mailSvc:  mailSvc,
		usrRepo:  usrRepo,
		sessions: sessions,
		limiter:  limiter,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type loginResult struct {
	Token   string        `json:"token"`
	Session session.State `json:"session"`
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// do serves the request and returns the recorder.
func (app testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.ServeHTTP(rec, req)
	return rec
}

// login signs in email (created on the fly when auth is mocked) and returns the session token.
func (app testApp) login(t *testing.T, email, password string) loginResult {
	t.Helper()
	rec := app.do(http.MethodPost, "/v1/auth/login", "", marchallObj(t, user.Credentials{Email: email, Password: password}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res loginResult
	unmarchall(t, rec, &res)
	require.NotEmpty(t, res.Token)
	return res
}

// loginAs creates a user with role and signs them in.
func (app testApp) loginAs(t *testing.T, name, email string, role user.Role) (user.User, string) {
	t.Helper()
	usr := testutil.CreateUser(t, app.usrRepo, name, email, pwd, role)
	return usr, app.login(t, email, pwd).Token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarchall(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarchall(%s): %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			checkCodeAndData(t, tt, app.do(method, tt.path, tt.token, tt.body))
		})
	}
}
