package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/faculty"
	"github.com/trezcool/thk/core/i18n"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/notification"
	"github.com/trezcool/thk/core/session"
	"github.com/trezcool/thk/core/student"
	"github.com/trezcool/thk/core/user"
)

const (
	featuredCourses = 3
	featuredMentors = 3
	recentLogs      = 10
)

type (
	navRequest struct {
		Path string `json:"path" validate:"required"`
	}

	navResponse struct {
		View navigation.ViewState `json:"view"`
		Path string               `json:"path"`
	}

	screenResponse struct {
		navigation.ScreenDescriptor
		Data interface{} `json:"data"`
	}

	notificationsResponse struct {
		Unread        int                         `json:"unread"`
		Notifications []notification.Notification `json:"notifications"`
	}

	dashboardResponse struct {
		Stats      activity.Stats `json:"stats"`
		RecentLogs []activity.Log `json:"recent_logs"`
	}

	screenLoader func(sess *session.Session) (interface{}, error)
)

type sessionApi struct {
	*server
	loaders map[navigation.Screen]screenLoader
}

func registerSessionAPI(g *echo.Group, authed []echo.MiddlewareFunc, s *server) {
	api := &sessionApi{server: s}
	api.loaders = map[navigation.Screen]screenLoader{
		navigation.ScreenHome:           api.homeData,
		navigation.ScreenDashboard:      func(*session.Session) (interface{}, error) { return api.dashboard() },
		navigation.ScreenStudentManager: func(*session.Session) (interface{}, error) { return api.deps.StudentSvc.Query(student.Filter{}) },
		navigation.ScreenCourseManager:  func(*session.Session) (interface{}, error) { return api.deps.CourseSvc.Query(course.Filter{}) },
		navigation.ScreenExplore:        api.exploreData,
		navigation.ScreenMentorManager:  func(*session.Session) (interface{}, error) { return api.deps.MentorSvc.Query(mentor.Filter{}) },
		navigation.ScreenAdminPanel:     api.adminData,
		navigation.ScreenProfile:        func(sess *session.Session) (interface{}, error) { return sess.User(), nil },
		navigation.ScreenSettings:       func(sess *session.Session) (interface{}, error) { return sess.State(), nil },
		navigation.ScreenMyCourses:      func(sess *session.Session) (interface{}, error) { return api.myCourses(sess) },
		navigation.ScreenApplyToTeach:   func(*session.Session) (interface{}, error) { return echo.Map{"degrees": faculty.Degrees}, nil },
		navigation.ScreenBlog:           func(sess *session.Session) (interface{}, error) { return api.deps.BlogSvc.List("", sess.User().ID) },
		navigation.ScreenCourseFullView: api.courseDetailsData,
	}

	sg := g.Group("/session", authed...)
	sg.GET("", api.retrieve)
	sg.PUT("", api.updatePreferences)
	sg.PUT("/role", api.switchRole)

	ng := g.Group("/nav", authed...)
	ng.GET("", api.current)
	ng.POST("", api.push)
	ng.GET("/history", api.history)
	ng.GET("/routes", api.routes)
	ng.GET("/menu", api.menu)

	nfg := g.Group("/notifications", authed...)
	nfg.GET("", api.listNotifications)
	nfg.POST("/:id/read", api.markNotificationRead)

	g.GET("/screen", api.screen, authed...)
	g.GET("/my-courses", api.listMyCourses, authed...)
	g.GET("/dashboard", api.retrieveDashboard, append(authed, adminMiddleware())...)
}

// Handlers

func (api *sessionApi) retrieve(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.State())
}

func (api *sessionApi) updatePreferences(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data session.Preferences
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Preferences")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	sess.SetPreferences(data)
	return ctx.JSON(http.StatusOK, sess.State())
}

func (api *sessionApi) switchRole(ctx echo.Context) error {
	if !api.deps.Conf.DemoRoleSwitch {
		return errRoleSwitchDisabled
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data user.SwitchRole
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SwitchRole")
	}
	if err = data.Validate(api.deps.UserSvc); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.SetRole(sess.User().ID, data.Role)
	if err != nil {
		return errors.Wrap(err, "setting user role")
	}
	api.deps.Sessions.UpdateUser(usr)
	api.record(activity.TypeInfo, "Switched role to "+string(usr.Role), usr.Name)
	return ctx.JSON(http.StatusOK, sess.State())
}

func (api *sessionApi) current(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, navResponse{View: sess.Nav.CurrentView(), Path: sess.Nav.CurrentPath()})
}

func (api *sessionApi) push(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data navRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to navRequest")
	}
	if err = api.deps.Validate.Struct(&data); err != nil {
		return err
	}
	if err = sess.Nav.Push(data.Path); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, navResponse{View: sess.Nav.CurrentView(), Path: sess.Nav.CurrentPath()})
}

func (api *sessionApi) history(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.History.Paths())
}

func (api *sessionApi) routes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.Mapper.Routes())
}

func (api *sessionApi) menu(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, i18n.Menu(api.deps.Mapper, sess.Role(), sess.Lang(), sess.Nav.CurrentPath()))
}

// screen answers with the screen selected for the current view and the data it shows.
func (api *sessionApi) screen(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	desc := api.deps.Dispatcher.Select(sess.Nav.CurrentView(), sess.Role())
	resp := screenResponse{ScreenDescriptor: desc}
	if load, ok := api.loaders[desc.Screen]; ok {
		if resp.Data, err = load(sess); err != nil {
			return errors.Wrapf(err, "loading %s screen", desc.Screen)
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *sessionApi) listMyCourses(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	courses, err := api.myCourses(sess)
	if err != nil {
		return errors.Wrap(err, "querying enrolled courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *sessionApi) listNotifications(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notificationsResponse{Unread: sess.Inbox.Unread(), Notifications: sess.Inbox.List()})
}

func (api *sessionApi) markNotificationRead(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if err = sess.Inbox.MarkRead(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notificationsResponse{Unread: sess.Inbox.Unread(), Notifications: sess.Inbox.List()})
}

func (api *sessionApi) retrieveDashboard(ctx echo.Context) error {
	data, err := api.dashboard()
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, data)
}

// Screen data

func (api *sessionApi) homeData(*session.Session) (interface{}, error) {
	courses, err := api.deps.CourseSvc.Featured(featuredCourses)
	if err != nil {
		return nil, err
	}
	mentors, err := api.deps.MentorSvc.Featured(featuredMentors)
	if err != nil {
		return nil, err
	}
	return echo.Map{"courses": courses, "mentors": mentors}, nil
}

func (api *sessionApi) exploreData(*session.Session) (interface{}, error) {
	courses, err := api.deps.CourseSvc.Query(course.Filter{})
	if err != nil {
		return nil, err
	}
	return echo.Map{"courses": courses, "categories": course.Categories()}, nil
}

func (api *sessionApi) adminData(*session.Session) (interface{}, error) {
	apps, err := api.deps.FacultySvc.List()
	if err != nil {
		return nil, err
	}
	logs, err := api.deps.ActivitySvc.Recent(recentLogs)
	if err != nil {
		return nil, err
	}
	return echo.Map{"applications": apps, "logs": logs}, nil
}

func (api *sessionApi) courseDetailsData(sess *session.Session) (interface{}, error) {
	id := sess.SelectedCourseID()
	if id == "" {
		return nil, nil
	}
	c, err := api.deps.CourseSvc.Get(id)
	if err != nil {
		if err == course.ErrNotFound {
			return nil, nil // deleted since it was selected
		}
		return nil, err
	}
	return echo.Map{"course": c, "enrolled": sess.IsEnrolled(id)}, nil
}

func (api *sessionApi) dashboard() (dashboardResponse, error) {
	courses, err := api.deps.CourseSvc.Query(course.Filter{})
	if err != nil {
		return dashboardResponse{}, err
	}
	students, err := api.deps.StudentSvc.Query(student.Filter{})
	if err != nil {
		return dashboardResponse{}, err
	}
	mentors, err := api.deps.MentorSvc.Query(mentor.Filter{})
	if err != nil {
		return dashboardResponse{}, err
	}
	logs, err := api.deps.ActivitySvc.Recent(recentLogs)
	if err != nil {
		return dashboardResponse{}, err
	}
	return dashboardResponse{
		Stats:      activity.NewStats(courses, len(students), len(mentors)),
		RecentLogs: logs,
	}, nil
}

// myCourses returns the courses the session enrolled in, skipping deleted ones.
func (api *sessionApi) myCourses(sess *session.Session) ([]course.Course, error) {
	ids := sess.Enrolled()
	courses := make([]course.Course, 0, len(ids))
	for _, id := range ids {
		c, err := api.deps.CourseSvc.Get(id)
		if err != nil {
			if err == course.ErrNotFound {
				continue
			}
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}
