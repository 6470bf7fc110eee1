package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/payment"
	"github.com/trezcool/thk/core/student"
)

type (
	courseViewResponse struct {
		navResponse
		Course course.Course `json:"course"`
	}

	enrollResponse struct {
		Enrolled bool   `json:"enrolled"`
		Message  string `json:"message"`
	}

	checkoutResponse struct {
		Receipt payment.Receipt `json:"receipt"`
		Card    string          `json:"card"`
	}

	mentorProfileResponse struct {
		Mentor  mentor.Mentor   `json:"mentor"`
		Courses []course.Course `json:"courses"`
		Reviews []mentor.Review `json:"reviews"`
	}
)

type catalogApi struct {
	*server
}

func registerCatalogAPI(g *echo.Group, authed []echo.MiddlewareFunc, s *server) {
	api := catalogApi{s}
	admin := adminMiddleware()

	cg := g.Group("/courses", authed...)
	cg.GET("", api.queryCourses)
	cg.GET("/categories", api.queryCategories)
	cg.POST("", api.createCourse, admin)
	cg.GET("/:id", api.retrieveCourse)
	cg.PUT("/:id", api.updateCourse, admin)
	cg.DELETE("/:id", api.destroyCourse, admin)
	cg.POST("/:id/view", api.viewCourse)
	cg.POST("/:id/enroll", api.enroll)
	cg.POST("/:id/checkout", api.checkout)

	sg := g.Group("/students", append(authed, admin)...)
	sg.GET("", api.queryStudents)
	sg.POST("", api.createStudent)
	sg.GET("/:id", api.retrieveStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.destroyStudent)

	mg := g.Group("/mentors", authed...)
	mg.GET("", api.queryMentors, admin)
	mg.POST("", api.createMentor, admin)
	mg.GET("/:id", api.retrieveMentor) // public profile
	mg.GET("/:id/profile", api.mentorProfile)
	mg.GET("/:id/reviews", api.queryReviews)
	mg.POST("/:id/reviews", api.createReview)
	mg.PUT("/:id", api.updateMentor, admin)
	mg.DELETE("/:id", api.destroyMentor, admin)
}

// sessionUserName returns the name of the session user, for activity logs.
func sessionUserName(ctx echo.Context) string {
	if sess, err := getContextSession(ctx); err == nil {
		return sess.User().Name
	}
	return "Unknown"
}

// Courses

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	var filter course.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to course.Filter")
	}
	courses, err := api.deps.CourseSvc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) queryCategories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, append([]string{course.AllCategories}, course.Categories()...))
}

func (api *catalogApi) retrieveCourse(ctx echo.Context) error {
	c, err := api.deps.CourseSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *catalogApi) createCourse(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.deps.CourseSvc); err != nil {
		return err
	}

	c, err := api.deps.CourseSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Course %q Created", c.Title), sessionUserName(ctx))
	return ctx.JSON(http.StatusCreated, c)
}

func (api *catalogApi) updateCourse(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.deps.CourseSvc); err != nil {
		return err
	}

	c, err := api.deps.CourseSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Course %q Updated", c.Title), sessionUserName(ctx))
	return ctx.JSON(http.StatusOK, c)
}

func (api *catalogApi) destroyCourse(ctx echo.Context) error {
	c, err := api.deps.CourseSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	if err = api.deps.CourseSvc.Delete(c.ID); err != nil {
		return err
	}
	api.record(activity.TypeError, fmt.Sprintf("Course %q Deleted", c.Title), sessionUserName(ctx))
	return ctx.NoContent(http.StatusNoContent)
}

// viewCourse selects the course and navigates the session to its details.
func (api *catalogApi) viewCourse(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	c, err := api.deps.CourseSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	if err = sess.SelectCourse(c.ID); err != nil {
		return errors.Wrap(err, "selecting course")
	}
	return ctx.JSON(http.StatusOK, courseViewResponse{
		navResponse: navResponse{View: sess.Nav.CurrentView(), Path: sess.Nav.CurrentPath()},
		Course:      c,
	})
}

func (api *catalogApi) enroll(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	c, err := api.deps.CourseSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}

	if !sess.Enroll(c.ID) {
		return ctx.JSON(http.StatusOK, enrollResponse{Enrolled: true, Message: "Already enrolled in " + c.Title})
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Enrolled in %q", c.Title), sess.User().Name)
	sess.Inbox.Push("Enrolled in " + c.Title + ".")
	return ctx.JSON(http.StatusCreated, enrollResponse{Enrolled: true, Message: "Enrolled in " + c.Title})
}

// checkout simulates the payment of the course, then enrolls the session.
func (api *catalogApi) checkout(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	c, err := api.deps.CourseSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}

	var card payment.Card
	if err = ctx.Bind(&card); err != nil {
		return errors.Wrap(err, "binding to Card")
	}
	if err = card.Validate(api.deps.PaymentSvc); err != nil {
		return err
	}

	usr := sess.User()
	rcpt, err := api.deps.PaymentSvc.Checkout(
		ctx.Request().Context(), card, c, mail.Address{Name: usr.Name, Address: usr.Email},
	)
	if err != nil {
		return errors.Wrap(err, "checking out")
	}
	sess.Enroll(c.ID)
	api.record(activity.TypeInfo, fmt.Sprintf("Payment received for %q", c.Title), usr.Name)
	sess.Inbox.Push(fmt.Sprintf("Payment successful! You have been enrolled in %s.", c.Title))
	return ctx.JSON(http.StatusCreated, checkoutResponse{Receipt: rcpt, Card: payment.FormatCardNumber(card.Number)})
}

// Students

func (api *catalogApi) queryStudents(ctx echo.Context) error {
	var filter student.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to student.Filter")
	}
	students, err := api.deps.StudentSvc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *catalogApi) retrieveStudent(ctx echo.Context) error {
	s, err := api.deps.StudentSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *catalogApi) createStudent(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.deps.StudentSvc); err != nil {
		return err
	}

	s, err := api.deps.StudentSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Student %q Added", s.Name), sessionUserName(ctx))
	return ctx.JSON(http.StatusCreated, s)
}

func (api *catalogApi) updateStudent(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.deps.StudentSvc); err != nil {
		return err
	}

	s, err := api.deps.StudentSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Student %q Updated", s.Name), sessionUserName(ctx))
	return ctx.JSON(http.StatusOK, s)
}

func (api *catalogApi) destroyStudent(ctx echo.Context) error {
	s, err := api.deps.StudentSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	if err = api.deps.StudentSvc.Delete(s.ID); err != nil {
		return err
	}
	api.record(activity.TypeError, fmt.Sprintf("Student %q Removed", s.Name), sessionUserName(ctx))
	return ctx.NoContent(http.StatusNoContent)
}

// Mentors

func (api *catalogApi) queryMentors(ctx echo.Context) error {
	var filter mentor.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to mentor.Filter")
	}
	mentors, err := api.deps.MentorSvc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying mentors")
	}
	return ctx.JSON(http.StatusOK, mentors)
}

func (api *catalogApi) retrieveMentor(ctx echo.Context) error {
	m, err := api.deps.MentorSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *catalogApi) createMentor(ctx echo.Context) error {
	var data mentor.NewMentor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMentor")
	}
	if err := data.Validate(api.deps.MentorSvc); err != nil {
		return err
	}

	m, err := api.deps.MentorSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating mentor")
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Mentor %q Added", m.Name), sessionUserName(ctx))
	return ctx.JSON(http.StatusCreated, m)
}

func (api *catalogApi) updateMentor(ctx echo.Context) error {
	var data mentor.UpdateMentor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMentor")
	}
	if err := data.Validate(api.deps.MentorSvc); err != nil {
		return err
	}

	m, err := api.deps.MentorSvc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.record(activity.TypeInfo, fmt.Sprintf("Mentor %q Updated", m.Name), sessionUserName(ctx))
	return ctx.JSON(http.StatusOK, m)
}

func (api *catalogApi) destroyMentor(ctx echo.Context) error {
	m, err := api.deps.MentorSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	if err = api.deps.MentorSvc.Delete(m.ID); err != nil {
		return err
	}
	api.record(activity.TypeError, fmt.Sprintf("Mentor %q Removed", m.Name), sessionUserName(ctx))
	return ctx.NoContent(http.StatusNoContent)
}

// mentorProfile returns the mentor with the courses they teach and their reviews.
func (api *catalogApi) mentorProfile(ctx echo.Context) error {
	m, err := api.deps.MentorSvc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	courses, err := api.deps.CourseSvc.Query(course.Filter{Instructor: m.Name})
	if err != nil {
		return errors.Wrap(err, "querying mentor courses")
	}
	reviews, err := api.deps.MentorSvc.Reviews(m.ID)
	if err != nil {
		return errors.Wrap(err, "querying mentor reviews")
	}
	return ctx.JSON(http.StatusOK, mentorProfileResponse{Mentor: m, Courses: courses, Reviews: reviews})
}

func (api *catalogApi) queryReviews(ctx echo.Context) error {
	reviews, err := api.deps.MentorSvc.Reviews(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *catalogApi) createReview(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data mentor.NewReview
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReview")
	}
	if err = data.Validate(api.deps.MentorSvc); err != nil {
		return err
	}

	r, err := api.deps.MentorSvc.AddReview(ctx.Param("id"), sess.User(), data)
	if err != nil {
		return err
	}
	sess.Inbox.Push("Thanks for rating your mentor!")
	return ctx.JSON(http.StatusCreated, r)
}
