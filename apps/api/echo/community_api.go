package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core/activity"
	"github.com/trezcool/thk/core/blog"
	"github.com/trezcool/thk/core/faculty"
	"github.com/trezcool/thk/core/user"
)

const defaultActivityLimit = 20

type chatRequest struct {
	Text string `json:"text" validate:"required,notblank,max=1000"`
}

type communityApi struct {
	*server
}

func registerCommunityAPI(g *echo.Group, authed []echo.MiddlewareFunc, s *server) {
	api := communityApi{s}
	admin := adminMiddleware()

	g.GET("/search", api.search, authed...)
	g.GET("/activity", api.queryActivity, append(authed, admin)...)

	bg := g.Group("/blog", authed...)
	bg.GET("", api.queryPosts)
	bg.POST("", api.createPost)
	bg.POST("/:id/like", api.toggleLike)
	bg.POST("/:id/comments", api.addComment)

	chg := g.Group("/chat", authed...)
	chg.GET("", api.transcript)
	chg.POST("", api.sendMessage, chatRateMiddleware(api.deps.ChatLimiter.Allow))

	apg := g.Group("/applications", authed...)
	apg.POST("", api.submitApplication)
	apg.GET("", api.queryApplications, admin)

	g.PUT("/users/me", api.updateMe, authed...)
}

func (api *communityApi) search(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	results, err := api.deps.SearchSvc.Search(ctx.QueryParam("q"), sess.Role())
	if err != nil {
		return errors.Wrap(err, "searching")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *communityApi) queryActivity(ctx echo.Context) error {
	limit := defaultActivityLimit
	if l := ctx.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	logs, err := api.deps.ActivitySvc.Recent(limit)
	if err != nil {
		return errors.Wrap(err, "querying activity logs")
	}
	return ctx.JSON(http.StatusOK, logs)
}

// Blog

func (api *communityApi) queryPosts(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	category := blog.Category(ctx.QueryParam("category"))
	if category != "" && !category.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category: "+string(category))
	}
	posts, err := api.deps.BlogSvc.List(category, sess.User().ID)
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *communityApi) createPost(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data blog.NewPost
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}
	if err = data.Validate(api.deps.BlogSvc); err != nil {
		return err
	}

	usr := sess.User()
	post, err := api.deps.BlogSvc.Create(usr, data)
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	api.record(activity.TypeInfo, fmt.Sprintf("New %s Posted", post.Category), usr.Name)
	return ctx.JSON(http.StatusCreated, post)
}

func (api *communityApi) toggleLike(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	post, err := api.deps.BlogSvc.ToggleLike(ctx.Param("id"), sess.User().ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, post)
}

func (api *communityApi) addComment(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data blog.NewComment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err = data.Validate(api.deps.BlogSvc); err != nil {
		return err
	}

	post, err := api.deps.BlogSvc.AddComment(ctx.Param("id"), sess.User(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, post)
}

// Chat

func (api *communityApi) transcript(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Chat.Messages())
}

func (api *communityApi) sendMessage(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data chatRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to chatRequest")
	}
	if err = api.deps.Validate.Struct(&data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Chat.Send(api.deps.ChatBot, data.Text))
}

// Faculty applications

func (api *communityApi) submitApplication(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	var data faculty.NewApplication
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err = data.Validate(api.deps.FacultySvc); err != nil {
		return err
	}

	app, err := api.deps.FacultySvc.Submit(sess.User().ID, data)
	if err != nil {
		return errors.Wrap(err, "submitting application")
	}
	api.record(activity.TypeInfo, "Faculty Application Submitted", app.FirstName+" "+app.LastName)
	sess.Inbox.Push("Your application to teach " + app.Specialization + " was received.")
	return ctx.JSON(http.StatusCreated, app)
}

func (api *communityApi) queryApplications(ctx echo.Context) error {
	apps, err := api.deps.FacultySvc.List()
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	return ctx.JSON(http.StatusOK, apps)
}

// Users

func (api *communityApi) updateMe(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	origUsr, err := api.deps.UserSvc.GetByID(sess.User().ID)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err = data.Validate(origUsr, api.deps.UserSvc); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.Update(origUsr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	api.deps.Sessions.UpdateUser(usr)
	sess.Inbox.Push("Your profile was successfully updated.")
	return ctx.JSON(http.StatusOK, usr)
}
