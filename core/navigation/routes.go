package navigation

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrRouteNotFound is returned when a path is not registered.
var ErrRouteNotFound = errors.New("route not found")

// RootPath is returned by ResolvePath for views without a route.
const RootPath = "/"

// Route associates a path with a ViewState.
type Route struct {
	Path string    `json:"path"`
	View ViewState `json:"view"`
}

// DefaultRoutes is the route table of the portal.
var DefaultRoutes = []Route{
	{Path: "/", View: ViewHome},
	{Path: "/dashboard", View: ViewDashboard},
	{Path: "/students", View: ViewStudents},
	{Path: "/courses", View: ViewCourses},
	{Path: "/explore", View: ViewExplore},
	{Path: "/mentors", View: ViewMentors},
	{Path: "/admin", View: ViewAdmin},
	{Path: "/profile", View: ViewUserProfile},
	{Path: "/settings", View: ViewUserSettings},
	{Path: "/my-courses", View: ViewMyCourses},
	{Path: "/apply-to-teach", View: ViewApplyToTeach},
	{Path: "/blog", View: ViewBlog},
	{Path: "/course-details", View: ViewCourseDetails},
}

// Mapper translates between paths and views. It is immutable once built.
type Mapper struct {
	routes []Route
	views  map[string]ViewState
	paths  map[ViewState]string
}

// NewMapper builds the lookup tables for routes.
// A path can only be registered once. When several paths lead to the same view,
// the first registered one is the view's canonical path.
func NewMapper(routes ...Route) (*Mapper, error) {
	m := &Mapper{
		routes: make([]Route, 0, len(routes)),
		views:  make(map[string]ViewState, len(routes)),
		paths:  make(map[ViewState]string, len(routes)),
	}
	for _, r := range routes {
		if r.Path == "" {
			return nil, errors.New("empty route path")
		}
		if !r.View.IsValid() {
			return nil, fmt.Errorf("route %q: unknown view %q", r.Path, r.View)
		}
		if v, ok := m.views[r.Path]; ok {
			return nil, fmt.Errorf("route %q already registered for view %q", r.Path, v)
		}
		m.views[r.Path] = r.View
		if _, ok := m.paths[r.View]; !ok {
			m.paths[r.View] = r.Path
		}
		m.routes = append(m.routes, r)
	}
	return m, nil
}

// DefaultMapper returns a Mapper over DefaultRoutes.
func DefaultMapper() *Mapper {
	m, err := NewMapper(DefaultRoutes...)
	if err != nil {
		panic(err) // DefaultRoutes is static
	}
	return m
}

// ResolveView returns the view registered for path.
func (m *Mapper) ResolveView(path string) (ViewState, error) {
	if v, ok := m.views[path]; ok {
		return v, nil
	}
	return "", errors.Wrapf(ErrRouteNotFound, "%q", path)
}

// ResolvePath returns the canonical path of view, or RootPath if it has none.
func (m *Mapper) ResolvePath(view ViewState) string {
	if p, ok := m.paths[view]; ok {
		return p
	}
	return RootPath
}

// Routes returns the registered routes, in registration order.
func (m *Mapper) Routes() []Route {
	routes := make([]Route, len(m.routes))
	copy(routes, m.routes)
	return routes
}
