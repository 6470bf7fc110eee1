package i18n

import (
	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/user"
)

// MenuItem is a sidebar entry.
type MenuItem struct {
	Path   string               `json:"path"`
	View   navigation.ViewState `json:"view"`
	Label  string               `json:"label"`
	Active bool                 `json:"active"`
}

type menuEntry struct {
	path    string
	labelID string
	roles   []user.Role
}

var (
	everyone  = []user.Role{user.RoleAdmin, user.RoleUser}
	adminOnly = []user.Role{user.RoleAdmin}
	userOnly  = []user.Role{user.RoleUser}

	sidebar = []menuEntry{
		{"/", "NavHome", everyone},
		{"/dashboard", "NavDashboard", adminOnly},
		{"/explore", "NavExplore", everyone},
		{"/my-courses", "MenuMyCourses", userOnly},
		{"/blog", "NavBlog", everyone},
		{"/students", "NavStudents", adminOnly},
		{"/courses", "NavCourses", adminOnly},
		{"/mentors", "NavMentors", adminOnly},
		{"/admin", "NavAdmin", adminOnly},
	}
)

// Menu returns the sidebar items visible to role, labelled in lang.
// The item whose path is currentPath is marked active.
func Menu(mapper *navigation.Mapper, role user.Role, lang, currentPath string) []MenuItem {
	loc := NewLocalizer(lang)
	items := make([]MenuItem, 0, len(sidebar))
	for _, e := range sidebar {
		if !hasRole(e.roles, role) {
			continue
		}
		view, err := mapper.ResolveView(e.path)
		if err != nil {
			continue // route removed from the mapper
		}
		items = append(items, MenuItem{
			Path:   e.path,
			View:   view,
			Label:  loc.T(e.labelID),
			Active: e.path == currentPath,
		})
	}
	return items
}

func hasRole(roles []user.Role, role user.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
