// Package navigation declares the portal's protected views and the sidebar
// menu derived from them.
package navigation

import (
	"github.com/jrsteele09/training-portal/auth"
	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/users"
)

// Route is a protected view.
type Route struct {
	Name     string           `json:"name"`
	Title    string           `json:"title"`
	Path     string           `json:"path"`
	Required auth.Requirement `json:"-"`
}

// Entry is a menu item as shown to a session.
type Entry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

var (
	allRoles      = auth.RequireRoles(users.RoleEmployee, users.RoleManager, users.RoleAdmin)
	managersUp    = auth.RequireRoles(users.RoleManager, users.RoleAdmin)
	administrator = auth.RequireRoles(users.RoleAdmin)
)

// Routes is the fixed view table in menu order.
var Routes = []Route{
	{Name: "dashboard", Title: "Dashboard", Path: "/dashboard", Required: allRoles},
	{Name: "training", Title: "Training", Path: "/training", Required: allRoles},
	{Name: "policies", Title: "Policies", Path: "/policies", Required: allRoles},
	{Name: "compliance", Title: "Compliance", Path: "/compliance", Required: managersUp},
	{Name: "reports", Title: "Reports", Path: "/reports", Required: managersUp},
	{Name: "admin", Title: "Admin Panel", Path: "/admin", Required: administrator},
}

// Lookup returns the route served at path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Visible returns the menu entries session may see, in menu order.
func Visible(session sessions.Session) []Entry {
	entries := make([]Entry, 0, len(Routes))
	for _, r := range Routes {
		if !auth.Allowed(session, r.Required) {
			continue
		}
		entries = append(entries, Entry{Name: r.Name, Title: r.Title, Path: r.Path})
	}
	return entries
}
