// Package gate decides which screens a session may reach.
package gate

import (
	"strings"

	"taskdesk/internal/model"
	"taskdesk/internal/session"
)

// State is the outcome class of an access decision.
type State string

const (
	Resolving  State = "resolving"
	Anonymous  State = "anonymous"
	Authorized State = "authorized"
	Forbidden  State = "forbidden"
)

// Route paths of the client.
const (
	PathLogin           = "/login"
	PathSignup          = "/signup"
	PathRoot            = "/"
	PathUnauthorized    = "/unauthorized"
	PathAdminDashboard  = "/admin/dashboard"
	PathAdminTasks      = "/admin/tasks"
	PathAdminCreateTask = "/admin/create-task"
	PathAdminUsers      = "/admin/users"
	PathUserDashboard   = "/user/dashboard"
	PathUserTasks       = "/user/tasks"
	PathUserTaskDetails = "/user/task-details/:id"
)

// Descriptor maps a navigable path to the roles allowed to render it.
type Descriptor struct {
	Path         string
	AllowedRoles []model.Role
}

// Allows reports whether role may render the route.
func (d Descriptor) Allows(role model.Role) bool {
	for _, r := range d.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	adminOnly  = []model.Role{model.RoleAdmin}
	memberOnly = []model.Role{model.RoleMember}
)

// Routes is the guarded route table.
var Routes = []Descriptor{
	{Path: PathAdminDashboard, AllowedRoles: adminOnly},
	{Path: PathAdminTasks, AllowedRoles: adminOnly},
	{Path: PathAdminCreateTask, AllowedRoles: adminOnly},
	{Path: PathAdminUsers, AllowedRoles: adminOnly},
	{Path: PathUserDashboard, AllowedRoles: memberOnly},
	{Path: PathUserTasks, AllowedRoles: memberOnly},
	{Path: PathUserTaskDetails, AllowedRoles: memberOnly},
}

// Decision is what the router must do for one navigation.
type Decision struct {
	State State
	// Redirect is empty when the route renders (or shows loading).
	Redirect string
}

// Decide evaluates access to a guarded route. It is a pure function of its
// inputs. Anonymous sessions go to login whatever the route allows; the
// attempted path is not remembered.
func Decide(s session.Snapshot, d Descriptor) Decision {
	switch {
	case s.Resolving:
		return Decision{State: Resolving}
	case s.Identity == nil:
		return Decision{State: Anonymous, Redirect: PathLogin}
	case !d.Allows(s.Identity.Role):
		return Decision{State: Forbidden, Redirect: PathUnauthorized}
	default:
		return Decision{State: Authorized}
	}
}

// Root decides where "/" leads. It never renders guarded content.
func Root(s session.Snapshot) Decision {
	switch {
	case s.Resolving:
		return Decision{State: Resolving}
	case s.Identity == nil:
		return Decision{State: Anonymous, Redirect: PathLogin}
	default:
		return Decision{State: Authorized, Redirect: HomeFor(s.Identity.Role)}
	}
}

// HomeFor returns the landing page of a role.
func HomeFor(role model.Role) string {
	if role == model.RoleAdmin {
		return PathAdminDashboard
	}
	return PathUserDashboard
}

// Lookup finds the descriptor for a concrete request path. Segments
// starting with ':' in a descriptor match any single non-empty segment.
func Lookup(path string) (Descriptor, bool) {
	for _, d := range Routes {
		if match(d.Path, path) {
			return d, true
		}
	}
	return Descriptor{}, false
}

func match(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
