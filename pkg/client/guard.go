package client

import "slices"

// Route is where a guarded screen sends the user.
type Route int

const (
	RouteAllow     Route = iota // render the requested screen
	RouteLogin                  // no session
	RouteDashboard              // logged in with a role the screen does not accept
)

func (r Route) String() string {
	switch r {
	case RouteAllow:
		return "allow"
	case RouteLogin:
		return "/login"
	case RouteDashboard:
		return "/dashboard"
	}
	return "unknown"
}

// Guard decides access to a screen. With no allowed roles any logged-in user
// passes.
func Guard(s *Session, allowed ...Role) Route {
	if !s.Authenticated() {
		return RouteLogin
	}
	if len(allowed) > 0 && !slices.Contains(allowed, s.User.Rol) {
		return RouteDashboard
	}
	return RouteAllow
}
