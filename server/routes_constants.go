package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/{$}"

	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthOTP    = "/auth/otp"
	RouteAuthLogout = "/auth/logout"

	// Protected views. The role each one requires lives in the navigation table.
	RouteDashboard = "/dashboard"

	// API Routes
	RouteAPILogin      = "/api/login"
	RouteAPISession    = "/api/session"
	RouteAPINavigation = "/api/navigation"

	RouteHealth = "/healthz"

	// Catch-all for anything not registered above
	RouteNotFound = "/"
)
