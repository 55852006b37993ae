package server

import (
	"github.com/jrsteele09/training-portal/navigation"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.RecoverMiddleware))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthOTP, ChainMiddleware(s.OTPSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// API routes
	s.RegisterRouteHandler("POST "+RouteAPILogin, ChainMiddleware(s.APILoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPINavigation, ChainMiddleware(s.NavigationHandler(), s.APIMiddleware()...))

	// Protected views
	for _, route := range navigation.Routes {
		s.RegisterRouteHandler("GET "+route.Path, ChainMiddleware(s.ViewHandler(route), s.HTMLMiddleWare(s.RequireRoute(route))...))
	}

	s.RegisterRouteHandler(RouteNotFound, ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}
