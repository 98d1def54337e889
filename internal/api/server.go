// Package api is the HTTP transport: it decodes requests, enforces the
// boundary validation rules and auth scopes, and translates service errors
// into status codes. All business semantics live in internal/services.
package api

import (
	"net/http"

	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"

	"github.com/omshinde26/honda-digital-showroom/internal/services"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	mux       goahttp.ResolverMuxer
	enquiries *services.EnquiryService
	emi       *services.EMIService
	auth      Authenticator
	health    *services.HealthService
	limiter   *RateLimiter
}

// New mounts all routes on a fresh goa muxer.
func New(enquiries *services.EnquiryService, emiSvc *services.EMIService, auth Authenticator, health *services.HealthService, limiter *RateLimiter) *Server {
	s := &Server{
		mux:       goahttp.NewMuxer(),
		enquiries: enquiries,
		emi:       emiSvc,
		auth:      auth,
		health:    health,
		limiter:   limiter,
	}
	s.mount()
	return s
}

func (s *Server) mount() {
	s.mux.Handle("GET", "/health", s.handleHealth)

	s.mux.Handle("POST", "/api/v1/enquiries", s.rateLimited(s.handleSubmitEnquiry))
	s.mux.Handle("GET", "/api/v1/enquiries", s.staffOnly(s.handleListEnquiries))
	s.mux.Handle("GET", "/api/v1/enquiries/stats", s.staffOnly(s.handleEnquiryStats))
	s.mux.Handle("GET", "/api/v1/enquiries/{id}", s.staffOnly(s.handleGetEnquiry))
	s.mux.Handle("PATCH", "/api/v1/enquiries/{id}/status", s.staffOnly(s.handleUpdateEnquiryStatus))
	s.mux.Handle("DELETE", "/api/v1/enquiries/{id}", s.adminOnly(s.handleDeleteEnquiry))
	s.mux.Handle("DELETE", "/api/v1/enquiries", s.adminOnly(s.handleClearEnquiries))

	s.mux.Handle("POST", "/api/v1/auth/login", s.handleLogin)
	s.mux.Handle("POST", "/api/v1/auth/logout", s.authenticated(s.handleLogout))
	s.mux.Handle("GET", "/api/v1/auth/me", s.authenticated(s.handleMe))
	s.mux.Handle("POST", "/api/v1/auth/change-password", s.authenticated(s.handleChangePassword))

	s.mux.Handle("POST", "/api/v1/emi/quote", s.rateLimited(s.handleEMIQuote))
}

// Handler returns the muxer wrapped in the request-scoped middleware.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = middleware.PopulateRequestContext()(handler)
	handler = middleware.RequestID()(handler)
	return handler
}

func (s *Server) pathParam(r *http.Request, name string) string {
	return s.mux.Vars(r)[name]
}
