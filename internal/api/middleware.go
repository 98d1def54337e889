package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
	"github.com/omshinde26/honda-digital-showroom/internal/services"
	"github.com/omshinde26/honda-digital-showroom/internal/util"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "admin_user"

// Authenticator resolves credentials and bearer tokens to admin users.
// *services.AuthService is the production implementation.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*domain.AdminUser, error)
	ChangePassword(ctx context.Context, user *domain.AdminUser, currentPassword, newPassword string) error
}

func userFromContext(ctx context.Context) *domain.AdminUser {
	user, _ := ctx.Value(userContextKey).(*domain.AdminUser)
	return user
}

// authenticated resolves the bearer token and stores the admin user on the
// request context before calling next.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, apperrors.New(apperrors.ErrCodeUnauthorized, "missing or invalid authorization header"))
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// staffOnly allows staff and admin users through.
func (s *Server) staffOnly(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if err := util.RequireStaff(userFromContext(r.Context())); err != nil {
			writeError(w, apperrors.New(apperrors.ErrCodeForbidden, err.Error()))
			return
		}
		next(w, r)
	})
}

// adminOnly allows admin users only.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if err := util.RequireAdmin(userFromContext(r.Context())); err != nil {
			writeError(w, apperrors.New(apperrors.ErrCodeForbidden, err.Error()))
			return
		}
		next(w, r)
	})
}
