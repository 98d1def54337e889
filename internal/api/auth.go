package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if err := validateLoginRequest(&req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload{
		"success":      true,
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"user":         result.User,
	})
}

// handleLogout exists so clients have a uniform endpoint to call; with
// stateless JWTs the token simply expires, there is nothing to revoke
// server-side.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"user":    userFromContext(r.Context()),
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	user := userFromContext(r.Context())
	if err := s.auth.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload{
		"success": true,
		"message": "Password changed successfully",
	})
}
