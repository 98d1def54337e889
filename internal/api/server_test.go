package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omshinde26/honda-digital-showroom/internal/domain"
	"github.com/omshinde26/honda-digital-showroom/internal/services"
	"github.com/omshinde26/honda-digital-showroom/internal/store"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

// stubAuth resolves fixed tokens to fixed users so handler tests run
// without a database.
type stubAuth struct {
	tokens map[string]*domain.AdminUser
}

func (a *stubAuth) Login(ctx context.Context, username, password string) (*services.LoginResult, error) {
	if username == "admin" && password == "secret123" {
		return &services.LoginResult{
			AccessToken: "admin-token",
			TokenType:   "bearer",
			User:        a.tokens["admin-token"],
		}, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
}

func (a *stubAuth) Authenticate(ctx context.Context, token string) (*domain.AdminUser, error) {
	if user, ok := a.tokens[token]; ok {
		return user, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid or expired token")
}

func (a *stubAuth) ChangePassword(ctx context.Context, user *domain.AdminUser, currentPassword, newPassword string) error {
	return nil
}

func newTestServer(t *testing.T, limiterCapacity int) *Server {
	t.Helper()
	auth := &stubAuth{tokens: map[string]*domain.AdminUser{
		"admin-token": {ID: 1, Username: "admin", IsActive: true, IsAdmin: true, IsStaff: true},
		"staff-token": {ID: 2, Username: "staff", IsActive: true, IsStaff: true},
	}}
	limiter := NewRateLimiter(limiterCapacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return New(
		services.NewEnquiryService(store.NewMemoryStore(), nil),
		services.NewEMIService(nil),
		auth,
		services.NewHealthService("showroom-test", nil),
		limiter,
	)
}

func submitBody() []byte {
	body, _ := json.Marshal(map[string]string{
		"name":         "Omkar Shinde",
		"email":        "omkar@example.com",
		"phone":        "+919812345678",
		"city":         "Pune",
		"vehicle_type": "scooter",
		"message":      "Interested in the Activa 125",
	})
	return body
}

func doRequest(srv *Server, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSubmitEnquiry_Returns201(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := doRequest(srv, http.MethodPost, "/api/v1/enquiries", "", submitBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if !resp.Success || resp.Data.ID == "" {
		t.Errorf("expected success with an id, got %s", rec.Body.String())
	}
}

func TestSubmitEnquiry_ValidationFailureListsFields(t *testing.T) {
	srv := newTestServer(t, 100)

	body, _ := json.Marshal(map[string]string{
		"name":         "X",
		"email":        "not-an-email",
		"phone":        "0123",
		"city":         "Pune",
		"vehicle_type": "scooter",
	})
	rec := doRequest(srv, http.MethodPost, "/api/v1/enquiries", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                   `json:"success"`
		Errors  []apperrors.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	seen := map[string]bool{}
	for _, f := range resp.Errors {
		seen[f.Field] = true
	}
	for _, field := range []string{"name", "email", "phone"} {
		if !seen[field] {
			t.Errorf("missing field error for %s in %s", field, rec.Body.String())
		}
	}
}

func TestSubmitEnquiry_RateLimited(t *testing.T) {
	srv := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		rec := doRequest(srv, http.MethodPost, "/api/v1/enquiries", "", submitBody())
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, rec.Code)
		}
	}
	rec := doRequest(srv, http.MethodPost, "/api/v1/enquiries", "", submitBody())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the bucket is drained, got %d", rec.Code)
	}
}

func TestListEnquiries_RequiresStaffToken(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := doRequest(srv, http.MethodGet, "/api/v1/enquiries", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/v1/enquiries", "bogus", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a bad token, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/v1/enquiries", "staff-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a staff token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEnquiryLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := doRequest(srv, http.MethodPost, "/api/v1/enquiries", "", submitBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", rec.Code)
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	id := created.Data.ID

	rec = doRequest(srv, http.MethodGet, "/api/v1/enquiries/"+id, "staff-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body, _ := json.Marshal(map[string]string{"status": "contacted", "notes": "called back"})
	rec = doRequest(srv, http.MethodPatch, fmt.Sprintf("/api/v1/enquiries/%s/status", id), "staff-token", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// staff may not delete
	rec = doRequest(srv, http.MethodDelete, "/api/v1/enquiries/"+id, "staff-token", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete as staff: expected 403, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodDelete, "/api/v1/enquiries/"+id, "admin-token", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete as admin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(srv, http.MethodGet, "/api/v1/enquiries/"+id, "staff-token", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestUpdateStatus_RejectsBadStatus(t *testing.T) {
	srv := newTestServer(t, 100)

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	rec := doRequest(srv, http.MethodPatch, "/api/v1/enquiries/123/status", "staff-token", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_WrongCredentialsReturn401(t *testing.T) {
	srv := newTestServer(t, 100)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrongpass"})
	rec := doRequest(srv, http.MethodPost, "/api/v1/auth/login", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	body, _ = json.Marshal(map[string]string{"username": "admin", "password": "secret123"})
	rec = doRequest(srv, http.MethodPost, "/api/v1/auth/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Errorf("expected a bearer token, got %s", rec.Body.String())
	}
}

func TestEMIQuoteEndpoint(t *testing.T) {
	srv := newTestServer(t, 100)

	body, _ := json.Marshal(map[string]interface{}{
		"vehicle_price": 87234,
		"down_payment":  8965,
		"annual_rate":   9,
		"tenure_value":  24,
		"tenure_unit":   "months",
	})
	rec := doRequest(srv, http.MethodPost, "/api/v1/emi/quote", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			EMI          int     `json:"emi"`
			TotalPayment float64 `json:"total_payment"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp.Data.EMI <= 0 {
		t.Errorf("expected a positive EMI, got %d", resp.Data.EMI)
	}

	body, _ = json.Marshal(map[string]interface{}{
		"vehicle_price": 87234,
		"down_payment":  90000,
		"annual_rate":   9,
		"tenure_value":  24,
		"tenure_unit":   "months",
	})
	rec = doRequest(srv, http.MethodPost, "/api/v1/emi/quote", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for down payment above price, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, 100)

	rec := doRequest(srv, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %q", resp.Status)
	}
}
