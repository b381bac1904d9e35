package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type stubAccountService struct {
	services.AccountServiceInterface

	registered  request_models.SignUpRequest
	registerErr error
	role        db_models.Role
	roleErr     error
}

func (s *stubAccountService) Register(_ context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	s.registered = req
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &response_models.AccountResponse{Email: req.Email}, nil
}

func (s *stubAccountService) SetRole(_ context.Context, _, _ uuid.UUID, role db_models.Role) (*response_models.AccountResponse, error) {
	s.role = role
	if s.roleErr != nil {
		return nil, s.roleErr
	}
	return &response_models.AccountResponse{}, nil
}

func TestRegister(t *testing.T) {
	svc := &stubAccountService{}
	r := gin.New()
	r.POST("/accounts/register", NewAccountController(svc).Register)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts/register",
		strings.NewReader(`{"full_name":"Al","email":"not-an-email","password":"secret1"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := `{"full_name":"Alice","email":"alice@example.com","password":"secret1"}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice@example.com", svc.registered.Email)

	svc.registerErr = utils.ErrEmailAlreadyExists
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/accounts/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetRole(t *testing.T) {
	svc := &stubAccountService{}
	r := gin.New()
	r.PATCH("/admin/users/:id/role", asUser(uuid.New()), NewAccountController(svc).SetRole)
	target := "/admin/users/" + uuid.NewString() + "/role"

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"role":"owner"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"role":"admin"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, db_models.Role("admin"), svc.role)

	svc.roleErr = utils.ErrForbidden
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(`{"role":"user"}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
