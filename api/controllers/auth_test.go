package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/api/middleware"
	"github.com/crunchperks/crunchperks-backend/internal/partners"
	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
)

type stubPartnerService struct {
	authResult  *partners.AuthResultDTO
	adminResult *partners.AdminAuthResultDTO
	partnerDTO  *partners.PartnerDTO
	partner     *models.Partner
	err         error

	gotSignup *partners.SignupInput
	gotLogin  *partners.LoginInput
}

func (s *stubPartnerService) Signup(ctx context.Context, input partners.SignupInput) (*partners.AuthResultDTO, error) {
	s.gotSignup = &input
	return s.authResult, s.err
}

func (s *stubPartnerService) Login(ctx context.Context, input partners.LoginInput) (*partners.AuthResultDTO, error) {
	s.gotLogin = &input
	return s.authResult, s.err
}

func (s *stubPartnerService) Me(ctx context.Context, partnerID uuid.UUID) (*partners.PartnerDTO, error) {
	return s.partnerDTO, s.err
}

func (s *stubPartnerService) AdminLogin(ctx context.Context, input partners.AdminLoginInput) (*partners.AdminAuthResultDTO, error) {
	return s.adminResult, s.err
}

func (s *stubPartnerService) AdminSetStatus(ctx context.Context, partnerID uuid.UUID, status enums.PartnerStatus) (*partners.PartnerDTO, error) {
	return s.partnerDTO, s.err
}

func (s *stubPartnerService) GetPartnerByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	return s.partner, s.err
}

func TestPartnerSignupSuccess(t *testing.T) {
	applicationID := uuid.New()
	svc := &stubPartnerService{
		authResult: &partners.AuthResultDTO{
			Token:   "session-token",
			Partner: partners.PartnerDTO{ID: uuid.New(), Status: enums.PartnerStatusActive},
		},
	}
	handler := PartnerSignup(svc, nil)

	payload := []byte(`{"application_id":"` + applicationID.String() + `","email":"owner@tacoloco.com","password":"sup3r-secret-pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/partner/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotSignup == nil || svc.gotSignup.ApplicationID != applicationID {
		t.Fatalf("signup input not passed through: %+v", svc.gotSignup)
	}

	var envelope struct {
		Data partners.AuthResultDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "session-token" {
		t.Fatalf("token missing from payload: %+v", envelope.Data)
	}
}

func TestPartnerSignupRejectsShortPassword(t *testing.T) {
	handler := PartnerSignup(&stubPartnerService{}, nil)

	payload := []byte(`{"application_id":"` + uuid.NewString() + `","email":"owner@tacoloco.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/partner/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPartnerLoginPassesThroughUnauthorized(t *testing.T) {
	svc := &stubPartnerService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	handler := PartnerLogin(svc, nil)

	payload := []byte(`{"email":"owner@tacoloco.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/partner/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "invalid email or password" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestPartnerMeRequiresSession(t *testing.T) {
	handler := PartnerMe(&stubPartnerService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/partner/me", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPartnerMeReturnsProfile(t *testing.T) {
	partnerID := uuid.New()
	svc := &stubPartnerService{
		partnerDTO: &partners.PartnerDTO{ID: partnerID, BusinessName: "Taco Loco"},
	}
	handler := PartnerMe(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/partner/me", nil)
	req = req.WithContext(middleware.WithPartner(req.Context(), &models.Partner{ID: partnerID}))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data partners.PartnerDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != partnerID {
		t.Fatalf("unexpected partner: %+v", envelope.Data)
	}
}

func TestAdminLoginSuccess(t *testing.T) {
	svc := &stubPartnerService{
		adminResult: &partners.AdminAuthResultDTO{Token: "admin-token", Email: "ops@crunchperks.com"},
	}
	handler := AdminLogin(svc, nil)

	payload := []byte(`{"email":"ops@crunchperks.com","password":"ops-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data partners.AdminAuthResultDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "admin-token" {
		t.Fatalf("token missing: %+v", envelope.Data)
	}
}
