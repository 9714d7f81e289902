package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/api/middleware"
	"github.com/crunchperks/crunchperks-backend/api/responses"
	"github.com/crunchperks/crunchperks-backend/api/validators"
	"github.com/crunchperks/crunchperks-backend/internal/partners"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
)

// PartnerSignupRequest claims an approved application. The account inherits
// its tier and business details from the application record.
type PartnerSignupRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid4"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=10,max=128"`
}

// PartnerLoginRequest carries partner credentials.
type PartnerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginRequest carries operations console credentials.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PartnerSignup wires account creation from an approved application.
func PartnerSignup(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body PartnerSignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		applicationID, err := uuid.Parse(body.ApplicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid application id"))
			return
		}

		result, err := svc.Signup(r.Context(), partners.SignupInput{
			ApplicationID: applicationID,
			Email:         body.Email,
			Password:      body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// PartnerLogin wires the partner login endpoint.
func PartnerLogin(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body PartnerLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), partners.LoginInput{
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PartnerMe returns the authenticated partner's own profile.
func PartnerMe(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner := middleware.PartnerFromContext(r.Context())
		if partner == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		dto, err := svc.Me(r.Context(), partner.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AdminLogin wires the operations console login.
func AdminLogin(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body AdminLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminLogin(r.Context(), partners.AdminLoginInput{
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
