package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/api/responses"
	"github.com/crunchperks/crunchperks-backend/api/validators"
	"github.com/crunchperks/crunchperks-backend/internal/applications"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
)

// SubmitApplicationRequest is the public intake payload.
type SubmitApplicationRequest struct {
	BusinessName     string  `json:"business_name" validate:"required,max=120"`
	EIN              string  `json:"ein" validate:"required,ein"`
	BusinessCategory string  `json:"business_category" validate:"required"`
	WebsiteURL       *string `json:"website_url,omitempty" validate:"omitempty,url"`
	AddressLine1     string  `json:"address_line1" validate:"required,max=120"`
	AddressLine2     *string `json:"address_line2,omitempty" validate:"omitempty,max=120"`
	City             string  `json:"city" validate:"required,max=80"`
	State            string  `json:"state" validate:"required,len=2"`
	ZipCode          string  `json:"zip_code" validate:"required,zipcode"`
	ContactName      string  `json:"contact_name" validate:"required,max=120"`
	ContactTitle     string  `json:"contact_title" validate:"required,max=80"`
	ContactEmail     string  `json:"contact_email" validate:"required,email"`
	ContactPhone     string  `json:"contact_phone" validate:"required,max=20"`
	LocationCount    string  `json:"location_count" validate:"required"`
	Tier             string  `json:"tier" validate:"required,oneof=dfw statewide nationwide"`
	AgreeToTerms     bool    `json:"agree_to_terms" validate:"required,eq=true"`
}

// SubmitApplication wires the public application intake endpoint.
func SubmitApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "application service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body SubmitApplicationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Submit(r.Context(), applications.SubmitInput{
			BusinessName:     body.BusinessName,
			EIN:              body.EIN,
			BusinessCategory: body.BusinessCategory,
			WebsiteURL:       body.WebsiteURL,
			AddressLine1:     body.AddressLine1,
			AddressLine2:     body.AddressLine2,
			City:             body.City,
			State:            body.State,
			ZipCode:          body.ZipCode,
			ContactName:      body.ContactName,
			ContactTitle:     body.ContactTitle,
			ContactEmail:     body.ContactEmail,
			ContactPhone:     body.ContactPhone,
			LocationCount:    body.LocationCount,
			Tier:             body.Tier,
			AgreeToTerms:     body.AgreeToTerms,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GetApplicationStatus wires the public status poll. It returns only the
// subset an applicant may see.
func GetApplicationStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "application service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetStatus(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string]string{"id": raw})
	}
	return id, nil
}
