package controllers

import (
	"net/http"
	"time"

	"github.com/crunchperks/crunchperks-backend/api/middleware"
	"github.com/crunchperks/crunchperks-backend/api/responses"
	"github.com/crunchperks/crunchperks-backend/api/validators"
	"github.com/crunchperks/crunchperks-backend/internal/ads"
	"github.com/crunchperks/crunchperks-backend/pkg/config"
	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
	"github.com/crunchperks/crunchperks-backend/pkg/pagination"
)

// CreateAdRequest is the multipart text portion of an ad create.
type CreateAdRequest struct {
	Title       string `json:"title" validate:"required,max=50"`
	Catchphrase string `json:"catchphrase" validate:"required,max=75"`
}

// UpdateAdRequest carries a partial ad edit. Schedule dates are RFC 3339.
type UpdateAdRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=50"`
	Catchphrase *string    `json:"catchphrase,omitempty" validate:"omitempty,max=75"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft pending_review paused"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// CreateAd accepts a multipart form with the creative image plus title and
// catchphrase fields. The image goes through intake before any row exists,
// so a rejected request leaves no asset behind.
func CreateAd(svc ads.Service, guard *ads.IntakeGuard, cfg config.AdsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || guard == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, ok := requirePartner(w, r, logg)
		if !ok {
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		body := CreateAdRequest{
			Title:       r.FormValue("title"),
			Catchphrase: r.FormValue("catchphrase"),
		}
		if err := validators.ValidateStruct(&body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "an image file is required"))
			return
		}
		defer file.Close()

		asset, err := guard.Intake(r.Context(), header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), partner.ID, ads.CreateInput{
			Title:       body.Title,
			Catchphrase: body.Catchphrase,
		}, asset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListAds pages through the partner's own ads.
func ListAds(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, ok := requirePartner(w, r, logg)
		if !ok {
			return
		}

		page, err := pageParams(r, ads.DefaultPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter ads.ListFilter
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseAdStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid ad status").
						WithDetails(map[string]string{"status": raw}))
				return
			}
			filter.Status = &status
		}

		rows, meta, err := svc.List(r.Context(), partner.ID, filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"ads":  rows,
			"meta": meta,
		})
	}
}

// GetAd fetches one of the partner's own ads.
func GetAd(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, ok := requirePartner(w, r, logg)
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), partner.ID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// UpdateAd edits a draft or paused ad.
func UpdateAd(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, ok := requirePartner(w, r, logg)
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateAdRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), partner.ID, id, ads.UpdateInput{
			Title:       body.Title,
			Catchphrase: body.Catchphrase,
			Status:      body.Status,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// DeleteAd removes a non-active ad and its hosted asset.
func DeleteAd(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, ok := requirePartner(w, r, logg)
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), partner.ID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SubmitAdForReview moves a draft into the moderation queue.
func SubmitAdForReview(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, ok := requirePartner(w, r, logg)
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SubmitForReview(r.Context(), partner.ID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func requirePartner(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*models.Partner, bool) {
	partner := middleware.PartnerFromContext(r.Context())
	if partner == nil {
		responses.WriteError(r.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return nil, false
	}
	return partner, true
}

func pageParams(r *http.Request, defaultLimit int) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}
