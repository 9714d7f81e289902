package controllers

import (
	"net/http"

	"github.com/crunchperks/crunchperks-backend/api/middleware"
	"github.com/crunchperks/crunchperks-backend/api/responses"
	"github.com/crunchperks/crunchperks-backend/api/validators"
	"github.com/crunchperks/crunchperks-backend/internal/ads"
	"github.com/crunchperks/crunchperks-backend/internal/applications"
	"github.com/crunchperks/crunchperks-backend/internal/partners"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
)

// ReviewApplicationRequest is the approve/reject decision payload.
type ReviewApplicationRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// SetPartnerStatusRequest moves a partner between account statuses.
type SetPartnerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended cancelled"`
}

// ReviewAdRequest is the moderation decision payload.
type ReviewAdRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// AdminListApplications pages through applications with optional status and
// assignee filters.
func AdminListApplications(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "application service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := pageParams(r, applications.DefaultPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter applications.ListFilter
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseApplicationStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid application status").
						WithDetails(map[string]string{"status": raw}))
				return
			}
			filter.Status = &status
		}
		if raw := r.URL.Query().Get("assigned_to"); raw != "" {
			target, err := enums.ParseRoutingTarget(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid routing target").
						WithDetails(map[string]string{"assigned_to": raw}))
				return
			}
			filter.AssignedTo = &target
		}

		rows, meta, err := svc.AdminList(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"applications": rows,
			"meta":         meta,
		})
	}
}

// AdminGetApplication returns the full application record for review.
func AdminGetApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		dto, err := svc.AdminGet(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AdminReviewApplication records the approve/reject decision. The decision
// author comes from the admin session, not the payload.
func AdminReviewApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body ReviewApplicationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Review(r.Context(), id, applications.ReviewInput{
			Approve: body.Approve,
			Author:  middleware.EmailFromContext(r.Context()),
			Note:    body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AdminSetPartnerStatus suspends, cancels, or reactivates a partner account.
func AdminSetPartnerStatus(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body SetPartnerStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParsePartnerStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid partner status").
					WithDetails(map[string]string{"status": body.Status}))
			return
		}

		dto, err := svc.AdminSetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AdminReviewAd records the moderation decision on a pending_review ad.
func AdminReviewAd(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ReviewAdRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Review(r.Context(), id, ads.ReviewInput{
			Approve: body.Approve,
			Author:  middleware.EmailFromContext(r.Context()),
			Note:    body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AdminActivateAd puts an approved or paused ad into rotation.
func AdminActivateAd(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Activate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AdminPauseAd takes an active ad out of rotation.
func AdminPauseAd(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "ad service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Pause(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
