package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/db"
	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/pagination"
)

// DefaultPageSize is the admin list page size when none is requested.
const DefaultPageSize = 20

type applicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Application, int64, error)
	Update(ctx context.Context, application *models.Application) error
	AddReviewNote(ctx context.Context, note *models.ApplicationReviewNote) error
}

// Service exposes application intake and review operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*ApplicationDTO, error)
	GetStatus(ctx context.Context, id uuid.UUID) (*StatusDTO, error)
	AdminGet(ctx context.Context, id uuid.UUID) (*ApplicationDTO, error)
	AdminList(ctx context.Context, filter ListFilter, page pagination.Params) ([]ApplicationDTO, pagination.Meta, error)
	Review(ctx context.Context, id uuid.UUID, input ReviewInput) (*ApplicationDTO, error)
}

type service struct {
	repo        applicationRepository
	autoApprove bool
	now         func() time.Time
}

// ServiceParams collects the dependencies for NewService.
type ServiceParams struct {
	Repo applicationRepository

	// AutoApprove flips freshly submitted applications straight to approved.
	AutoApprove bool

	Now func() time.Time
}

// NewService builds an application service with the provided repository.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("application repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		autoApprove: params.AutoApprove,
		now:         now,
	}, nil
}

// Submit validates a business application and records it for review. The
// reviewer assignment is derived from the location bucket at submission time
// and never changes afterwards.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*ApplicationDTO, error) {
	if !input.AgreeToTerms {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "you must agree to the terms to apply")
	}

	category, err := enums.ParseBusinessCategory(input.BusinessCategory)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business category").
			WithDetails(map[string]string{"business_category": input.BusinessCategory})
	}
	locationCount, err := enums.ParseLocationCount(input.LocationCount)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid location count").
			WithDetails(map[string]string{"location_count": input.LocationCount})
	}
	tier := enums.TierDFW
	if input.Tier != "" {
		tier, err = enums.ParseTier(input.Tier)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tier").
				WithDetails(map[string]string{"tier": input.Tier})
		}
	}

	now := s.now().UTC()
	status := enums.ApplicationStatusPending
	var reviewedAt, approvedAt *time.Time
	if s.autoApprove {
		status = enums.ApplicationStatusApproved
		reviewedAt = &now
		approvedAt = &now
	}

	application := &models.Application{
		ID:               uuid.New(),
		BusinessName:     strings.TrimSpace(input.BusinessName),
		EIN:              strings.TrimSpace(input.EIN),
		BusinessCategory: category,
		WebsiteURL:       input.WebsiteURL,
		AddressLine1:     strings.TrimSpace(input.AddressLine1),
		AddressLine2:     input.AddressLine2,
		City:             strings.TrimSpace(input.City),
		State:            strings.ToUpper(strings.TrimSpace(input.State)),
		ZipCode:          strings.TrimSpace(input.ZipCode),
		ContactName:      strings.TrimSpace(input.ContactName),
		ContactTitle:     strings.TrimSpace(input.ContactTitle),
		ContactEmail:     strings.ToLower(strings.TrimSpace(input.ContactEmail)),
		ContactPhone:     strings.TrimSpace(input.ContactPhone),
		LocationCount:    locationCount,
		Tier:             tier,
		AgreedAt:         now,
		Status:           status,
		AssignedTo:       locationCount.RoutingTarget(),
		ReviewedAt:       reviewedAt,
		ApprovedAt:       approvedAt,
	}

	if err := s.repo.Create(ctx, application); err != nil {
		switch {
		case db.IsUniqueViolation(err, "ein"):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an application with this EIN already exists")
		case db.IsUniqueViolation(err, "contact_email"):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an application with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}

	return FromModel(application), nil
}

// GetStatus returns the public subset an applicant may poll.
func (s *service) GetStatus(ctx context.Context, id uuid.UUID) (*StatusDTO, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "application not found")
	}
	return StatusFromModel(application), nil
}

// AdminGet returns the full record for the review console.
func (s *service) AdminGet(ctx context.Context, id uuid.UUID) (*ApplicationDTO, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "application not found")
	}
	return FromModel(application), nil
}

// AdminList pages through applications, optionally filtered by status and
// assigned reviewer.
func (s *service) AdminList(ctx context.Context, filter ListFilter, page pagination.Params) ([]ApplicationDTO, pagination.Meta, error) {
	page = pagination.Normalize(page, DefaultPageSize)

	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}

	dtos := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, pagination.MetaFor(page, total), nil
}

// Review records an approve/reject decision. Terminal applications cannot be
// re-decided.
func (s *service) Review(ctx context.Context, id uuid.UUID, input ReviewInput) (*ApplicationDTO, error) {
	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "application not found")
	}

	if application.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application has already been reviewed").
			WithDetails(map[string]string{"status": application.Status.String()})
	}

	now := s.now().UTC()
	if input.Approve {
		application.Status = enums.ApplicationStatusApproved
		application.ApprovedAt = &now
	} else {
		application.Status = enums.ApplicationStatusRejected
	}
	application.ReviewedAt = &now

	if err := s.repo.Update(ctx, application); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application")
	}

	if note := strings.TrimSpace(input.Note); note != "" {
		reviewNote := &models.ApplicationReviewNote{
			ID:            uuid.New(),
			ApplicationID: application.ID,
			Author:        strings.TrimSpace(input.Author),
			Note:          note,
		}
		if err := s.repo.AddReviewNote(ctx, reviewNote); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record review note")
		}
		application.ReviewNotes = append(application.ReviewNotes, *reviewNote)
	}

	return FromModel(application), nil
}
