package ads

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/imagehost"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
	"github.com/crunchperks/crunchperks-backend/pkg/pagination"
)

const (
	// DefaultPageSize is the partner ad list page size when none is requested.
	DefaultPageSize = 10

	MaxTitleLen       = 50
	MaxCatchphraseLen = 75

	defaultRotationsPerDay = 24
)

type adRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Ad, error)
	FindForPartner(ctx context.Context, id, partnerID uuid.UUID) (*models.Ad, error)
	ListForPartner(ctx context.Context, partnerID uuid.UUID, filter ListFilter, page pagination.Params) ([]models.Ad, int64, error)
	Update(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddModerationNote(ctx context.Context, note *models.AdModerationNote) error
}

type activeAdCounter interface {
	AdjustActiveAdCount(ctx context.Context, id uuid.UUID, delta int) error
}

type assetRemover interface {
	Destroy(ctx context.Context, publicID string) error
}

// Service exposes the ad lifecycle for partners and moderators. Every
// partner-facing lookup is scoped to the caller, so a foreign ad reads as
// not found rather than forbidden.
type Service interface {
	Create(ctx context.Context, partnerID uuid.UUID, input CreateInput, asset *imagehost.Asset) (*AdDTO, error)
	List(ctx context.Context, partnerID uuid.UUID, filter ListFilter, page pagination.Params) ([]AdDTO, pagination.Meta, error)
	Get(ctx context.Context, partnerID, id uuid.UUID) (*AdDTO, error)
	Update(ctx context.Context, partnerID, id uuid.UUID, input UpdateInput) (*AdDTO, error)
	SubmitForReview(ctx context.Context, partnerID, id uuid.UUID) (*AdDTO, error)
	Delete(ctx context.Context, partnerID, id uuid.UUID) error

	Review(ctx context.Context, id uuid.UUID, input ReviewInput) (*AdDTO, error)
	Activate(ctx context.Context, id uuid.UUID) (*AdDTO, error)
	Pause(ctx context.Context, id uuid.UUID) (*AdDTO, error)
}

type service struct {
	repo     adRepository
	partners activeAdCounter
	assets   assetRemover
	logg     *logger.Logger
	now      func() time.Time
}

// ServiceParams collects the dependencies for NewService.
type ServiceParams struct {
	Repo adRepository

	// Partners maintains the cached active ad counter on partner rows.
	Partners activeAdCounter

	// Assets is optional; when nil, compensating destroys are skipped.
	Assets assetRemover

	Logger *logger.Logger
	Now    func() time.Time
}

// NewService builds an ad service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ad repository required")
	}
	if params.Partners == nil {
		return nil, fmt.Errorf("active ad counter required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		partners: params.Partners,
		assets:   params.Assets,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Create records a new draft creative for an already-hosted asset. The asset
// is destroyed as compensation when the text fields fail validation, so a
// rejected create leaves nothing behind at the host.
func (s *service) Create(ctx context.Context, partnerID uuid.UUID, input CreateInput, asset *imagehost.Asset) (*AdDTO, error) {
	if asset == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an image is required")
	}

	title := strings.TrimSpace(input.Title)
	catchphrase := strings.TrimSpace(input.Catchphrase)
	if err := validateCopy(title, catchphrase); err != nil {
		s.discardAsset(ctx, asset.PublicID)
		return nil, err
	}

	ad := &models.Ad{
		ID:               uuid.New(),
		PartnerID:        partnerID,
		Title:            title,
		Catchphrase:      catchphrase,
		ImageURL:         asset.URL,
		ImageAssetID:     asset.PublicID,
		ImageWidth:       asset.Width,
		ImageHeight:      asset.Height,
		ImageBytes:       asset.Bytes,
		ImageFormat:      strings.ToLower(asset.Format),
		Status:           enums.AdStatusDraft,
		ModerationStatus: enums.ModerationStatusPending,
		RotationsPerDay:  defaultRotationsPerDay,
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		s.discardAsset(ctx, asset.PublicID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ad")
	}

	return FromModel(ad), nil
}

// List pages through the partner's own ads.
func (s *service) List(ctx context.Context, partnerID uuid.UUID, filter ListFilter, page pagination.Params) ([]AdDTO, pagination.Meta, error) {
	page = pagination.Normalize(page, DefaultPageSize)

	rows, total, err := s.repo.ListForPartner(ctx, partnerID, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ads")
	}

	dtos := make([]AdDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, pagination.MetaFor(page, total), nil
}

// Get returns one of the partner's own ads.
func (s *service) Get(ctx context.Context, partnerID, id uuid.UUID) (*AdDTO, error) {
	ad, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(ad), nil
}

// Update edits a draft or paused ad. The image is immutable after intake;
// only the copy and a constrained status change can move.
func (s *service) Update(ctx context.Context, partnerID, id uuid.UUID, input UpdateInput) (*AdDTO, error) {
	ad, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}

	if !ad.Status.IsEditable() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "ad cannot be edited in its current status").
			WithDetails(map[string]string{"status": ad.Status.String()})
	}

	title := ad.Title
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	catchphrase := ad.Catchphrase
	if input.Catchphrase != nil {
		catchphrase = strings.TrimSpace(*input.Catchphrase)
	}
	if err := validateCopy(title, catchphrase); err != nil {
		return nil, err
	}
	ad.Title = title
	ad.Catchphrase = catchphrase

	if input.StartDate != nil {
		ad.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		ad.EndDate = input.EndDate
	}
	if ad.StartDate != nil && ad.EndDate != nil && !ad.EndDate.After(*ad.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule end must come after its start")
	}

	if input.Status != nil {
		status, err := enums.ParseAdStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid ad status").
				WithDetails(map[string]string{"status": *input.Status})
		}
		switch status {
		case enums.AdStatusDraft, enums.AdStatusPaused:
			ad.Status = status
		case enums.AdStatusPendingReview:
			ad.Status = status
			at := s.now().UTC()
			ad.SubmittedAt = &at
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status cannot be set directly").
				WithDetails(map[string]string{"status": status.String()})
		}
	}

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad")
	}
	return FromModel(ad), nil
}

// SubmitForReview moves a draft into the moderation queue. A second call
// finds the ad already pending and fails.
func (s *service) SubmitForReview(ctx context.Context, partnerID, id uuid.UUID) (*AdDTO, error) {
	ad, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}

	if ad.Status != enums.AdStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only draft ads can be submitted for review").
			WithDetails(map[string]string{"status": ad.Status.String()})
	}

	at := s.now().UTC()
	ad.Status = enums.AdStatusPendingReview
	ad.SubmittedAt = &at

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad")
	}
	return FromModel(ad), nil
}

// Delete removes a non-active ad and its hosted asset. The asset destroy is
// best effort; a dangling asset is cheaper than a dangling row.
func (s *service) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	ad, err := s.findOwned(ctx, partnerID, id)
	if err != nil {
		return err
	}

	if ad.Status == enums.AdStatusActive {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "an active ad cannot be deleted").
			WithDetails(map[string]string{"status": ad.Status.String()})
	}

	s.discardAsset(ctx, ad.ImageAssetID)

	if err := s.repo.Delete(ctx, ad.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ad")
	}
	return nil
}

// Review records the moderation decision on a pending_review ad.
func (s *service) Review(ctx context.Context, id uuid.UUID, input ReviewInput) (*AdDTO, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ad not found")
	}

	if ad.Status != enums.AdStatusPendingReview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "ad is not awaiting review").
			WithDetails(map[string]string{"status": ad.Status.String()})
	}

	at := s.now().UTC()
	if input.Approve {
		ad.Status = enums.AdStatusApproved
		ad.ModerationStatus = enums.ModerationStatusManualApproved
	} else {
		ad.Status = enums.AdStatusRejected
		ad.ModerationStatus = enums.ModerationStatusManualRejected
		ad.RejectedAt = &at
	}
	ad.ReviewedAt = &at

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad")
	}

	if note := strings.TrimSpace(input.Note); note != "" {
		moderationNote := &models.AdModerationNote{
			ID:     uuid.New(),
			AdID:   ad.ID,
			Author: strings.TrimSpace(input.Author),
			Note:   note,
		}
		if err := s.repo.AddModerationNote(ctx, moderationNote); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record moderation note")
		}
		ad.ModerationNotes = append(ad.ModerationNotes, *moderationNote)
	}

	return FromModel(ad), nil
}

// Activate puts an approved or paused ad into rotation.
func (s *service) Activate(ctx context.Context, id uuid.UUID) (*AdDTO, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ad not found")
	}

	if ad.Status != enums.AdStatusApproved && ad.Status != enums.AdStatusPaused {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only approved or paused ads can be activated").
			WithDetails(map[string]string{"status": ad.Status.String()})
	}

	at := s.now().UTC()
	ad.Status = enums.AdStatusActive
	ad.ActivatedAt = &at

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad")
	}
	s.adjustActiveCount(ctx, ad.PartnerID, 1)

	return FromModel(ad), nil
}

// Pause takes an active ad out of rotation.
func (s *service) Pause(ctx context.Context, id uuid.UUID) (*AdDTO, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ad not found")
	}

	if ad.Status != enums.AdStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only active ads can be paused").
			WithDetails(map[string]string{"status": ad.Status.String()})
	}

	ad.Status = enums.AdStatusPaused

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad")
	}
	s.adjustActiveCount(ctx, ad.PartnerID, -1)

	return FromModel(ad), nil
}

func (s *service) findOwned(ctx context.Context, partnerID, id uuid.UUID) (*models.Ad, error) {
	ad, err := s.repo.FindForPartner(ctx, id, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ad not found")
	}
	return ad, nil
}

// validateCopy limits are in characters, not bytes, so multibyte copy is
// measured the way an editor counts it.
func validateCopy(title, catchphrase string) error {
	switch {
	case title == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	case utf8.RuneCountInString(title) > MaxTitleLen:
		return pkgerrors.New(pkgerrors.CodeValidation, "title is too long").
			WithDetails(map[string]string{"max": fmt.Sprintf("%d", MaxTitleLen)})
	case catchphrase == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "catchphrase is required")
	case utf8.RuneCountInString(catchphrase) > MaxCatchphraseLen:
		return pkgerrors.New(pkgerrors.CodeValidation, "catchphrase is too long").
			WithDetails(map[string]string{"max": fmt.Sprintf("%d", MaxCatchphraseLen)})
	}
	return nil
}

func (s *service) discardAsset(ctx context.Context, publicID string) {
	if s.assets == nil || publicID == "" {
		return
	}
	if err := s.assets.Destroy(ctx, publicID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "asset_id", publicID), "ads.asset_destroy_failed")
	}
}

// adjustActiveCount keeps the cached counter on the partner row roughly in
// step with activations. It is bookkeeping, not a source of truth.
func (s *service) adjustActiveCount(ctx context.Context, partnerID uuid.UUID, delta int) {
	if err := s.partners.AdjustActiveAdCount(ctx, partnerID, delta); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "ads.active_count_adjust_failed")
	}
}
