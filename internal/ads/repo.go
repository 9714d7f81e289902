package ads

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/pagination"
)

// Repository handles ad persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to ad operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new ad row.
func (r *Repository) Create(ctx context.Context, ad *models.Ad) error {
	if ad == nil {
		return fmt.Errorf("ad is required")
	}
	return r.db.WithContext(ctx).Create(ad).Error
}

// FindByID loads an ad with its moderation notes, regardless of owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).
		Preload("ModerationNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// FindForPartner loads an ad only when it belongs to the given partner.
func (r *Repository) FindForPartner(ctx context.Context, id, partnerID uuid.UUID) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).
		Preload("ModerationNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ? AND partner_id = ?", id, partnerID).
		First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// ListForPartner pages through one partner's ads, newest first.
func (r *Repository) ListForPartner(ctx context.Context, partnerID uuid.UUID, filter ListFilter, page pagination.Params) ([]models.Ad, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Ad{}).
		Where("partner_id = ?", partnerID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Ad
	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Update saves the provided ad.
func (r *Repository) Update(ctx context.Context, ad *models.Ad) error {
	if ad == nil {
		return fmt.Errorf("ad is required")
	}
	return r.db.WithContext(ctx).Save(ad).Error
}

// Delete removes the ad row and its moderation notes.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ad_id = ?", id).Delete(&models.AdModerationNote{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Ad{}).Error
	})
}

// AddModerationNote persists a moderation comment on the ad.
func (r *Repository) AddModerationNote(ctx context.Context, note *models.AdModerationNote) error {
	if note == nil {
		return fmt.Errorf("moderation note is required")
	}
	return r.db.WithContext(ctx).Create(note).Error
}
