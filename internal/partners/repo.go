package partners

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
)

// Repository handles partner persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to partner operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new partner row.
func (r *Repository) Create(ctx context.Context, partner *models.Partner) error {
	if partner == nil {
		return fmt.Errorf("partner is required")
	}
	return r.db.WithContext(ctx).Create(partner).Error
}

// FindByID loads a partner with its membership codes.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).
		Preload("MembershipCodes").
		Where("id = ?", id).
		First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// FindByEmail loads a partner by its login email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// Update saves the provided partner.
func (r *Repository) Update(ctx context.Context, partner *models.Partner) error {
	if partner == nil {
		return fmt.Errorf("partner is required")
	}
	return r.db.WithContext(ctx).Save(partner).Error
}

// StampLastLogin records a successful login without touching other columns.
func (r *Repository) StampLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Partner{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// CreateMembershipCode persists a redemption code for the partner.
func (r *Repository) CreateMembershipCode(ctx context.Context, code *models.PartnerMembershipCode) error {
	if code == nil {
		return fmt.Errorf("membership code is required")
	}
	return r.db.WithContext(ctx).Create(code).Error
}

// AdjustActiveAdCount shifts the cached active ad counter by delta, clamped
// at zero by the table check constraint.
func (r *Repository) AdjustActiveAdCount(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Partner{}).
		Where("id = ?", id).
		UpdateColumn("active_ad_count", gorm.Expr("active_ad_count + ?", delta)).Error
}
