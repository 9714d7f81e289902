package applications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/pagination"
)

// Repository handles application persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to application operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new application row.
func (r *Repository) Create(ctx context.Context, application *models.Application) error {
	if application == nil {
		return fmt.Errorf("application is required")
	}
	return r.db.WithContext(ctx).Create(application).Error
}

// FindByID loads an application with its review notes.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).
		Preload("ReviewNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// List returns a page of applications matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Application
	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update saves the provided application.
func (r *Repository) Update(ctx context.Context, application *models.Application) error {
	if application == nil {
		return fmt.Errorf("application is required")
	}
	return r.db.WithContext(ctx).Save(application).Error
}

// AddReviewNote appends a reviewer note.
func (r *Repository) AddReviewNote(ctx context.Context, note *models.ApplicationReviewNote) error {
	if note == nil {
		return fmt.Errorf("note is required")
	}
	return r.db.WithContext(ctx).Create(note).Error
}
