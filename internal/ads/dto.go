package ads

import (
	"time"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// AdDTO exposes a creative in API responses.
type AdDTO struct {
	ID               uuid.UUID              `json:"id"`
	PartnerID        uuid.UUID              `json:"partner_id"`
	Title            string                 `json:"title"`
	Catchphrase      string                 `json:"catchphrase"`
	ImageURL         string                 `json:"image_url"`
	ImageWidth       int                    `json:"image_width"`
	ImageHeight      int                    `json:"image_height"`
	ImageBytes       int64                  `json:"image_bytes"`
	ImageFormat      string                 `json:"image_format"`
	Status           enums.AdStatus         `json:"status"`
	ModerationStatus enums.ModerationStatus `json:"moderation_status"`
	RotationsPerDay  int                    `json:"rotations_per_day"`
	TotalImpressions int64                  `json:"total_impressions"`
	StartDate        *time.Time             `json:"start_date,omitempty"`
	EndDate          *time.Time             `json:"end_date,omitempty"`
	SubmittedAt      *time.Time             `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time             `json:"reviewed_at,omitempty"`
	ActivatedAt      *time.Time             `json:"activated_at,omitempty"`
	RejectedAt       *time.Time             `json:"rejected_at,omitempty"`
	ModerationNotes  []ModerationNoteDTO    `json:"moderation_notes,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ModerationNoteDTO exposes one moderation comment.
type ModerationNoteDTO struct {
	Author    string    `json:"author"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput carries the text fields for a new creative. The image arrives
// separately through the intake guard.
type CreateInput struct {
	Title       string
	Catchphrase string
}

// UpdateInput carries a partial edit. Nil fields are left untouched; the
// image is immutable after intake.
type UpdateInput struct {
	Title       *string
	Catchphrase *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ReviewInput is the moderation decision on a pending_review ad.
type ReviewInput struct {
	Approve bool
	Author  string
	Note    string
}

// ListFilter narrows a partner's ad listing.
type ListFilter struct {
	Status *enums.AdStatus
}

// FromModel maps the persisted ad into a DTO.
func FromModel(m *models.Ad) *AdDTO {
	if m == nil {
		return nil
	}

	dto := &AdDTO{
		ID:               m.ID,
		PartnerID:        m.PartnerID,
		Title:            m.Title,
		Catchphrase:      m.Catchphrase,
		ImageURL:         m.ImageURL,
		ImageWidth:       m.ImageWidth,
		ImageHeight:      m.ImageHeight,
		ImageBytes:       m.ImageBytes,
		ImageFormat:      m.ImageFormat,
		Status:           m.Status,
		ModerationStatus: m.ModerationStatus,
		RotationsPerDay:  m.RotationsPerDay,
		TotalImpressions: m.TotalImpressions,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		SubmittedAt:      m.SubmittedAt,
		ReviewedAt:       m.ReviewedAt,
		ActivatedAt:      m.ActivatedAt,
		RejectedAt:       m.RejectedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	for _, note := range m.ModerationNotes {
		dto.ModerationNotes = append(dto.ModerationNotes, ModerationNoteDTO{
			Author:    note.Author,
			Note:      note.Note,
			CreatedAt: note.CreatedAt,
		})
	}

	return dto
}
