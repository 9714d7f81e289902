package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// ApplicationDTO exposes the full application record on the admin surface.
type ApplicationDTO struct {
	ID               uuid.UUID               `json:"id"`
	BusinessName     string                  `json:"business_name"`
	EIN              string                  `json:"ein"`
	BusinessCategory enums.BusinessCategory  `json:"business_category"`
	WebsiteURL       *string                 `json:"website_url,omitempty"`
	AddressLine1     string                  `json:"address_line1"`
	AddressLine2     *string                 `json:"address_line2,omitempty"`
	City             string                  `json:"city"`
	State            string                  `json:"state"`
	ZipCode          string                  `json:"zip_code"`
	ContactName      string                  `json:"contact_name"`
	ContactTitle     string                  `json:"contact_title"`
	ContactEmail     string                  `json:"contact_email"`
	ContactPhone     string                  `json:"contact_phone"`
	LocationCount    enums.LocationCount     `json:"location_count"`
	Tier             enums.Tier              `json:"tier"`
	AgreedAt         time.Time               `json:"agreed_at"`
	Status           enums.ApplicationStatus `json:"status"`
	AssignedTo       enums.RoutingTarget     `json:"assigned_to"`
	ReviewedAt       *time.Time              `json:"reviewed_at,omitempty"`
	ApprovedAt       *time.Time              `json:"approved_at,omitempty"`
	StripeCustomerID *string                 `json:"stripe_customer_id,omitempty"`
	PartnerID        *uuid.UUID              `json:"partner_id,omitempty"`
	ReviewNotes      []ReviewNoteDTO         `json:"review_notes,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// StatusDTO is the public view an applicant can poll without credentials.
// It deliberately omits contact and tax details.
type StatusDTO struct {
	ID           uuid.UUID               `json:"id"`
	BusinessName string                  `json:"business_name"`
	Tier         enums.Tier              `json:"tier"`
	Status       enums.ApplicationStatus `json:"status"`
	SubmittedAt  time.Time               `json:"submitted_at"`
	ReviewedAt   *time.Time              `json:"reviewed_at,omitempty"`
}

// ReviewNoteDTO exposes a reviewer comment.
type ReviewNoteDTO struct {
	Author    string    `json:"author"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitInput captures the fields a business provides when applying.
type SubmitInput struct {
	BusinessName     string
	EIN              string
	BusinessCategory string
	WebsiteURL       *string
	AddressLine1     string
	AddressLine2     *string
	City             string
	State            string
	ZipCode          string
	ContactName      string
	ContactTitle     string
	ContactEmail     string
	ContactPhone     string
	LocationCount    string
	Tier             string
	AgreeToTerms     bool
}

// ReviewInput captures an admin decision on a pending application.
type ReviewInput struct {
	Approve bool
	Author  string
	Note    string
}

// ListFilter narrows the admin list view.
type ListFilter struct {
	Status     *enums.ApplicationStatus
	AssignedTo *enums.RoutingTarget
}

// FromModel maps the persisted application into the admin DTO.
func FromModel(m *models.Application) *ApplicationDTO {
	if m == nil {
		return nil
	}

	dto := &ApplicationDTO{
		ID:               m.ID,
		BusinessName:     m.BusinessName,
		EIN:              m.EIN,
		BusinessCategory: m.BusinessCategory,
		WebsiteURL:       m.WebsiteURL,
		AddressLine1:     m.AddressLine1,
		AddressLine2:     m.AddressLine2,
		City:             m.City,
		State:            m.State,
		ZipCode:          m.ZipCode,
		ContactName:      m.ContactName,
		ContactTitle:     m.ContactTitle,
		ContactEmail:     m.ContactEmail,
		ContactPhone:     m.ContactPhone,
		LocationCount:    m.LocationCount,
		Tier:             m.Tier,
		AgreedAt:         m.AgreedAt,
		Status:           m.Status,
		AssignedTo:       m.AssignedTo,
		ReviewedAt:       m.ReviewedAt,
		ApprovedAt:       m.ApprovedAt,
		StripeCustomerID: m.StripeCustomerID,
		PartnerID:        m.PartnerID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	for _, note := range m.ReviewNotes {
		dto.ReviewNotes = append(dto.ReviewNotes, ReviewNoteDTO{
			Author:    note.Author,
			Note:      note.Note,
			CreatedAt: note.CreatedAt,
		})
	}

	return dto
}

// StatusFromModel maps the persisted application into the public status view.
func StatusFromModel(m *models.Application) *StatusDTO {
	if m == nil {
		return nil
	}
	return &StatusDTO{
		ID:           m.ID,
		BusinessName: m.BusinessName,
		Tier:         m.Tier,
		Status:       m.Status,
		SubmittedAt:  m.CreatedAt,
		ReviewedAt:   m.ReviewedAt,
	}
}
