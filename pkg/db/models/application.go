package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// Application represents a business's request to join the advertising program.
// EIN and contact email are unique at the database level so concurrent
// submissions cannot slip past the duplicate check.
type Application struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey"`
	BusinessName     string                  `gorm:"column:business_name;size:120;not null"`
	EIN              string                  `gorm:"column:ein;size:10;not null;uniqueIndex:idx_applications_ein"`
	BusinessCategory enums.BusinessCategory  `gorm:"column:business_category;size:32;not null"`
	WebsiteURL       *string                 `gorm:"column:website_url"`
	AddressLine1     string                  `gorm:"column:address_line1;not null"`
	AddressLine2     *string                 `gorm:"column:address_line2"`
	City             string                  `gorm:"column:city;not null"`
	State            string                  `gorm:"column:state;size:2;not null"`
	ZipCode          string                  `gorm:"column:zip_code;size:10;not null"`
	ContactName      string                  `gorm:"column:contact_name;not null"`
	ContactTitle     string                  `gorm:"column:contact_title;not null"`
	ContactEmail     string                  `gorm:"column:contact_email;not null;uniqueIndex:idx_applications_contact_email"`
	ContactPhone     string                  `gorm:"column:contact_phone;not null"`
	LocationCount    enums.LocationCount     `gorm:"column:location_count;size:16;not null"`
	Tier             enums.Tier              `gorm:"column:tier;size:16;not null;default:'dfw'"`
	AgreedAt         time.Time               `gorm:"column:agreed_at;not null"`
	Status           enums.ApplicationStatus `gorm:"column:status;size:16;not null;default:'pending'"`
	AssignedTo       enums.RoutingTarget     `gorm:"column:assigned_to;size:16;not null"`
	ReviewedAt       *time.Time              `gorm:"column:reviewed_at"`
	ApprovedAt       *time.Time              `gorm:"column:approved_at"`
	StripeCustomerID *string                 `gorm:"column:stripe_customer_id"`
	PartnerID        *uuid.UUID              `gorm:"column:partner_id;type:uuid"`
	ReviewNotes      []ApplicationReviewNote `gorm:"foreignKey:ApplicationID"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// ApplicationReviewNote records a reviewer decision or comment on an application.
type ApplicationReviewNote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ApplicationID uuid.UUID `gorm:"column:application_id;type:uuid;not null;index"`
	Author        string    `gorm:"column:author;not null"`
	Note          string    `gorm:"column:note;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
