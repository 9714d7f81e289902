package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// Partner is a provisioned advertiser account. Each partner is minted from
// exactly one approved application; the unique index on application_id keeps
// a signup race from producing two accounts for the same approval.
type Partner struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey"`
	ApplicationID    uuid.UUID               `gorm:"column:application_id;type:uuid;not null;uniqueIndex:idx_partners_application_id"`
	BusinessName     string                  `gorm:"column:business_name;size:120;not null"`
	EIN              string                  `gorm:"column:ein;size:10;not null;uniqueIndex:idx_partners_ein"`
	BusinessCategory enums.BusinessCategory  `gorm:"column:business_category;size:32;not null"`
	Email            string                  `gorm:"column:email;not null;uniqueIndex:idx_partners_email"`
	PasswordHash     string                  `gorm:"column:password_hash;not null"`
	ContactName      string                  `gorm:"column:contact_name;not null"`
	ContactPhone     string                  `gorm:"column:contact_phone;not null"`
	AddressLine1     string                  `gorm:"column:address_line1;not null"`
	AddressLine2     *string                 `gorm:"column:address_line2"`
	City             string                  `gorm:"column:city;not null"`
	State            string                  `gorm:"column:state;size:2;not null"`
	ZipCode          string                  `gorm:"column:zip_code;size:10;not null"`
	Tier             enums.Tier              `gorm:"column:tier;size:16;not null;default:'dfw'"`
	MonthlyFee       decimal.Decimal         `gorm:"column:monthly_fee;type:numeric(10,2);not null"`
	Status           enums.PartnerStatus     `gorm:"column:status;size:16;not null;default:'active'"`
	StripeCustomerID *string                 `gorm:"column:stripe_customer_id"`
	ActiveAdCount    int                     `gorm:"column:active_ad_count;not null;default:0"`
	CancelledAt      *time.Time              `gorm:"column:cancelled_at"`
	LastLoginAt      *time.Time              `gorm:"column:last_login_at"`
	MembershipCodes  []PartnerMembershipCode `gorm:"foreignKey:PartnerID"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// PartnerMembershipCode is a redemption code a partner hands to gym members.
type PartnerMembershipCode struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PartnerID uuid.UUID  `gorm:"column:partner_id;type:uuid;not null;index"`
	Code      string     `gorm:"column:code;size:16;not null;uniqueIndex:idx_membership_codes_code"`
	Active    bool       `gorm:"column:active;not null;default:true"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
