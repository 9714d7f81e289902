package partners

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// PartnerDTO exposes safe partner account data in API responses.
type PartnerDTO struct {
	ID               uuid.UUID              `json:"id"`
	ApplicationID    uuid.UUID              `json:"application_id"`
	BusinessName     string                 `json:"business_name"`
	BusinessCategory enums.BusinessCategory `json:"business_category"`
	Email            string                 `json:"email"`
	ContactName      string                 `json:"contact_name"`
	ContactPhone     string                 `json:"contact_phone"`
	City             string                 `json:"city"`
	State            string                 `json:"state"`
	Tier             enums.Tier             `json:"tier"`
	MonthlyFee       decimal.Decimal        `json:"monthly_fee"`
	Status           enums.PartnerStatus    `json:"status"`
	ActiveAdCount    int                    `json:"active_ad_count"`
	MembershipCodes  []MembershipCodeDTO    `json:"membership_codes,omitempty"`
	CancelledAt      *time.Time             `json:"cancelled_at,omitempty"`
	LastLoginAt      *time.Time             `json:"last_login_at,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// MembershipCodeDTO exposes a redemption code.
type MembershipCodeDTO struct {
	Code      string     `json:"code"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AuthResultDTO pairs a freshly minted token with the account it belongs to.
type AuthResultDTO struct {
	Token   string     `json:"token"`
	Partner PartnerDTO `json:"partner"`
}

// AdminAuthResultDTO is the operations login response.
type AdminAuthResultDTO struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// SignupInput captures what an approved applicant provides to claim an
// account. Everything else, the tier included, comes from the application.
type SignupInput struct {
	ApplicationID uuid.UUID
	Email         string
	Password      string
}

// LoginInput captures partner login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AdminLoginInput captures operations console credentials.
type AdminLoginInput struct {
	Email    string
	Password string
}

// FromModel maps the persisted partner into a DTO.
func FromModel(m *models.Partner) *PartnerDTO {
	if m == nil {
		return nil
	}

	dto := &PartnerDTO{
		ID:               m.ID,
		ApplicationID:    m.ApplicationID,
		BusinessName:     m.BusinessName,
		BusinessCategory: m.BusinessCategory,
		Email:            m.Email,
		ContactName:      m.ContactName,
		ContactPhone:     m.ContactPhone,
		City:             m.City,
		State:            m.State,
		Tier:             m.Tier,
		MonthlyFee:       m.MonthlyFee,
		Status:           m.Status,
		ActiveAdCount:    m.ActiveAdCount,
		CancelledAt:      m.CancelledAt,
		LastLoginAt:      m.LastLoginAt,
		CreatedAt:        m.CreatedAt,
	}

	for _, code := range m.MembershipCodes {
		dto.MembershipCodes = append(dto.MembershipCodes, MembershipCodeDTO{
			Code:      code.Code,
			Active:    code.Active,
			ExpiresAt: code.ExpiresAt,
		})
	}

	return dto
}
