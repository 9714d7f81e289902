package partners

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/crunchperks/crunchperks-backend/pkg/auth"
	"github.com/crunchperks/crunchperks-backend/pkg/config"
	"github.com/crunchperks/crunchperks-backend/pkg/db"
	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
	"github.com/crunchperks/crunchperks-backend/pkg/security"
	"github.com/crunchperks/crunchperks-backend/pkg/stripe"
)

// invalidCredentials is the single message for every login failure so the
// response does not reveal whether the email exists.
const invalidCredentials = "invalid email or password"

const membershipCodeLength = 8

type partnerRepository interface {
	Create(ctx context.Context, partner *models.Partner) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	FindByEmail(ctx context.Context, email string) (*models.Partner, error)
	Update(ctx context.Context, partner *models.Partner) error
	StampLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateMembershipCode(ctx context.Context, code *models.PartnerMembershipCode) error
}

type applicationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
}

type customerProvisioner interface {
	CreateCustomer(ctx context.Context, params stripe.CustomerParams) (string, error)
}

// Service exposes partner provisioning and session operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResultDTO, error)
	Login(ctx context.Context, input LoginInput) (*AuthResultDTO, error)
	Me(ctx context.Context, partnerID uuid.UUID) (*PartnerDTO, error)
	AdminLogin(ctx context.Context, input AdminLoginInput) (*AdminAuthResultDTO, error)
	AdminSetStatus(ctx context.Context, partnerID uuid.UUID, status enums.PartnerStatus) (*PartnerDTO, error)
	GetPartnerByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

type service struct {
	repo         partnerRepository
	applications applicationStore
	customers    customerProvisioner
	jwtCfg       config.JWTConfig
	passwordCfg  config.PasswordConfig
	adminCfg     config.AdminConfig
	logg         *logger.Logger
	now          func() time.Time
}

// ServiceParams collects the dependencies for NewService.
type ServiceParams struct {
	Repo         partnerRepository
	Applications applicationStore

	// Customers is optional; signup proceeds without billing when nil.
	Customers customerProvisioner

	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	AdminConfig    config.AdminConfig
	Logger         *logger.Logger
	Now            func() time.Time
}

// NewService builds a partner service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("partner repository required")
	}
	if params.Applications == nil {
		return nil, fmt.Errorf("application store required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:         params.Repo,
		applications: params.Applications,
		customers:    params.Customers,
		jwtCfg:       params.JWTConfig,
		passwordCfg:  params.PasswordConfig,
		adminCfg:     params.AdminConfig,
		logg:         params.Logger,
		now:          now,
	}, nil
}

// Signup claims an approved application and provisions the partner account.
// The email must match the application contact so only the applicant can
// claim the approval.
func (s *service) Signup(ctx context.Context, input SignupInput) (*AuthResultDTO, error) {
	application, err := s.applications.FindByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "application not found")
	}

	if application.Status != enums.ApplicationStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application has not been approved").
			WithDetails(map[string]string{"status": application.Status.String()})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != application.ContactEmail {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email does not match the application contact")
	}

	// The tier was chosen on the application; signup cannot upgrade it.
	tier := application.Tier
	if tier == "" {
		tier = enums.TierDFW
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	partner := &models.Partner{
		ID:               uuid.New(),
		ApplicationID:    application.ID,
		BusinessName:     application.BusinessName,
		EIN:              application.EIN,
		BusinessCategory: application.BusinessCategory,
		Email:            email,
		PasswordHash:     hash,
		ContactName:      application.ContactName,
		ContactPhone:     application.ContactPhone,
		AddressLine1:     application.AddressLine1,
		AddressLine2:     application.AddressLine2,
		City:             application.City,
		State:            application.State,
		ZipCode:          application.ZipCode,
		Tier:             tier,
		MonthlyFee:       tier.MonthlyFee(),
		Status:           enums.PartnerStatusActive,
	}

	if err := s.repo.Create(ctx, partner); err != nil {
		switch {
		case db.IsUniqueViolation(err, "application_id"):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an account for this application already exists")
		case db.IsUniqueViolation(err, "email"):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an account with this email already exists")
		case db.IsUniqueViolation(err, "ein"):
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an account for this business already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create partner")
	}

	s.provisionBilling(ctx, partner)
	s.issueMembershipCode(ctx, partner)
	s.linkApplication(ctx, application, partner)

	token, err := s.mintPartnerToken(partner)
	if err != nil {
		return nil, err
	}

	return &AuthResultDTO{Token: token, Partner: *FromModel(partner)}, nil
}

// Login authenticates a partner and returns a fresh session token.
func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	partner, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, invalidCredentials)
	}

	ok, err := security.VerifyPassword(input.Password, partner.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
	}

	switch partner.Status {
	case enums.PartnerStatusSuspended:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account suspended, contact support")
	case enums.PartnerStatusCancelled:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account cancelled")
	}

	now := s.now().UTC()
	if err := s.repo.StampLastLogin(ctx, partner.ID, now); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "partner.login.stamp_failed")
	}
	partner.LastLoginAt = &now

	token, err := s.mintPartnerToken(partner)
	if err != nil {
		return nil, err
	}

	return &AuthResultDTO{Token: token, Partner: *FromModel(partner)}, nil
}

// Me returns the authenticated partner's profile.
func (s *service) Me(ctx context.Context, partnerID uuid.UUID) (*PartnerDTO, error) {
	partner, err := s.repo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "partner not found")
	}
	return FromModel(partner), nil
}

// AdminLogin authenticates the operations console against configured
// credentials.
func (s *service) AdminLogin(ctx context.Context, input AdminLoginInput) (*AdminAuthResultDTO, error) {
	if s.adminCfg.Email == "" || s.adminCfg.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != strings.ToLower(s.adminCfg.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
	}

	ok, err := security.VerifyPassword(input.Password, s.adminCfg.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentials)
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		Email: email,
		Role:  enums.ActorRoleAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &AdminAuthResultDTO{Token: token, Email: email}, nil
}

// AdminSetStatus moves a partner account between active/suspended/cancelled.
func (s *service) AdminSetStatus(ctx context.Context, partnerID uuid.UUID, status enums.PartnerStatus) (*PartnerDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid partner status").
			WithDetails(map[string]string{"status": status.String()})
	}

	partner, err := s.repo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "partner not found")
	}

	partner.Status = status
	if status == enums.PartnerStatusCancelled {
		at := s.now().UTC()
		partner.CancelledAt = &at
	} else {
		partner.CancelledAt = nil
	}
	if err := s.repo.Update(ctx, partner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update partner")
	}
	return FromModel(partner), nil
}

// GetPartnerByID exposes the raw model for the auth middleware.
func (s *service) GetPartnerByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) mintPartnerToken(partner *models.Partner) (string, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		PartnerID: &partner.ID,
		Email:     partner.Email,
		Role:      enums.ActorRolePartner,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return token, nil
}

// provisionBilling creates the Stripe customer best-effort. Billing can be
// attached later, so a failure never blocks signup.
func (s *service) provisionBilling(ctx context.Context, partner *models.Partner) {
	if s.customers == nil {
		return
	}

	customerID, err := s.customers.CreateCustomer(ctx, stripe.CustomerParams{
		Email:        partner.Email,
		BusinessName: partner.BusinessName,
		PartnerID:    partner.ID.String(),
		Tier:         partner.Tier.String(),
	})
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "partner.signup.stripe_customer_failed")
		}
		return
	}

	partner.StripeCustomerID = &customerID
	if err := s.repo.Update(ctx, partner); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "partner.signup.stripe_customer_save_failed")
	}
}

// linkApplication points the claimed application at its partner account and
// carries the billing reference back. The partner row is already committed,
// so a failed link is logged rather than unwound.
func (s *service) linkApplication(ctx context.Context, application *models.Application, partner *models.Partner) {
	application.PartnerID = &partner.ID
	application.StripeCustomerID = partner.StripeCustomerID
	if err := s.applications.Update(ctx, application); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "partner.signup.application_link_failed")
	}
}

// issueMembershipCode mints the partner's first front-desk redemption code.
func (s *service) issueMembershipCode(ctx context.Context, partner *models.Partner) {
	code, err := security.GenerateCode(membershipCodeLength)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "partner.signup.membership_code_failed")
		}
		return
	}

	record := &models.PartnerMembershipCode{
		ID:        uuid.New(),
		PartnerID: partner.ID,
		Code:      code,
		Active:    true,
	}
	if err := s.repo.CreateMembershipCode(ctx, record); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "partner.signup.membership_code_save_failed")
		}
		return
	}
	partner.MembershipCodes = append(partner.MembershipCodes, *record)
}
