package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
// PartnerID is nil for admin sessions, which are keyed by email only.
type AccessTokenPayload struct {
	PartnerID *uuid.UUID
	Email     string
	Role      enums.ActorRole
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	PartnerID *uuid.UUID      `json:"partner_id,omitempty"`
	Email     string          `json:"email"`
	Role      enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
