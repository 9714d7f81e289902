package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/api/responses"
	pkgauth "github.com/crunchperks/crunchperks-backend/pkg/auth"
	"github.com/crunchperks/crunchperks-backend/pkg/config"
	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
)

// PartnerLoader resolves the current partner record for a token's subject.
type PartnerLoader interface {
	GetPartnerByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

// Auth validates a bearer token and seeds the request context with the actor.
// Partner tokens are re-checked against the live account so suspension or
// cancellation takes effect on the next request, not at token expiry.
func Auth(cfg config.JWTConfig, partners PartnerLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithRole(r.Context(), string(claims.Role))
			ctx = WithEmail(ctx, claims.Email)

			if claims.Role == enums.ActorRolePartner {
				if claims.PartnerID == nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
					return
				}
				if partners == nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner loader not configured"))
					return
				}

				// A valid token over a vanished account reads as not found,
				// not as a credential failure.
				partner, err := partners.GetPartnerByID(ctx, *claims.PartnerID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "partner account not found"))
					return
				}

				switch partner.Status {
				case enums.PartnerStatusSuspended:
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account suspended, contact support"))
					return
				case enums.PartnerStatusCancelled:
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account cancelled"))
					return
				}

				ctx = WithPartner(ctx, partner)
				if logg != nil {
					ctx = logg.WithPartnerID(ctx, partner.ID.String())
				}
			}

			if logg != nil {
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePartner gates routes that only make sense for a partner session.
func RequirePartner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PartnerFromContext(r.Context()) == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "partner account required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the operations surface.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(enums.ActorRoleAdmin) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
