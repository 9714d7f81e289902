package middleware

import (
	"context"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
)

type contextKey string

const (
	ctxPartner contextKey = "partner"
	ctxRole    contextKey = "actor_role"
	ctxEmail   contextKey = "actor_email"
)

// PartnerFromContext returns the authenticated partner, or nil outside a
// partner session.
func PartnerFromContext(ctx context.Context) *models.Partner {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxPartner).(*models.Partner); ok {
		return v
	}
	return nil
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func EmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxEmail).(string); ok {
		return v
	}
	return ""
}

// WithPartner injects the authenticated partner into the context.
func WithPartner(ctx context.Context, partner *models.Partner) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPartner, partner)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithEmail injects the actor email into the context.
func WithEmail(ctx context.Context, email string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxEmail, email)
}
