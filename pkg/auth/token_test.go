package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/config"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "crunchperks",
		ExpirationMinutes: 10080,
	}
	now := time.Now().UTC()
	partnerID := uuid.New()

	payload := AccessTokenPayload{
		PartnerID: &partnerID,
		Email:     "owner@tacoloco.com",
		Role:      enums.ActorRolePartner,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.PartnerID == nil || *claims.PartnerID != partnerID {
		t.Fatal("partner id not preserved")
	}
	if claims.Email != "owner@tacoloco.com" {
		t.Fatalf("unexpected email %s", claims.Email)
	}
	if claims.Role != enums.ActorRolePartner {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestMintAdminTokenWithoutPartnerID(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "crunchperks",
		ExpirationMinutes: 60,
	}

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		Email: "ops@crunchperks.com",
		Role:  enums.ActorRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse admin token: %v", err)
	}
	if claims.PartnerID != nil {
		t.Fatal("admin token should not carry a partner id")
	}
	if claims.Role != enums.ActorRoleAdmin {
		t.Fatalf("unexpected role %s", claims.Role)
	}
}

func TestMintPartnerTokenRequiresPartnerID(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "crunchperks",
		ExpirationMinutes: 60,
	}

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		Email: "owner@tacoloco.com",
		Role:  enums.ActorRolePartner,
	}); err == nil {
		t.Fatal("expected error when partner id is missing")
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "crunchperks",
		ExpirationMinutes: 10,
	}
	partnerID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		PartnerID: &partnerID,
		Email:     "owner@tacoloco.com",
		Role:      enums.ActorRolePartner,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "crunchperks",
		ExpirationMinutes: 15,
	}
	partnerID := uuid.New()
	now := time.Now().Add(-time.Hour)

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		PartnerID: &partnerID,
		Email:     "owner@tacoloco.com",
		Role:      enums.ActorRolePartner,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenInvalidRole(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "crunchperks",
		ExpirationMinutes: 5,
	}

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: ""}); err == nil {
		t.Fatal("expected invalid role error")
	}
}
