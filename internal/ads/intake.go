package ads

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/crunchperks/crunchperks-backend/pkg/config"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/imagehost"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
)

var allowedImageFormats = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

type imageHost interface {
	Upload(ctx context.Context, filename string, contents io.Reader) (*imagehost.Asset, error)
	Resource(ctx context.Context, publicID string) (*imagehost.Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

// IntakeGuard pushes a raw upload to the image host and verifies the hosted
// asset before any ad row references it. A rejected asset is destroyed at the
// host on every exit path.
type IntakeGuard struct {
	host imageHost
	cfg  config.AdsConfig
	logg *logger.Logger
}

// NewIntakeGuard builds the guard around an image host client.
func NewIntakeGuard(host imageHost, cfg config.AdsConfig, logg *logger.Logger) (*IntakeGuard, error) {
	if host == nil {
		return nil, fmt.Errorf("image host required")
	}
	return &IntakeGuard{host: host, cfg: cfg, logg: logg}, nil
}

// Intake uploads the image and validates the dimensions the host actually
// recorded, not what the client claimed.
func (g *IntakeGuard) Intake(ctx context.Context, filename string, contents io.Reader) (*imagehost.Asset, error) {
	uploaded, err := g.host.Upload(ctx, filename, contents)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "image upload failed")
	}

	asset, err := g.host.Resource(ctx, uploaded.PublicID)
	if err != nil {
		g.Discard(ctx, uploaded.PublicID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "image metadata lookup failed")
	}

	if _, ok := allowedImageFormats[strings.ToLower(asset.Format)]; !ok {
		g.Discard(ctx, asset.PublicID)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported image format").
			WithDetails(map[string]string{
				"format":  asset.Format,
				"allowed": "jpg, jpeg, png, webp",
			})
	}

	if asset.Width != g.cfg.ImageWidth || asset.Height != g.cfg.ImageHeight {
		g.Discard(ctx, asset.PublicID)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image has the wrong dimensions").
			WithDetails(map[string]string{
				"required": fmt.Sprintf("%dx%d", g.cfg.ImageWidth, g.cfg.ImageHeight),
				"actual":   fmt.Sprintf("%dx%d", asset.Width, asset.Height),
			})
	}

	if maxBytes := int64(g.cfg.MaxUploadMB) * 1024 * 1024; maxBytes > 0 && asset.Bytes > maxBytes {
		g.Discard(ctx, asset.PublicID)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is too large").
			WithDetails(map[string]string{
				"max_mb": fmt.Sprintf("%d", g.cfg.MaxUploadMB),
			})
	}

	return asset, nil
}

// Discard removes a hosted asset best-effort. Failures are logged and
// swallowed since the caller is already on an error path.
func (g *IntakeGuard) Discard(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := g.host.Destroy(ctx, publicID); err != nil && g.logg != nil {
		g.logg.Warn(g.logg.WithField(ctx, "asset_id", publicID), "ads.intake.asset_destroy_failed")
	}
}
