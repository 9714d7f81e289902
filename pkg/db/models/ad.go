package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/crunchperks/crunchperks-backend/pkg/enums"
)

// Ad is a single creative a partner runs on gym lobby screens. The image
// metadata columns mirror what the image host reported at intake time so the
// stored record stands on its own.
type Ad struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey"`
	PartnerID        uuid.UUID              `gorm:"column:partner_id;type:uuid;not null;index"`
	Title            string                 `gorm:"column:title;size:50;not null"`
	Catchphrase      string                 `gorm:"column:catchphrase;size:75;not null"`
	ImageURL         string                 `gorm:"column:image_url;not null"`
	ImageAssetID     string                 `gorm:"column:image_asset_id;not null"`
	ImageWidth       int                    `gorm:"column:image_width;not null"`
	ImageHeight      int                    `gorm:"column:image_height;not null"`
	ImageBytes       int64                  `gorm:"column:image_bytes;not null"`
	ImageFormat      string                 `gorm:"column:image_format;size:8;not null"`
	Status           enums.AdStatus         `gorm:"column:status;size:16;not null;default:'draft'"`
	ModerationStatus enums.ModerationStatus `gorm:"column:moderation_status;size:24;not null;default:'pending'"`
	RotationsPerDay  int                    `gorm:"column:rotations_per_day;not null;default:24"`
	TotalImpressions int64                  `gorm:"column:total_impressions;not null;default:0"`
	StartDate        *time.Time             `gorm:"column:start_date"`
	EndDate          *time.Time             `gorm:"column:end_date"`
	SubmittedAt      *time.Time             `gorm:"column:submitted_at"`
	ReviewedAt       *time.Time             `gorm:"column:reviewed_at"`
	ActivatedAt      *time.Time             `gorm:"column:activated_at"`
	RejectedAt       *time.Time             `gorm:"column:rejected_at"`
	ModerationNotes  []AdModerationNote     `gorm:"foreignKey:AdID"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// AdModerationNote records a moderation decision or comment on an ad.
type AdModerationNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdID      uuid.UUID `gorm:"column:ad_id;type:uuid;not null;index"`
	Author    string    `gorm:"column:author;not null"`
	Note      string    `gorm:"column:note;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// AdLocationImpression aggregates daily plays of an ad at a gym location.
type AdLocationImpression struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdID       uuid.UUID `gorm:"column:ad_id;type:uuid;not null;index:idx_ad_impressions_ad_day"`
	LocationID string    `gorm:"column:location_id;size:32;not null"`
	Day        time.Time `gorm:"column:day;type:date;not null;index:idx_ad_impressions_ad_day"`
	Plays      int       `gorm:"column:plays;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
