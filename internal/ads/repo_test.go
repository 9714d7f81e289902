package ads

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crunchperks/crunchperks-backend/pkg/db/models"
	"github.com/crunchperks/crunchperks-backend/pkg/enums"
	"github.com/crunchperks/crunchperks-backend/pkg/pagination"
)

func setupAdsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per test so shared-cache memory DBs never leak rows
	// between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Ad{}, &models.AdModerationNote{}))
	return db
}

func seedAd(t *testing.T, db *gorm.DB, partnerID uuid.UUID, status enums.AdStatus, createdAt time.Time) *models.Ad {
	t.Helper()

	ad := &models.Ad{
		ID:               uuid.New(),
		PartnerID:        partnerID,
		Title:            "Free guest pass",
		Catchphrase:      "Bring a friend, both train free",
		ImageURL:         "https://img.example.com/ads/pass.jpg",
		ImageAssetID:     "crunchperks/ads/" + uuid.NewString(),
		ImageWidth:       1920,
		ImageHeight:      1080,
		ImageBytes:       204800,
		ImageFormat:      "jpg",
		Status:           status,
		ModerationStatus: enums.ModerationStatusPending,
		RotationsPerDay:  24,
		CreatedAt:        createdAt,
	}
	require.NoError(t, db.Create(ad).Error)
	return ad
}

func TestRepoFindForPartnerScopesByOwner(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()
	ad := seedAd(t, db, owner, enums.AdStatusDraft, time.Now().UTC())

	found, err := repo.FindForPartner(ctx, ad.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, ad.ID, found.ID)

	_, err = repo.FindForPartner(ctx, ad.ID, stranger)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoListForPartnerFiltersAndPages(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest := seedAd(t, db, owner, enums.AdStatusDraft, base)
	seedAd(t, db, owner, enums.AdStatusActive, base.Add(time.Hour))
	newest := seedAd(t, db, owner, enums.AdStatusDraft, base.Add(2*time.Hour))
	seedAd(t, db, uuid.New(), enums.AdStatusDraft, base)

	rows, total, err := repo.ListForPartner(ctx, owner, ListFilter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, oldest.ID, rows[2].ID)

	active := enums.AdStatusActive
	rows, total, err = repo.ListForPartner(ctx, owner, ListFilter{Status: &active}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.AdStatusActive, rows[0].Status)

	rows, total, err = repo.ListForPartner(ctx, owner, ListFilter{}, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, oldest.ID, rows[0].ID)
}

func TestRepoFindByIDPreloadsNotesOldestFirst(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ad := seedAd(t, db, uuid.New(), enums.AdStatusPendingReview, time.Now().UTC())
	base := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	second := &models.AdModerationNote{
		ID:        uuid.New(),
		AdID:      ad.ID,
		Author:    "ops@crunchperks.com",
		Note:      "approved after copy fix",
		CreatedAt: base.Add(time.Minute),
	}
	first := &models.AdModerationNote{
		ID:        uuid.New(),
		AdID:      ad.ID,
		Author:    "ops@crunchperks.com",
		Note:      "catchphrase needs work",
		CreatedAt: base,
	}
	require.NoError(t, repo.AddModerationNote(ctx, second))
	require.NoError(t, repo.AddModerationNote(ctx, first))

	found, err := repo.FindByID(ctx, ad.ID)
	require.NoError(t, err)
	require.Len(t, found.ModerationNotes, 2)
	assert.Equal(t, first.ID, found.ModerationNotes[0].ID)
	assert.Equal(t, second.ID, found.ModerationNotes[1].ID)
}

func TestRepoDeleteRemovesModerationNotes(t *testing.T) {
	db := setupAdsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ad := seedAd(t, db, uuid.New(), enums.AdStatusRejected, time.Now().UTC())
	require.NoError(t, repo.AddModerationNote(ctx, &models.AdModerationNote{
		ID:     uuid.New(),
		AdID:   ad.ID,
		Author: "ops@crunchperks.com",
		Note:   "rejected, off brand",
	}))

	require.NoError(t, repo.Delete(ctx, ad.ID))

	_, err := repo.FindByID(ctx, ad.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var notes int64
	require.NoError(t, db.Model(&models.AdModerationNote{}).Where("ad_id = ?", ad.ID).Count(&notes).Error)
	assert.Zero(t, notes)
}
