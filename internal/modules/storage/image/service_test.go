package image

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hillcrest-academy/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ImageModel{}))

	return NewService(db, ""), db
}

func seedImage(t *testing.T, svc *Service, db *gorm.DB, title string, createdAt time.Time) *models.ImageModel {
	t.Helper()

	img, err := svc.Create(title, "/uploads/"+title+".png", "image/png", 1024)
	require.NoError(t, err)
	require.NoError(t, db.Model(img).Update("created_at", createdAt).Error)
	img.CreatedAt = createdAt
	return img
}

func countDefaults(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.ImageModel{}).Where("is_default = ?", true).Count(&n).Error)
	return n
}

func TestFirstImageBecomesDefault(t *testing.T) {
	svc, db := newTestService(t)

	first, err := svc.Create("hero", "/uploads/hero.png", "image/png", 2048)
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.Create("banner", "/uploads/banner.png", "image/png", 512)
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	assert.EqualValues(t, 1, countDefaults(t, db))
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create("hero", "/uploads/a.png", "image/png", 10)
	require.NoError(t, err)

	_, err = svc.Create("hero", "/uploads/b.png", "image/png", 10)
	assert.ErrorIs(t, err, ErrTitleTaken)
}

func TestTitleUniquenessIsCaseSensitive(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Create("Hero", "/uploads/a.png", "image/png", 10)
	require.NoError(t, err)

	// "hero" is a distinct title, unlike the case-insensitive applicant
	// name rule.
	_, err = svc.Create("hero", "/uploads/b.png", "image/png", 10)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.ImageModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdatePromoteDefaultClearsPrevious(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Now().Add(-time.Hour)

	first := seedImage(t, svc, db, "one", base)
	second := seedImage(t, svc, db, "two", base.Add(time.Minute))

	flag := true
	updated, err := svc.Update(second.ID, UpdateInput{IsDefault: &flag})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	reloaded, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
	assert.EqualValues(t, 1, countDefaults(t, db))
}

func TestUpdateCannotUnsetDefault(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Now().Add(-time.Hour)

	def := seedImage(t, svc, db, "default", base)
	other := seedImage(t, svc, db, "other", base.Add(time.Minute))

	off := false
	_, err := svc.Update(def.ID, UpdateInput{IsDefault: &off})
	assert.ErrorIs(t, err, ErrUnsetDefault)
	assert.EqualValues(t, 1, countDefaults(t, db))

	// Promoting the other image is the supported way to move the flag.
	on := true
	promoted, err := svc.Update(other.ID, UpdateInput{IsDefault: &on})
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault)
	assert.EqualValues(t, 1, countDefaults(t, db))
}

func TestUpdateUsedAtShapes(t *testing.T) {
	svc, db := newTestService(t)
	img := seedImage(t, svc, db, "hero", time.Now())

	for _, raw := range []string{
		`["home","about"]`,
		`"[\"home\",\"about\"]"`,
		`"home,about"`,
	} {
		updated, err := svc.Update(img.ID, UpdateInput{UsedAt: json.RawMessage(raw)})
		require.NoError(t, err, raw)
		assert.Equal(t, models.UsageList{"home", "about"}, updated.UsedAt, raw)
	}

	_, err := svc.Update(img.ID, UpdateInput{UsedAt: json.RawMessage(`123`)})
	assert.NoError(t, err) // numbers stringify through the comma fallback
}

func TestDeleteSoleDefaultRejected(t *testing.T) {
	svc, db := newTestService(t)
	only := seedImage(t, svc, db, "only", time.Now())

	err := svc.Delete(only.ID)
	assert.ErrorIs(t, err, ErrLastDefaultImage)

	remaining, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.True(t, remaining[0].IsDefault)
}

func TestDeleteDefaultPromotesOldest(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Now().Add(-time.Hour)

	def := seedImage(t, svc, db, "default", base)
	oldest := seedImage(t, svc, db, "oldest", base.Add(time.Minute))
	seedImage(t, svc, db, "newest", base.Add(2*time.Minute))

	require.NoError(t, svc.Delete(def.ID))

	promoted, err := svc.Default()
	require.NoError(t, err)
	assert.Equal(t, oldest.ID, promoted.ID)
	assert.EqualValues(t, 1, countDefaults(t, db))
}

func TestDeleteNonDefaultKeepsDefault(t *testing.T) {
	svc, db := newTestService(t)
	base := time.Now().Add(-time.Hour)

	def := seedImage(t, svc, db, "default", base)
	other := seedImage(t, svc, db, "other", base.Add(time.Minute))

	require.NoError(t, svc.Delete(other.ID))

	current, err := svc.Default()
	require.NoError(t, err)
	assert.Equal(t, def.ID, current.ID)
}

func TestReplacePreservesIdentity(t *testing.T) {
	svc, db := newTestService(t)
	img := seedImage(t, svc, db, "hero", time.Now())

	_, err := svc.Update(img.ID, UpdateInput{UsedAt: json.RawMessage(`["home"]`)})
	require.NoError(t, err)

	replaced, err := svc.Replace(img.ID, "/uploads/new.webp", "image/webp", 4096)
	require.NoError(t, err)

	assert.Equal(t, img.ID, replaced.ID)
	assert.Equal(t, models.UsageList{"home"}, replaced.UsedAt)
	assert.True(t, replaced.IsDefault)
	assert.Equal(t, "/uploads/new.webp", replaced.ImageURL)
	assert.Equal(t, "image/webp", replaced.MimeType)
	assert.EqualValues(t, 4096, replaced.FileSize)
}

func TestDefaultEmptyLibrary(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Default()
	assert.ErrorIs(t, err, ErrNoDefaultImage)
}
