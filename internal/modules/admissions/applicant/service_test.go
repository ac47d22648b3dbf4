package applicant

import (
	"testing"

	"github.com/hillcrest-academy/core/internal/models"
	"github.com/hillcrest-academy/core/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ApplicantModel{}))

	return NewService(db)
}

func TestCreateApplicant(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(CreateInput{
		Name:        "Adaeze Okafor",
		PhoneNumber: "+2348012345678",
		Email:       "adaeze@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.ApplicantStatusPending, item.Status)
}

func TestCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreateInput{Name: "Adaeze Okafor", PhoneNumber: "0801"})
	require.NoError(t, err)

	_, err = svc.Create(CreateInput{Name: "ADAEZE OKAFOR", PhoneNumber: "0802"})
	assert.ErrorIs(t, err, ErrDuplicateApplicant)

	_, err = svc.Create(CreateInput{Name: "adaeze okafor", PhoneNumber: "0803"})
	assert.ErrorIs(t, err, ErrDuplicateApplicant)
}

func TestDuplicateMessageDirectsToSchool(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreateInput{Name: "Chidi Eze", PhoneNumber: "0801"})
	require.NoError(t, err)

	_, err = svc.Create(CreateInput{Name: "Chidi Eze", PhoneNumber: "0804"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact the school directly")
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(CreateInput{Name: "Bola Ade", PhoneNumber: "0805"})
	require.NoError(t, err)

	status := "accepted"
	updated, err := svc.UpdateStatus(item.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicantStatusAccepted, updated.Status)

	bad := "enrolled"
	_, err = svc.UpdateStatus(item.ID, UpdateInput{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListFiltersByStatus(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Create(CreateInput{Name: "One Person", PhoneNumber: "0801"})
	require.NoError(t, err)
	_, err = svc.Create(CreateInput{Name: "Two Person", PhoneNumber: "0802"})
	require.NoError(t, err)

	status := "rejected"
	_, err = svc.UpdateStatus(a.ID, UpdateInput{Status: &status})
	require.NoError(t, err)

	rejected, page, err := svc.List("rejected", pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, rejected, 1)
	assert.EqualValues(t, 1, page.Total)

	_, _, err = svc.List("unknown", pagination.Params{Page: 1, Size: 10})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
