package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AdoptionApplication{},
		&models.AdoptedPet{},
		&models.Notification{},
		&models.StatusSyncTask{},
	))
	t.Cleanup(func() {
		db.Exec("DELETE FROM status_sync_tasks")
		db.Exec("DELETE FROM notifications")
		db.Exec("DELETE FROM adopted_pets")
		db.Exec("DELETE FROM adoption_applications")
		db.Exec("DELETE FROM users")
	})
	return db
}

func seedApplication(t *testing.T, apps repository.ApplicationRepository, userID, petID int64) *models.AdoptionApplication {
	t.Helper()
	app := &models.AdoptionApplication{
		UserID: userID, PetID: petID, PetName: "Max",
		Status: models.ApplicationPending,
		Reason: "love dogs", Experience: "had dogs", LivingSituation: "house",
	}
	require.NoError(t, apps.Create(context.Background(), app))
	return app
}

func TestHasPending_OnlyCountsOpenApplications(t *testing.T) {
	db := newTestDB(t)
	apps := repository.NewGormApplicationRepository(db)
	ctx := context.Background()

	app := seedApplication(t, apps, 1, 1)

	pending, err := apps.HasPending(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, pending)

	pending, err = apps.HasPending(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, pending)

	app.Status = models.ApplicationRejected
	require.NoError(t, apps.Update(ctx, app))

	pending, err = apps.HasPending(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestApprove_CommitsApplicationAdoptionAndTaskTogether(t *testing.T) {
	db := newTestDB(t)
	apps := repository.NewGormApplicationRepository(db)
	outbox := repository.NewGormOutboxRepository(db)
	ctx := context.Background()

	app := seedApplication(t, apps, 1, 1)
	app.Status = models.ApplicationApproved

	adopted := &models.AdoptedPet{PetID: 1, PetName: "Max", AdopterID: 1, ApplicationID: app.ID}
	task := &models.StatusSyncTask{PetID: 1, Status: "adopted", ApplicationID: app.ID, State: models.SyncPending}
	require.NoError(t, apps.Approve(ctx, app, adopted, task))

	stored, err := apps.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, stored.Status)

	pets, err := apps.FindAdoptedByAdopter(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, app.ID, pets[0].ApplicationID)

	fromOutbox, err := outbox.FindByApplicationID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, fromOutbox.State)
	assert.Equal(t, "adopted", fromOutbox.Status)
}

func TestFindPending_SkipsSettledTasks(t *testing.T) {
	db := newTestDB(t)
	outbox := repository.NewGormOutboxRepository(db)
	ctx := context.Background()

	for _, state := range []string{models.SyncPending, models.SyncDelivered, models.SyncFailed, models.SyncPending} {
		require.NoError(t, db.Create(&models.StatusSyncTask{
			PetID: 1, Status: "adopted", State: state,
		}).Error)
	}

	tasks, err := outbox.FindPending(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, models.SyncPending, task.State)
	}
}

func TestFind_FiltersByStatusAndUser(t *testing.T) {
	db := newTestDB(t)
	apps := repository.NewGormApplicationRepository(db)
	ctx := context.Background()

	seedApplication(t, apps, 1, 1)
	seedApplication(t, apps, 2, 1)
	rejected := seedApplication(t, apps, 1, 2)
	rejected.Status = models.ApplicationRejected
	require.NoError(t, apps.Update(ctx, rejected))

	found, err := apps.Find(ctx, repository.ApplicationFilter{Status: models.ApplicationPending})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = apps.Find(ctx, repository.ApplicationFilter{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = apps.Find(ctx, repository.ApplicationFilter{Status: models.ApplicationRejected, UserID: 1})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.EqualValues(t, 2, found[0].PetID)
}

func TestUserRepository_EmailLookup(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{
		Name: "Jordan Reyes", Email: "jordan@example.com", Password: "hash", Role: "adopter",
	}))

	user, err := users.FindByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", user.Name)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
