package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests.

type mockUserRepository struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepository) Create(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) Update(_ context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

type mockApplicationRepository struct {
	applications map[int64]*models.AdoptionApplication
	adopted      []models.AdoptedPet
	tasks        []*models.StatusSyncTask
	nextID       int64
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{applications: make(map[int64]*models.AdoptionApplication), nextID: 1}
}

func (m *mockApplicationRepository) Create(_ context.Context, app *models.AdoptionApplication) error {
	app.ID = m.nextID
	m.nextID++
	m.applications[app.ID] = app
	return nil
}

func (m *mockApplicationRepository) FindByID(_ context.Context, id int64) (*models.AdoptionApplication, error) {
	app, ok := m.applications[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (m *mockApplicationRepository) Find(_ context.Context, filter repository.ApplicationFilter) ([]models.AdoptionApplication, error) {
	var out []models.AdoptionApplication
	for _, a := range m.applications {
		if filter.Status != "" && filter.Status != "all" && a.Status != filter.Status {
			continue
		}
		if filter.UserID != 0 && a.UserID != filter.UserID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockApplicationRepository) HasPending(_ context.Context, userID, petID int64) (bool, error) {
	for _, a := range m.applications {
		if a.UserID == userID && a.PetID == petID && a.Status == models.ApplicationPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepository) Update(_ context.Context, app *models.AdoptionApplication) error {
	m.applications[app.ID] = app
	return nil
}

func (m *mockApplicationRepository) Approve(_ context.Context, app *models.AdoptionApplication, adopted *models.AdoptedPet, task *models.StatusSyncTask) error {
	m.applications[app.ID] = app
	adopted.ID = int64(len(m.adopted) + 1)
	m.adopted = append(m.adopted, *adopted)
	task.ID = int64(len(m.tasks) + 1)
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockApplicationRepository) FindAdoptedByAdopter(_ context.Context, adopterID int64) ([]models.AdoptedPet, error) {
	var out []models.AdoptedPet
	for _, p := range m.adopted {
		if p.AdopterID == adopterID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockNotificationRepository struct {
	notifications []models.Notification
}

func (m *mockNotificationRepository) Create(_ context.Context, n *models.Notification) error {
	n.ID = int64(len(m.notifications) + 1)
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepository) FindByUserID(_ context.Context, userID int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type mockOutboxRepository struct {
	tasks map[int64]*models.StatusSyncTask
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{tasks: make(map[int64]*models.StatusSyncTask)}
}

func (m *mockOutboxRepository) FindPending(_ context.Context, limit int) ([]models.StatusSyncTask, error) {
	var out []models.StatusSyncTask
	for _, t := range m.tasks {
		if t.State == models.SyncPending {
			out = append(out, *t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockOutboxRepository) Update(_ context.Context, task *models.StatusSyncTask) error {
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockOutboxRepository) FindByApplicationID(_ context.Context, applicationID int64) (*models.StatusSyncTask, error) {
	for _, t := range m.tasks {
		if t.ApplicationID == applicationID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

// fixture wires an AdoptionService against fake sibling services.
type fixture struct {
	svc           *services.AdoptionService
	applications  *mockApplicationRepository
	users         *mockUserRepository
	outbox        *mockOutboxRepository
	notifications *mockNotificationRepository
}

func newFixture(t *testing.T, shelterURL, vetURL string) *fixture {
	t.Helper()
	logger := zap.NewNop()
	applications := newMockApplicationRepository()
	users := newMockUserRepository()
	outbox := newMockOutboxRepository()
	notifications := &mockNotificationRepository{}

	shelter := services.NewShelterClient(shelterURL, logger)
	vet := services.NewVetClient(vetURL, logger)
	dispatcher := services.NewOutboxDispatcher(outbox, shelter, logger)
	notification := services.NewNotificationService(notifications, nil, logger)

	return &fixture{
		svc: services.NewAdoptionService(
			applications, users, shelter, vet, dispatcher, notification, validator.New(), logger),
		applications:  applications,
		users:         users,
		outbox:        outbox,
		notifications: notifications,
	}
}

func seedUser(t *testing.T, users *mockUserRepository) *models.User {
	t.Helper()
	user := &models.User{Name: "Jordan Reyes", Email: "jordan@example.com", Role: "adopter"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

// newShelterServer fakes the shelter service. statusUpdates counts accepted
// PUT /api/update-status/ calls.
func newShelterServer(t *testing.T, statusUpdates *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pets/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(services.ShelterPet{
			ID: 1, Name: "Max", Species: "dog", Status: "available",
		})
	})
	mux.HandleFunc("/api/update-status/", func(w http.ResponseWriter, r *http.Request) {
		*statusUpdates++
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

func downServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	return srv.URL
}

func pendingApplication(t *testing.T, f *fixture, userID int64) *models.AdoptionApplication {
	t.Helper()
	app, err := f.svc.Apply(context.Background(), services.ApplyRequest{
		UserID: userID, PetID: 1, Reason: "love dogs",
		Experience: "had dogs before", LivingSituation: "house",
	})
	require.NoError(t, err)
	return app
}

func TestApply_DuplicatePendingIsRejected(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))
	user := seedUser(t, f.users)
	ctx := context.Background()

	first := pendingApplication(t, f, user.ID)
	assert.Equal(t, models.ApplicationPending, first.Status)
	// Shelter down: the name degrades but the application still goes through.
	assert.Equal(t, "Unknown", first.PetName)

	_, err := f.svc.Apply(ctx, services.ApplyRequest{
		UserID: user.ID, PetID: 1, Reason: "still love dogs",
		Experience: "had dogs before", LivingSituation: "house",
	})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusConflict, serr.StatusCode)
}

func TestApply_AllowedAgainAfterRejection(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))
	user := seedUser(t, f.users)
	ctx := context.Background()

	app := pendingApplication(t, f, user.ID)

	_, err := f.svc.Review(ctx, app.ID, services.ReviewRequest{Action: "reject", ReviewerID: 9})
	require.NoError(t, err)

	// The pending-per-pet constraint only counts open applications.
	again, err := f.svc.Apply(ctx, services.ApplyRequest{
		UserID: user.ID, PetID: 1, Reason: "second chance",
		Experience: "had dogs before", LivingSituation: "house",
	})
	require.NoError(t, err)
	assert.NotEqual(t, app.ID, again.ID)
}

func TestReview_RejectDoesNotTouchShelter(t *testing.T) {
	var statusUpdates int
	shelter := newShelterServer(t, &statusUpdates)
	defer shelter.Close()

	f := newFixture(t, shelter.URL, downServer(t))
	user := seedUser(t, f.users)
	app := pendingApplication(t, f, user.ID)

	reviewed, err := f.svc.Review(context.Background(), app.ID, services.ReviewRequest{
		Action: "reject", ReviewerID: 9, Notes: "no yard",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, reviewed.Status)
	assert.NotNil(t, reviewed.DateReviewed)
	assert.Equal(t, 0, statusUpdates)
	assert.Empty(t, f.applications.tasks)
	assert.Empty(t, f.applications.adopted)
}

func TestReview_ApproveDeliversStatusToShelter(t *testing.T) {
	var statusUpdates int
	shelter := newShelterServer(t, &statusUpdates)
	defer shelter.Close()

	f := newFixture(t, shelter.URL, downServer(t))
	user := seedUser(t, f.users)
	app := pendingApplication(t, f, user.ID)

	reviewed, err := f.svc.Review(context.Background(), app.ID, services.ReviewRequest{
		Action: "approve", ReviewerID: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, reviewed.Status)
	assert.Equal(t, 1, statusUpdates)

	require.Len(t, f.applications.adopted, 1)
	assert.Equal(t, user.ID, f.applications.adopted[0].AdopterID)

	require.Len(t, f.applications.tasks, 1)
	task := f.outbox.tasks[f.applications.tasks[0].ID]
	require.NotNil(t, task)
	assert.Equal(t, models.SyncDelivered, task.State)
	assert.Equal(t, 1, task.Attempts)
	assert.NotNil(t, task.DeliveredAt)
}

func TestReview_ApproveSucceedsWithShelterDown(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))
	user := seedUser(t, f.users)
	app := pendingApplication(t, f, user.ID)

	reviewed, err := f.svc.Review(context.Background(), app.ID, services.ReviewRequest{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, reviewed.Status)

	// The local transaction committed; the sync task stays pending with a
	// recorded failed attempt.
	require.Len(t, f.applications.adopted, 1)
	require.Len(t, f.applications.tasks, 1)
	task := f.outbox.tasks[f.applications.tasks[0].ID]
	require.NotNil(t, task)
	assert.Equal(t, models.SyncPending, task.State)
	assert.Equal(t, 1, task.Attempts)
	assert.NotEmpty(t, task.LastError)
}

func TestReview_PendingTaskDeliveredOnceShelterRecovers(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))
	user := seedUser(t, f.users)
	app := pendingApplication(t, f, user.ID)

	_, err := f.svc.Review(context.Background(), app.ID, services.ReviewRequest{Action: "approve"})
	require.NoError(t, err)

	// Shelter comes back; a dispatcher pass drains the outbox.
	var statusUpdates int
	shelter := newShelterServer(t, &statusUpdates)
	defer shelter.Close()

	dispatcher := services.NewOutboxDispatcher(f.outbox, services.NewShelterClient(shelter.URL, zap.NewNop()), zap.NewNop())
	dispatcher.RunPass(context.Background())

	assert.Equal(t, 1, statusUpdates)
	task := f.outbox.tasks[f.applications.tasks[0].ID]
	require.NotNil(t, task)
	assert.Equal(t, models.SyncDelivered, task.State)
	assert.Equal(t, 2, task.Attempts)
	assert.Empty(t, task.LastError)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))
	user := seedUser(t, f.users)
	app := pendingApplication(t, f, user.ID)
	ctx := context.Background()

	_, err := f.svc.Review(ctx, app.ID, services.ReviewRequest{Action: "reject"})
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, app.ID, services.ReviewRequest{Action: "approve"})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusConflict, serr.StatusCode)
	assert.Equal(t, "Application has already been reviewed", serr.Message)
}

func TestReview_InvalidAction(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))

	_, err := f.svc.Review(context.Background(), 1, services.ReviewRequest{Action: "maybe"})
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestPetDetail_DegradesWhenSiblingsDown(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))

	detail, err := f.svc.PetDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, detail.Degraded)
	assert.Nil(t, detail.Pet)
	assert.Nil(t, detail.Health)
}

func TestPetDetail_UnknownPetIs404(t *testing.T) {
	shelter := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer shelter.Close()

	f := newFixture(t, shelter.URL, downServer(t))

	_, err := f.svc.PetDetail(context.Background(), 999)
	var serr *services.ServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestPetDetail_MissingHealthRecordIsNotDegraded(t *testing.T) {
	var statusUpdates int
	shelter := newShelterServer(t, &statusUpdates)
	defer shelter.Close()
	vet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"pet_id": 1, "message": "No health records found", "has_records": false,
		})
	}))
	defer vet.Close()

	f := newFixture(t, shelter.URL, vet.URL)

	detail, err := f.svc.PetDetail(context.Background(), 1)
	require.NoError(t, err)
	// The vet answered; it just has nothing for this pet.
	assert.False(t, detail.Degraded)
	require.NotNil(t, detail.Pet)
	assert.Equal(t, "Max", detail.Pet.Name)
	assert.Nil(t, detail.Health)
}

func TestMyPets_MergesHealthAndFlagsDegradation(t *testing.T) {
	vet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"pet_id": 1, "pet_name": "Max", "weight": 20.5,
		})
	}))
	defer vet.Close()

	f := newFixture(t, downServer(t), vet.URL)
	user := seedUser(t, f.users)
	f.applications.adopted = append(f.applications.adopted, models.AdoptedPet{
		ID: 1, PetID: 1, PetName: "Max", AdopterID: user.ID,
	})

	resp, err := f.svc.MyPets(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	require.Equal(t, 1, resp.Total)
	require.NotNil(t, resp.Pets[0].Health)
	assert.Equal(t, 20.5, resp.Pets[0].Health.Weight)
	assert.True(t, resp.Pets[0].Health.HasRecords)

	// Same listing with the vet down: still 200-shaped, just degraded.
	down := newFixture(t, downServer(t), downServer(t))
	down.applications.adopted = f.applications.adopted
	resp, err = down.svc.MyPets(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Nil(t, resp.Pets[0].Health)
}

func TestApply_RecordsNotificationEvenWithoutEmail(t *testing.T) {
	f := newFixture(t, downServer(t), downServer(t))
	user := seedUser(t, f.users)

	pendingApplication(t, f, user.ID)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, user.ID, n.UserID)
	assert.Equal(t, models.NotificationFailed, n.Status)
	assert.Contains(t, n.Subject, "Application Received")
}
