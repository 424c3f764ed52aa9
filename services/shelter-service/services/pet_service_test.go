package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/shelter-service/models"
	"github.com/whiteheadbella/vet-management/services/shelter-service/repository"
	"github.com/whiteheadbella/vet-management/services/shelter-service/services"
	"go.uber.org/zap"
)

// mockPetRepository is an in-memory implementation of PetRepository.
type mockPetRepository struct {
	pets   map[int64]*models.Pet
	images map[int64][]models.PetImage
	logs   map[int64][]models.ShelterLog
	nextID int64
}

func newMockPetRepository() *mockPetRepository {
	return &mockPetRepository{
		pets:   make(map[int64]*models.Pet),
		images: make(map[int64][]models.PetImage),
		logs:   make(map[int64][]models.ShelterLog),
		nextID: 1,
	}
}

func (m *mockPetRepository) Find(_ context.Context, filter repository.PetFilter) ([]models.Pet, int64, error) {
	var out []models.Pet
	for _, p := range m.pets {
		if filter.Status != "" && filter.Status != "all" && p.Status != filter.Status {
			continue
		}
		if filter.Species != "" && filter.Species != "all" && p.Species != filter.Species {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockPetRepository) FindByID(_ context.Context, id int64) (*models.Pet, error) {
	pet, ok := m.pets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *pet
	return &copied, nil
}

func (m *mockPetRepository) Create(_ context.Context, pet *models.Pet) error {
	pet.ID = m.nextID
	m.nextID++
	m.pets[pet.ID] = pet
	return nil
}

func (m *mockPetRepository) Update(_ context.Context, pet *models.Pet) error {
	m.pets[pet.ID] = pet
	return nil
}

func (m *mockPetRepository) Delete(_ context.Context, pet *models.Pet) error {
	delete(m.pets, pet.ID)
	delete(m.images, pet.ID)
	delete(m.logs, pet.ID)
	return nil
}

func (m *mockPetRepository) AddImage(_ context.Context, image *models.PetImage) error {
	m.images[image.PetID] = append(m.images[image.PetID], *image)
	return nil
}

func (m *mockPetRepository) CountImages(_ context.Context, petID int64) (int64, error) {
	return int64(len(m.images[petID])), nil
}

func (m *mockPetRepository) AppendLog(_ context.Context, log *models.ShelterLog) error {
	m.logs[log.PetID] = append(m.logs[log.PetID], *log)
	return nil
}

func (m *mockPetRepository) LogsByPetID(_ context.Context, petID int64) ([]models.ShelterLog, error) {
	return m.logs[petID], nil
}

func (m *mockPetRepository) Stats(_ context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	for _, p := range m.pets {
		stats.TotalPets++
		switch p.Status {
		case models.StatusAvailable:
			stats.Available++
		case models.StatusAdopted:
			stats.Adopted++
		case models.StatusPending:
			stats.Pending++
		}
		switch p.Species {
		case "dog":
			stats.Dogs++
		case "cat":
			stats.Cats++
		}
	}
	return stats, nil
}

func (m *mockPetRepository) FindByStatus(_ context.Context, status, species string, limit int) ([]models.Pet, error) {
	var out []models.Pet
	for _, p := range m.pets {
		if p.Status != status {
			continue
		}
		if species != "" && p.Species != species {
			continue
		}
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockPetRepository) SearchByNameOrBreed(_ context.Context, term string, limit int) ([]models.Pet, error) {
	term = strings.ToLower(term)
	var out []models.Pet
	for _, p := range m.pets {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Breed), term) {
			out = append(out, *p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func newPetService(repo repository.PetRepository) *services.PetService {
	return services.NewPetService(repo, validator.New(), zap.NewNop())
}

func TestUpdateStatus_RepeatedCallsAreIdempotentButLogged(t *testing.T) {
	repo := newMockPetRepository()
	svc := newPetService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Pet{Name: "Max", Species: "dog", Status: models.StatusAvailable}))

	req := &services.UpdateStatusRequest{PetID: 1, Status: models.StatusAdopted, System: "Adoption System"}

	first, serr := svc.UpdateStatus(ctx, req)
	require.Nil(t, serr)
	assert.Equal(t, models.StatusAdopted, first.Status)

	second, serr := svc.UpdateStatus(ctx, req)
	require.Nil(t, serr)
	assert.Equal(t, first.Status, second.Status)

	// The pet state converges but every call leaves an audit entry.
	logs, err := repo.LogsByPetID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Pet status changed from available to adopted", logs[0].Description)
	assert.Equal(t, "Pet status changed from adopted to adopted", logs[1].Description)
	assert.Equal(t, "Adoption System", logs[1].PerformedBy)
}

func TestUpdateStatus_MissingFields(t *testing.T) {
	svc := newPetService(newMockPetRepository())

	_, serr := svc.UpdateStatus(context.Background(), &services.UpdateStatusRequest{PetID: 1})
	require.NotNil(t, serr)
	assert.Equal(t, 400, serr.StatusCode)
}

func TestUpdateStatus_UnknownPet(t *testing.T) {
	svc := newPetService(newMockPetRepository())

	_, serr := svc.UpdateStatus(context.Background(), &services.UpdateStatusRequest{
		PetID: 42, Status: models.StatusAdopted,
	})
	require.NotNil(t, serr)
	assert.Equal(t, 404, serr.StatusCode)
}

func TestListPets_Defaults(t *testing.T) {
	repo := newMockPetRepository()
	svc := newPetService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Pet{Name: "Max", Species: "dog", Status: models.StatusAvailable}))
	require.NoError(t, repo.Create(ctx, &models.Pet{Name: "Rocky", Species: "dog", Status: models.StatusAdopted}))

	resp, serr := svc.ListPets(ctx, repository.PetFilter{})
	require.Nil(t, serr)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 12, resp.PerPage)
	// Unfiltered listings only show available pets.
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Pets, 1)
	assert.Equal(t, "Max", resp.Pets[0].Name)
}

func TestCreatePet_ValidationFailure(t *testing.T) {
	svc := newPetService(newMockPetRepository())

	_, serr := svc.CreatePet(context.Background(), &services.CreatePetRequest{Species: "dog"})
	require.NotNil(t, serr)
	assert.Equal(t, 400, serr.StatusCode)
}

func TestCreatePet_AppendsIntakeLog(t *testing.T) {
	repo := newMockPetRepository()
	svc := newPetService(repo)
	ctx := context.Background()

	pet, serr := svc.CreatePet(ctx, &services.CreatePetRequest{
		Name: "Luna", Species: "cat", Breed: "Siamese", Age: 2, StaffName: "Dana",
	})
	require.Nil(t, serr)
	assert.Equal(t, models.StatusAvailable, pet.Status)

	logs, err := repo.LogsByPetID(ctx, pet.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionAdded, logs[0].Action)
}

func TestAddImage_FirstImageIsPrimary(t *testing.T) {
	repo := newMockPetRepository()
	svc := newPetService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Pet{Name: "Max", Species: "dog", Status: models.StatusAvailable}))

	first, serr := svc.AddImage(ctx, 1, "http://img/1.jpg", "")
	require.Nil(t, serr)
	assert.True(t, first.IsPrimary)

	second, serr := svc.AddImage(ctx, 1, "http://img/2.jpg", "side view")
	require.Nil(t, serr)
	assert.False(t, second.IsPrimary)
}

func TestAddImage_RequiresURL(t *testing.T) {
	svc := newPetService(newMockPetRepository())

	_, serr := svc.AddImage(context.Background(), 1, "", "")
	require.NotNil(t, serr)
	assert.Equal(t, 400, serr.StatusCode)
}
