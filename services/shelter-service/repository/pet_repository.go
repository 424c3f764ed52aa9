package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/whiteheadbella/vet-management/services/shelter-service/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a pet does not exist.
var ErrNotFound = errors.New("pet not found")

// PetFilter narrows the pet listing. Zero values mean "no filter"; Status
// defaults to available in the service layer, "all" disables it.
type PetFilter struct {
	Species string
	Breed   string
	Age     *int
	Gender  string
	Status  string
	Search  string
	Page    int
	PerPage int
}

// PetRepository defines the interface for pet data access.
type PetRepository interface {
	Find(ctx context.Context, filter PetFilter) ([]models.Pet, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Pet, error)
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, pet *models.Pet) error
	AddImage(ctx context.Context, image *models.PetImage) error
	CountImages(ctx context.Context, petID int64) (int64, error)
	AppendLog(ctx context.Context, log *models.ShelterLog) error
	LogsByPetID(ctx context.Context, petID int64) ([]models.ShelterLog, error)
	Stats(ctx context.Context) (*models.Stats, error)
	FindByStatus(ctx context.Context, status, species string, limit int) ([]models.Pet, error)
	SearchByNameOrBreed(ctx context.Context, term string, limit int) ([]models.Pet, error)
}

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

// NewGormPetRepository creates a new instance of GormPetRepository.
func NewGormPetRepository(db *gorm.DB) PetRepository {
	return &GormPetRepository{db: db}
}

// Find retrieves pets matching the filter with pagination.
func (r *GormPetRepository) Find(ctx context.Context, filter PetFilter) ([]models.Pet, int64, error) {
	var pets []models.Pet
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Pet{})

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Species != "" && filter.Species != "all" {
		query = query.Where("species = ?", filter.Species)
	}
	if filter.Breed != "" {
		query = query.Where("LOWER(breed) LIKE ?", "%"+strings.ToLower(filter.Breed)+"%")
	}
	if filter.Age != nil {
		query = query.Where("age = ?", *filter.Age)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(breed) LIKE ?",
			term, term, term,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	if err := query.
		Preload("Images").
		Offset(offset).
		Limit(filter.PerPage).
		Order("created_at DESC").
		Find(&pets).Error; err != nil {
		return nil, 0, err
	}

	return pets, total, nil
}

// FindByID retrieves a pet with its images.
func (r *GormPetRepository) FindByID(ctx context.Context, id int64) (*models.Pet, error) {
	var pet models.Pet
	err := r.db.WithContext(ctx).Preload("Images").First(&pet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

// Create inserts a new pet.
func (r *GormPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

// Update saves a modified pet.
func (r *GormPetRepository) Update(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

// Delete removes a pet; images and logs go with it via the cascade.
func (r *GormPetRepository) Delete(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Select("Images", "Logs").Delete(pet).Error
}

// AddImage attaches an image record to a pet.
func (r *GormPetRepository) AddImage(ctx context.Context, image *models.PetImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// CountImages returns how many images a pet has.
func (r *GormPetRepository) CountImages(ctx context.Context, petID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PetImage{}).
		Where("pet_id = ?", petID).Count(&count).Error
	return count, err
}

// AppendLog writes one audit row. Logs are never updated or deleted here.
func (r *GormPetRepository) AppendLog(ctx context.Context, log *models.ShelterLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// LogsByPetID returns a pet's audit trail, newest first.
func (r *GormPetRepository) LogsByPetID(ctx context.Context, petID int64) ([]models.ShelterLog, error) {
	var logs []models.ShelterLog
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("timestamp DESC").
		Find(&logs).Error
	return logs, err
}

// Stats aggregates the shelter counters.
func (r *GormPetRepository) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	db := r.db.WithContext(ctx).Model(&models.Pet{})

	type counter struct {
		dst   *int64
		where []interface{}
	}
	counts := []counter{
		{&stats.TotalPets, nil},
		{&stats.Available, []interface{}{"status = ?", models.StatusAvailable}},
		{&stats.Adopted, []interface{}{"status = ?", models.StatusAdopted}},
		{&stats.Pending, []interface{}{"status = ?", models.StatusPending}},
		{&stats.Dogs, []interface{}{"species = ?", "dog"}},
		{&stats.Cats, []interface{}{"species = ?", "cat"}},
	}
	for _, c := range counts {
		q := db.Session(&gorm.Session{})
		if c.where != nil {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// FindByStatus returns up to limit pets in a status, optionally narrowed by
// species. Used by the chatbot responders.
func (r *GormPetRepository) FindByStatus(ctx context.Context, status, species string, limit int) ([]models.Pet, error) {
	var pets []models.Pet
	query := r.db.WithContext(ctx).Where("status = ?", status)
	if species != "" {
		query = query.Where("species = ?", species)
	}
	err := query.Limit(limit).Find(&pets).Error
	return pets, err
}

// SearchByNameOrBreed finds pets whose name or breed contains the term.
func (r *GormPetRepository) SearchByNameOrBreed(ctx context.Context, term string, limit int) ([]models.Pet, error) {
	var pets []models.Pet
	pattern := "%" + strings.ToLower(term) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(breed) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&pets).Error
	return pets, err
}
