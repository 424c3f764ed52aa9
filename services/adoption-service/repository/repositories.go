package repository

import (
	"context"
	"errors"

	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ApplicationFilter narrows application listings; empty or "all" disables
// a criterion.
type ApplicationFilter struct {
	Status string
	UserID int64
}

// ApplicationRepository defines data access for adoption applications.
// Approve commits the approval, the AdoptedPet row and the outbox task in
// one transaction so no partial approval can be observed.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.AdoptionApplication) error
	FindByID(ctx context.Context, id int64) (*models.AdoptionApplication, error)
	Find(ctx context.Context, filter ApplicationFilter) ([]models.AdoptionApplication, error)
	HasPending(ctx context.Context, userID, petID int64) (bool, error)
	Update(ctx context.Context, app *models.AdoptionApplication) error
	Approve(ctx context.Context, app *models.AdoptionApplication, adopted *models.AdoptedPet, task *models.StatusSyncTask) error
	FindAdoptedByAdopter(ctx context.Context, adopterID int64) ([]models.AdoptedPet, error)
}

// NotificationRepository logs outbound messages.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error)
}

// OutboxRepository defines data access for status sync tasks.
type OutboxRepository interface {
	FindPending(ctx context.Context, limit int) ([]models.StatusSyncTask, error)
	Update(ctx context.Context, task *models.StatusSyncTask) error
	FindByApplicationID(ctx context.Context, applicationID int64) (*models.StatusSyncTask, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

type GormApplicationRepository struct {
	db *gorm.DB
}

func NewGormApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) Create(ctx context.Context, app *models.AdoptionApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *GormApplicationRepository) FindByID(ctx context.Context, id int64) (*models.AdoptionApplication, error) {
	var app models.AdoptionApplication
	err := r.db.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormApplicationRepository) Find(ctx context.Context, filter ApplicationFilter) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication
	query := r.db.WithContext(ctx).Model(&models.AdoptionApplication{})
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	err := query.Order("date_submitted DESC").Find(&apps).Error
	return apps, err
}

func (r *GormApplicationRepository) HasPending(ctx context.Context, userID, petID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdoptionApplication{}).
		Where("user_id = ? AND pet_id = ? AND status = ?", userID, petID, models.ApplicationPending).
		Count(&count).Error
	return count > 0, err
}

func (r *GormApplicationRepository) Update(ctx context.Context, app *models.AdoptionApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *GormApplicationRepository) Approve(ctx context.Context, app *models.AdoptionApplication, adopted *models.AdoptedPet, task *models.StatusSyncTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(app).Error; err != nil {
			return err
		}
		if err := tx.Create(adopted).Error; err != nil {
			return err
		}
		return tx.Create(task).Error
	})
}

func (r *GormApplicationRepository) FindAdoptedByAdopter(ctx context.Context, adopterID int64) ([]models.AdoptedPet, error) {
	var pets []models.AdoptedPet
	err := r.db.WithContext(ctx).
		Where("adopter_id = ?", adopterID).
		Order("adoption_date DESC").
		Find(&pets).Error
	return pets, err
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *GormNotificationRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Find(&notifications).Error
	return notifications, err
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) OutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) FindPending(ctx context.Context, limit int) ([]models.StatusSyncTask, error) {
	var tasks []models.StatusSyncTask
	err := r.db.WithContext(ctx).
		Where("state = ?", models.SyncPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (r *GormOutboxRepository) Update(ctx context.Context, task *models.StatusSyncTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *GormOutboxRepository) FindByApplicationID(ctx context.Context, applicationID int64) (*models.StatusSyncTask, error) {
	var task models.StatusSyncTask
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}
