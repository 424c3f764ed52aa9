package repository

import (
	"context"
	"errors"
	"time"

	"github.com/whiteheadbella/vet-management/services/veterinary-service/models"
	"gorm.io/gorm"
)

// Not-found sentinels for the three aggregate roots.
var (
	ErrVetNotFound         = errors.New("vet not found")
	ErrRecordNotFound      = errors.New("health record not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// VetRepository defines data access for veterinarians.
type VetRepository interface {
	FindAll(ctx context.Context) ([]models.Vet, error)
	FindByID(ctx context.Context, id int64) (*models.Vet, error)
	Create(ctx context.Context, vet *models.Vet) error
	Count(ctx context.Context) (int64, error)
	Specializations(ctx context.Context) ([]string, error)
}

// RecordRepository defines data access for pet health records.
type RecordRepository interface {
	FindByPetID(ctx context.Context, petID int64) (*models.VetRecord, error)
	FindAll(ctx context.Context) ([]models.VetRecord, error)
	FindRecent(ctx context.Context, limit int) ([]models.VetRecord, error)
	Create(ctx context.Context, record *models.VetRecord) error
	Update(ctx context.Context, record *models.VetRecord) error
	Count(ctx context.Context) (int64, error)
	CountCheckedUpSince(ctx context.Context, since time.Time) (int64, error)
}

// AppointmentFilter narrows appointment listings; empty or "all" disables
// a criterion.
type AppointmentFilter struct {
	Status string
	VetID  int64
}

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	Find(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	FindByPetID(ctx context.Context, petID int64) ([]models.Appointment, error)
	FindUpcoming(ctx context.Context, after time.Time, limit int) ([]models.Appointment, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	Create(ctx context.Context, appt *models.Appointment) error
	Update(ctx context.Context, appt *models.Appointment) error
	Count(ctx context.Context) (int64, error)
	CountByPetID(ctx context.Context, petID int64) (int64, error)
	CountUpcoming(ctx context.Context, after time.Time) (int64, error)
}

type GormVetRepository struct {
	db *gorm.DB
}

func NewGormVetRepository(db *gorm.DB) VetRepository {
	return &GormVetRepository{db: db}
}

func (r *GormVetRepository) FindAll(ctx context.Context) ([]models.Vet, error) {
	var vets []models.Vet
	err := r.db.WithContext(ctx).Order("name ASC").Find(&vets).Error
	return vets, err
}

func (r *GormVetRepository) FindByID(ctx context.Context, id int64) (*models.Vet, error) {
	var vet models.Vet
	err := r.db.WithContext(ctx).First(&vet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vet, nil
}

func (r *GormVetRepository) Create(ctx context.Context, vet *models.Vet) error {
	return r.db.WithContext(ctx).Create(vet).Error
}

func (r *GormVetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vet{}).Count(&count).Error
	return count, err
}

func (r *GormVetRepository) Specializations(ctx context.Context) ([]string, error) {
	var specs []string
	err := r.db.WithContext(ctx).Model(&models.Vet{}).
		Where("specialization <> ''").
		Distinct().
		Pluck("specialization", &specs).Error
	return specs, err
}

type GormRecordRepository struct {
	db *gorm.DB
}

func NewGormRecordRepository(db *gorm.DB) RecordRepository {
	return &GormRecordRepository{db: db}
}

func (r *GormRecordRepository) FindByPetID(ctx context.Context, petID int64) (*models.VetRecord, error) {
	var record models.VetRecord
	err := r.db.WithContext(ctx).Where("pet_id = ?", petID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormRecordRepository) FindAll(ctx context.Context) ([]models.VetRecord, error) {
	var records []models.VetRecord
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&records).Error
	return records, err
}

func (r *GormRecordRepository) FindRecent(ctx context.Context, limit int) ([]models.VetRecord, error) {
	var records []models.VetRecord
	err := r.db.WithContext(ctx).
		Where("last_checkup IS NOT NULL").
		Order("last_checkup DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *GormRecordRepository) Create(ctx context.Context, record *models.VetRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormRecordRepository) Update(ctx context.Context, record *models.VetRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *GormRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VetRecord{}).Count(&count).Error
	return count, err
}

func (r *GormRecordRepository) CountCheckedUpSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VetRecord{}).
		Where("last_checkup >= ?", since).
		Count(&count).Error
	return count, err
}

type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Find(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	var appts []models.Appointment
	query := r.db.WithContext(ctx).Model(&models.Appointment{})
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VetID != 0 {
		query = query.Where("vet_id = ?", filter.VetID)
	}
	err := query.Order("date DESC").Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *GormAppointmentRepository) FindByPetID(ctx context.Context, petID int64) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("date DESC").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) FindUpcoming(ctx context.Context, after time.Time, limit int) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("date >= ?", after).
		Order("date ASC").
		Limit(limit).
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) FindBetween(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *GormAppointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *GormAppointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

func (r *GormAppointmentRepository) CountByPetID(ctx context.Context, petID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("pet_id = ?", petID).
		Count(&count).Error
	return count, err
}

func (r *GormAppointmentRepository) CountUpcoming(ctx context.Context, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("date >= ? AND status = ?", after, models.StatusScheduled).
		Count(&count).Error
	return count, err
}
