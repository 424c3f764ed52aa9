package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Appointment status values.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Vet is a veterinarian on staff.
type Vet struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:100;not null"`
	Email          string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Phone          string    `json:"phone" gorm:"size:20"`
	Specialization string    `json:"specialization" gorm:"size:100"`
	LicenseNumber  string    `json:"license_number" gorm:"size:50"`
	Bio            string    `json:"bio" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Vaccination is one entry in a pet's vaccination history.
type Vaccination struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	NextDue string `json:"next_due,omitempty"`
	VetName string `json:"vet_name,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Deworming is one entry in a pet's deworming history.
type Deworming struct {
	Product string `json:"product"`
	Date    string `json:"date"`
	NextDue string `json:"next_due,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// VaccinationList stores vaccinations as a JSON column.
type VaccinationList []Vaccination

func (l VaccinationList) Value() (driver.Value, error) {
	if l == nil {
		l = VaccinationList{}
	}
	return json.Marshal(l)
}

func (l *VaccinationList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// DewormingList stores deworming records as a JSON column.
type DewormingList []Deworming

func (l DewormingList) Value() (driver.Value, error) {
	if l == nil {
		l = DewormingList{}
	}
	return json.Marshal(l)
}

func (l *DewormingList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dst interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported type %T for JSON column", value)
	}
}

// VetRecord is a pet's health record. One record per pet_id is a soft rule
// enforced on create, not by a unique constraint.
type VetRecord struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	PetID   int64  `json:"pet_id" gorm:"not null;index"`
	PetName string `json:"pet_name" gorm:"size:100"`
	Species string `json:"species" gorm:"size:20"`
	Breed   string `json:"breed" gorm:"size:100"`

	OwnerName  string `json:"owner_name" gorm:"size:100"`
	OwnerPhone string `json:"owner_phone" gorm:"size:20"`
	OwnerEmail string `json:"owner_email" gorm:"size:120"`

	LastCheckup     *time.Time `json:"last_checkup"`
	Weight          float64    `json:"weight"`
	Temperature     float64    `json:"temperature"`
	HeartRate       int        `json:"heart_rate"`
	RespiratoryRate int        `json:"respiratory_rate"`

	BodyConditionScore string     `json:"body_condition_score" gorm:"size:20"`
	MicrochipNumber    string     `json:"microchip_number" gorm:"size:50"`
	SpayedNeutered     bool       `json:"spayed_neutered" gorm:"default:false"`
	SpayNeuterDate     *time.Time `json:"spay_neuter_date"`

	Vaccinations     VaccinationList `json:"vaccinations" gorm:"type:text"`
	DewormingRecords DewormingList   `json:"deworming_records" gorm:"type:text"`

	Notes             string `json:"notes" gorm:"type:text"`
	MedicalHistory    string `json:"medical_history" gorm:"type:text"`
	SurgicalHistory   string `json:"surgical_history" gorm:"type:text"`
	Medications       string `json:"medications" gorm:"type:text"`
	Allergies         string `json:"allergies" gorm:"type:text"`
	ChronicConditions string `json:"chronic_conditions" gorm:"type:text"`

	DentalHealth        string     `json:"dental_health" gorm:"size:50"`
	DentalCleaningDate  *time.Time `json:"dental_cleaning_date"`
	HeartwormStatus     string     `json:"heartworm_status" gorm:"size:50"`
	HeartwormTestDate   *time.Time `json:"heartworm_test_date"`
	FleaTickPrevention  bool       `json:"flea_tick_prevention" gorm:"default:false"`
	FleaTickProduct     string     `json:"flea_tick_product" gorm:"size:100"`
	FleaTickLastApplied *time.Time `json:"flea_tick_last_applied"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	UpdatedBy int64     `json:"updated_by"`
}

// Appointment is a scheduled vet visit. CalendarEventID links the optional
// mirror event in the external calendar; the row itself stays authoritative
// whether or not the mirror succeeded.
type Appointment struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	PetID      int64  `json:"pet_id" gorm:"not null;index"`
	PetName    string `json:"pet_name" gorm:"size:100"`
	OwnerName  string `json:"owner_name" gorm:"size:100"`
	OwnerEmail string `json:"owner_email" gorm:"size:120"`
	OwnerPhone string `json:"owner_phone" gorm:"size:20"`

	VetID int64 `json:"vet_id" gorm:"not null;index"`

	Date     time.Time `json:"date" gorm:"not null"`
	Duration int       `json:"duration" gorm:"default:30"`
	Reason   string    `json:"reason" gorm:"size:200"`
	Notes    string    `json:"notes" gorm:"type:text"`

	Status string `json:"status" gorm:"size:20;default:'scheduled';index"`

	CalendarEventID string `json:"calendar_event_id" gorm:"size:200"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Stats is the veterinary statistics payload served by /api/stats.
type Stats struct {
	TotalRecords         int64 `json:"total_records"`
	TotalVets            int64 `json:"total_vets"`
	TotalAppointments    int64 `json:"total_appointments"`
	UpcomingAppointments int64 `json:"upcoming_appointments"`
}
