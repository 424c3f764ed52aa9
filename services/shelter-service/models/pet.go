package models

import "time"

// Pet status values. Transitions are caller-driven; there is no enforced
// state machine and the status endpoint accepts whatever the caller sends.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusAdopted   = "adopted"
)

// Shelter log actions.
const (
	ActionAdded         = "added"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
	ActionReturned      = "returned"
)

// Pet is the shelter's system-of-record row for an adoptable animal. Its ID
// is the pet_id every other service references.
type Pet struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Species     string `json:"species" gorm:"size:20;not null;index"`
	Breed       string `json:"breed" gorm:"size:100"`
	Age         int    `json:"age"`
	Gender      string `json:"gender" gorm:"size:10"`
	Color       string `json:"color" gorm:"size:50"`
	Size        string `json:"size" gorm:"size:20"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"size:20;default:'available';index"`

	// Medical flags
	Vaccinated     bool   `json:"vaccinated" gorm:"default:false"`
	SpayedNeutered bool   `json:"spayed_neutered" gorm:"default:false"`
	Microchipped   bool   `json:"microchipped" gorm:"default:false"`
	SpecialNeeds   string `json:"special_needs" gorm:"type:text"`

	// Behavioral traits
	GoodWithKids bool   `json:"good_with_kids" gorm:"default:true"`
	GoodWithPets bool   `json:"good_with_pets" gorm:"default:true"`
	GoodWithDogs bool   `json:"good_with_dogs" gorm:"default:true"`
	GoodWithCats bool   `json:"good_with_cats" gorm:"default:true"`
	EnergyLevel  string `json:"energy_level" gorm:"size:20"`

	// Breed characteristics
	ActivityLevel   string `json:"activity_level" gorm:"size:20"`
	BarkingLevel    string `json:"barking_level" gorm:"size:20"`
	Characteristics string `json:"characteristics" gorm:"size:200"`
	CoatType        string `json:"coat_type" gorm:"size:50"`
	Shedding        string `json:"shedding" gorm:"size:20"`
	Trainability    string `json:"trainability" gorm:"size:20"`

	IntakeDate  time.Time `json:"intake_date" gorm:"autoCreateTime"`
	AdoptionFee float64   `json:"adoption_fee" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Images []PetImage `json:"images" gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	Logs   []ShelterLog `json:"-" gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
}

// PetImage is an image record owned by a Pet. The first image attached to a
// pet is flagged primary; uniqueness of the flag is not enforced.
type PetImage struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PetID      int64     `json:"pet_id" gorm:"not null;index"`
	ImageURL   string    `json:"image_url" gorm:"size:255;not null"`
	IsPrimary  bool      `json:"is_primary" gorm:"default:false"`
	Caption    string    `json:"caption" gorm:"size:200"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

// ShelterLog is an append-only audit row tied to a Pet. Rows are created on
// add, update and status change, and are never mutated afterwards; deletion
// happens only through the pet cascade.
type ShelterLog struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	PetID       int64     `json:"pet_id" gorm:"not null;index"`
	Action      string    `json:"action" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PerformedBy string    `json:"performed_by" gorm:"size:100"`
	Timestamp   time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

// Stats is the shelter statistics payload served by /api/stats.
type Stats struct {
	TotalPets int64 `json:"total_pets"`
	Available int64 `json:"available"`
	Adopted   int64 `json:"adopted"`
	Pending   int64 `json:"pending"`
	Dogs      int64 `json:"dogs"`
	Cats      int64 `json:"cats"`
}
