package models

import (
	"time"
)

// Application status values.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Notification status values.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// StatusSyncTask status values.
const (
	SyncPending   = "pending"
	SyncDelivered = "delivered"
	SyncFailed    = "failed"
)

// User is an adopter, shelter staff member or vet. The password column
// holds a bcrypt hash and is never serialized.
type User struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Email    string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password string `json:"-" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"size:20;not null"`
	Gender   string `json:"gender" gorm:"size:10"`
	Job      string `json:"job" gorm:"size:100"`
	Phone    string `json:"phone" gorm:"size:20"`
	Address  string `json:"address" gorm:"type:text"`
	City     string `json:"city" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AdoptionApplication is one user's request to adopt one pet. PetID points
// into the shelter service; there is no cross-service foreign key.
type AdoptionApplication struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	UserID  int64  `json:"user_id" gorm:"not null;index"`
	PetID   int64  `json:"pet_id" gorm:"not null;index"`
	PetName string `json:"pet_name" gorm:"size:100"`
	Status  string `json:"status" gorm:"size:20;default:'pending';index"`

	Reason          string `json:"reason" gorm:"type:text"`
	Experience      string `json:"experience" gorm:"type:text"`
	LivingSituation string `json:"living_situation" gorm:"size:100"`
	HasYard         bool   `json:"has_yard" gorm:"default:false"`
	OtherPets       string `json:"other_pets" gorm:"type:text"`

	DateSubmitted time.Time  `json:"date_submitted" gorm:"autoCreateTime"`
	DateReviewed  *time.Time `json:"date_reviewed"`
	ReviewedBy    int64      `json:"reviewed_by"`
	Notes         string     `json:"notes" gorm:"type:text"`
}

// AdoptedPet records a completed adoption.
type AdoptedPet struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	PetID         int64     `json:"pet_id" gorm:"not null;index"`
	PetName       string    `json:"pet_name" gorm:"size:100"`
	AdopterID     int64     `json:"adopter_id" gorm:"not null;index"`
	ApplicationID int64     `json:"application_id" gorm:"index"`
	AdoptionDate  time.Time `json:"adoption_date" gorm:"autoCreateTime"`

	AdoptionFee     float64 `json:"adoption_fee" gorm:"default:0"`
	MicrochipNumber string  `json:"microchip_number" gorm:"size:50"`
	Notes           string  `json:"notes" gorm:"type:text"`
}

// Notification logs every outbound message attempt, failed ones included.
type Notification struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"not null;index"`
	Type      string     `json:"notification_type" gorm:"column:notification_type;size:50"`
	Subject   string     `json:"subject" gorm:"size:200"`
	Message   string     `json:"message" gorm:"type:text"`
	MessageID string     `json:"message_id" gorm:"size:100"`
	SentAt    time.Time  `json:"sent_at" gorm:"autoCreateTime"`
	ReadAt    *time.Time `json:"read_at"`
	Status    string     `json:"status" gorm:"size:20;default:'sent'"`
}

// StatusSyncTask is a transactional outbox row: the durable record of a
// shelter status change owed by an approved application. Written in the
// same transaction as the approval, delivered asynchronously.
type StatusSyncTask struct {
	ID     int64  `json:"id" gorm:"primaryKey"`
	PetID  int64  `json:"pet_id" gorm:"not null;index"`
	Status string `json:"status" gorm:"size:20;not null"`

	ApplicationID int64  `json:"application_id" gorm:"index"`
	State         string `json:"state" gorm:"size:20;default:'pending';index"`
	Attempts      int    `json:"attempts" gorm:"default:0"`
	LastError     string `json:"last_error" gorm:"type:text"`

	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeliveredAt *time.Time `json:"delivered_at"`
}
