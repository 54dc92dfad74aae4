package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DonorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"donor_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;index;not null" json:"receiver_id"`
	RequestID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"request_id"` // one review per request
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// no association to Request: reviews outlive deleted listings and their requests
	Donor    *User `gorm:"foreignKey:DonorID"`
	Receiver *User `gorm:"foreignKey:ReceiverID"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
