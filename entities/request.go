package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Request struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FoodID             uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_requests_one_pending,where:status = 'pending'" json:"food_id"`
	RequesterID        uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_requests_one_pending,where:status = 'pending'" json:"requester_id"`
	RequestedQuantity  int        `gorm:"not null;check:requested_quantity >= 1" json:"requested_quantity"`
	RequesterLongitude float64    `json:"requester_longitude"`
	RequesterLatitude  float64    `json:"requester_latitude"`
	Status             string     `gorm:"not null;default:pending;index" json:"status"` // pending, approved, rejected
	DonorSeen          bool       `gorm:"not null;default:false" json:"donor_seen"`
	ReceiverSeen       bool       `gorm:"not null;default:true" json:"receiver_seen"`
	Reviewed           bool       `gorm:"not null;default:false" json:"reviewed"`
	ReviewID           *uuid.UUID `gorm:"type:uuid" json:"review_id,omitempty"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Food      *Food `gorm:"foreignKey:FoodID"`
	Requester *User `gorm:"foreignKey:RequesterID"`
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
