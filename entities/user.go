package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"not null;default:donor" json:"role"` // donor, receiver, admin
	RatingCount   int       `gorm:"not null;default:0" json:"rating_count"`
	RatingAverage float64   `gorm:"not null;default:0" json:"rating_average"`

	Timestamp
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}
