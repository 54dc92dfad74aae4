package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Food struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;index;not null" json:"author_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Quantity     int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	QuantityUnit string    `gorm:"not null;default:plates" json:"quantity_unit"`   // plates, kg, packets
	FoodType     string    `gorm:"not null;index" json:"food_type"`                // edible, compost
	Status       string    `gorm:"not null;default:available;index" json:"status"` // available, requested, picked
	Address      string    `gorm:"not null" json:"address"`
	Longitude    float64   `json:"longitude"`
	Latitude     float64   `json:"latitude"`
	PickupFrom   time.Time `json:"pickup_from"`
	PickupTo     time.Time `json:"pickup_to"`

	Author   *User        `gorm:"foreignKey:AuthorID"`
	Images   []*FoodImage `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE"`
	Requests []*Request   `gorm:"foreignKey:FoodID"`
	Timestamp
}

// FoodImage is an uploaded picture of a listing. Filename is the blob
// storage object key and is what clients send back to keep an image.
type FoodImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FoodID   uuid.UUID `gorm:"type:uuid;index;not null" json:"food_id"`
	URL      string    `gorm:"not null" json:"url"`
	Filename string    `gorm:"not null" json:"filename"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	newID(&f.ID)
	return nil
}

func (i *FoodImage) BeforeCreate(tx *gorm.DB) error {
	newID(&i.ID)
	return nil
}
