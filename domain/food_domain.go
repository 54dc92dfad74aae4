package domain

import (
	"mime/multipart"
	"time"
)

const (
	FoodTypeEdible  = "edible"
	FoodTypeCompost = "compost"

	FoodStatusAvailable = "available"
	FoodStatusRequested = "requested"
	FoodStatusPicked    = "picked"

	UnitPlates  = "plates"
	UnitKg      = "kg"
	UnitPackets = "packets"
)

var (
	MessageSuccessGetFoods   = "foods retrieved successfully"
	MessageSuccessGetFood    = "food retrieved successfully"
	MessageSuccessCreateFood = "food created successfully"
	MessageSuccessUpdateFood = "food updated successfully"
	MessageSuccessDeleteFood = "food and images deleted successfully"

	MessageFailedGetFoods   = "failed to retrieve foods"
	MessageFailedGetFood    = "failed to retrieve food"
	MessageFailedCreateFood = "failed to create food"
	MessageFailedUpdateFood = "failed to update food"
	MessageFailedDeleteFood = "failed to delete food"

	ErrFoodNotFound        = NewError(KindNotFound, "food not found")
	ErrUnauthorizedFood    = NewError(KindForbidden, "not authorized")
	ErrFoodNotDeletable    = NewError(KindInvalidState, "only available food listings can be deleted")
	ErrInvalidFoodQuantity = NewError(KindInvalidInput, "quantity must not be negative")
	ErrInvalidFoodLocation = NewError(KindInvalidInput, "location must have exactly two valid coordinates")
	ErrInvalidPickupWindow = NewError(KindInvalidInput, "pickup window end must be after its start")
	ErrInvalidSearchRadius = NewError(KindInvalidInput, "radius must be positive")
)

type (
	CreateFoodRequest struct {
		Title        string                  `json:"title" form:"title" validate:"required"`
		Description  string                  `json:"description" form:"description"`
		Quantity     int                     `json:"quantity" form:"quantity" validate:"required,min=1"`
		QuantityUnit string                  `json:"quantity_unit" form:"quantity_unit" validate:"omitempty,oneof=plates kg packets"`
		FoodType     string                  `json:"food_type" form:"food_type" validate:"required,oneof=edible compost"`
		Address      string                  `json:"address" form:"address" validate:"required"`
		Location     string                  `json:"location" form:"location"`
		Latitude     string                  `json:"latitude" form:"latitude"`
		Longitude    string                  `json:"longitude" form:"longitude"`
		PickupFrom   string                  `json:"pickup_from" form:"pickup_from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
		PickupTo     string                  `json:"pickup_to" form:"pickup_to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
		Images       []*multipart.FileHeader `json:"-" form:"-"`
	}

	UpdateFoodRequest struct {
		Title          string                  `json:"title" form:"title" validate:"required"`
		Description    string                  `json:"description" form:"description"`
		Quantity       int                     `json:"quantity" form:"quantity" validate:"min=0"`
		QuantityUnit   string                  `json:"quantity_unit" form:"quantity_unit" validate:"omitempty,oneof=plates kg packets"`
		FoodType       string                  `json:"food_type" form:"food_type" validate:"required,oneof=edible compost"`
		Address        string                  `json:"address" form:"address" validate:"required"`
		Location       string                  `json:"location" form:"location"`
		Latitude       string                  `json:"latitude" form:"latitude"`
		Longitude      string                  `json:"longitude" form:"longitude"`
		ExistingImages []string                `json:"existing_images" form:"existing_images"`
		Images         []*multipart.FileHeader `json:"-" form:"-"`
	}

	GetFoodsRequest struct {
		Latitude  *float64
		Longitude *float64
		RadiusKm  float64
	}

	FoodImage struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}

	PickupWindow struct {
		From time.Time `json:"from"`
		To   time.Time `json:"to"`
	}

	FoodResponse struct {
		ID           string       `json:"_id"`
		Title        string       `json:"title"`
		Description  string       `json:"description,omitempty"`
		Quantity     int          `json:"quantity"`
		QuantityUnit string       `json:"quantity_unit"`
		FoodType     string       `json:"food_type"`
		Status       string       `json:"status"`
		Address      string       `json:"address"`
		Location     Location     `json:"location"`
		Images       []FoodImage  `json:"images"`
		Author       *UserBrief   `json:"author,omitempty"`
		AuthorID     string       `json:"author_id"`
		PickupWindow PickupWindow `json:"pickup_window"`
		DistanceKm   *float64     `json:"distance_km,omitempty"`
		CreatedAt    time.Time    `json:"created_at"`
		UpdatedAt    time.Time    `json:"updated_at"`
	}
)
