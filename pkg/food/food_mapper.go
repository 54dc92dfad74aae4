package food

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/pkg/user"
)

// ToFoodResponse renders a listing. withContact controls whether the
// author's phone number is included.
func ToFoodResponse(f *entities.Food, withContact bool) domain.FoodResponse {
	images := make([]domain.FoodImage, 0, len(f.Images))
	for _, image := range f.Images {
		images = append(images, domain.FoodImage{URL: image.URL, Filename: image.Filename})
	}

	return domain.FoodResponse{
		ID:           f.ID.String(),
		Title:        f.Title,
		Description:  f.Description,
		Quantity:     f.Quantity,
		QuantityUnit: f.QuantityUnit,
		FoodType:     f.FoodType,
		Status:       f.Status,
		Address:      f.Address,
		Location:     domain.NewLocation(f.Longitude, f.Latitude),
		Images:       images,
		Author:       user.ToUserBrief(f.Author, withContact),
		AuthorID:     f.AuthorID.String(),
		PickupWindow: domain.PickupWindow{From: f.PickupFrom, To: f.PickupTo},
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
