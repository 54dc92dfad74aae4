package user

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
)

// ToUserBrief renders a referenced user. The phone number is only included
// when withContact is set; callers decide that from the request status.
func ToUserBrief(u *entities.User, withContact bool) *domain.UserBrief {
	if u == nil {
		return nil
	}
	brief := &domain.UserBrief{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
	if withContact {
		brief.Phone = u.Phone
	}
	return brief
}

func ToUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
		Rating: domain.Rating{
			Count:   u.RatingCount,
			Average: u.RatingAverage,
		},
		CreatedAt: u.CreatedAt,
	}
}
