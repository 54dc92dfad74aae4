package request

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/pkg/food"
	"Food-Surplus-Backend/pkg/user"
)

func toRequestResponse(r *entities.Request) domain.RequestResponse {
	res := domain.RequestResponse{
		ID:                r.ID.String(),
		FoodID:            r.FoodID.String(),
		RequestedQuantity: r.RequestedQuantity,
		RequesterLocation: domain.NewLocation(r.RequesterLongitude, r.RequesterLatitude),
		Status:            r.Status,
		DonorSeen:         r.DonorSeen,
		ReceiverSeen:      r.ReceiverSeen,
		Reviewed:          r.Reviewed,
		CreatedAt:         r.CreatedAt,
	}
	if r.ReviewID != nil {
		res.ReviewID = r.ReviewID.String()
	}
	return res
}

// contactVisible reports whether phone numbers may be shown to the other
// party of a request.
func contactVisible(r *entities.Request) bool {
	return r.Status == domain.RequestStatusApproved
}

// ToSentResponse is the requester's view: the food and its donor.
func ToSentResponse(r *entities.Request) domain.RequestResponse {
	res := toRequestResponse(r)
	if r.Food != nil {
		f := food.ToFoodResponse(r.Food, contactVisible(r))
		res.Food = &f
	}
	return res
}

// ToReceivedResponse is the donor's view: the requester and their contact.
func ToReceivedResponse(r *entities.Request) domain.RequestResponse {
	res := toRequestResponse(r)
	res.Requester = user.ToUserBrief(r.Requester, contactVisible(r))
	return res
}

func toReceivedRequests(f *entities.Food, requests []*entities.Request) domain.ReceivedRequestsResponse {
	res := domain.ReceivedRequestsResponse{
		Food:     food.ToFoodResponse(f, false),
		Requests: make([]domain.RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		res.Requests = append(res.Requests, ToReceivedResponse(r))
	}
	return res
}
