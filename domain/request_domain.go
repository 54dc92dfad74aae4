package domain

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

var (
	MessageSuccessCreateRequest    = "request created successfully"
	MessageSuccessApproveRequest   = "request approved successfully"
	MessageSuccessRejectRequest    = "request rejected successfully"
	MessageSuccessGetRequests      = "requests retrieved successfully"
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkSeen         = "notifications marked as seen"

	MessageFailedCreateRequest    = "failed to create request"
	MessageFailedApproveRequest   = "failed to approve request"
	MessageFailedRejectRequest    = "failed to reject request"
	MessageFailedGetRequests      = "failed to retrieve requests"
	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkSeen         = "failed to mark notifications as seen"

	ErrRequestNotFound         = NewError(KindNotFound, "request not found")
	ErrFoodNotAvailable        = NewError(KindInvalidState, "food not available")
	ErrOnlyReceiversCanRequest = NewError(KindForbidden, "only receivers can request food")
	ErrRequestOwnFood          = NewError(KindInvalidOperation, "you cannot request your own food listing")
	ErrInvalidRequestQuantity  = NewError(KindInvalidInput, "invalid quantity")
	ErrQuantityExceedsFood     = NewError(KindInvalidInput, "requested quantity exceeds available quantity")
	ErrInvalidRequestLocation  = NewError(KindInvalidInput, "requester location must have exactly two coordinates")
	ErrRequestAlreadySent      = NewError(KindConflict, "request already sent")
	ErrUnauthorizedRequest     = NewError(KindForbidden, "not authorized")
	ErrRequestAlreadyProcessed = NewError(KindInvalidState, "request already processed")
	ErrInsufficientQuantity    = NewError(KindInsufficientQuantity, "insufficient food quantity")
	ErrOnlyDonorsReceive       = NewError(KindForbidden, "only donors can view received requests")
)

type (
	CreateFoodRequestRequest struct {
		Quantity int      `json:"quantity"`
		Location Location `json:"location"`
	}

	RequestResponse struct {
		ID                string        `json:"_id"`
		FoodID            string        `json:"food_id"`
		Food              *FoodResponse `json:"food,omitempty"`
		Requester         *UserBrief    `json:"requester,omitempty"`
		RequestedQuantity int           `json:"requested_quantity"`
		RequesterLocation Location      `json:"requester_location"`
		Status            string        `json:"status"`
		DonorSeen         bool          `json:"donor_seen"`
		ReceiverSeen      bool          `json:"receiver_seen"`
		Reviewed          bool          `json:"reviewed"`
		ReviewID          string        `json:"review_id,omitempty"`
		CreatedAt         time.Time     `json:"created_at"`
	}

	ReceivedRequestsResponse struct {
		Food     FoodResponse      `json:"food"`
		Requests []RequestResponse `json:"requests"`
	}

	NotificationCountResponse struct {
		Count int64 `json:"count"`
	}
)
