package domain

import "time"

var (
	MessageSuccessCreateReview = "review created successfully"
	MessageSuccessGetReviews   = "reviews retrieved successfully"

	MessageFailedCreateReview = "failed to create review"
	MessageFailedGetReviews   = "failed to retrieve reviews"

	ErrInvalidRating          = NewError(KindInvalidInput, "rating must be between 1 and 5")
	ErrUnauthorizedReview     = NewError(KindForbidden, "not authorized")
	ErrRequestNotApproved     = NewError(KindInvalidState, "request must be approved to review")
	ErrRequestAlreadyReviewed = NewError(KindConflict, "already reviewed")
)

type (
	CreateReviewRequest struct {
		RequestID string `json:"request_id" validate:"required,uuid"`
		Rating    int    `json:"rating"`
	}

	ReviewResponse struct {
		ID        string     `json:"_id"`
		DonorID   string     `json:"donor_id"`
		Receiver  *UserBrief `json:"receiver,omitempty"`
		RequestID string     `json:"request_id"`
		Rating    int        `json:"rating"`
		CreatedAt time.Time  `json:"created_at"`
	}
)
