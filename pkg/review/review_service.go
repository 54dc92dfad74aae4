package review

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/pkg/request"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReviewService interface {
		CreateReview(ctx context.Context, req domain.CreateReviewRequest, userID string) (domain.ReviewResponse, error)
		GetReviewsByDonor(ctx context.Context, donorID string) ([]domain.ReviewResponse, error)
	}

	reviewService struct {
		reviewRepository  ReviewRepository
		requestRepository request.RequestRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository, requestRepository request.RequestRepository) ReviewService {
	return &reviewService{
		reviewRepository:  reviewRepository,
		requestRepository: requestRepository,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req domain.CreateReviewRequest, userID string) (domain.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.ReviewResponse{}, domain.ErrInvalidRating
	}

	if _, err := uuid.Parse(req.RequestID); err != nil {
		return domain.ReviewResponse{}, domain.ErrRequestNotFound
	}
	foodRequest, err := s.requestRepository.GetRequestByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReviewResponse{}, domain.ErrRequestNotFound
		}
		return domain.ReviewResponse{}, err
	}

	if foodRequest.RequesterID.String() != userID {
		return domain.ReviewResponse{}, domain.ErrUnauthorizedReview
	}

	if foodRequest.Status != domain.RequestStatusApproved {
		return domain.ReviewResponse{}, domain.ErrRequestNotApproved
	}

	if foodRequest.Reviewed {
		return domain.ReviewResponse{}, domain.ErrRequestAlreadyReviewed
	}

	if foodRequest.Food == nil {
		return domain.ReviewResponse{}, domain.ErrFoodNotFound
	}

	review := &entities.Review{
		DonorID:    foodRequest.Food.AuthorID,
		ReceiverID: foodRequest.RequesterID,
		RequestID:  foodRequest.ID,
		Rating:     req.Rating,
	}
	if err := s.reviewRepository.CreateReview(ctx, review); err != nil {
		return domain.ReviewResponse{}, err
	}

	review.Receiver = foodRequest.Requester
	return toReviewResponse(review), nil
}

func (s *reviewService) GetReviewsByDonor(ctx context.Context, donorID string) ([]domain.ReviewResponse, error) {
	if _, err := uuid.Parse(donorID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	reviews, err := s.reviewRepository.GetReviewsByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, toReviewResponse(review))
	}
	return response, nil
}

func toReviewResponse(review *entities.Review) domain.ReviewResponse {
	res := domain.ReviewResponse{
		ID:        review.ID.String(),
		DonorID:   review.DonorID.String(),
		RequestID: review.RequestID.String(),
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}
	if review.Receiver != nil {
		res.Receiver = &domain.UserBrief{ID: review.Receiver.ID.String(), Name: review.Receiver.Name}
	}
	return res
}
