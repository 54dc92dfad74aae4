package handlers

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/internal/api/presenters"
	"Food-Surplus-Backend/pkg/review"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReviewHandler interface {
		CreateReview(c *fiber.Ctx) error
		GetReviewsByDonor(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReview, err)
	}

	res, err := h.reviewService.CreateReview(c.Context(), *req, userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedCreateReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReview)
}

func (h *reviewHandler) GetReviewsByDonor(c *fiber.Ctx) error {
	res, err := h.reviewService.GetReviewsByDonor(c.Context(), c.Params("userId"))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessListResponse(c, res, len(res), fiber.StatusOK, domain.MessageSuccessGetReviews)
}
