package handlers

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/internal/api/presenters"
	"Food-Surplus-Backend/pkg/request"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RequestHandler interface {
		CreateRequest(c *fiber.Ctx) error
		ApproveRequest(c *fiber.Ctx) error
		RejectRequest(c *fiber.Ctx) error
		GetMyRequests(c *fiber.Ctx) error
		GetReceivedRequests(c *fiber.Ctx) error
		GetFoodWithRequests(c *fiber.Ctx) error
		GetDonorNotifications(c *fiber.Ctx) error
		GetReceiverNotifications(c *fiber.Ctx) error
		MarkDonorSeen(c *fiber.Ctx) error
		MarkReceiverSeen(c *fiber.Ctx) error
	}

	requestHandler struct {
		requestService request.RequestService
		validator      *validator.Validate
	}
)

func NewRequestHandler(requestService request.RequestService, validator *validator.Validate) RequestHandler {
	return &requestHandler{
		requestService: requestService,
		validator:      validator,
	}
}

func (h *requestHandler) CreateRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateFoodRequestRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.requestService.CreateRequest(c.Context(), c.Params("foodId"), *req, userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedCreateRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRequest)
}

func (h *requestHandler) ApproveRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.ApproveRequest(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedApproveRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveRequest)
}

func (h *requestHandler) RejectRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.RejectRequest(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedRejectRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectRequest)
}

func (h *requestHandler) GetMyRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.GetMyRequests(c.Context(), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessListResponse(c, res, len(res), fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) GetReceivedRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.GetReceivedRequests(c.Context(), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessListResponse(c, res, len(res), fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) GetFoodWithRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.GetFoodWithRequests(c.Context(), c.Params("foodId"), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) GetDonorNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.GetDonorNotifications(c.Context(), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *requestHandler) GetReceiverNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.requestService.GetReceiverNotifications(c.Context(), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *requestHandler) MarkDonorSeen(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.requestService.MarkDonorSeen(c.Context(), userID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedMarkSeen, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkSeen)
}

func (h *requestHandler) MarkReceiverSeen(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.requestService.MarkReceiverSeen(c.Context(), userID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedMarkSeen, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkSeen)
}
