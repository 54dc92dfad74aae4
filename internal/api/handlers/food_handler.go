package handlers

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/internal/api/presenters"
	"Food-Surplus-Backend/pkg/food"
	"mime/multipart"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		GetFoods(c *fiber.Ctx) error
		GetFoodByID(c *fiber.Ctx) error
		GetMyFoods(c *fiber.Ctx) error
		CreateFood(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func (h *foodHandler) GetFoods(c *fiber.Ctx) error {
	req := domain.GetFoodsRequest{RadiusKm: food.DefaultRadiusKm}

	if c.Query("lat") != "" || c.Query("lng") != "" {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoods, domain.ErrInvalidFoodLocation)
		}
		lng, err := strconv.ParseFloat(c.Query("lng"), 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoods, domain.ErrInvalidFoodLocation)
		}
		req.Latitude, req.Longitude = &lat, &lng
	}

	if raw := c.Query("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoods, domain.ErrInvalidSearchRadius)
		}
		req.RadiusKm = radius
	}

	res, err := h.foodService.GetFoods(c.Context(), req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessListResponse(c, res, len(res), fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetFoodByID(c *fiber.Ctx) error {
	res, err := h.foodService.GetFoodByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFood)
}

func (h *foodHandler) GetMyFoods(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.foodService.GetMyFoods(c.Context(), userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessListResponse(c, res, len(res), fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) CreateFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Images = uploadedImages(c)

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFood, err)
	}

	res, err := h.foodService.CreateFood(c.Context(), *req, userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedCreateFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFood)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Images = uploadedImages(c)

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFood, err)
	}

	res, err := h.foodService.UpdateFood(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedUpdateFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFood)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.foodService.DeleteFood(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedDeleteFood, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFood)
}

// uploadedImages returns the files sent under "images", if the body is multipart.
func uploadedImages(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form.File["images"]
}
