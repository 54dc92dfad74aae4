package food

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/internal/utils"
	"Food-Surplus-Backend/internal/utils/storage"
	"Food-Surplus-Backend/pkg/user"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	imageFolder         = "foods"
	defaultPickupWindow = 48 * time.Hour
	DefaultRadiusKm     = 10.0
)

type (
	FoodService interface {
		CreateFood(ctx context.Context, req domain.CreateFoodRequest, userID string) (domain.FoodResponse, error)
		UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest, userID string) (domain.FoodResponse, error)
		DeleteFood(ctx context.Context, id string, userID string) error
		GetFoods(ctx context.Context, req domain.GetFoodsRequest) ([]domain.FoodResponse, error)
		GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error)
		GetMyFoods(ctx context.Context, userID string) ([]domain.FoodResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
		s3             storage.AwsS3
	}
)

func NewFoodService(foodRepository FoodRepository, userRepository user.UserRepository, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		s3:             s3,
	}
}

func (s *foodService) CreateFood(ctx context.Context, req domain.CreateFoodRequest, userID string) (domain.FoodResponse, error) {
	author, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodResponse{}, domain.ErrUserNotFound
		}
		return domain.FoodResponse{}, err
	}
	if author.Role != domain.RoleDonor && author.Role != domain.RoleAdmin {
		return domain.FoodResponse{}, domain.ErrUserNotAllowed
	}

	if req.Quantity < 0 {
		return domain.FoodResponse{}, domain.ErrInvalidFoodQuantity
	}

	lng, lat, ok, err := parseLocation(req.Location, req.Longitude, req.Latitude)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	if !ok {
		return domain.FoodResponse{}, domain.ErrInvalidFoodLocation
	}

	pickupFrom, pickupTo, err := parsePickupWindow(req.PickupFrom, req.PickupTo)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	unit := req.QuantityUnit
	if unit == "" {
		unit = domain.UnitPlates
	}

	food := &entities.Food{
		ID:           uuid.New(),
		AuthorID:     author.ID,
		Title:        req.Title,
		Description:  req.Description,
		Quantity:     req.Quantity,
		QuantityUnit: unit,
		FoodType:     req.FoodType,
		Status:       domain.FoodStatusAvailable,
		Address:      req.Address,
		Longitude:    lng,
		Latitude:     lat,
		PickupFrom:   pickupFrom,
		PickupTo:     pickupTo,
	}

	images, err := s.uploadImages(food.ID, req.Images, 0)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	food.Images = images

	if err := s.foodRepository.CreateFood(ctx, food); err != nil {
		s.discardImages(images)
		return domain.FoodResponse{}, err
	}

	food.Author = author
	return ToFoodResponse(food, false), nil
}

func (s *foodService) UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest, userID string) (domain.FoodResponse, error) {
	food, err := s.findFood(ctx, id)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	if err := s.authorize(ctx, food, userID); err != nil {
		return domain.FoodResponse{}, err
	}

	if req.Quantity < 0 {
		return domain.FoodResponse{}, domain.ErrInvalidFoodQuantity
	}

	lng, lat, ok, err := parseLocation(req.Location, req.Longitude, req.Latitude)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	if ok {
		food.Longitude, food.Latitude = lng, lat
	}

	food.Title = req.Title
	food.Description = req.Description
	food.Quantity = req.Quantity
	if food.Quantity == 0 && food.Status == domain.FoodStatusAvailable {
		// nothing left to request
		food.Status = domain.FoodStatusPicked
	}
	food.FoodType = req.FoodType
	food.Address = req.Address
	if req.QuantityUnit != "" {
		food.QuantityUnit = req.QuantityUnit
	}

	// blobs are removed one by one; the first failure stops the sync
	var removed []uuid.UUID
	kept := make([]*entities.FoodImage, 0, len(food.Images))
	for _, image := range food.Images {
		if slices.Contains(req.ExistingImages, image.Filename) {
			kept = append(kept, image)
			continue
		}
		if err := s.s3.DeleteFile(image.Filename); err != nil {
			return domain.FoodResponse{}, err
		}
		removed = append(removed, image.ID)
	}

	added, err := s.uploadImages(food.ID, req.Images, len(food.Images))
	if err != nil {
		return domain.FoodResponse{}, err
	}

	if err := s.foodRepository.UpdateFood(ctx, food, removed, added); err != nil {
		s.discardImages(added)
		return domain.FoodResponse{}, err
	}

	food.Images = append(kept, added...)
	return ToFoodResponse(food, false), nil
}

func (s *foodService) DeleteFood(ctx context.Context, id string, userID string) error {
	food, err := s.findFood(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, food, userID); err != nil {
		return err
	}

	if food.Status != domain.FoodStatusAvailable {
		return domain.ErrFoodNotDeletable
	}

	for _, image := range food.Images {
		if err := s.s3.DeleteFile(image.Filename); err != nil {
			return err
		}
	}

	return s.foodRepository.DeleteFood(ctx, food.ID)
}

func (s *foodService) GetFoods(ctx context.Context, req domain.GetFoodsRequest) ([]domain.FoodResponse, error) {
	nearby := req.Latitude != nil && req.Longitude != nil
	if nearby {
		if !utils.ValidCoordinates(*req.Longitude, *req.Latitude) {
			return nil, domain.ErrInvalidFoodLocation
		}
		if req.RadiusKm <= 0 {
			return nil, domain.ErrInvalidSearchRadius
		}
	}

	foods, err := s.foodRepository.GetAvailableFoods(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, food := range foods {
		res := ToFoodResponse(food, false)
		if nearby {
			distance := utils.HaversineKm(*req.Latitude, *req.Longitude, food.Latitude, food.Longitude)
			if distance > req.RadiusKm {
				continue
			}
			res.DistanceKm = &distance
		}
		response = append(response, res)
	}

	if nearby {
		sort.SliceStable(response, func(i, j int) bool {
			return *response[i].DistanceKm < *response[j].DistanceKm
		})
	}

	return response, nil
}

func (s *foodService) GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error) {
	food, err := s.findFood(ctx, id)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	return ToFoodResponse(food, false), nil
}

// findFood loads a listing by its path id. Ids that are not uuids cannot
// name a listing.
func (s *foodService) findFood(ctx context.Context, id string) (*entities.Food, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFoodNotFound
	}
	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, err
	}
	return food, nil
}

func (s *foodService) GetMyFoods(ctx context.Context, userID string) ([]domain.FoodResponse, error) {
	foods, err := s.foodRepository.GetFoodsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, food := range foods {
		response = append(response, ToFoodResponse(food, false))
	}
	return response, nil
}

// authorize allows the listing's author and admins. The role is read from
// the database since the token may predate a role change.
func (s *foodService) authorize(ctx context.Context, food *entities.Food, userID string) error {
	if food.AuthorID.String() == userID {
		return nil
	}

	caller, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUnauthorizedFood
		}
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return domain.ErrUnauthorizedFood
	}
	return nil
}

func (s *foodService) uploadImages(foodID uuid.UUID, files []*multipart.FileHeader, offset int) ([]*entities.FoodImage, error) {
	images := make([]*entities.FoodImage, 0, len(files))
	for i, file := range files {
		fileName := fmt.Sprintf("food-%s-%d-%d", foodID.String(), time.Now().Unix(), offset+i)
		objectKey, err := s.s3.UploadFile(fileName, file, imageFolder, storage.AllowImage...)
		if err != nil {
			s.discardImages(images)
			return nil, err
		}
		images = append(images, &entities.FoodImage{
			FoodID:   foodID,
			URL:      s.s3.GetPublicLinkKey(objectKey),
			Filename: objectKey,
		})
	}
	return images, nil
}

func (s *foodService) discardImages(images []*entities.FoodImage) {
	for _, image := range images {
		if err := s.s3.DeleteFile(image.Filename); err != nil {
			log.Errorf("failed to delete orphaned image %s: %v", image.Filename, err)
		}
	}
}

// parseLocation reads the listing location from either the JSON encoded
// location field or the separate longitude/latitude fields. ok is false when
// neither was sent.
func parseLocation(raw, longitude, latitude string) (float64, float64, bool, error) {
	var lng, lat float64

	switch {
	case strings.TrimSpace(raw) != "":
		var location domain.Location
		if err := json.Unmarshal([]byte(raw), &location); err != nil {
			return 0, 0, false, domain.ErrInvalidFoodLocation
		}
		if len(location.Coordinates) != 2 {
			return 0, 0, false, domain.ErrInvalidFoodLocation
		}
		lng, lat = location.Coordinates[0], location.Coordinates[1]
	case longitude != "" || latitude != "":
		var errLng, errLat error
		lng, errLng = strconv.ParseFloat(longitude, 64)
		lat, errLat = strconv.ParseFloat(latitude, 64)
		if errLng != nil || errLat != nil {
			return 0, 0, false, domain.ErrInvalidFoodLocation
		}
	default:
		return 0, 0, false, nil
	}

	if !utils.ValidCoordinates(lng, lat) {
		return 0, 0, false, domain.ErrInvalidFoodLocation
	}
	return lng, lat, true, nil
}

func parsePickupWindow(from, to string) (time.Time, time.Time, error) {
	start := time.Now().UTC()
	if from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidPickupWindow
		}
		start = parsed.UTC()
	}

	end := start.Add(defaultPickupWindow)
	if to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidPickupWindow
		}
		end = parsed.UTC()
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidPickupWindow
	}
	return start, end, nil
}
