package food

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		CreateFood(ctx context.Context, food *entities.Food) error
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		GetAvailableFoods(ctx context.Context) ([]*entities.Food, error)
		GetFoodsByAuthor(ctx context.Context, authorID string) ([]*entities.Food, error)
		UpdateFood(ctx context.Context, food *entities.Food, removedImages []uuid.UUID, newImages []*entities.FoodImage) error
		DeleteFood(ctx context.Context, id uuid.UUID) error
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Where("id = ?", id).
		First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// GetAvailableFoods lists edible listings that have not been picked up yet.
func (r *foodRepository) GetAvailableFoods(ctx context.Context) ([]*entities.Food, error) {
	var foods []*entities.Food
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Where("food_type = ? AND status <> ?", domain.FoodTypeEdible, domain.FoodStatusPicked).
		Order("created_at desc").
		Find(&foods).Error
	return foods, err
}

func (r *foodRepository) GetFoodsByAuthor(ctx context.Context, authorID string) ([]*entities.Food, error) {
	var foods []*entities.Food
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&foods).Error
	return foods, err
}

func (r *foodRepository) UpdateFood(ctx context.Context, food *entities.Food, removedImages []uuid.UUID, newImages []*entities.FoodImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Food{}).Where("id = ?", food.ID).Updates(map[string]any{
			"title":         food.Title,
			"description":   food.Description,
			"quantity":      food.Quantity,
			"quantity_unit": food.QuantityUnit,
			"status":        food.Status,
			"food_type":     food.FoodType,
			"address":       food.Address,
			"longitude":     food.Longitude,
			"latitude":      food.Latitude,
			"updated_at":    tx.NowFunc(),
		}).Error; err != nil {
			return err
		}

		if len(removedImages) > 0 {
			if err := tx.Where("id IN ?", removedImages).Delete(&entities.FoodImage{}).Error; err != nil {
				return err
			}
		}

		for _, image := range newImages {
			image.FoodID = food.ID
			if err := tx.Create(image).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteFood removes the listing together with its images and requests.
func (r *foodRepository) DeleteFood(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_id = ?", id).Delete(&entities.Request{}).Error; err != nil {
			return err
		}
		if err := tx.Where("food_id = ?", id).Delete(&entities.FoodImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Food{}).Error
	})
}
