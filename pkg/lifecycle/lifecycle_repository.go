package lifecycle

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	LifecycleRepository interface {
		CompostStaleFoods(ctx context.Context, createdBefore time.Time) (int64, error)
	}

	lifecycleRepository struct {
		db *gorm.DB
	}
)

func NewLifecycleRepository(db *gorm.DB) LifecycleRepository {
	return &lifecycleRepository{db: db}
}

// CompostStaleFoods turns unclaimed edible listings created at or before
// createdBefore into picked compost in a single statement.
func (r *lifecycleRepository) CompostStaleFoods(ctx context.Context, createdBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.Food{}).
		Where("food_type = ? AND status = ? AND created_at <= ?", domain.FoodTypeEdible, domain.FoodStatusAvailable, createdBefore).
		Updates(map[string]any{
			"food_type":  domain.FoodTypeCompost,
			"status":     domain.FoodStatusPicked,
			"updated_at": r.db.NowFunc(),
		})
	return result.RowsAffected, result.Error
}
