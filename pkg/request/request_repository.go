package request

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RequestRepository interface {
		CreateRequest(ctx context.Context, request *entities.Request) error
		GetRequestByID(ctx context.Context, id string) (*entities.Request, error)
		HasPendingRequest(ctx context.Context, foodID uuid.UUID, requesterID uuid.UUID) (bool, error)
		ApproveRequest(ctx context.Context, request *entities.Request) error
		RejectRequest(ctx context.Context, id uuid.UUID) error
		GetRequestsByRequester(ctx context.Context, requesterID string) ([]*entities.Request, error)
		GetRequestsByFood(ctx context.Context, foodID uuid.UUID) ([]*entities.Request, error)
		GetFoodsWithRequests(ctx context.Context, authorID string) ([]*entities.Food, error)
		CountDonorUnseen(ctx context.Context, donorID string) (int64, error)
		CountReceiverUnseen(ctx context.Context, requesterID string) (int64, error)
		MarkDonorSeen(ctx context.Context, donorID string) error
		MarkReceiverSeen(ctx context.Context, requesterID string) error
	}

	requestRepository struct {
		db *gorm.DB
	}
)

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreateRequest(ctx context.Context, request *entities.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetRequestByID(ctx context.Context, id string) (*entities.Request, error) {
	var request entities.Request
	if err := r.db.WithContext(ctx).
		Preload("Food").
		Preload("Food.Author").
		Preload("Requester").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) HasPendingRequest(ctx context.Context, foodID uuid.UUID, requesterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("food_id = ? AND requester_id = ? AND status = ?", foodID, requesterID, domain.RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

// ApproveRequest decrements the food and approves the request in one
// transaction. The decrement only applies while the food is available and
// holds enough quantity, so concurrent approvals cannot oversell it.
func (r *requestRepository) ApproveRequest(ctx context.Context, request *entities.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quantity := request.RequestedQuantity
		now := tx.NowFunc()

		result := tx.Model(&entities.Food{}).
			Where("id = ? AND status = ? AND quantity >= ?", request.FoodID, domain.FoodStatusAvailable, quantity).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity - ?", quantity),
				"status":     gorm.Expr("CASE WHEN quantity - ? = 0 THEN ? ELSE ? END", quantity, domain.FoodStatusPicked, domain.FoodStatusAvailable),
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var food entities.Food
			if err := tx.Where("id = ?", request.FoodID).First(&food).Error; err != nil {
				return err
			}
			if food.Quantity < quantity {
				return domain.ErrInsufficientQuantity
			}
			return domain.ErrFoodNotAvailable
		}

		result = tx.Model(&entities.Request{}).
			Where("id = ? AND status = ?", request.ID, domain.RequestStatusPending).
			Updates(map[string]any{
				"status":        domain.RequestStatusApproved,
				"receiver_seen": false,
				"updated_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrRequestAlreadyProcessed
		}
		return nil
	})
}

func (r *requestRepository) RejectRequest(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("id = ? AND status = ?", id, domain.RequestStatusPending).
		Updates(map[string]any{
			"status":        domain.RequestStatusRejected,
			"receiver_seen": false,
			"updated_at":    r.db.NowFunc(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRequestAlreadyProcessed
	}
	return nil
}

func (r *requestRepository) GetRequestsByRequester(ctx context.Context, requesterID string) ([]*entities.Request, error) {
	var requests []*entities.Request
	err := r.db.WithContext(ctx).
		Preload("Food").
		Preload("Food.Author").
		Preload("Food.Images").
		Where("requester_id = ?", requesterID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) GetRequestsByFood(ctx context.Context, foodID uuid.UUID) ([]*entities.Request, error) {
	var requests []*entities.Request
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("food_id = ?", foodID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

// GetFoodsWithRequests returns the author's listings that have at least one
// request, each with its requests and requesters loaded.
func (r *requestRepository) GetFoodsWithRequests(ctx context.Context, authorID string) ([]*entities.Food, error) {
	var foods []*entities.Food
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Requests", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("Requests.Requester").
		Where("author_id = ?", authorID).
		Where("EXISTS (SELECT 1 FROM requests WHERE requests.food_id = foods.id)").
		Order("created_at desc").
		Find(&foods).Error
	return foods, err
}

func (r *requestRepository) CountDonorUnseen(ctx context.Context, donorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("status = ? AND donor_seen = ?", domain.RequestStatusPending, false).
		Where("food_id IN (?)", r.db.Model(&entities.Food{}).Select("id").Where("author_id = ?", donorID)).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) CountReceiverUnseen(ctx context.Context, requesterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("requester_id = ? AND receiver_seen = ?", requesterID, false).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) MarkDonorSeen(ctx context.Context, donorID string) error {
	return r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("donor_seen = ?", false).
		Where("food_id IN (?)", r.db.Model(&entities.Food{}).Select("id").Where("author_id = ?", donorID)).
		Update("donor_seen", true).Error
}

func (r *requestRepository) MarkReceiverSeen(ctx context.Context, requesterID string) error {
	return r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("requester_id = ? AND receiver_seen = ?", requesterID, false).
		Update("receiver_seen", true).Error
}
