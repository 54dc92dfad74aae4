package review

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

type (
	ReviewRepository interface {
		CreateReview(ctx context.Context, review *entities.Review) error
		GetReviewsByDonor(ctx context.Context, donorID string) ([]*entities.Review, error)
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateReview stores the review, links it to its request and recomputes the
// donor's rating from every review they have received.
func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Request{}).
			Where("id = ? AND reviewed = ?", review.RequestID, false).
			Update("reviewed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrRequestAlreadyReviewed
		}

		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrRequestAlreadyReviewed
			}
			return err
		}

		if err := tx.Model(&entities.Request{}).
			Where("id = ?", review.RequestID).
			Update("review_id", review.ID).Error; err != nil {
			return err
		}

		var aggregate struct {
			Count int64
			Total int64
		}
		if err := tx.Model(&entities.Review{}).
			Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS total").
			Where("donor_id = ?", review.DonorID).
			Scan(&aggregate).Error; err != nil {
			return err
		}

		return tx.Model(&entities.User{}).
			Where("id = ?", review.DonorID).
			Updates(map[string]any{
				"rating_count":   aggregate.Count,
				"rating_average": averageRating(aggregate.Total, aggregate.Count),
			}).Error
	})
}

func (r *reviewRepository) GetReviewsByDonor(ctx context.Context, donorID string) ([]*entities.Review, error) {
	var reviews []*entities.Review
	err := r.db.WithContext(ctx).
		Preload("Receiver").
		Where("donor_id = ?", donorID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

// averageRating rounds to two decimal places.
func averageRating(total, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(count)*100) / 100
}
