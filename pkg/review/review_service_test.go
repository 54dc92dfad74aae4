package review

import (
	"context"
	"testing"

	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/internal/testutil"
	"Food-Surplus-Backend/pkg/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	service  ReviewService
	donor    *entities.User
	receiver *entities.User
	food     *entities.Food
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	donor := testutil.CreateUser(t, db, "donor", domain.RoleDonor)
	return &fixture{
		db:       db,
		service:  NewReviewService(NewReviewRepository(db), request.NewRequestRepository(db)),
		donor:    donor,
		receiver: testutil.CreateUser(t, db, "receiver", domain.RoleReceiver),
		food:     testutil.CreateFood(t, db, donor, 20),
	}
}

func (f *fixture) request(t *testing.T, requester *entities.User, status string) *entities.Request {
	t.Helper()
	r := &entities.Request{
		FoodID:            f.food.ID,
		RequesterID:       requester.ID,
		RequestedQuantity: 1,
		Status:            status,
		ReceiverSeen:      true,
	}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func (f *fixture) donorRating(t *testing.T) domain.Rating {
	t.Helper()
	var donor entities.User
	require.NoError(t, f.db.First(&donor, "id = ?", f.donor.ID).Error)
	return domain.Rating{Count: donor.RatingCount, Average: donor.RatingAverage}
}

func TestCreateReview_AggregatesDonorRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testutil.CreateUser(t, f.db, "other", domain.RoleReceiver)

	first := f.request(t, f.receiver, domain.RequestStatusApproved)
	second := f.request(t, other, domain.RequestStatusApproved)

	res, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: first.ID.String(), Rating: 4}, f.receiver.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.donor.ID.String(), res.DonorID)
	assert.Equal(t, domain.Rating{Count: 1, Average: 4}, f.donorRating(t))

	_, err = f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: second.ID.String(), Rating: 5}, other.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.Rating{Count: 2, Average: 4.5}, f.donorRating(t))

	var linked entities.Request
	require.NoError(t, f.db.First(&linked, "id = ?", first.ID).Error)
	assert.True(t, linked.Reviewed)
	require.NotNil(t, linked.ReviewID)
	assert.Equal(t, res.ID, linked.ReviewID.String())
}

func TestCreateReview_RoundsAverage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, rating := range []int{5, 4, 4} {
		requester := testutil.CreateUser(t, f.db, []string{"a", "b", "c"}[i], domain.RoleReceiver)
		r := f.request(t, requester, domain.RequestStatusApproved)
		_, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: r.ID.String(), Rating: rating}, requester.ID.String())
		require.NoError(t, err)
	}

	assert.Equal(t, domain.Rating{Count: 3, Average: 4.33}, f.donorRating(t))
}

func TestCreateReview_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stranger := testutil.CreateUser(t, f.db, "stranger", domain.RoleReceiver)

	approved := f.request(t, f.receiver, domain.RequestStatusApproved)
	pending := f.request(t, f.receiver, domain.RequestStatusPending)
	rejected := f.request(t, f.receiver, domain.RequestStatusRejected)

	tests := []struct {
		name      string
		requestID string
		rating    int
		userID    string
		wantErr   error
	}{
		{"rating too low", approved.ID.String(), 0, f.receiver.ID.String(), domain.ErrInvalidRating},
		{"rating too high", approved.ID.String(), 6, f.receiver.ID.String(), domain.ErrInvalidRating},
		{"rating checked before lookup", "8c9d9d1e-0000-4000-8000-000000000000", 9, f.receiver.ID.String(), domain.ErrInvalidRating},
		{"unknown request", "8c9d9d1e-0000-4000-8000-000000000000", 5, f.receiver.ID.String(), domain.ErrRequestNotFound},
		{"not the requester", approved.ID.String(), 5, stranger.ID.String(), domain.ErrUnauthorizedReview},
		{"pending request", pending.ID.String(), 5, f.receiver.ID.String(), domain.ErrRequestNotApproved},
		{"rejected request", rejected.ID.String(), 5, f.receiver.ID.String(), domain.ErrRequestNotApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: tt.requestID, Rating: tt.rating}, tt.userID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, domain.Rating{}, f.donorRating(t))
}

func TestCreateReview_OncePerRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	approved := f.request(t, f.receiver, domain.RequestStatusApproved)

	_, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: approved.ID.String(), Rating: 3}, f.receiver.ID.String())
	require.NoError(t, err)

	_, err = f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: approved.ID.String(), Rating: 5}, f.receiver.ID.String())
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyReviewed)

	assert.Equal(t, domain.Rating{Count: 1, Average: 3}, f.donorRating(t))
}

func TestCreateReview_RepositoryRejectsRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	approved := f.request(t, f.receiver, domain.RequestStatusApproved)
	repo := NewReviewRepository(f.db)

	review := func() *entities.Review {
		return &entities.Review{DonorID: f.donor.ID, ReceiverID: f.receiver.ID, RequestID: approved.ID, Rating: 2}
	}
	require.NoError(t, repo.CreateReview(ctx, review()))
	assert.ErrorIs(t, repo.CreateReview(ctx, review()), domain.ErrRequestAlreadyReviewed)

	var count int64
	require.NoError(t, f.db.Model(&entities.Review{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetReviewsByDonor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	approved := f.request(t, f.receiver, domain.RequestStatusApproved)

	_, err := f.service.CreateReview(ctx, domain.CreateReviewRequest{RequestID: approved.ID.String(), Rating: 5}, f.receiver.ID.String())
	require.NoError(t, err)

	reviews, err := f.service.GetReviewsByDonor(ctx, f.donor.ID.String())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	require.NotNil(t, reviews[0].Receiver)
	assert.Equal(t, f.receiver.Name, reviews[0].Receiver.Name)

	none, err := f.service.GetReviewsByDonor(ctx, f.receiver.ID.String())
	require.NoError(t, err)
	assert.Empty(t, none)
}
