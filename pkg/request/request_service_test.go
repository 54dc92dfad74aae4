package request

import (
	"context"
	"sync"
	"testing"

	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/internal/testutil"
	"Food-Surplus-Backend/pkg/food"
	"Food-Surplus-Backend/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	mailer   *testutil.FakeMailer
	service  RequestService
	donor    *entities.User
	receiver *entities.User
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	mailer := &testutil.FakeMailer{}
	return &fixture{
		db:     db,
		mailer: mailer,
		service: NewRequestService(
			NewRequestRepository(db),
			food.NewFoodRepository(db),
			user.NewUserRepository(db),
			mailer,
			"https://food.example.com",
		),
		donor:    testutil.CreateUser(t, db, "donor", domain.RoleDonor),
		receiver: testutil.CreateUser(t, db, "receiver", domain.RoleReceiver),
	}
}

var here = domain.NewLocation(77.6, 12.95)

func (f *fixture) request(t *testing.T, foodID string, requester *entities.User, quantity int) domain.RequestResponse {
	t.Helper()
	res, err := f.service.CreateRequest(context.Background(), foodID,
		domain.CreateFoodRequestRequest{Quantity: quantity, Location: here}, requester.ID.String())
	require.NoError(t, err)
	return res
}

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	res := f.request(t, listing.ID.String(), f.receiver, 4)
	assert.Equal(t, domain.RequestStatusPending, res.Status)
	assert.False(t, res.DonorSeen)
	assert.True(t, res.ReceiverSeen)
	assert.Equal(t, []float64{77.6, 12.95}, res.RequesterLocation.Coordinates)

	// creating a request leaves the food untouched
	assert.Equal(t, 10, testutil.ReloadFood(t, f.db, listing).Quantity)
}

func TestCreateRequest_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.CreateFood(t, f.db, f.donor, 5)
	picked := testutil.CreateFood(t, f.db, f.donor, 0)
	require.NoError(t, f.db.Model(picked).Update("status", domain.FoodStatusPicked).Error)
	otherDonor := testutil.CreateUser(t, f.db, "otherdonor", domain.RoleDonor)
	receiverDonor := testutil.CreateUser(t, f.db, "flipper", domain.RoleReceiver)
	ownListing := testutil.CreateFood(t, f.db, receiverDonor, 5)

	tests := []struct {
		name     string
		foodID   string
		userID   string
		quantity int
		location domain.Location
		wantErr  error
	}{
		{"food missing", "8a6e0804-2bd0-4672-b79d-d97027f9071a", f.receiver.ID.String(), 1, here, domain.ErrFoodNotFound},
		{"malformed food id", "not-a-uuid", f.receiver.ID.String(), 1, here, domain.ErrFoodNotFound},
		{"food not available", picked.ID.String(), f.receiver.ID.String(), 1, here, domain.ErrFoodNotAvailable},
		{"caller not receiver", listing.ID.String(), otherDonor.ID.String(), 1, here, domain.ErrOnlyReceiversCanRequest},
		{"own listing", ownListing.ID.String(), receiverDonor.ID.String(), 1, here, domain.ErrRequestOwnFood},
		{"zero quantity", listing.ID.String(), f.receiver.ID.String(), 0, here, domain.ErrInvalidRequestQuantity},
		{"too much", listing.ID.String(), f.receiver.ID.String(), 6, here, domain.ErrQuantityExceedsFood},
		{"no location", listing.ID.String(), f.receiver.ID.String(), 1, domain.Location{}, domain.ErrInvalidRequestLocation},
		{"three coordinates", listing.ID.String(), f.receiver.ID.String(), 1, domain.Location{Coordinates: []float64{1, 2, 3}}, domain.ErrInvalidRequestLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateRequest(ctx, tt.foodID,
				domain.CreateFoodRequestRequest{Quantity: tt.quantity, Location: tt.location}, tt.userID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateRequest_ChecksInOrder(t *testing.T) {
	f := newFixture(t)
	picked := testutil.CreateFood(t, f.db, f.donor, 0)
	require.NoError(t, f.db.Model(picked).Update("status", domain.FoodStatusPicked).Error)

	// a donor asking for too much of a picked listing hears about availability first
	_, err := f.service.CreateRequest(context.Background(), picked.ID.String(),
		domain.CreateFoodRequestRequest{Quantity: 99}, f.donor.ID.String())
	assert.ErrorIs(t, err, domain.ErrFoodNotAvailable)
}

func TestCreateRequest_DuplicatePending(t *testing.T) {
	f := newFixture(t)
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	first := f.request(t, listing.ID.String(), f.receiver, 2)

	_, err := f.service.CreateRequest(context.Background(), listing.ID.String(),
		domain.CreateFoodRequestRequest{Quantity: 1, Location: here}, f.receiver.ID.String())
	assert.ErrorIs(t, err, domain.ErrRequestAlreadySent)

	// once decided, the receiver may ask again
	_, err = f.service.RejectRequest(context.Background(), first.ID, f.donor.ID.String())
	require.NoError(t, err)
	f.request(t, listing.ID.String(), f.receiver, 1)
}

func TestApproveRequest_PartialThenInsufficient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testutil.CreateUser(t, f.db, "other", domain.RoleReceiver)
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	a := f.request(t, listing.ID.String(), f.receiver, 4)
	b := f.request(t, listing.ID.String(), other, 7)

	approved, err := f.service.ApproveRequest(ctx, a.ID, f.donor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, approved.Status)
	assert.False(t, approved.ReceiverSeen)

	reloaded := testutil.ReloadFood(t, f.db, listing)
	assert.Equal(t, 6, reloaded.Quantity)
	assert.Equal(t, domain.FoodStatusAvailable, reloaded.Status)

	_, err = f.service.ApproveRequest(ctx, b.ID, f.donor.ID.String())
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	// the failed approval changed nothing
	reloaded = testutil.ReloadFood(t, f.db, listing)
	assert.Equal(t, 6, reloaded.Quantity)
	var stored entities.Request
	require.NoError(t, f.db.First(&stored, "id = ?", b.ID).Error)
	assert.Equal(t, domain.RequestStatusPending, stored.Status)
}

func TestApproveRequest_ExhaustsFood(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.CreateFood(t, f.db, f.donor, 3)

	req := f.request(t, listing.ID.String(), f.receiver, 3)
	_, err := f.service.ApproveRequest(ctx, req.ID, f.donor.ID.String())
	require.NoError(t, err)

	reloaded := testutil.ReloadFood(t, f.db, listing)
	assert.Zero(t, reloaded.Quantity)
	assert.Equal(t, domain.FoodStatusPicked, reloaded.Status)

	other := testutil.CreateUser(t, f.db, "late", domain.RoleReceiver)
	_, err = f.service.CreateRequest(ctx, listing.ID.String(),
		domain.CreateFoodRequestRequest{Quantity: 1, Location: here}, other.ID.String())
	assert.ErrorIs(t, err, domain.ErrFoodNotAvailable)
}

func TestApproveRequest_OnlyAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stranger := testutil.CreateUser(t, f.db, "stranger", domain.RoleDonor)
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	pending := f.request(t, listing.ID.String(), f.receiver, 1)
	_, err := f.service.ApproveRequest(ctx, pending.ID, stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRequest)

	_, err = f.service.RejectRequest(ctx, pending.ID, stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRequest)

	_, err = f.service.ApproveRequest(ctx, pending.ID, f.donor.ID.String())
	require.NoError(t, err)

	// still forbidden once the request is terminal
	_, err = f.service.ApproveRequest(ctx, pending.ID, stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRequest)
}

func TestDecisionsAreTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	approved := f.request(t, listing.ID.String(), f.receiver, 2)
	_, err := f.service.ApproveRequest(ctx, approved.ID, f.donor.ID.String())
	require.NoError(t, err)

	_, err = f.service.ApproveRequest(ctx, approved.ID, f.donor.ID.String())
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyProcessed)
	_, err = f.service.RejectRequest(ctx, approved.ID, f.donor.ID.String())
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyProcessed)

	rejected := f.request(t, listing.ID.String(), f.receiver, 2)
	res, err := f.service.RejectRequest(ctx, rejected.ID, f.donor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, res.Status)
	assert.Equal(t, 8, testutil.ReloadFood(t, f.db, listing).Quantity)

	_, err = f.service.ApproveRequest(ctx, rejected.ID, f.donor.ID.String())
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyProcessed)

	_, err = f.service.ApproveRequest(ctx, "e3b0c442-98fc-4c14-9afb-f4c8996fb924", f.donor.ID.String())
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestApproveRequest_Concurrent(t *testing.T) {
	f := newFixture(t)
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	var ids []string
	for i, name := range []string{"r1", "r2", "r3", "r4", "r5"} {
		requester := testutil.CreateUser(t, f.db, name, domain.RoleReceiver)
		ids = append(ids, f.request(t, listing.ID.String(), requester, 3+i%2).ID)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		granted   int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			res, err := f.service.ApproveRequest(context.Background(), id, f.donor.ID.String())
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
				return
			}
			mu.Lock()
			succeeded++
			granted += res.RequestedQuantity
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	reloaded := testutil.ReloadFood(t, f.db, listing)
	assert.GreaterOrEqual(t, reloaded.Quantity, 0)
	assert.Equal(t, 10-granted, reloaded.Quantity)
	assert.Positive(t, succeeded)

	var approved int64
	require.NoError(t, f.db.Model(&entities.Request{}).Where("status = ?", domain.RequestStatusApproved).Count(&approved).Error)
	assert.Equal(t, int64(succeeded), approved)
}

func TestContactRedaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	pending := f.request(t, listing.ID.String(), f.receiver, 2)

	sent, err := f.service.GetMyRequests(ctx, f.receiver.ID.String())
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].Food)
	require.NotNil(t, sent[0].Food.Author)
	assert.Empty(t, sent[0].Food.Author.Phone)

	received, err := f.service.GetReceivedRequests(ctx, f.donor.ID.String())
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Len(t, received[0].Requests, 1)
	assert.Empty(t, received[0].Requests[0].Requester.Phone)

	_, err = f.service.ApproveRequest(ctx, pending.ID, f.donor.ID.String())
	require.NoError(t, err)

	sent, err = f.service.GetMyRequests(ctx, f.receiver.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.donor.Phone, sent[0].Food.Author.Phone)

	received, err = f.service.GetReceivedRequests(ctx, f.donor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.receiver.Phone, received[0].Requests[0].Requester.Phone)

	rejected := f.request(t, listing.ID.String(), f.receiver, 1)
	_, err = f.service.RejectRequest(ctx, rejected.ID, f.donor.ID.String())
	require.NoError(t, err)

	withRequests, err := f.service.GetFoodWithRequests(ctx, listing.ID.String(), f.donor.ID.String())
	require.NoError(t, err)
	require.Len(t, withRequests.Requests, 2)
	for _, r := range withRequests.Requests {
		if r.Status == domain.RequestStatusApproved {
			assert.Equal(t, f.receiver.Phone, r.Requester.Phone)
		} else {
			assert.Empty(t, r.Requester.Phone)
		}
	}
}

func TestGetReceivedRequests_DonorsOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetReceivedRequests(context.Background(), f.receiver.ID.String())
	assert.ErrorIs(t, err, domain.ErrOnlyDonorsReceive)
}

func TestGetFoodWithRequests_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	_, err := f.service.GetFoodWithRequests(context.Background(), listing.ID.String(), f.receiver.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedFood)
}

func TestNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.CreateFood(t, f.db, f.donor, 10)
	other := testutil.CreateUser(t, f.db, "other", domain.RoleReceiver)

	a := f.request(t, listing.ID.String(), f.receiver, 1)
	f.request(t, listing.ID.String(), other, 1)

	donor, err := f.service.GetDonorNotifications(ctx, f.donor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), donor.Count)

	receiver, err := f.service.GetReceiverNotifications(ctx, f.receiver.ID.String())
	require.NoError(t, err)
	assert.Zero(t, receiver.Count)

	require.NoError(t, f.service.MarkDonorSeen(ctx, f.donor.ID.String()))
	donor, err = f.service.GetDonorNotifications(ctx, f.donor.ID.String())
	require.NoError(t, err)
	assert.Zero(t, donor.Count)

	_, err = f.service.ApproveRequest(ctx, a.ID, f.donor.ID.String())
	require.NoError(t, err)

	receiver, err = f.service.GetReceiverNotifications(ctx, f.receiver.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), receiver.Count)

	require.NoError(t, f.service.MarkReceiverSeen(ctx, f.receiver.ID.String()))
	receiver, err = f.service.GetReceiverNotifications(ctx, f.receiver.ID.String())
	require.NoError(t, err)
	assert.Zero(t, receiver.Count)
}

func TestDecisionMail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	req := f.request(t, listing.ID.String(), f.receiver, 2)
	_, err := f.service.ApproveRequest(ctx, req.ID, f.donor.ID.String())
	require.NoError(t, err)

	sent := f.mailer.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, f.receiver.Email, sent[0].To)
	assert.Equal(t, "Your food request was approved", sent[0].Subject)
	assert.Contains(t, sent[0].Body, f.donor.Phone)
}

func TestDecisionMail_FailureDoesNotFailApproval(t *testing.T) {
	f := newFixture(t)
	f.mailer.Err = assert.AnError
	listing := testutil.CreateFood(t, f.db, f.donor, 10)

	req := f.request(t, listing.ID.String(), f.receiver, 2)
	res, err := f.service.ApproveRequest(context.Background(), req.ID, f.donor.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, res.Status)
}
