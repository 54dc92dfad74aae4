package request

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/internal/utils"
	"Food-Surplus-Backend/internal/utils/mailing"
	"Food-Surplus-Backend/pkg/food"
	"Food-Surplus-Backend/pkg/user"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RequestService interface {
		CreateRequest(ctx context.Context, foodID string, req domain.CreateFoodRequestRequest, userID string) (domain.RequestResponse, error)
		ApproveRequest(ctx context.Context, requestID string, userID string) (domain.RequestResponse, error)
		RejectRequest(ctx context.Context, requestID string, userID string) (domain.RequestResponse, error)
		GetMyRequests(ctx context.Context, userID string) ([]domain.RequestResponse, error)
		GetReceivedRequests(ctx context.Context, userID string) ([]domain.ReceivedRequestsResponse, error)
		GetFoodWithRequests(ctx context.Context, foodID string, userID string) (domain.ReceivedRequestsResponse, error)
		GetDonorNotifications(ctx context.Context, userID string) (domain.NotificationCountResponse, error)
		GetReceiverNotifications(ctx context.Context, userID string) (domain.NotificationCountResponse, error)
		MarkDonorSeen(ctx context.Context, userID string) error
		MarkReceiverSeen(ctx context.Context, userID string) error
	}

	requestService struct {
		requestRepository RequestRepository
		foodRepository    food.FoodRepository
		userRepository    user.UserRepository
		mailer            mailing.Mailer
		appURL            string
	}
)

func NewRequestService(
	requestRepository RequestRepository,
	foodRepository food.FoodRepository,
	userRepository user.UserRepository,
	mailer mailing.Mailer,
	appURL string,
) RequestService {
	return &requestService{
		requestRepository: requestRepository,
		foodRepository:    foodRepository,
		userRepository:    userRepository,
		mailer:            mailer,
		appURL:            appURL,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, foodID string, req domain.CreateFoodRequestRequest, userID string) (domain.RequestResponse, error) {
	if _, err := uuid.Parse(foodID); err != nil {
		return domain.RequestResponse{}, domain.ErrFoodNotFound
	}
	f, err := s.foodRepository.GetFoodByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RequestResponse{}, domain.ErrFoodNotFound
		}
		return domain.RequestResponse{}, err
	}

	if f.Status != domain.FoodStatusAvailable {
		return domain.RequestResponse{}, domain.ErrFoodNotAvailable
	}

	caller, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RequestResponse{}, domain.ErrUserNotFound
		}
		return domain.RequestResponse{}, err
	}
	if caller.Role != domain.RoleReceiver {
		return domain.RequestResponse{}, domain.ErrOnlyReceiversCanRequest
	}

	if f.AuthorID == caller.ID {
		return domain.RequestResponse{}, domain.ErrRequestOwnFood
	}

	if req.Quantity <= 0 {
		return domain.RequestResponse{}, domain.ErrInvalidRequestQuantity
	}
	if req.Quantity > f.Quantity {
		return domain.RequestResponse{}, domain.ErrQuantityExceedsFood
	}

	if len(req.Location.Coordinates) != 2 {
		return domain.RequestResponse{}, domain.ErrInvalidRequestLocation
	}
	lng, lat := req.Location.Coordinates[0], req.Location.Coordinates[1]
	if !utils.ValidCoordinates(lng, lat) {
		return domain.RequestResponse{}, domain.ErrInvalidRequestLocation
	}

	pending, err := s.requestRepository.HasPendingRequest(ctx, f.ID, caller.ID)
	if err != nil {
		return domain.RequestResponse{}, err
	}
	if pending {
		return domain.RequestResponse{}, domain.ErrRequestAlreadySent
	}

	request := &entities.Request{
		FoodID:             f.ID,
		RequesterID:        caller.ID,
		RequestedQuantity:  req.Quantity,
		RequesterLongitude: lng,
		RequesterLatitude:  lat,
		Status:             domain.RequestStatusPending,
		DonorSeen:          false,
		ReceiverSeen:       true,
	}
	if err := s.requestRepository.CreateRequest(ctx, request); err != nil {
		// a concurrent create won the pending slot
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RequestResponse{}, domain.ErrRequestAlreadySent
		}
		return domain.RequestResponse{}, err
	}

	return toRequestResponse(request), nil
}

func (s *requestService) ApproveRequest(ctx context.Context, requestID string, userID string) (domain.RequestResponse, error) {
	request, err := s.findOwnedPending(ctx, requestID, userID)
	if err != nil {
		return domain.RequestResponse{}, err
	}

	if err := s.requestRepository.ApproveRequest(ctx, request); err != nil {
		return domain.RequestResponse{}, err
	}

	return s.decided(ctx, request.ID.String())
}

func (s *requestService) RejectRequest(ctx context.Context, requestID string, userID string) (domain.RequestResponse, error) {
	request, err := s.findOwnedPending(ctx, requestID, userID)
	if err != nil {
		return domain.RequestResponse{}, err
	}

	if err := s.requestRepository.RejectRequest(ctx, request.ID); err != nil {
		return domain.RequestResponse{}, err
	}

	return s.decided(ctx, request.ID.String())
}

func (s *requestService) GetMyRequests(ctx context.Context, userID string) ([]domain.RequestResponse, error) {
	requests, err := s.requestRepository.GetRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RequestResponse, 0, len(requests))
	for _, r := range requests {
		if r.Food == nil {
			continue
		}
		response = append(response, ToSentResponse(r))
	}
	return response, nil
}

func (s *requestService) GetReceivedRequests(ctx context.Context, userID string) ([]domain.ReceivedRequestsResponse, error) {
	caller, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if caller.Role != domain.RoleDonor && caller.Role != domain.RoleAdmin {
		return nil, domain.ErrOnlyDonorsReceive
	}

	foods, err := s.requestRepository.GetFoodsWithRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ReceivedRequestsResponse, 0, len(foods))
	for _, f := range foods {
		if f.AuthorID != caller.ID {
			continue
		}
		response = append(response, toReceivedRequests(f, f.Requests))
	}
	return response, nil
}

func (s *requestService) GetFoodWithRequests(ctx context.Context, foodID string, userID string) (domain.ReceivedRequestsResponse, error) {
	if _, err := uuid.Parse(foodID); err != nil {
		return domain.ReceivedRequestsResponse{}, domain.ErrFoodNotFound
	}
	f, err := s.foodRepository.GetFoodByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceivedRequestsResponse{}, domain.ErrFoodNotFound
		}
		return domain.ReceivedRequestsResponse{}, err
	}

	if f.AuthorID.String() != userID {
		return domain.ReceivedRequestsResponse{}, domain.ErrUnauthorizedFood
	}

	requests, err := s.requestRepository.GetRequestsByFood(ctx, f.ID)
	if err != nil {
		return domain.ReceivedRequestsResponse{}, err
	}
	return toReceivedRequests(f, requests), nil
}

func (s *requestService) GetDonorNotifications(ctx context.Context, userID string) (domain.NotificationCountResponse, error) {
	count, err := s.requestRepository.CountDonorUnseen(ctx, userID)
	if err != nil {
		return domain.NotificationCountResponse{}, err
	}
	return domain.NotificationCountResponse{Count: count}, nil
}

func (s *requestService) GetReceiverNotifications(ctx context.Context, userID string) (domain.NotificationCountResponse, error) {
	count, err := s.requestRepository.CountReceiverUnseen(ctx, userID)
	if err != nil {
		return domain.NotificationCountResponse{}, err
	}
	return domain.NotificationCountResponse{Count: count}, nil
}

func (s *requestService) MarkDonorSeen(ctx context.Context, userID string) error {
	return s.requestRepository.MarkDonorSeen(ctx, userID)
}

func (s *requestService) MarkReceiverSeen(ctx context.Context, userID string) error {
	return s.requestRepository.MarkReceiverSeen(ctx, userID)
}

// findOwnedPending loads a request the caller may decide on. Ownership is
// checked before state so non-owners never learn a request's status.
func (s *requestService) findOwnedPending(ctx context.Context, requestID string, userID string) (*entities.Request, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, domain.ErrRequestNotFound
	}
	request, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	if request.Food == nil {
		return nil, domain.ErrFoodNotFound
	}

	if request.Food.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRequest
	}

	if request.Status != domain.RequestStatusPending {
		return nil, domain.ErrRequestAlreadyProcessed
	}
	return request, nil
}

// decided reloads a request after approval or rejection and tells the
// requester about it.
func (s *requestService) decided(ctx context.Context, requestID string) (domain.RequestResponse, error) {
	request, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		return domain.RequestResponse{}, err
	}

	s.notifyRequester(request)

	res := ToReceivedResponse(request)
	f := food.ToFoodResponse(request.Food, false)
	res.Food = &f
	return res, nil
}

func (s *requestService) notifyRequester(request *entities.Request) {
	if s.mailer == nil || request.Requester == nil || request.Food == nil {
		return
	}

	decision := mailing.RequestDecision{
		ReceiverName:      request.Requester.Name,
		FoodTitle:         request.Food.Title,
		RequestedQuantity: request.RequestedQuantity,
		Unit:              request.Food.QuantityUnit,
		Status:            request.Status,
		Address:           request.Food.Address,
		AppURL:            s.appURL,
	}
	if request.Food.Author != nil {
		decision.DonorName = request.Food.Author.Name
		decision.DonorPhone = request.Food.Author.Phone
	}

	subject, body, err := mailing.RenderRequestDecision(decision)
	if err != nil {
		log.Errorf("failed to render decision mail for request %s: %v", request.ID, err)
		return
	}

	if err := s.mailer.SendMail(request.Requester.Email, subject, body); err != nil {
		if errors.Is(err, mailing.ErrMailNotConfigured) {
			log.Debugf("smtp not configured, skipping decision mail for request %s", request.ID)
			return
		}
		log.Errorf("failed to send decision mail for request %s: %v", request.ID, err)
	}
}
