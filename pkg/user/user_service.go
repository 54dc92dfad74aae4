package user

import (
	"Food-Surplus-Backend/domain"
	"Food-Surplus-Backend/entities"
	"Food-Surplus-Backend/pkg/jwt"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passwordCost = 10

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		ChangeRole(ctx context.Context, req domain.ChangeRoleRequest, userID string) (domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.AuthResponse{}, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleDonor
	}
	if role != domain.RoleDonor && role != domain.RoleReceiver {
		return domain.AuthResponse{}, domain.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.AuthResponse{}, domain.ErrUserAlreadyExists
		}
		return domain.AuthResponse{}, err
	}

	return s.authResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	return s.authResponse(user), nil
}

func (s *userService) ChangeRole(ctx context.Context, req domain.ChangeRoleRequest, userID string) (domain.AuthResponse, error) {
	if req.Role != domain.RoleDonor && req.Role != domain.RoleReceiver {
		return domain.AuthResponse{}, domain.ErrInvalidRole
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrUserNotFound
		}
		return domain.AuthResponse{}, err
	}

	if err := s.userRepository.UpdateUserRole(ctx, userID, req.Role); err != nil {
		return domain.AuthResponse{}, err
	}
	user.Role = req.Role

	// the old token still carries the previous role
	return s.authResponse(user), nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *userService) authResponse(user *entities.User) domain.AuthResponse {
	return domain.AuthResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
	}
}
