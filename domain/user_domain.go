package domain

import "time"

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "user logged in successfully"
	MessageSuccessChangeRole = "role updated successfully"
	MessageSuccessGetProfile = "profile retrieved successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedChangeRole = "failed to change role"
	MessageFailedGetProfile = "failed to retrieve profile"

	ErrUserNotFound       = NewError(KindNotFound, "user not found")
	ErrUserAlreadyExists  = NewError(KindConflict, "user already exists")
	ErrInvalidCredentials = NewError(KindUnauthorized, "invalid email or password")
	ErrInvalidRole        = NewError(KindInvalidInput, "invalid role")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
		Role     string `json:"role" validate:"omitempty,oneof=donor receiver"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	ChangeRoleRequest struct {
		Role string `json:"role" validate:"required,oneof=donor receiver"`
	}

	AuthResponse struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}

	Rating struct {
		Count   int     `json:"count"`
		Average float64 `json:"average"`
	}

	UserResponse struct {
		ID        string    `json:"_id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone,omitempty"`
		Role      string    `json:"role"`
		Rating    Rating    `json:"rating"`
		CreatedAt time.Time `json:"created_at"`
	}

	// UserBrief is the populated view of a referenced user. Phone is only
	// filled in when the viewer is allowed to see contact details.
	UserBrief struct {
		ID     string  `json:"_id"`
		Name   string  `json:"name"`
		Email  string  `json:"email,omitempty"`
		Phone  string  `json:"phone,omitempty"`
		Rating *Rating `json:"rating,omitempty"`
	}
)
