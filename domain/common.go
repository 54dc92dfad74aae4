package domain

import (
	"errors"
)

const (
	RoleDonor    = "donor"
	RoleReceiver = "receiver"
	RoleAdmin    = "admin"
)

// ErrorKind groups failures by how the API reports them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindInvalidState
	KindInvalidInput
	KindInvalidOperation
	KindInsufficientQuantity
	KindConflict
)

// Error is a categorized failure. Sentinels of this type are declared per
// feature and compared with errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the category of err, or KindUnknown when it is not a domain error.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrUserNotAllowed = NewError(KindForbidden, "user not allowed")
	ErrTokenNotFound  = NewError(KindUnauthorized, "not authorized, no token")
	ErrTokenInvalid   = NewError(KindUnauthorized, "not authorized, token invalid")
	ErrTokenExpired   = NewError(KindUnauthorized, "not authorized, token expired")
)

type (
	// Location is a GeoJSON-style point, coordinates ordered [lng, lat].
	Location struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
)

func NewLocation(lng, lat float64) Location {
	return Location{Type: "Point", Coordinates: []float64{lng, lat}}
}
