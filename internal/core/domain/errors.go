package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrValidation     = errors.New("missing or empty required input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Asset errors
var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetDispatched    = errors.New("asset already dispatched")
	ErrSignatureMissing   = errors.New("no signature on file for user")
	ErrInvalidSearchField = errors.New("search field not allowed")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
