package insights

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUserNotFound    = errors.New("user not found")
	ErrIndustryNotSet  = errors.New("user has no industry set")
	ErrInvalidIndustry = errors.New("industry must not be empty")
	ErrEmptyResponse   = errors.New("empty response from model")
)
