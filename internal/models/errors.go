package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrCategoryNotOwned   = errors.New("category not found or doesn't belong to user")
	ErrNotImage           = errors.New("file must be an image")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInvalidToken       = errors.New("could not validate credentials")
)
