package service

import "errors"

// ErrUnauthorized is returned when a refresh request fails webhook
// authentication.
var ErrUnauthorized = errors.New("unauthorized")
