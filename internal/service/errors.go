package service

import "errors"

var (
	ErrRoomNotFound  = errors.New("hotel room not found")
	ErrInvalidWindow = errors.New("booking curve window must be at least one day")
	ErrNoCapacity    = errors.New("hotel room has no capacity")
)
