package service

import "errors"

var (
	ErrLoadFailed       = errors.New("availability load failed")
	ErrSaveFailed       = errors.New("availability save failed")
	ErrSaveInProgress   = errors.New("save already in progress")
	ErrNotEditable      = errors.New("schedule is not loaded")
	ErrInvalidCell      = errors.New("range is not a grid cell")
	ErrCellNotAvailable = errors.New("cell is not available")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingPast      = errors.New("booking already started")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotATutor        = errors.New("user is not a tutor")
	ErrSelfBooking      = errors.New("tutor cannot book own slot")
)
