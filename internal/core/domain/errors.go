package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrSpecialtyNotFound = errors.New("specialty not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorExists      = errors.New("user is already registered as a doctor")
	ErrScheduleNotFound  = errors.New("schedule not found")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("slot already reserved")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)
