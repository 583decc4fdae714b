package client

import "github.com/botica/citas-api/internal/core/domain"

// Wire types, re-exported so callers outside this module can name them.
type (
	Role              = domain.Role
	User              = domain.User
	Specialty         = domain.Specialty
	Doctor            = domain.Doctor
	DoctorListing     = domain.DoctorListing
	Schedule          = domain.Schedule
	AppointmentStatus = domain.AppointmentStatus
	Appointment       = domain.Appointment
	AppointmentView   = domain.AppointmentView
	StatusChange      = domain.StatusChange
)

const (
	RolePatient = domain.RolePatient
	RoleDoctor  = domain.RoleDoctor
	RoleAdmin   = domain.RoleAdmin

	StatusPending   = domain.StatusPending
	StatusConfirmed = domain.StatusConfirmed
	StatusCancelled = domain.StatusCancelled
	StatusCompleted = domain.StatusCompleted
)
