package client

import (
	"context"
	"errors"
	"slices"
	"time"
)

// DefaultSlots are the times offered on every day. The API does not compute
// availability, so a taken slot is only reported on Submit.
var DefaultSlots = []string{"08:00", "09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

var (
	ErrStepIncomplete = errors.New("booking: current step is incomplete")
	ErrWrongStep      = errors.New("booking: not available at this step")
	ErrInvalidDate    = errors.New("booking: date must be YYYY-MM-DD")
	ErrUnknownSlot    = errors.New("booking: time is not an offered slot")
)

// Booking walks a patient through three steps: specialty and doctor, date,
// then time. Steps cannot be skipped.
type Booking struct {
	client *Client

	step           int
	especialidadID int64
	medicoID       int64
	fecha          string
	hora           string
}

// NewBooking starts a wizard at step 1.
func (c *Client) NewBooking() *Booking {
	return &Booking{client: c, step: 1}
}

func (b *Booking) Step() int { return b.step }

// Specialties lists the choices for step 1.
func (b *Booking) Specialties(ctx context.Context) ([]Specialty, error) {
	return b.client.ListSpecialties(ctx)
}

// Doctors lists the doctors of the selected specialty.
func (b *Booking) Doctors(ctx context.Context) ([]DoctorListing, error) {
	if b.especialidadID == 0 {
		return nil, ErrStepIncomplete
	}
	return b.client.ListDoctorsBySpecialty(ctx, b.especialidadID)
}

// SelectSpecialty picks the specialty. Choosing a different one clears the
// doctor.
func (b *Booking) SelectSpecialty(id int64) error {
	if b.step != 1 {
		return ErrWrongStep
	}
	if id != b.especialidadID {
		b.medicoID = 0
	}
	b.especialidadID = id
	return nil
}

func (b *Booking) SelectDoctor(id int64) error {
	if b.step != 1 {
		return ErrWrongStep
	}
	if b.especialidadID == 0 {
		return ErrStepIncomplete
	}
	b.medicoID = id
	return nil
}

func (b *Booking) SelectDate(fecha string) error {
	if b.step != 2 {
		return ErrWrongStep
	}
	if _, err := time.Parse(time.DateOnly, fecha); err != nil {
		return ErrInvalidDate
	}
	b.fecha = fecha
	return nil
}

// Slots returns the offered times once a doctor and a date are chosen.
func (b *Booking) Slots() []string {
	if b.medicoID == 0 || b.fecha == "" {
		return nil
	}
	return slices.Clone(DefaultSlots)
}

func (b *Booking) SelectTime(hora string) error {
	if b.step != 3 {
		return ErrWrongStep
	}
	if !slices.Contains(DefaultSlots, hora) {
		return ErrUnknownSlot
	}
	b.hora = hora
	return nil
}

// Next advances when the current step is complete.
func (b *Booking) Next() error {
	switch {
	case b.step == 1 && b.especialidadID != 0 && b.medicoID != 0:
	case b.step == 2 && b.fecha != "":
	default:
		return ErrStepIncomplete
	}
	b.step++
	return nil
}

// Back returns to the previous step, keeping the selections made.
func (b *Booking) Back() {
	if b.step > 1 {
		b.step--
	}
}

// Submit books the chosen slot. The server rejects a slot that is already
// held with a 400 *APIError.
func (b *Booking) Submit(ctx context.Context, idempotencyKey string) (*Appointment, error) {
	if b.step != 3 || b.hora == "" {
		return nil, ErrStepIncomplete
	}
	if !b.client.Session().Authenticated() {
		return nil, ErrNotLoggedIn
	}
	return b.client.BookAppointment(ctx, AppointmentRequest{
		MedicoID: b.medicoID,
		Fecha:    b.fecha,
		Hora:     b.hora,
	}, idempotencyKey)
}
