package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/botica/citas-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubDoctorRepo struct {
	byUser    map[int64]int64 // user id -> doctor id
	listings  []domain.DoctorListing
	findErr   error
	createErr error
	nextID    int64
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{byUser: make(map[int64]int64)}
}

func (r *stubDoctorRepo) Create(_ context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byUser[d.UserID]; ok {
		return nil, domain.ErrDoctorExists
	}
	r.nextID++
	r.byUser[d.UserID] = r.nextID
	out := *d
	out.ID = r.nextID
	return &out, nil
}

func (r *stubDoctorRepo) FindIDByUser(_ context.Context, userID int64) (int64, error) {
	if r.findErr != nil {
		return 0, r.findErr
	}
	id, ok := r.byUser[userID]
	if !ok {
		return 0, domain.ErrDoctorNotFound
	}
	return id, nil
}

func (r *stubDoctorRepo) List(_ context.Context) ([]domain.DoctorListing, error) {
	return r.listings, nil
}

func (r *stubDoctorRepo) ListBySpecialty(_ context.Context, _ int64) ([]domain.DoctorListing, error) {
	return r.listings, nil
}

type stubAppointmentRepo struct {
	byID      map[int64]*domain.Appointment
	nextID    int64
	creates   int
	updateErr error
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{byID: make(map[int64]*domain.Appointment)}
}

// CreateIfFree mirrors the partial unique index: cancelled rows free the slot.
func (r *stubAppointmentRepo) CreateIfFree(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.creates++
	for _, existing := range r.byID {
		if existing.Slot() == a.Slot() && existing.Estado != domain.StatusCancelled {
			return nil, domain.ErrSlotTaken
		}
	}
	r.nextID++
	stored := *a
	stored.ID = r.nextID
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	out := *a
	return &out, nil
}

func (r *stubAppointmentRepo) views(keep func(*domain.Appointment) bool) []domain.AppointmentView {
	out := []domain.AppointmentView{}
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, domain.AppointmentView{ID: a.ID, Fecha: a.Fecha, Hora: a.Hora, Estado: a.Estado})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha != out[j].Fecha {
			return out[i].Fecha < out[j].Fecha
		}
		return out[i].Hora < out[j].Hora
	})
	return out
}

func (r *stubAppointmentRepo) ListByPatient(_ context.Context, pacienteID int64) ([]domain.AppointmentView, error) {
	return r.views(func(a *domain.Appointment) bool { return a.PacienteID == pacienteID }), nil
}

func (r *stubAppointmentRepo) ListByDoctor(_ context.Context, medicoID int64) ([]domain.AppointmentView, error) {
	return r.views(func(a *domain.Appointment) bool { return a.MedicoID == medicoID }), nil
}

func (r *stubAppointmentRepo) ListAll(_ context.Context) ([]domain.AppointmentView, error) {
	return r.views(func(*domain.Appointment) bool { return true }), nil
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if a, ok := r.byID[id]; ok {
		a.Estado = status
	}
	return nil
}

type stubAudit struct {
	changes   []domain.StatusChange
	recordErr error
}

func (a *stubAudit) Record(_ context.Context, c domain.StatusChange) error {
	if a.recordErr != nil {
		return a.recordErr
	}
	a.changes = append(a.changes, c)
	return nil
}

func (a *stubAudit) History(_ context.Context, citaID int64) ([]domain.StatusChange, error) {
	out := []domain.StatusChange{}
	for _, c := range a.changes {
		if c.CitaID == citaID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubIdempotency struct {
	keys      map[string]int64
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key string, citaID int64) error {
	s.keys[key] = citaID
	return nil
}

type stubSpecialtyRepo struct {
	items []domain.Specialty
}

func (r *stubSpecialtyRepo) Create(_ context.Context, s *domain.Specialty) (*domain.Specialty, error) {
	out := *s
	out.ID = int64(len(r.items) + 1)
	r.items = append(r.items, out)
	return &out, nil
}

func (r *stubSpecialtyRepo) List(_ context.Context) ([]domain.Specialty, error) {
	return r.items, nil
}

type stubScheduleRepo struct {
	items map[int64]domain.Schedule
	next  int64
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{items: make(map[int64]domain.Schedule)}
}

func (r *stubScheduleRepo) Create(_ context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	r.next++
	out := *s
	out.ID = r.next
	r.items[out.ID] = out
	return &out, nil
}

func (r *stubScheduleRepo) ListByDoctor(_ context.Context, medicoID int64) ([]domain.Schedule, error) {
	out := []domain.Schedule{}
	for _, s := range r.items {
		if s.MedicoID == medicoID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrScheduleNotFound
	}
	delete(r.items, id)
	return nil
}

var errBoom = errors.New("boom")
