package api

import (
	"context"
	"sort"
	"sync"

	"github.com/botica/citas-api/internal/core/domain"
)

// memStore backs every repository port in memory for router tests.
type memStore struct {
	mu           sync.Mutex
	users        []domain.User
	specialties  []domain.Specialty
	doctors      []domain.Doctor
	schedules    []domain.Schedule
	appointments []domain.Appointment
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	out := *u
	out.ID = int64(len(r.s.users) + 1)
	r.s.users = append(r.s.users, out)
	return &out, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]domain.User(nil), r.s.users...), nil
}

type memSpecialties struct{ s *memStore }

func (r memSpecialties) Create(_ context.Context, sp *domain.Specialty) (*domain.Specialty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *sp
	out.ID = int64(len(r.s.specialties) + 1)
	r.s.specialties = append(r.s.specialties, out)
	return &out, nil
}

func (r memSpecialties) List(_ context.Context) ([]domain.Specialty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]domain.Specialty{}, r.s.specialties...), nil
}

type memDoctors struct{ s *memStore }

func (r memDoctors) Create(_ context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.doctors {
		if existing.UserID == d.UserID {
			return nil, domain.ErrDoctorExists
		}
	}
	if d.UserID > int64(len(r.s.users)) {
		return nil, domain.ErrUserNotFound
	}
	if d.EspecialidadID > int64(len(r.s.specialties)) {
		return nil, domain.ErrSpecialtyNotFound
	}
	out := *d
	out.ID = int64(len(r.s.doctors) + 1)
	r.s.doctors = append(r.s.doctors, out)
	return &out, nil
}

func (r memDoctors) FindIDByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.doctors {
		if d.UserID == userID {
			return d.ID, nil
		}
	}
	return 0, domain.ErrDoctorNotFound
}

func (r memDoctors) List(ctx context.Context) ([]domain.DoctorListing, error) {
	return r.ListBySpecialty(ctx, 0)
}

func (r memDoctors) ListBySpecialty(_ context.Context, especialidadID int64) ([]domain.DoctorListing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.DoctorListing{}
	for _, d := range r.s.doctors {
		if especialidadID != 0 && d.EspecialidadID != especialidadID {
			continue
		}
		u := r.s.users[d.UserID-1]
		out = append(out, domain.DoctorListing{
			ID:           d.ID,
			Nombre:       u.Nombre,
			Apellido:     u.Apellido,
			Email:        u.Email,
			Especialidad: r.s.specialties[d.EspecialidadID-1].Nombre,
		})
	}
	return out, nil
}

type memSchedules struct{ s *memStore }

func (r memSchedules) Create(_ context.Context, sc *domain.Schedule) (*domain.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := *sc
	out.ID = int64(len(r.s.schedules) + 1)
	r.s.schedules = append(r.s.schedules, out)
	return &out, nil
}

func (r memSchedules) ListByDoctor(_ context.Context, medicoID int64) ([]domain.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Schedule{}
	for _, sc := range r.s.schedules {
		if sc.MedicoID == medicoID && sc.ID != 0 {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (r memSchedules) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sc := range r.s.schedules {
		if sc.ID == id {
			r.s.schedules[i].ID = 0
			return nil
		}
	}
	return domain.ErrScheduleNotFound
}

type memAppointments struct{ s *memStore }

func (r memAppointments) CreateIfFree(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.MedicoID > int64(len(r.s.doctors)) {
		return nil, domain.ErrDoctorNotFound
	}
	for _, existing := range r.s.appointments {
		if existing.Slot() == a.Slot() && existing.Estado != domain.StatusCancelled {
			return nil, domain.ErrSlotTaken
		}
	}
	out := *a
	out.ID = int64(len(r.s.appointments) + 1)
	r.s.appointments = append(r.s.appointments, out)
	return &out, nil
}

func (r memAppointments) FindByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id < 1 || id > int64(len(r.s.appointments)) {
		return nil, domain.ErrAppointmentNotFound
	}
	out := r.s.appointments[id-1]
	return &out, nil
}

func (r memAppointments) list(keep func(domain.Appointment) bool) []domain.AppointmentView {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.AppointmentView{}
	for _, a := range r.s.appointments {
		if !keep(a) {
			continue
		}
		d := r.s.doctors[a.MedicoID-1]
		doc := r.s.users[d.UserID-1]
		pac := r.s.users[a.PacienteID-1]
		out = append(out, domain.AppointmentView{
			ID:               a.ID,
			Fecha:            a.Fecha,
			Hora:             a.Hora,
			Estado:           a.Estado,
			PacienteNombre:   pac.Nombre,
			PacienteApellido: pac.Apellido,
			MedicoNombre:     doc.Nombre,
			MedicoApellido:   doc.Apellido,
			Especialidad:     r.s.specialties[d.EspecialidadID-1].Nombre,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Fecha+out[i].Hora < out[j].Fecha+out[j].Hora
	})
	return out
}

func (r memAppointments) ListByPatient(_ context.Context, pacienteID int64) ([]domain.AppointmentView, error) {
	return r.list(func(a domain.Appointment) bool { return a.PacienteID == pacienteID }), nil
}

func (r memAppointments) ListByDoctor(_ context.Context, medicoID int64) ([]domain.AppointmentView, error) {
	return r.list(func(a domain.Appointment) bool { return a.MedicoID == medicoID }), nil
}

func (r memAppointments) ListAll(_ context.Context) ([]domain.AppointmentView, error) {
	return r.list(func(domain.Appointment) bool { return true }), nil
}

func (r memAppointments) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id >= 1 && id <= int64(len(r.s.appointments)) {
		r.s.appointments[id-1].Estado = status
	}
	return nil
}

type memAudit struct {
	mu      sync.Mutex
	changes []domain.StatusChange
}

func (a *memAudit) Record(_ context.Context, c domain.StatusChange) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.changes = append(a.changes, c)
	return nil
}

func (a *memAudit) History(_ context.Context, citaID int64) ([]domain.StatusChange, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []domain.StatusChange{}
	for _, c := range a.changes {
		if c.CitaID == citaID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]int64
}

func (m *memIdempotency) Lookup(_ context.Context, key string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keys[key]
	return id, ok, nil
}

func (m *memIdempotency) Remember(_ context.Context, key string, citaID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys == nil {
		m.keys = map[string]int64{}
	}
	if _, ok := m.keys[key]; !ok {
		m.keys[key] = citaID
	}
	return nil
}
