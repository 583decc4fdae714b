package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/botica/citas-api/internal/core/domain"
)

// fakeAPI serves the handful of routes the client tests need.
type fakeAPI struct {
	mu       sync.Mutex
	taken    map[string]bool
	lastAuth string
	lastIdem string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{taken: map[string]bool{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "pass123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login exitoso",
			"token":   "tok-" + body.Email,
			"user":    domain.User{ID: 3, Nombre: "Ana", Email: body.Email, Rol: domain.RolePatient, Activo: true},
		})
	})
	mux.HandleFunc("POST /api/users/register", func(w http.ResponseWriter, r *http.Request) {
		var body RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Usuario creado exitosamente",
			"user":    domain.User{ID: 9, Nombre: body.Nombre, Email: body.Email, Rol: body.Rol},
		})
	})
	mux.HandleFunc("GET /api/especialidades", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Specialty{{ID: 1, Nombre: "Cardiología"}, {ID: 2, Nombre: "Pediatría"}})
	})
	mux.HandleFunc("GET /api/medicos/especialidad/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.DoctorListing{{ID: 7, Nombre: "Luis", Especialidad: "Cardiología"}})
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.mu.Unlock()
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Token inválido"})
	})
	mux.HandleFunc("POST /api/citas", func(w http.ResponseWriter, r *http.Request) {
		var body AppointmentRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = r.Header.Get("Authorization")
		f.lastIdem = r.Header.Get("Idempotency-Key")
		slot := body.Fecha + " " + body.Hora
		if f.taken[slot] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Ese horario ya está reservado con el médico"})
			return
		}
		f.taken[slot] = true
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Cita registrada",
			"cita": domain.Appointment{ID: int64(len(f.taken)), PacienteID: 3, MedicoID: body.MedicoID,
				Fecha: body.Fecha, Hora: body.Hora, Estado: domain.StatusPending},
		})
	})
	mux.HandleFunc("PUT /api/citas/{id}/estado", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Estado string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Estado actualizado",
			"result":  map[string]any{"id": 1, "estado": body.Estado},
		})
	})
	mux.HandleFunc("DELETE /api/horarios/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Horario eliminado"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) seen() (auth, idem string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth, f.lastIdem
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_StoresSessionAndSendsToken(t *testing.T) {
	f, srv := newFakeAPI(t)
	c, err := New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s, err := c.Login(context.Background(), "ana@test.com", "pass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Token != "tok-ana@test.com" || s.User.Rol != domain.RolePatient {
		t.Fatalf("unexpected session: %+v", s)
	}

	if _, err := c.BookAppointment(context.Background(), AppointmentRequest{MedicoID: 7, Fecha: "2026-03-10", Hora: "09:00"}, "k1"); err != nil {
		t.Fatalf("BookAppointment: %v", err)
	}
	auth, idem := f.seen()
	if auth != "Bearer tok-ana@test.com" {
		t.Errorf("expected bearer token, got %q", auth)
	}
	if idem != "k1" {
		t.Errorf("expected idempotency key, got %q", idem)
	}
}

func TestLogin_BadPasswordReturnsAPIError(t *testing.T) {
	_, srv := newFakeAPI(t)
	c, _ := New(srv.URL + "/api")

	_, err := c.Login(context.Background(), "ana@test.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Credenciales inválidas" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if c.Session() != nil {
		t.Error("failed login must not create a session")
	}
}

func TestRegister_KeepsCurrentSession(t *testing.T) {
	_, srv := newFakeAPI(t)
	c, _ := New(srv.URL + "/api")
	if _, err := c.Login(context.Background(), "admin@test.com", "pass123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	u, err := c.Register(context.Background(), RegisterRequest{Nombre: "Luis", Email: "luis@test.com", Password: "x", Rol: domain.RoleDoctor})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Rol != domain.RoleDoctor {
		t.Errorf("expected medico, got %s", u.Rol)
	}
	if c.Session().Token != "tok-admin@test.com" {
		t.Error("register replaced the admin session")
	}
}

func TestStaleSessionSurfacesAsUnauthorized(t *testing.T) {
	_, srv := newFakeAPI(t)
	c, _ := New(srv.URL + "/api")
	_ = c.setSession(&Session{User: domain.User{ID: 1, Rol: domain.RoleAdmin}, Token: "expired"})

	_, err := c.ListUsers(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("expected unauthorized APIError, got %v", err)
	}
}

func TestUpdateStatusAndDelete(t *testing.T) {
	_, srv := newFakeAPI(t)
	c, _ := New(srv.URL + "/api")

	estado, err := c.UpdateAppointmentStatus(context.Background(), 1, domain.StatusConfirmed)
	if err != nil || estado != domain.StatusConfirmed {
		t.Fatalf("UpdateAppointmentStatus: %v %v", estado, err)
	}
	if err := c.DeleteSchedule(context.Background(), 1); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
}

func TestFileStore_RestoresAndClears(t *testing.T) {
	_, srv := newFakeAPI(t)
	path := filepath.Join(t.TempDir(), "citas", "session.json")
	store := FileStore{Path: path}

	c, err := New(srv.URL+"/api", WithSessionStore(store))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Session() != nil {
		t.Fatal("expected no session on first start")
	}
	if _, err := c.Login(context.Background(), "ana@test.com", "pass123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected 0600, got %v", info.Mode().Perm())
	}

	restored, err := New(srv.URL+"/api", WithSessionStore(store))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s := restored.Session(); s == nil || s.Token != "tok-ana@test.com" || s.User.Email != "ana@test.com" {
		t.Fatalf("session not restored: %+v", s)
	}

	if err := restored.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if restored.Session() != nil {
		t.Error("expected no session after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected session file removed, got %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New("http://unused", WithSessionStore(FileStore{Path: path})); err == nil {
		t.Fatal("expected error for corrupt session file")
	}
}
