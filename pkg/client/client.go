// Package client is a Go SDK for the citas API. It keeps the logged-in
// session in memory, optionally mirrored to a SessionStore, and sends it as a
// bearer token on every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

// headerIdempotencyKey matches the header read by POST /citas.
const headerIdempotencyKey = "Idempotency-Key"

// ErrNotLoggedIn is returned by calls that need a session when none is held.
var ErrNotLoggedIn = errors.New("client: not logged in")

// APIError is a non-2xx answer from the API. Message is the server's
// {"message"} text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("citas api: %d %s", e.Status, e.Message)
}

// Unauthorized reports whether the server rejected the session token. A
// persisted session is only found to be stale this way.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// Client talks to one API base URL, e.g. "http://localhost:8080/api".
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionStore mirrors the session to store and restores it in New.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// New builds a Client. When a SessionStore is configured, a previously saved
// session is restored without contacting the server.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store != nil {
		s, err := c.store.Load()
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		c.session = s
	}
	return c, nil
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

func (c *Client) setSession(s *Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	if s == nil {
		return c.store.Clear()
	}
	return c.store.Save(s)
}

// ── Users / auth ──────────────────────────────────────────────────────────────

// RegisterRequest is the body of POST /users/register. Rol may be empty.
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      Role   `json:"rol,omitempty"`
}

// Register creates a user. The current session is left untouched, so an
// admin can register users without losing their own login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &out, nil); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, nil); err != nil {
		return nil, err
	}
	if err := c.setSession(&out); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return c.Session(), nil
}

// Logout drops the session from memory and from the store.
func (c *Client) Logout() error {
	return c.setSession(nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	return out, c.do(ctx, http.MethodGet, "/users", nil, &out, nil)
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (c *Client) ListSpecialties(ctx context.Context) ([]Specialty, error) {
	var out []Specialty
	return out, c.do(ctx, http.MethodGet, "/especialidades", nil, &out, nil)
}

func (c *Client) CreateSpecialty(ctx context.Context, nombre string, descripcion *string) (*Specialty, error) {
	var out struct {
		Especialidad *Specialty `json:"especialidad"`
	}
	body := map[string]any{"nombre": nombre, "descripcion": descripcion}
	if err := c.do(ctx, http.MethodPost, "/especialidades", body, &out, nil); err != nil {
		return nil, err
	}
	return out.Especialidad, nil
}

func (c *Client) ListDoctors(ctx context.Context) ([]DoctorListing, error) {
	var out []DoctorListing
	return out, c.do(ctx, http.MethodGet, "/medicos", nil, &out, nil)
}

func (c *Client) ListDoctorsBySpecialty(ctx context.Context, especialidadID int64) ([]DoctorListing, error) {
	var out []DoctorListing
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/medicos/especialidad/%d", especialidadID), nil, &out, nil)
}

func (c *Client) CreateDoctor(ctx context.Context, userID, especialidadID int64) (*Doctor, error) {
	var out struct {
		Medico *Doctor `json:"medico"`
	}
	body := map[string]int64{"user_id": userID, "especialidad_id": especialidadID}
	if err := c.do(ctx, http.MethodPost, "/medicos", body, &out, nil); err != nil {
		return nil, err
	}
	return out.Medico, nil
}

func (c *Client) CreateSchedule(ctx context.Context, s Schedule) (*Schedule, error) {
	var out struct {
		Horario *Schedule `json:"horario"`
	}
	if err := c.do(ctx, http.MethodPost, "/horarios", s, &out, nil); err != nil {
		return nil, err
	}
	return out.Horario, nil
}

func (c *Client) ListSchedules(ctx context.Context, medicoID int64) ([]Schedule, error) {
	var out []Schedule
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/horarios/medico/%d", medicoID), nil, &out, nil)
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/horarios/%d", id), nil, nil, nil)
}

// ── Appointments ──────────────────────────────────────────────────────────────

// AppointmentRequest is the body of POST /citas.
type AppointmentRequest struct {
	MedicoID int64  `json:"medico_id"`
	Fecha    string `json:"fecha"`
	Hora     string `json:"hora"`
}

// BookAppointment books a slot for the logged-in patient. A non-empty
// idempotencyKey makes retries return the first appointment.
func (c *Client) BookAppointment(ctx context.Context, req AppointmentRequest, idempotencyKey string) (*Appointment, error) {
	var headers http.Header
	if idempotencyKey != "" {
		headers = http.Header{headerIdempotencyKey: []string{idempotencyKey}}
	}
	var out struct {
		Cita *Appointment `json:"cita"`
	}
	if err := c.do(ctx, http.MethodPost, "/citas", req, &out, headers); err != nil {
		return nil, err
	}
	return out.Cita, nil
}

func (c *Client) ListAppointments(ctx context.Context) ([]AppointmentView, error) {
	var out []AppointmentView
	return out, c.do(ctx, http.MethodGet, "/citas", nil, &out, nil)
}

func (c *Client) MyAppointments(ctx context.Context) ([]AppointmentView, error) {
	var out []AppointmentView
	return out, c.do(ctx, http.MethodGet, "/citas/paciente", nil, &out, nil)
}

func (c *Client) DoctorAppointments(ctx context.Context, medicoID int64) ([]AppointmentView, error) {
	var out []AppointmentView
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/citas/medico/%d", medicoID), nil, &out, nil)
}

// UpdateAppointmentStatus sets the estado of an appointment and returns the
// status the server stored.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, estado AppointmentStatus) (AppointmentStatus, error) {
	var out struct {
		Result struct {
			Estado AppointmentStatus `json:"estado"`
		} `json:"result"`
	}
	body := map[string]AppointmentStatus{"estado": estado}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/citas/%d/estado", id), body, &out, nil); err != nil {
		return "", err
	}
	return out.Result.Estado, nil
}

func (c *Client) AppointmentHistory(ctx context.Context, id int64) ([]StatusChange, error) {
	var out []StatusChange
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/citas/%d/historial", id), nil, &out, nil)
}

// do sends one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any, headers http.Header) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
			apiErr.Message = env.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
