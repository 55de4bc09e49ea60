package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportspark/sportspark-api/internal/config"
	"github.com/sportspark/sportspark-api/internal/handler"
	"github.com/sportspark/sportspark-api/internal/model"
	"github.com/sportspark/sportspark-api/internal/queue"
	"github.com/sportspark/sportspark-api/internal/repository"
	"github.com/sportspark/sportspark-api/internal/router"
	"github.com/sportspark/sportspark-api/internal/utils"
)

const testSecret = "test-signing-secret"

// In-memory fakes implementing the handler store interfaces. The
// registration fake enforces the (user, event) uniqueness under a mutex,
// mirroring what the UNIQUE constraint does in MySQL, so the concurrency
// tests exercise the same race the database resolves in production.

type fakeUserStore struct {
	mu      sync.Mutex
	nextID  uint64
	users   map[uint64]model.User
	byEmail map[string]uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}, byEmail: map[string]uint64{}}
}

func (s *fakeUserStore) Create(_ context.Context, name, email, password, role string, _ int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	u := model.User{ID: s.nextID, Name: name, Email: email, PasswordHash: string(hash), Role: role}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return s.users[id], nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type regKey struct{ userID, eventID uint64 }

type fakeRegistrationStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[regKey]uint64
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{rows: map[regKey]uint64{}}
}

func (s *fakeRegistrationStore) Create(_ context.Context, userID, eventID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := regKey{userID, eventID}
	if _, ok := s.rows[k]; ok {
		return 0, repository.ErrAlreadyRegistered
	}
	s.nextID++
	s.rows[k] = s.nextID
	return s.nextID, nil
}

func (s *fakeRegistrationStore) Exists(_ context.Context, userID, eventID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[regKey{userID, eventID}]
	return ok, nil
}

func (s *fakeRegistrationStore) CountForEvent(_ context.Context, eventID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n uint64
	for k := range s.rows {
		if k.eventID == eventID {
			n++
		}
	}
	return n, nil
}

func (s *fakeRegistrationStore) CountForUser(_ context.Context, userID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n uint64
	for k := range s.rows {
		if k.userID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeRegistrationStore) deleteByEvent(eventID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.rows {
		if k.eventID == eventID {
			delete(s.rows, k)
		}
	}
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID uint64
	events map[uint64]model.Event
	regs   *fakeRegistrationStore
}

func newFakeEventStore(regs *fakeRegistrationStore) *fakeEventStore {
	return &fakeEventStore{events: map[uint64]model.Event{}, regs: regs}
}

func (s *fakeEventStore) Create(_ context.Context, e *model.Event) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	e.Status = model.EventStatusApproved
	s.events[e.ID] = *e
	return e.ID, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id uint64) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return e, nil
}

func (s *fakeEventStore) withCount(e model.Event) repository.EventWithCount {
	n, _ := s.regs.CountForEvent(context.Background(), e.ID)
	return repository.EventWithCount{Event: e, RegistrationCount: n}
}

func (s *fakeEventStore) ListAll(_ context.Context) ([]repository.EventWithCount, error) {
	s.mu.Lock()
	evs := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		evs = append(evs, e)
	}
	s.mu.Unlock()
	out := make([]repository.EventWithCount, 0, len(evs))
	for _, e := range evs {
		out = append(out, s.withCount(e))
	}
	return out, nil
}

func (s *fakeEventStore) ListByOrganizer(_ context.Context, organizerID uint64) ([]repository.EventWithCount, error) {
	s.mu.Lock()
	evs := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.OrganizerID == organizerID {
			evs = append(evs, e)
		}
	}
	s.mu.Unlock()
	out := make([]repository.EventWithCount, 0, len(evs))
	for _, e := range evs {
		out = append(out, s.withCount(e))
	}
	return out, nil
}

func (s *fakeEventStore) DeleteOwned(_ context.Context, id, ownerID uint64) error {
	s.mu.Lock()
	e, ok := s.events[id]
	if !ok || e.OrganizerID != ownerID {
		s.mu.Unlock()
		return repository.ErrForbidden
	}
	delete(s.events, id)
	s.mu.Unlock()
	s.regs.deleteByEvent(id)
	return nil
}

func (s *fakeEventStore) BumpRegistrationCount(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		e.RegistrationCount++
		s.events[id] = e
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.RegistrationConfirmedEvent
}

func (p *fakePublisher) PublishRegistrationConfirmed(_ context.Context, ev queue.RegistrationConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// testEnv wires fakes through the real router and middleware so tests
// exercise the same chain production requests pass through.
type testEnv struct {
	e      *echo.Echo
	users  *fakeUserStore
	events *fakeEventStore
	regs   *fakeRegistrationStore
	pub    *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserStore()
	regs := newFakeRegistrationStore()
	events := newFakeEventStore(regs)
	pub := &fakePublisher{}

	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 60, BcryptCost: bcrypt.MinCost}
	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Registration: handler.NewRegistrationHandler(users, events, regs, pub),
		Dashboard:    handler.NewDashboardHandler(events, regs),
		Organizer:    handler.NewOrganizerHandler(events),
		Public:       handler.NewPublicHandler(events),
	}

	e := echo.New()
	router.RegisterRoutes(e, h, testSecret, nil)
	return &testEnv{e: e, users: users, events: events, regs: regs, pub: pub}
}

// addUser seeds a user directly and returns its id and a valid token.
func (env *testEnv) addUser(t *testing.T, name, email, role string) (uint64, string) {
	t.Helper()
	id, err := env.users.Create(context.Background(), name, email, "secret", role, bcrypt.MinCost)
	require.NoError(t, err)
	tok, err := utils.NewSessionToken(testSecret, id, role, name, 60)
	require.NoError(t, err)
	return id, tok.Token
}

// addEvent seeds an event directly.
func (env *testEnv) addEvent(t *testing.T, organizerID uint64, title string, capacity *uint32) uint64 {
	t.Helper()
	ev := model.Event{
		OrganizerID: organizerID,
		Title:       title,
		Category:    model.CategoryFootball,
		Location:    "Central Park",
		Capacity:    capacity,
	}
	id, err := env.events.Create(context.Background(), &ev)
	require.NoError(t, err)
	return id
}

func (env *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func uintPtr(v uint32) *uint32 { return &v }
