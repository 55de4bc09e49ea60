package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterForEvent(t *testing.T) {
	env := newTestEnv(t)
	orgID, _ := env.addUser(t, "Org", "org@x.com", "organizer")
	userID, token := env.addUser(t, "A", "a@x.com", "participant")
	eventID := env.addEvent(t, orgID, "City Run", nil)

	rec := env.do(http.MethodPost, "/auth/register-event",
		fmt.Sprintf(`{"eventId":%d}`, eventID), token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	exists, err := env.regs.Exists(context.Background(), userID, eventID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Cached counter bumped alongside the insert.
	ev, err := env.events.GetByID(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ev.RegistrationCount)

	// Confirmation event published asynchronously.
	require.Eventually(t, func() bool { return env.pub.published() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestRegisterForEventMissingEventID(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "A", "a@x.com", "participant")

	rec := env.do(http.MethodPost, "/auth/register-event", `{}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "eventId is required", decodeBody(t, rec)["message"])
}

func TestRegisterForEventNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "A", "a@x.com", "participant")

	rec := env.do(http.MethodPost, "/auth/register-event", `{"eventId":999}`, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", decodeBody(t, rec)["message"])
}

func TestRegisterForEventDuplicate(t *testing.T) {
	env := newTestEnv(t)
	orgID, _ := env.addUser(t, "Org", "org@x.com", "organizer")
	_, token := env.addUser(t, "A", "a@x.com", "participant")
	eventID := env.addEvent(t, orgID, "City Run", nil)

	body := fmt.Sprintf(`{"eventId":%d}`, eventID)
	rec := env.do(http.MethodPost, "/auth/register-event", body, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/auth/register-event", body, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You are already registered for this event", decodeBody(t, rec)["message"])
}

func TestRegisterForEventCapacity(t *testing.T) {
	env := newTestEnv(t)
	orgID, _ := env.addUser(t, "Org", "org@x.com", "organizer")
	_, tokenA := env.addUser(t, "A", "a@x.com", "participant")
	_, tokenB := env.addUser(t, "B", "b@x.com", "participant")
	eventID := env.addEvent(t, orgID, "Final", uintPtr(1))

	body := fmt.Sprintf(`{"eventId":%d}`, eventID)
	rec := env.do(http.MethodPost, "/auth/register-event", body, tokenA)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/auth/register-event", body, tokenB)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Event is full", decodeBody(t, rec)["message"])

	n, err := env.regs.CountForEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestRegisterForEventRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/register-event", `{"eventId":1}`, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "No token provided", decodeBody(t, rec)["message"])
}

// Concurrent duplicate attempts by the same user must yield exactly one
// success; the store-level uniqueness check is the arbiter, not the racy
// pre-check.
func TestRegisterForEventConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	orgID, _ := env.addUser(t, "Org", "org@x.com", "organizer")
	_, token := env.addUser(t, "A", "a@x.com", "participant")
	eventID := env.addEvent(t, orgID, "City Run", nil)

	const attempts = 50
	results := make(chan int, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	body := fmt.Sprintf(`{"eventId":%d}`, eventID)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			rec := env.do(http.MethodPost, "/auth/register-event", body, token)
			results <- rec.Code
		}()
	}
	wg.Wait()
	close(results)

	success, rejected := 0, 0
	for code := range results {
		switch code {
		case http.StatusOK:
			success++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, success)
	assert.Equal(t, attempts-1, rejected)

	n, err := env.regs.CountForEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

// Distinct users fill an event to capacity; every attempt past the limit
// is rejected and the count stays put.
func TestRegisterForEventFillsToCapacity(t *testing.T) {
	env := newTestEnv(t)
	orgID, _ := env.addUser(t, "Org", "org@x.com", "organizer")
	const capacity = 5
	eventID := env.addEvent(t, orgID, "Final", uintPtr(capacity))

	body := fmt.Sprintf(`{"eventId":%d}`, eventID)
	for i := 0; i < capacity; i++ {
		_, tok := env.addUser(t, fmt.Sprintf("U%d", i), fmt.Sprintf("u%d@x.com", i), "participant")
		rec := env.do(http.MethodPost, "/auth/register-event", body, tok)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	_, late := env.addUser(t, "Late", "late@x.com", "participant")
	rec := env.do(http.MethodPost, "/auth/register-event", body, late)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Event is full", decodeBody(t, rec)["message"])

	n, err := env.regs.CountForEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(capacity), n)
}
