package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// locationAPI is a minimal in-memory /locations backend that also answers /auth/login.
type locationAPI struct {
	mu        sync.Mutex
	items     map[string]domain.Location
	lastAuth  string
	gotCookie bool
}

func newLocationAPI() *locationAPI {
	return &locationAPI{items: map[string]domain.Location{
		"l1": {ID: "l1", Building: "A"},
		"l2": {ID: "l2", Building: "B"},
	}}
}

func (a *locationAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastAuth = r.Header.Get("Authorization")
	if _, err := r.Cookie("access_token"); err == nil {
		a.gotCookie = true
	}
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/auth/login":
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "cookie-token", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "jwt-token", "role": "admin", "user": map[string]any{"id": "u1"}})
	case r.URL.Path == "/locations" && r.Method == http.MethodGet:
		out := []domain.Location{a.items["l1"], a.items["l2"]}
		_ = json.NewEncoder(w).Encode(out)
	case r.URL.Path == "/locations" && r.Method == http.MethodPost:
		var loc domain.Location
		_ = json.NewDecoder(r.Body).Decode(&loc)
		if loc.Building == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_FAILED","message":"invalid location"}}`))
			return
		}
		loc.ID = "l3"
		a.items[loc.ID] = loc
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(loc)
	case strings.HasPrefix(r.URL.Path, "/locations/"):
		id := strings.TrimPrefix(r.URL.Path, "/locations/")
		loc, ok := a.items[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"location not found"}`))
			return
		}
		switch r.Method {
		case http.MethodPatch:
			var patch map[string]string
			_ = json.NewDecoder(r.Body).Decode(&patch)
			loc.Room = patch["room"]
			a.items[id] = loc
		case http.MethodDelete:
			delete(a.items, id)
		}
		_ = json.NewEncoder(w).Encode(loc)
	case r.URL.Path == "/boom":
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("not json"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestResourceLifecycle(t *testing.T) {
	srv := httptest.NewServer(newLocationAPI())
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	all := c.Locations.FetchAll(ctx)
	require.Len(t, all, 2)
	state := c.Locations.State()
	assert.Empty(t, state.Error)
	assert.False(t, state.Loading)
	assert.Len(t, state.Data, 2)

	created := c.Locations.Create(ctx, map[string]string{"building": "C"})
	require.NotNil(t, created)
	assert.Equal(t, "l3", created.ID)
	assert.Len(t, c.Locations.State().Data, 3)

	updated := c.Locations.Update(ctx, "l1", map[string]string{"room": "101"})
	require.NotNil(t, updated)
	state = c.Locations.State()
	assert.Len(t, state.Data, 3)
	assert.Equal(t, "101", state.Data[0].Room)

	assert.True(t, c.Locations.Remove(ctx, "l2"))
	state = c.Locations.State()
	require.Len(t, state.Data, 2)
	for _, loc := range state.Data {
		assert.NotEqual(t, "l2", loc.ID)
	}
}

func TestResourceKeepsReturnedSlicesIntact(t *testing.T) {
	srv := httptest.NewServer(newLocationAPI())
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	all := c.Locations.FetchAll(ctx)
	require.Len(t, all, 2)

	require.True(t, c.Locations.Remove(ctx, "l1"))
	require.NotNil(t, c.Locations.Create(ctx, map[string]string{"building": "C"}))

	assert.Equal(t, "l1", all[0].ID)
	assert.Equal(t, "l2", all[1].ID)
	state := c.Locations.State()
	require.Len(t, state.Data, 2)
	assert.Equal(t, "l2", state.Data[0].ID)
	assert.Equal(t, "l3", state.Data[1].ID)
}

func TestResourceErrorsStayInState(t *testing.T) {
	srv := httptest.NewServer(newLocationAPI())
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	assert.Nil(t, c.Locations.FetchByID(ctx, "missing"))
	assert.Equal(t, "location not found", c.Locations.State().Error)

	assert.Nil(t, c.Locations.Create(ctx, map[string]string{}))
	assert.Equal(t, "invalid location", c.Locations.State().Error)

	assert.NotNil(t, c.Locations.FetchByID(ctx, "l1"))
	assert.Empty(t, c.Locations.State().Error, "a successful call clears the previous error")

	broken := NewResource(c.http, "widgets", "/boom", func(l *domain.Location) string { return l.ID })
	assert.Nil(t, broken.FetchAll(ctx))
	assert.Equal(t, "fetch widgets failed", broken.State().Error)
	assert.False(t, broken.State().Loading)
}

func TestResourceNetworkFailureUsesFallback(t *testing.T) {
	srv := httptest.NewServer(newLocationAPI())
	srv.Close()

	c := New(Config{BaseURL: srv.URL})
	assert.False(t, c.Tickets.Remove(context.Background(), "t1"))
	assert.Equal(t, "delete tickets failed", c.Tickets.State().Error)
}

func TestLoginSendsBearerAndCookie(t *testing.T) {
	api := newLocationAPI()
	srv := httptest.NewServer(api)
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	session, err := c.Login(ctx, "admin@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Role)

	c.Locations.FetchAll(ctx)
	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, "Bearer jwt-token", api.lastAuth)
	assert.True(t, api.gotCookie)
}

func TestTicketSLAEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"priority":"P2"}`))
	}))
	defer srv.Close()

	status, err := New(Config{BaseURL: srv.URL}).TicketSLA(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityP2, status.Priority)
	assert.Equal(t, "/tickets/a%2Fb%20c/sla", gotPath)
}

func TestRepairTypesResource(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"rt1","name":"Plumbing","color":"#1e88e5"}]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	items := c.RepairTypes.FetchAll(context.Background())
	assert.Equal(t, "/repair-types", gotPath)
	require.Len(t, items, 1)
	assert.Equal(t, "Plumbing", items[0].Name)
	assert.Equal(t, "#1e88e5", items[0].Color)
	assert.Empty(t, c.RepairTypes.State().Error)
}

func TestErrorMessageShapes(t *testing.T) {
	assert.Equal(t, "top", errorMessage([]byte(`{"message":"top","error":{"message":"nested"}}`), "fb"))
	assert.Equal(t, "nested", errorMessage([]byte(`{"error":{"message":"nested"}}`), "fb"))
	assert.Equal(t, "plain", errorMessage([]byte(`{"error":"plain"}`), "fb"))
	assert.Equal(t, "fb", errorMessage([]byte(`<html>`), "fb"))
}
