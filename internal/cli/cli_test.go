package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

func init() {
	color.NoColor = true
}

func strPtr(s string) *string { return &s }

func fakeAPI(t *testing.T, role string) *httptest.Server {
	t.Helper()
	due := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{ID: "t1", Code: "TCK-1", Title: "Leak", Priority: domain.TicketPriorityP2, Status: domain.TicketStatusOpen, DueAt: due, RequesterID: strPtr("u1")},
		{ID: "t2", Code: "TCK-2", Title: "Door", Priority: domain.TicketPriorityP1, Status: domain.TicketStatusInProgress, DueAt: due, TechnicianID: strPtr("u1")},
		{ID: "t3", Code: "TCK-3", Title: "Lamp", Priority: domain.TicketPriorityP3, Status: domain.TicketStatusResolved, DueAt: due, TechnicianID: strPtr("u1")},
	}

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "u1", "email": "me@example.com"}, "role": role})
	})
	mux.HandleFunc("GET /tickets", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, tickets)
	})
	mux.HandleFunc("GET /tickets/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{"code": "NOT_FOUND", "message": "ticket not found"}})
	})
	mux.HandleFunc("GET /tickets/{id}/sla", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, sla.Status{
			Priority:  domain.TicketPriorityP1,
			ElapsedMs: 5 * 60 * 60 * 1000,
			Response:  sla.Milestone{DueAt: due, Met: true},
			Resolve:   sla.Milestone{DueAt: due, Breaching: true},
		})
	})
	mux.HandleFunc("GET /sla-monitor/statistics", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, service.SLAStatistics{
			Groups: map[string]service.GroupStats{
				service.GroupOpening: {Total: 1, ResponseSLA: service.ComplianceStats{ComplianceRate: "100.0%"}, ResolveSLA: service.ComplianceStats{ComplianceRate: "100.0%"}},
			},
			Summary: service.StatisticsSummary{TotalTickets: 3, BreachedTotal: 1, Overall: "66.7%"},
		})
	})
	mux.HandleFunc("POST /sla-monitor/trigger", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "SLA check completed", "run": domain.MonitorRun{Scanned: 3, Warnings: 1, Breaches: 2, DurationMs: 1500}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTicketsListPrintsTable(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdmin)

	out, err := run(t, srv, "tickets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "TCK-1")
	assert.Contains(t, out, "TCK-3")
}

func TestGetSurfacesAPIErrorMessage(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdmin)

	_, err := run(t, srv, "tickets", "get", "missing")
	require.Error(t, err)
	assert.Equal(t, "ticket not found", err.Error())
}

func TestCreateRejectsMalformedPayload(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdmin)

	_, err := run(t, srv, "locations", "create", "--data", "not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON object")
}

func TestDashboardFollowsRole(t *testing.T) {
	cases := []struct {
		role    string
		want    []string
		notWant []string
	}{
		{role: domain.RoleAdmin, want: []string{"SLA compliance", "overall 66.7%", "Open tickets (2)", "TCK-2"}, notWant: []string{"TCK-3"}},
		{role: domain.RoleSupervisor, want: []string{"SLA compliance", "Open tickets (2)"}},
		{role: domain.RoleTechnician, want: []string{"Assigned to me (1)", "TCK-2"}, notWant: []string{"TCK-1", "TCK-3", "SLA compliance"}},
		{role: domain.RoleUser, want: []string{"My requests (1)", "TCK-1"}, notWant: []string{"TCK-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			srv := fakeAPI(t, tc.role)
			out, err := run(t, srv, "dashboard")
			require.NoError(t, err)
			for _, s := range tc.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSLATriggerSummarizesRun(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdmin)

	out, err := run(t, srv, "sla", "trigger")
	require.NoError(t, err)
	assert.Contains(t, out, "scanned 3 tickets in 1.5s: 1 warnings, 2 breaches")
}

func TestTicketSLAShowsClocks(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdmin)

	out, err := run(t, srv, "tickets", "sla", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "5h0m0s")
	assert.Regexp(t, `OVERALL\s+breaching`, out)
	assert.Regexp(t, `response\s+\S+ \S+\s+met`, out)
	assert.Regexp(t, `resolve\s+\S+ \S+\s+breached`, out)
}

func TestFilterTicketsOrdersByPriorityThenDue(t *testing.T) {
	now := time.Now()
	got := filterTickets([]domain.Ticket{
		{Code: "a", Priority: domain.TicketPriorityP3, DueAt: now},
		{Code: "b", Priority: domain.TicketPriorityP1, DueAt: now.Add(time.Hour)},
		{Code: "c", Priority: domain.TicketPriorityP1, DueAt: now},
	}, func(domain.Ticket) bool { return true })

	codes := []string{got[0].Code, got[1].Code, got[2].Code}
	assert.Equal(t, []string{"c", "b", "a"}, codes)
}
