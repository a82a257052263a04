// Package client is a Go client for the maintenance API with one Resource per entity.
package client

import (
	"context"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

// Config represents client configuration.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Session is the login response.
type Session struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        domain.User `json:"user"`
	Role        string      `json:"role"`
}

// Profile is the current user as returned by /auth/me.
type Profile struct {
	User domain.User `json:"user"`
	Role string      `json:"role"`
}

// Client holds the shared HTTP session and the per-entity resources.
type Client struct {
	http *resty.Client

	Tickets      *Resource[domain.Ticket]
	TicketEvents *Resource[domain.TicketEvent]
	Users        *Resource[domain.User]
	Roles        *Resource[domain.Role]
	Locations    *Resource[domain.Location]
	RepairTypes  *Resource[domain.RepairType]
	Surveys      *Resource[domain.Survey]
	Attachments  *Resource[domain.Attachment]
}

// New builds a client. Cookies set by the API, including the session cookie, are kept in a
// jar; Token, when set, is sent as a bearer token as well.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	jar, _ := cookiejar.New(nil)
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}

	return &Client{
		http:         rc,
		Tickets:      NewResource(rc, "tickets", "/tickets", func(t *domain.Ticket) string { return t.ID }),
		TicketEvents: NewResource(rc, "ticket events", "/ticket-events", func(e *domain.TicketEvent) string { return e.ID }),
		Users:        NewResource(rc, "users", "/users", func(u *domain.User) string { return u.ID }),
		Roles:        NewResource(rc, "roles", "/roles", func(r *domain.Role) string { return r.ID }),
		Locations:    NewResource(rc, "locations", "/locations", func(l *domain.Location) string { return l.ID }),
		RepairTypes:  NewResource(rc, "repair types", "/repair-types", func(r *domain.RepairType) string { return r.ID }),
		Surveys:      NewResource(rc, "surveys", "/surveys", func(s *domain.Survey) string { return s.ID }),
		Attachments:  NewResource(rc, "attachments", "/attachments", func(a *domain.Attachment) string { return a.ID }),
	}
}

// Login signs in and uses the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	if err := c.do(ctx, resty.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &session, "login failed"); err != nil {
		return nil, err
	}
	c.http.SetAuthToken(session.AccessToken)
	return &session, nil
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, resty.MethodGet, "/auth/me", nil, &profile, "fetch profile failed"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// TicketSLA returns the SLA view of one ticket.
func (c *Client) TicketSLA(ctx context.Context, id string) (*sla.Status, error) {
	var status sla.Status
	if err := c.do(ctx, resty.MethodGet, "/tickets/"+url.PathEscape(id)+"/sla", nil, &status, "fetch ticket SLA failed"); err != nil {
		return nil, err
	}
	return &status, nil
}

// SLAStatistics returns the monitor's compliance report.
func (c *Client) SLAStatistics(ctx context.Context) (*service.SLAStatistics, error) {
	var report service.SLAStatistics
	if err := c.do(ctx, resty.MethodGet, "/sla-monitor/statistics", nil, &report, "fetch SLA statistics failed"); err != nil {
		return nil, err
	}
	return &report, nil
}

// TriggerSLA runs an SLA pass on the server.
func (c *Client) TriggerSLA(ctx context.Context) (*domain.MonitorRun, error) {
	var out struct {
		Run domain.MonitorRun `json:"run"`
	}
	if err := c.do(ctx, resty.MethodPost, "/sla-monitor/trigger", nil, &out, "trigger SLA check failed"); err != nil {
		return nil, err
	}
	return &out.Run, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any, fallback string) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return &APIError{Message: fallback, Err: err}
	}
	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode(), Message: errorMessage(resp.Body(), fallback)}
	}
	return nil
}
