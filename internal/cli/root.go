// Package cli implements the ticketctl commands on top of the API client.
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spec-kit/maintenance-service/internal/client"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

const envPrefix = "TICKETCTL"

// session is shared by every subcommand; the client is built once flags are parsed.
type session struct {
	v      *viper.Viper
	client *client.Client
}

// NewRootCmd builds the ticketctl command tree. Settings resolve flag > TICKETCTL_* env >
// API_URL / API_TIMEOUT_SECONDS defaults.
func NewRootCmd() *cobra.Command {
	s := &session{v: viper.New()}

	root := &cobra.Command{
		Use:           "ticketctl",
		Short:         "Command line client for the maintenance ticket service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "", "API base URL")
	flags.String("token", "", "access token sent as a bearer token")
	flags.Duration("timeout", 0, "request timeout")

	s.v.SetEnvPrefix(envPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()
	for _, name := range []string{"api-url", "token", "timeout"} {
		_ = s.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		loginCmd(s),
		meCmd(s),
		ticketsCmd(s),
		resourceCmd(s, "ticket-events", "ticket events", func(c *client.Client) *client.Resource[domain.TicketEvent] { return c.TicketEvents }, ticketEventColumns),
		resourceCmd(s, "users", "users", func(c *client.Client) *client.Resource[domain.User] { return c.Users }, userColumns),
		resourceCmd(s, "roles", "roles", func(c *client.Client) *client.Resource[domain.Role] { return c.Roles }, roleColumns),
		resourceCmd(s, "locations", "locations", func(c *client.Client) *client.Resource[domain.Location] { return c.Locations }, locationColumns),
		resourceCmd(s, "repair-types", "repair types", func(c *client.Client) *client.Resource[domain.RepairType] { return c.RepairTypes }, repairTypeColumns),
		resourceCmd(s, "surveys", "surveys", func(c *client.Client) *client.Resource[domain.Survey] { return c.Surveys }, surveyColumns),
		resourceCmd(s, "attachments", "attachments", func(c *client.Client) *client.Resource[domain.Attachment] { return c.Attachments }, attachmentColumns),
		slaCmd(s),
		dashboardCmd(s),
	)
	return root
}

func (s *session) connect() error {
	defaults, err := config.Load()
	if err != nil {
		return err
	}
	baseURL := s.v.GetString("api-url")
	if baseURL == "" {
		baseURL = defaults.Client.BaseURL
	}
	if baseURL == "" {
		return errors.New("no API URL: pass --api-url or set TICKETCTL_API_URL")
	}
	timeout := s.v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaults.Client.Timeout()
	}
	s.client = client.New(client.Config{
		BaseURL: baseURL,
		Token:   s.v.GetString("token"),
		Timeout: timeout,
	})
	return nil
}
