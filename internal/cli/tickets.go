package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/maintenance-service/internal/client"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

func ticketsCmd(s *session) *cobra.Command {
	cmd := resourceCmd(s, "tickets", "tickets", func(c *client.Client) *client.Resource[domain.Ticket] { return c.Tickets }, ticketColumns)
	cmd.AddCommand(&cobra.Command{
		Use:   "sla <id>",
		Short: "Show the response and resolve clocks of a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := s.client.TicketSLA(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PRIORITY\t%s\n", status.Priority)
			fmt.Fprintf(w, "ELAPSED\t%s\n", humanMs(status.ElapsedMs))
			fmt.Fprintf(w, "OVERALL\t%s\n", overallState(status))
			fmt.Fprintln(w, "CLOCK\tDUE\tSTATE")
			fmt.Fprintf(w, "response\t%s\t%s\n", shortTime(status.Response.DueAt), milestoneState(status.Response))
			fmt.Fprintf(w, "resolve\t%s\t%s\n", shortTime(status.Resolve.DueAt), milestoneState(status.Resolve))
			return w.Flush()
		},
	})
	return cmd
}

func milestoneState(m sla.Milestone) string {
	switch {
	case m.Met:
		return "met"
	case m.Breaching:
		return breachColor("breached")
	case m.AtRisk:
		return warnColor("at risk")
	default:
		return "on time"
	}
}

func overallState(status *sla.Status) string {
	switch {
	case status.Breaching():
		return breachColor("breaching")
	case status.AtRisk():
		return warnColor("at risk")
	default:
		return "ok"
	}
}
