package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

var (
	breachColor = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor   = color.New(color.FgYellow).SprintFunc()
	headerColor = color.New(color.FgCyan, color.Bold).SprintFunc()
)

var priorityColors = map[domain.TicketPriority]func(a ...interface{}) string{
	domain.TicketPriorityP1: color.New(color.FgRed, color.Bold).SprintFunc(),
	domain.TicketPriorityP2: color.New(color.FgYellow).SprintFunc(),
	domain.TicketPriorityP3: color.New(color.FgBlue).SprintFunc(),
	domain.TicketPriorityP4: fmt.Sprint,
}

// dashboardCmd prints the view that matches the signed-in user's role.
func dashboardCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			profile, err := s.client.Me(ctx)
			if err != nil {
				return err
			}
			tickets := s.client.Tickets.FetchAll(ctx)
			if err := stateError(s.client.Tickets); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			me := profile.User.ID

			switch profile.Role {
			case domain.RoleAdmin, domain.RoleSupervisor:
				report, err := s.client.SLAStatistics(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, headerColor("SLA compliance"))
				printStatistics(out, report)
				fmt.Fprintln(out)
				printTickets(out, "Open tickets", filterTickets(tickets, func(t domain.Ticket) bool {
					return !t.Status.Done()
				}))
			case domain.RoleTechnician:
				printTickets(out, "Assigned to me", filterTickets(tickets, func(t domain.Ticket) bool {
					return t.TechnicianID != nil && *t.TechnicianID == me && !t.Status.Done()
				}))
			default:
				printTickets(out, "My requests", filterTickets(tickets, func(t domain.Ticket) bool {
					return t.RequesterID != nil && *t.RequesterID == me
				}))
			}
			return nil
		},
	}
}

func filterTickets(tickets []domain.Ticket, keep func(domain.Ticket) bool) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}

func printTickets(out io.Writer, title string, tickets []domain.Ticket) {
	fmt.Fprintf(out, "%s (%d)\n", headerColor(title), len(tickets))
	if len(tickets) == 0 {
		return
	}
	printTable(out, table[domain.Ticket]{
		headers: ticketColumns.headers,
		row: func(t domain.Ticket) []string {
			row := ticketColumns.row(t)
			if paint, ok := priorityColors[t.Priority]; ok {
				row[2] = paint(row[2])
			}
			return row
		},
	}, tickets)
}
