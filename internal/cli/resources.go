package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/maintenance-service/internal/client"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// table describes how records of one entity are printed.
type table[T any] struct {
	headers []string
	row     func(T) []string
}

// resourceCmd builds list/get/create/update/delete subcommands for one entity.
func resourceCmd[T any](s *session, use, label string, pick func(*client.Client) *client.Resource[T], t table[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Manage " + label,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List " + label,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := pick(s.client)
			items := res.FetchAll(cmd.Context())
			if err := stateError(res); err != nil {
				return err
			}
			printTable(cmd.OutOrStdout(), t, items)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := pick(s.client)
			item := res.FetchByID(cmd.Context(), args[0])
			if err := stateError(res); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	})

	var createData string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a record from a JSON object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readPayload(createData)
			if err != nil {
				return err
			}
			res := pick(s.client)
			item := res.Create(cmd.Context(), body)
			if err := stateError(res); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	create.Flags().StringVar(&createData, "data", "", "JSON payload, or @file to read it from a file")
	_ = create.MarkFlagRequired("data")
	cmd.AddCommand(create)

	var updateData string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Apply a partial update from a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(updateData)
			if err != nil {
				return err
			}
			res := pick(s.client)
			item := res.Update(cmd.Context(), args[0], body)
			if err := stateError(res); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	update.Flags().StringVar(&updateData, "data", "", "JSON payload, or @file to read it from a file")
	_ = update.MarkFlagRequired("data")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := pick(s.client)
			if !res.Remove(cmd.Context(), args[0]) {
				return stateError(res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func stateError[T any](res *client.Resource[T]) error {
	if msg := res.State().Error; msg != "" {
		return errors.New(msg)
	}
	return nil
}

// readPayload decodes --data, accepting "@path" for a file.
func readPayload(raw string) (map[string]any, error) {
	if strings.HasPrefix(raw, "@") {
		content, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		raw = string(content)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	return body, nil
}

func printTable[T any](out io.Writer, t table[T], items []T) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.headers, "\t"))
	for _, item := range items {
		fmt.Fprintln(w, strings.Join(t.row(item), "\t"))
	}
	_ = w.Flush()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func shortTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

var (
	ticketColumns = table[domain.Ticket]{
		headers: []string{"ID", "CODE", "PRIORITY", "STATUS", "DUE", "TITLE"},
		row: func(t domain.Ticket) []string {
			return []string{t.ID, t.Code, string(t.Priority), string(t.Status), shortTime(t.DueAt), t.Title}
		},
	}
	ticketEventColumns = table[domain.TicketEvent]{
		headers: []string{"ID", "TICKET", "TYPE", "BY", "AT", "NOTE"},
		row: func(e domain.TicketEvent) []string {
			return []string{e.ID, e.TicketID, string(e.Type), e.CreatedBy, shortTime(e.CreatedAt), e.Note}
		},
	}
	userColumns = table[domain.User]{
		headers: []string{"ID", "EMAIL", "NAME", "ROLE"},
		row: func(u domain.User) []string {
			return []string{u.ID, u.Email, u.Name, orDash(u.RoleID)}
		},
	}
	roleColumns = table[domain.Role]{
		headers: []string{"ID", "NAME"},
		row:     func(r domain.Role) []string { return []string{r.ID, r.Name} },
	}
	locationColumns = table[domain.Location]{
		headers: []string{"ID", "BUILDING", "FLOOR", "ROOM"},
		row: func(l domain.Location) []string {
			return []string{l.ID, l.Building, l.Floor, l.Room}
		},
	}
	repairTypeColumns = table[domain.RepairType]{
		headers: []string{"ID", "NAME", "COLOR", "DESCRIPTION"},
		row: func(r domain.RepairType) []string {
			return []string{r.ID, r.Name, r.Color, r.Description}
		},
	}
	surveyColumns = table[domain.Survey]{
		headers: []string{"ID", "TICKET", "SCORE", "COMMENT"},
		row: func(s domain.Survey) []string {
			return []string{s.ID, s.TicketID, strconv.Itoa(s.Score), s.Comment}
		},
	}
	attachmentColumns = table[domain.Attachment]{
		headers: []string{"ID", "TICKET", "TYPE", "URL"},
		row: func(a domain.Attachment) []string {
			return []string{a.ID, orDash(a.TicketID), string(a.Type), a.URL}
		},
	}
)
