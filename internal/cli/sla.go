package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/maintenance-service/internal/service"
)

func slaCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sla",
		Short: "Inspect and drive the SLA monitor",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show SLA compliance per ticket group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := s.client.SLAStatistics(cmd.Context())
			if err != nil {
				return err
			}
			printStatistics(cmd.OutOrStdout(), report)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "trigger",
		Short: "Run an SLA check now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run, err := s.client.TriggerSLA(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if run.Skipped {
				fmt.Fprintln(out, "skipped: another check is running")
				return nil
			}
			fmt.Fprintf(out, "scanned %d tickets in %s: %d warnings, %s\n",
				run.Scanned, humanMs(run.DurationMs), run.Warnings, breachCount(run.Breaches))
			if run.Error != "" {
				fmt.Fprintf(out, "error: %s\n", run.Error)
			}
			return nil
		},
	})
	return cmd
}

func printStatistics(out io.Writer, report *service.SLAStatistics) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tTOTAL\tWITH SLA\tRESPONSE\tRESOLVE")
	names := make([]string, 0, len(report.Groups))
	for name := range report.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g := report.Groups[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", name, g.Total, g.WithSLA,
			g.ResponseSLA.ComplianceRate, g.ResolveSLA.ComplianceRate)
	}
	_ = w.Flush()
	fmt.Fprintf(out, "overall %s across %d tickets, %s\n",
		report.Summary.Overall, report.Summary.TotalTickets, breachCount(report.Summary.BreachedTotal))
}

func breachCount(n int) string {
	label := fmt.Sprintf("%d breaches", n)
	if n > 0 {
		return breachColor(label)
	}
	return label
}

func humanMs(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Millisecond).String()
}
