package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/thislife/planner/internal/dates"
)

func init() {
	var fromFlag, toFlag string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate completion, streaks, and revenue over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := dates.ParseKey(fromFlag)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			to, err := dates.ParseKey(toFlag)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			report, err := c.Report(ctx, from, to)
			if err != nil {
				return err
			}

			s := report.Summary
			_, _ = fmt.Fprintf(os.Stdout, "%s .. %s  (%d days)\n", fromFlag, toFlag, len(s.Days))
			_, _ = fmt.Fprintf(os.Stdout, "average completion: %d%%\n", s.AverageCompletion)
			if s.BestDay != nil {
				_, _ = fmt.Fprintf(os.Stdout, "best day:           %s (%d%%)\n", s.BestDay.Date, s.BestDay.CompletionPct)
			}
			_, _ = fmt.Fprintf(os.Stdout, "best streak:        %d\n", s.BestStreak)
			_, _ = fmt.Fprintf(os.Stdout, "current streak:     %d\n", s.CurrentStreak)
			_, _ = fmt.Fprintf(os.Stdout, "connections:        %d\n", s.TotalConnections)

			if len(report.Weekly) > 0 {
				_, _ = fmt.Fprintln(os.Stdout, "\nWeeks:")
				for _, w := range report.Weekly {
					_, _ = fmt.Fprintf(os.Stdout, "  %s  avg=%3d%%  connections=%d  protocol=%.0f%%\n",
						w.Key, w.AverageCompletion, w.Connections, w.ProtocolPassRate*100)
				}
			}
			if len(report.Monthly) > 0 {
				_, _ = fmt.Fprintln(os.Stdout, "\nMonths:")
				for _, m := range report.Monthly {
					_, _ = fmt.Fprintf(os.Stdout, "  %s  avg=%3d%%  connections=%d  protocol=%.0f%%\n",
						m.Key, m.AverageCompletion, m.Connections, m.ProtocolPassRate*100)
				}
			}
			if len(report.Revenue) > 0 {
				_, _ = fmt.Fprintln(os.Stdout, "\nRevenue:")
				for _, b := range report.Revenue {
					_, _ = fmt.Fprintf(os.Stdout, "  %s  total=%.2f\n", b.Name, b.Total)
					for _, m := range sortedMonthKeys(b.MonthlyTotals) {
						_, _ = fmt.Fprintf(os.Stdout, "    %s  %.2f\n", m, b.MonthlyTotals[m])
					}
				}
			}
			return nil
		},
	}
	reportCmd.Flags().StringVar(&fromFlag, "from", "", "Range start, yyyy-mm-dd (required)")
	reportCmd.Flags().StringVar(&toFlag, "to", "", "Range end, yyyy-mm-dd (required)")
	_ = reportCmd.MarkFlagRequired("from")
	_ = reportCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(reportCmd)
}

func sortedMonthKeys(totals map[string]float64) []string {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
