package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/plan"
)

func init() {
	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's timetable and protocol with logged statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			now := time.Now()
			zone := dates.ZoneFor(now)
			dayType := dates.DayTypeFor(now)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			timetable, err := c.DayLogs().TimetableRange(ctx, now, now)
			if err != nil {
				return err
			}
			protocol, err := c.DayLogs().ProtocolRange(ctx, now, now)
			if err != nil {
				return err
			}
			key := dates.Key(now)

			_, _ = fmt.Fprintf(os.Stdout, "%s  zone=%s  day=%s  (%d days left in zone)\n\n",
				key, zone, dayType, dates.DaysRemainingInZone(now))

			_, _ = fmt.Fprintln(os.Stdout, "Timetable:")
			for _, task := range plan.Timetable(zone, dayType) {
				mark := " "
				if log, ok := timetable[key][task.ID]; ok {
					switch log.Status {
					case model.TaskComplete:
						mark = "x"
					case model.TaskSkipped:
						mark = "-"
					}
				}
				_, _ = fmt.Fprintf(os.Stdout, "  [%s] %-12s %s\n", mark, task.Time, task.Title)
			}

			_, _ = fmt.Fprintln(os.Stdout, "\nProtocol:")
			for _, item := range plan.ProtocolItems(zone, dayType) {
				status := "?"
				if log, ok := protocol[key][item.ID]; ok {
					status = log.Status
				}
				_, _ = fmt.Fprintf(os.Stdout, "  %-8s %s\n", status, item.Label)
			}
			return nil
		},
	}
	rootCmd.AddCommand(todayCmd)
}
