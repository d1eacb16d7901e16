package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"poppi/services/availability"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability [YYYY-MM-DD | weekday]",
	Short: "List open consultation slots",
	Long: `List the open slots of a day. A weekday name resolves to its next
occurrence after today; no argument means tomorrow.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAvailability,
}

func runAvailability(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	day, err := resolveDay(arg, time.Now())
	if err != nil {
		return err
	}

	resp, err := newCollaborator(cmd).Lookup(cmd.Context(), day)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", resp.Date, day.Weekday())
	if len(resp.AvailableSlots) == 0 {
		fmt.Fprintln(out, "  no open slots")
	}
	for _, s := range resp.AvailableSlots {
		fmt.Fprintf(out, "  %s\n", s.DisplayTime)
	}
	if len(resp.NextAvailableDays) > 0 {
		days := make([]string, 0, len(resp.NextAvailableDays))
		for _, d := range resp.NextAvailableDays {
			days = append(days, fmt.Sprintf("%s %s", d.Day, d.Date))
		}
		fmt.Fprintf(out, "Also try: %s\n", strings.Join(days, ", "))
	}
	return nil
}

// resolveDay accepts a date, a weekday name, or nothing (tomorrow).
func resolveDay(arg string, now time.Time) (time.Time, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		now = now.UTC()
		return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC), nil
	}
	if _, ok := availability.ParseWeekday(arg); ok {
		return availability.NextDateForWeekday(arg, now)
	}
	return availability.ParseDay(arg)
}
