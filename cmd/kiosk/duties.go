package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/duty"

	"github.com/spf13/cobra"
)

func newDutiesCmd(k *kiosk) *cobra.Command {
	var (
		date      string
		specialty string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "duties",
		Short: "Refresh and print the hospitals on duty for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := duty.DateOf(nowIn(k.cfg.Location))
			if date != "" {
				var err error
				if day, err = duty.ParseDate(date); err != nil {
					return err
				}
			}

			report := k.service.Refresh(cmd.Context(), day.In(k.cfg.Location))
			records := k.service.Store().FilterBySpecialty(specialty)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printDuties(out, report, records)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Duty day (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&specialty, "specialty", "", "Greek specialty name, all when empty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func printDuties(out io.Writer, report app.RefreshReport, records []duty.Record) error {
	fmt.Fprintf(out, "%s  origin=%s status=%s records=%d\n", report.Date, report.Origin, report.Status, len(records))
	if report.SourceLabel != "" {
		fmt.Fprintf(out, "source: %s\n", report.SourceLabel)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPECIALTY\tTIME SLOT\tHOSPITAL\tAREA\tPHONE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Specialty, r.TimeSlot, r.Name, r.Area, r.Phone)
	}
	return tw.Flush()
}
