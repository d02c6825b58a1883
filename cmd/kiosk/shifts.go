package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hospital_duty_kiosk/internal/app"
	"hospital_duty_kiosk/internal/domain/duty"
	"hospital_duty_kiosk/internal/domain/shift"

	"github.com/spf13/cobra"
)

func newShiftsCmd(k *kiosk) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "Manage the cardiology clinic's monthly on-call roster",
	}
	cmd.AddCommand(newShiftsImportCmd(k), newShiftsSetCmd(k), newShiftsShowCmd(k))
	return cmd
}

func newShiftsImportCmd(k *kiosk) *cobra.Command {
	var (
		confirm bool
		month   string
	)

	cmd := &cobra.Command{
		Use:   "import <file.docx>",
		Short: "Import a DOCX roster and save it as the shift snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			expected := nowIn(k.cfg.Location)
			if month != "" {
				if expected, err = time.ParseInLocation("2006-01", month, k.cfg.Location); err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", month)
				}
			}

			set, err := k.service.ImportShifts(cmd.Context(), raw, expected, confirm)
			var mismatch *app.PeriodMismatchError
			if errors.As(err, &mismatch) {
				return fmt.Errorf("%w; rerun with --confirm to import it anyway", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported roster %s with %d days into %s\n",
				set.Period(), len(set.Days), k.cfg.ShiftSnapshotPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Import even when the roster is for another month")
	cmd.Flags().StringVar(&month, "month", "", "Expected roster month (YYYY-MM), defaults to the current month")
	return cmd
}

func newShiftsSetCmd(k *kiosk) *cobra.Command {
	fields := []string{string(shift.FieldAttendings)}
	for _, f := range shift.RoleFields() {
		fields = append(fields, string(f))
	}

	return &cobra.Command{
		Use:   "set <day> <field> [value...]",
		Short: "Correct one field of the saved roster; an empty value clears a role",
		Long:  "Fields: " + strings.Join(fields, ", ") + "\nAttendings take a comma separated list.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day %q", args[0])
			}
			field, err := shift.ParseField(args[1])
			if err != nil {
				return err
			}

			k.loadShifts()
			d, err := k.service.UpdateShift(cmd.Context(), day, field, strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s: %s\n", d.Day, d.MonthName, d.Summary())
			return nil
		},
	}
}

func newShiftsShowCmd(k *kiosk) *cobra.Command {
	return &cobra.Command{
		Use:   "show [YYYY-MM-DD]",
		Short: "Print the saved roster entry for a day, today by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := nowIn(k.cfg.Location)
			if len(args) == 1 {
				d, err := duty.ParseDate(args[0])
				if err != nil {
					return err
				}
				date = d.In(k.cfg.Location)
			}

			k.loadShifts()
			d := k.service.Store().ShiftFor(date)
			if d == nil {
				return fmt.Errorf("no roster entry for %s", duty.DateOf(date))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", duty.DateOf(date), d.Weekday, d.Summary())
			return nil
		},
	}
}
