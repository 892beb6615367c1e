package cmd

import (
	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/pkg/datetime"
	"github.com/iwvelando/calcsuite/pkg/output"
	"github.com/spf13/cobra"
)

func (a *app) elapsedCommand() *cobra.Command {
	var signed bool

	c := &cobra.Command{
		Use:     "age START [END]",
		Aliases: []string{"elapsed"},
		Short:   "Time elapsed between two dates; END defaults to today",
		Example: `  calcsuite age 1990-01-01
  calcsuite elapsed 2024-03-10 2024-01-01 --signed`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calculator.ElapsedRequest{Start: args[0], Signed: signed}
			if len(args) == 2 {
				req.End = args[1]
			}
			span, err := a.svc.Elapsed(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("Elapsed", span, spanRows(span))
		},
	}
	c.Flags().BoolVar(&signed, "signed", false, "allow END before START and report the span as negative")
	return c
}

func spanRows(s datetime.DateSpan) []output.Row {
	rows := []output.Row{
		output.Int("Years", int64(s.Years)),
		output.Int("Months", int64(s.Months)),
		output.Int("Days", int64(s.Days)),
		output.Int("Weeks", s.Weeks),
		output.Int("Total days", s.TotalDays),
		output.Int("Total hours", s.TotalHours),
		output.Int("Total minutes", s.TotalMinutes),
		output.Int("Total seconds", s.TotalSeconds),
	}
	if s.Negative {
		rows = append(rows, output.Text("Direction", "end precedes start"))
	}
	return rows
}

func (a *app) offsetCommand() *cobra.Command {
	var req calculator.OffsetRequest

	c := &cobra.Command{
		Use:   "offset",
		Short: "Add or subtract years, months, weeks and days from a date",
		Example: `  calcsuite offset --base 2024-01-15 --months 1 --weeks 1 --days 2
  calcsuite offset --days 90 --direction subtract`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.Offset(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("Date offset", result, []output.Row{
				output.Text("Base", result.Base),
				output.Text("Direction", result.Direction),
				output.Text("Date", result.Date),
				output.Text("Weekday", result.Weekday),
			})
		},
	}
	f := c.Flags()
	f.StringVar(&req.Base, "base", "", "starting date (YYYY-MM-DD), defaults to today")
	f.IntVar(&req.Years, "years", 0, "years to move")
	f.IntVar(&req.Months, "months", 0, "months to move")
	f.IntVar(&req.Weeks, "weeks", 0, "weeks to move")
	f.IntVar(&req.Days, "days", 0, "days to move")
	f.StringVar(&req.Direction, "direction", "add", "add or subtract")
	return c
}

func (a *app) pregnancyCommand() *cobra.Command {
	var req calculator.PregnancyRequest

	c := &cobra.Command{
		Use:   "pregnancy",
		Short: "Due date, gestational age and trimester",
		Example: `  calcsuite pregnancy --lmp 2024-01-01
  calcsuite pregnancy --conception 2024-01-15 --reference 2024-04-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			est, err := a.svc.Pregnancy(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("Pregnancy", est, []output.Row{
				output.Text("Last menstrual period", datetime.FormatDate(est.LMP)),
				output.Text("Estimated conception", datetime.FormatDate(est.Conception)),
				output.Text("Due date", datetime.FormatDate(est.DueDate)),
				output.Text("Reference date", datetime.FormatDate(est.Reference)),
				output.Int("Weeks", int64(est.Weeks)),
				output.Int("Days", int64(est.Days)),
				output.Int("Total days", int64(est.TotalDays)),
				output.Int("Days remaining", int64(est.DaysRemaining)),
				output.Text("Trimester", string(est.Trimester)),
			})
		},
	}
	f := c.Flags()
	f.StringVar(&req.LMP, "lmp", "", "first day of the last menstrual period (YYYY-MM-DD)")
	f.StringVar(&req.Conception, "conception", "", "conception date (YYYY-MM-DD), instead of --lmp")
	f.StringVar(&req.Reference, "reference", "", "date to measure gestational age at, defaults to today")
	return c
}
