package cmd

import (
	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/output"
	"github.com/spf13/cobra"
)

// loanFlags registers the loan term flags shared by emi and schedule.
func loanFlags(cmd *cobra.Command, req *calculator.LoanRequest, years *int) {
	f := cmd.Flags()
	f.Float64Var(&req.Principal, "principal", 0, "loan amount")
	f.Float64Var(&req.Price, "price", 0, "purchase price, financed as price minus --down-payment")
	f.Float64Var(&req.DownPayment, "down-payment", 0, "down payment against --price")
	f.Float64Var(&req.AnnualRatePercent, "rate", 0, "annual interest rate in percent")
	f.IntVar(&req.TermMonths, "months", 0, "term in months")
	f.IntVar(years, "years", 0, "term in years, used when --months is not set")
}

func termMonths(req *calculator.LoanRequest, years int) {
	if req.TermMonths == 0 && years != 0 {
		req.TermMonths = years * constants.MonthsPerYear
	}
}

func (a *app) emiCommand() *cobra.Command {
	var req calculator.LoanRequest
	var years int

	c := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly installment of a loan",
		Example: `  calcsuite emi --principal 1000000 --rate 8.5 --years 20
  calcsuite emi --price 500000 --down-payment 100000 --rate 9 --months 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			termMonths(&req, years)
			summary, err := a.svc.Loan(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("Loan EMI", summary, output.SummaryRows(summary))
		},
	}
	loanFlags(c, &req, &years)
	return c
}

func (a *app) scheduleCommand() *cobra.Command {
	var req calculator.ScheduleRequest
	var years int

	c := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of a loan",
		Example: `  calcsuite schedule --principal 100000 --rate 12 --months 12 --rounded
  calcsuite schedule --principal 100000 --rate 12 --years 1 --first-due 2024-01-31 --output-format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			termMonths(&req.LoanRequest, years)
			result, err := a.svc.Schedule(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Schedule(result.Summary, result.Installments)
		},
	}
	loanFlags(c, &req.LoanRequest, &years)
	c.Flags().BoolVar(&req.Rounded, "rounded", false, "round every installment to whole cents")
	c.Flags().StringVar(&req.FirstDueDate, "first-due", "", "date of the first installment (YYYY-MM-DD)")
	return c
}
