package cmd

import (
	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/pkg/formulas"
	"github.com/iwvelando/calcsuite/pkg/output"
	"github.com/spf13/cobra"
)

func (a *app) bmiCommand() *cobra.Command {
	var req calculator.BMIRequest

	c := &cobra.Command{
		Use:     "bmi",
		Short:   "Body mass index and WHO weight class",
		Example: "  calcsuite bmi --weight 70 --height 170",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.BMI(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("BMI", result, []output.Row{
				output.Number("BMI", result.BMI, 2),
				output.Text("Category", string(result.Category)),
			})
		},
	}
	c.Flags().Float64Var(&req.WeightKg, "weight", 0, "weight in kilograms")
	c.Flags().Float64Var(&req.HeightCm, "height", 0, "height in centimetres")
	return c
}

func (a *app) bmrCommand() *cobra.Command {
	var req calculator.BMRRequest

	c := &cobra.Command{
		Use:     "bmr",
		Short:   "Basal metabolic rate (Mifflin-St Jeor)",
		Example: "  calcsuite bmr --gender female --weight 60 --height 165 --age 30",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.BMR(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("BMR", result, []output.Row{
				output.Number("BMR (kcal/day)", result.BMR, 1),
			})
		},
	}
	f := c.Flags()
	f.StringVar(&req.Gender, "gender", "", "male or female")
	f.Float64Var(&req.WeightKg, "weight", 0, "weight in kilograms")
	f.Float64Var(&req.HeightCm, "height", 0, "height in centimetres")
	f.Float64Var(&req.AgeYears, "age", 0, "age in years")
	return c
}

func (a *app) changeCommand() *cobra.Command {
	var req calculator.PercentageChangeRequest

	c := &cobra.Command{
		Use:     "change",
		Short:   "Percentage change from an old value to a new one",
		Example: "  calcsuite change --old 80 --new 60",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.PercentageChange(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("Percentage change", result, []output.Row{
				output.Percent("Change", result.ChangePercent),
			})
		},
	}
	c.Flags().Float64Var(&req.Old, "old", 0, "original value")
	c.Flags().Float64Var(&req.New, "new", 0, "new value")
	return c
}

func growthRows(g formulas.Growth) []output.Row {
	return []output.Row{
		output.Money("Invested", g.Invested),
		output.Money("Gains", g.Gains),
		output.Money("Future value", g.FutureValue),
	}
}

func (a *app) compoundCommand() *cobra.Command {
	var req calculator.CompoundRequest

	c := &cobra.Command{
		Use:   "compound",
		Short: "Compound (or simple) interest growth of a lump sum",
		Example: `  calcsuite compound --principal 10000 --rate 8 --years 5 --times-per-year 4
  calcsuite compound --principal 10000 --rate 8 --years 5 --simple`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.Compound(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("Compound interest", result, growthRows(result))
		},
	}
	f := c.Flags()
	f.Float64Var(&req.Principal, "principal", 0, "amount invested")
	f.Float64Var(&req.AnnualRatePercent, "rate", 0, "annual interest rate in percent")
	f.Float64Var(&req.Years, "years", 0, "investment period in years")
	f.IntVar(&req.TimesPerYear, "times-per-year", 1, "compounding periods per year")
	f.BoolVar(&req.Simple, "simple", false, "use simple interest")
	return c
}

func (a *app) sipCommand() *cobra.Command {
	var req calculator.SIPRequest

	c := &cobra.Command{
		Use:     "sip",
		Short:   "Future value of a monthly systematic investment plan",
		Example: "  calcsuite sip --monthly 5000 --rate 12 --months 120",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.SIP(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("SIP", result, growthRows(result))
		},
	}
	f := c.Flags()
	f.Float64Var(&req.MonthlyInvestment, "monthly", 0, "amount invested every month")
	f.Float64Var(&req.AnnualReturnPercent, "rate", 0, "expected annual return in percent")
	f.IntVar(&req.Months, "months", 0, "number of monthly installments")
	return c
}

func (a *app) gstCommand() *cobra.Command {
	var req calculator.GSTRequest

	c := &cobra.Command{
		Use:   "gst",
		Short: "Add GST to a net amount or remove it from a gross one",
		Example: `  calcsuite gst --amount 1000 --rate 18
  calcsuite gst --amount 1180 --rate 18 --mode remove`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.svc.GST(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printer.Result("GST", result, []output.Row{
				output.Money("Net amount", result.Net),
				output.Money("GST", result.Tax),
				output.Money("Gross amount", result.Gross),
			})
		},
	}
	f := c.Flags()
	f.Float64Var(&req.Amount, "amount", 0, "amount to add GST to or remove it from")
	f.Float64Var(&req.RatePercent, "rate", 0, "GST rate in percent")
	f.StringVar(&req.Mode, "mode", "add", "add or remove")
	return c
}
