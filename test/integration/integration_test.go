package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/calcsuite/internal/cache"
	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/internal/config"
	"github.com/iwvelando/calcsuite/internal/server"
	"github.com/iwvelando/calcsuite/internal/telemetry"
	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/output"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 5, 15, 0, 0, 0, time.UTC)
}

// newService wires a Service exactly as the serve command does.
func newService(t *testing.T) (*calculator.Service, *config.Configuration) {
	t.Helper()
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	ctx := context.Background()
	results, err := cache.New(ctx, conf.Cache, logger)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = results.Close()
	})

	shutdown, err := telemetry.InitTracing(ctx, conf.Tracing, "test", logger)
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}
	t.Cleanup(func() {
		_ = shutdown(context.Background())
	})

	svc := calculator.New(
		calculator.WithLimits(conf.Limits),
		calculator.WithCache(results),
		calculator.WithLogger(logger),
		calculator.WithClock(fixedClock),
	)
	return svc, conf
}

// TestServiceBaseline checks known values for every calculator against the
// integration configuration.
func TestServiceBaseline(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	baselineChecks := []struct {
		name      string
		calc      func() (float64, error)
		expected  float64
		tolerance float64
	}{
		{"home loan EMI", func() (float64, error) {
			s, err := svc.Loan(ctx, calculator.LoanRequest{Principal: 1000000, AnnualRatePercent: 8.5, TermMonths: 240})
			return s.EMI, err
		}, 8678.23, 0.01},
		{"home loan total interest", func() (float64, error) {
			s, err := svc.Loan(ctx, calculator.LoanRequest{Principal: 1000000, AnnualRatePercent: 8.5, TermMonths: 240})
			return s.TotalInterest, err
		}, 1082775.76, 0.01},
		{"mortgage EMI", func() (float64, error) {
			s, err := svc.Loan(ctx, calculator.LoanRequest{Price: 3000000, DownPayment: 500000, AnnualRatePercent: 9, TermMonths: 360})
			return s.EMI, err
		}, 20115.57, 0.01},
		{"age in days", func() (float64, error) {
			s, err := svc.Elapsed(ctx, calculator.ElapsedRequest{Start: "1990-01-01"})
			return float64(s.TotalDays), err
		}, 12482, 0},
		{"pregnancy days remaining", func() (float64, error) {
			e, err := svc.Pregnancy(ctx, calculator.PregnancyRequest{LMP: "2024-01-01"})
			return float64(e.DaysRemaining), err
		}, 216, 0},
		{"BMI", func() (float64, error) {
			r, err := svc.BMI(ctx, calculator.BMIRequest{WeightKg: 70, HeightCm: 170})
			return r.BMI, err
		}, 24.2215, 0.0001},
		{"BMR male", func() (float64, error) {
			r, err := svc.BMR(ctx, calculator.BMRRequest{Gender: "male", WeightKg: 70, HeightCm: 175, AgeYears: 25})
			return r.BMR, err
		}, 1673.75, 1e-9},
		{"percentage change", func() (float64, error) {
			r, err := svc.PercentageChange(ctx, calculator.PercentageChangeRequest{Old: -50, New: -25})
			return r.ChangePercent, err
		}, 50, 1e-9},
		{"annual compound", func() (float64, error) {
			g, err := svc.Compound(ctx, calculator.CompoundRequest{Principal: 100000, AnnualRatePercent: 10, Years: 5})
			return g.FutureValue, err
		}, 161051, 0.01},
		{"SIP", func() (float64, error) {
			g, err := svc.SIP(ctx, calculator.SIPRequest{MonthlyInvestment: 5000, AnnualReturnPercent: 12, Months: 120})
			return g.FutureValue, err
		}, 1161695.38, 0.01},
		{"GST inclusive", func() (float64, error) {
			b, err := svc.GST(ctx, calculator.GSTRequest{Amount: 1180, RatePercent: 18, Mode: "remove"})
			return b.Net, err
		}, 1000, 1e-9},
	}

	for _, check := range baselineChecks {
		t.Run(check.name, func(t *testing.T) {
			actual, err := check.calc()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(actual-check.expected) > check.tolerance {
				t.Errorf("expected %.4f, got %.4f", check.expected, actual)
			}
		})
	}
}

// TestConfiguredLimits verifies the limits section of the integration
// configuration reaches the calculators.
func TestConfiguredLimits(t *testing.T) {
	svc, conf := newService(t)

	if conf.Limits.MaxTermMonths != 480 {
		t.Fatalf("MaxTermMonths = %d, expected 480", conf.Limits.MaxTermMonths)
	}

	_, err := svc.Loan(context.Background(), calculator.LoanRequest{Principal: 100000, AnnualRatePercent: 9, TermMonths: 600})
	if !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a term over the limit, got %v", err)
	}

	_, err = svc.Compound(context.Background(), calculator.CompoundRequest{Principal: 100, AnnualRatePercent: 75, Years: 1})
	if !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a rate over the limit, got %v", err)
	}
}

// TestHTTPScheduleCached posts the same schedule twice through the HTTP API
// and expects the second answer to come from the cache unchanged.
func TestHTTPScheduleCached(t *testing.T) {
	svc, _ := newService(t)
	srv := httptest.NewServer(server.NewHandler(svc, zap.NewNop(), 0, "test"))
	defer srv.Close()

	hits := promtest.ToFloat64(telemetry.CacheLookups.WithLabelValues("memory", "hit"))

	body := `{"principal":250000,"annualRatePercent":7.25,"termMonths":180,"rounded":true,"firstDueDate":"2024-04-01"}`
	post := func() []byte {
		resp, err := http.Post(srv.URL+"/api/loan/schedule", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, expected 200", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read response: %v", err)
		}
		return data
	}

	first := post()
	second := post()

	if !bytes.Equal(first, second) {
		t.Error("cached schedule differs from the computed one")
	}
	if got := promtest.ToFloat64(telemetry.CacheLookups.WithLabelValues("memory", "hit")) - hits; got != 1 {
		t.Errorf("cache hits = %v, expected 1", got)
	}

	var result struct {
		Installments []struct {
			Period           int     `json:"period"`
			RemainingBalance float64 `json:"remainingBalance"`
		} `json:"installments"`
	}
	if err := json.Unmarshal(first, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(result.Installments) != 180 {
		t.Errorf("installments = %d, expected 180", len(result.Installments))
	}
	if last := result.Installments[len(result.Installments)-1]; last.RemainingBalance != 0 {
		t.Errorf("final balance = %v, expected 0", last.RemainingBalance)
	}
}

// TestCSVOutputFormat renders a schedule with the configured output format.
func TestCSVOutputFormat(t *testing.T) {
	svc, conf := newService(t)

	result, err := svc.Schedule(context.Background(), calculator.ScheduleRequest{
		LoanRequest:  calculator.LoanRequest{Principal: 2500000, AnnualRatePercent: 9, TermMonths: 360},
		FirstDueDate: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	var buf bytes.Buffer
	printer, err := output.NewPrinter(&buf, conf.Output.Format, conf.Output.CurrencySymbol)
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	if err := printer.Schedule(result.Summary, result.Installments); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 361 {
		t.Fatalf("expected header plus 360 rows, got %d", len(lines))
	}
	for _, line := range lines[1:6] {
		parts := strings.Split(line, ",")
		if len(parts) != 6 {
			t.Errorf("CSV line should have 6 parts, got %d: %s", len(parts), line)
		}
		if !strings.HasPrefix(parts[1], `"20`) {
			t.Errorf("CSV due date should start with quoted year: %s", parts[1])
		}
	}
	if !strings.HasPrefix(lines[360], `"360","2053-12-31"`) {
		t.Errorf("unexpected final row %s", lines[360])
	}
}

// TestPrettyOutputFormat renders results with thousands separators.
func TestPrettyOutputFormat(t *testing.T) {
	svc, conf := newService(t)

	summary, err := svc.Loan(context.Background(), calculator.LoanRequest{Principal: 1000000, AnnualRatePercent: 8.5, TermMonths: 240})
	if err != nil {
		t.Fatalf("Loan() error = %v", err)
	}

	var buf bytes.Buffer
	printer, err := output.NewPrinter(&buf, "pretty", conf.Output.CurrencySymbol)
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	if err := printer.Result("Loan EMI", summary, output.SummaryRows(summary)); err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	for _, expected := range []string{"₹1,000,000.00", "₹8,678.23", "240"} {
		if !strings.Contains(buf.String(), expected) {
			t.Errorf("pretty output missing %q\n%s", expected, buf.String())
		}
	}
}
