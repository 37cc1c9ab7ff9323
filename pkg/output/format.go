// Package output provides utilities for formatting and displaying estimate results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/docuflow-roi/internal/estimator"
	"github.com/iwvelando/docuflow-roi/internal/report"
	"github.com/iwvelando/docuflow-roi/internal/scenario"
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders results in the named format.
func Write(w io.Writer, format string, results []scenario.Result) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	}
	return validation.ValidateOutputFormat(format)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []scenario.Result) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if _, err := fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "Input                          | Value\n")
		_, _ = fmt.Fprintf(w, "_____                          | _____\n")
		for _, field := range validation.InputFields(result.Input) {
			_, _ = p.Fprintf(w, "%-30s | %.2f\n", field.Name, field.Value)
		}
		_, _ = fmt.Fprintf(w, "\n")

		_, _ = fmt.Fprintf(w, "Result                         | Value\n")
		_, _ = fmt.Fprintf(w, "______                         | _____\n")
		for _, field := range result.Report.Fields() {
			_, _ = fmt.Fprintf(w, "%-30s | %s\n", field[0], field[1])
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}

	if len(results) > 0 {
		_, _ = fmt.Fprintf(w, "\nAssumptions:\n")
		for _, a := range estimator.Assumptions() {
			_, _ = p.Fprintf(w, "  %s: %.0f%%\n", a.Label, a.Fraction*constants.PercentageMultiplier)
		}
	}
	return nil
}

var csvHeader = []string{
	"scenario",
	"laborSavings",
	"errorSavings",
	"complianceSavings",
	"storageSavings",
	"integrationSavings",
	"totalAnnualSavings",
	"paybackPeriodMonths",
	"roiPercentage3Year",
}

// CsvFormat outputs in comma-separated value format. Sentinel results are
// written as their display strings.
func CsvFormat(w io.Writer, results []scenario.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		out := result.Output
		record := []string{
			result.Name,
			fmt.Sprintf("%.2f", out.LaborSavings),
			fmt.Sprintf("%.2f", out.ErrorSavings),
			fmt.Sprintf("%.2f", out.ComplianceSavings),
			fmt.Sprintf("%.2f", out.StorageSavings),
			fmt.Sprintf("%.2f", out.IntegrationSavings),
			fmt.Sprintf("%.2f", out.TotalAnnualSavings),
			csvOutcome(out.PaybackPeriodMonths, report.Payback),
			csvOutcome(out.ROIPercentage3Year, report.ROI),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvOutcome(o estimator.Outcome, sentinel func(estimator.Outcome) string) string {
	if v, ok := o.Float(); ok {
		return fmt.Sprintf("%.1f", v)
	}
	return sentinel(o)
}

// CsvString returns the CSV representation of results.
func CsvString(results []scenario.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs results as an indented JSON array.
func JSONFormat(w io.Writer, results []scenario.Result) error {
	if results == nil {
		results = []scenario.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
