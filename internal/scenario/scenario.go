// Package scenario runs the estimator over every active scenario of a
// configuration.
package scenario

import (
	"fmt"

	"github.com/iwvelando/docuflow-roi/internal/config"
	"github.com/iwvelando/docuflow-roi/internal/estimator"
	"github.com/iwvelando/docuflow-roi/internal/report"
	"github.com/iwvelando/docuflow-roi/pkg/validation"
	"go.uber.org/zap"
)

// Result holds the estimate for one scenario.
type Result struct {
	Name   string           `json:"name"`
	Input  estimator.Input  `json:"input"`
	Output estimator.Output `json:"output"`
	Report report.Report    `json:"report"`
}

// Evaluate validates and estimates every active scenario in conf. The first
// scenario with invalid inputs, or inputs large enough to overflow, aborts the run.
func Evaluate(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Result
	for _, resolved := range conf.Resolve() {
		if err := validation.ValidateInput(resolved.Input); err != nil {
			return results, fmt.Errorf("scenario %s: %w", resolved.Name, err)
		}

		result := Estimate(resolved.Name, resolved.Input)
		if err := validation.ValidateOutput(result.Output); err != nil {
			return results, fmt.Errorf("scenario %s: %w", resolved.Name, err)
		}
		logger.Debug(fmt.Sprintf("estimated scenario %s", resolved.Name),
			zap.String("op", "scenario.Evaluate"),
			zap.Float64("totalAnnualSavings", result.Output.TotalAnnualSavings),
			zap.Stringer("paybackPeriodMonths", result.Output.PaybackPeriodMonths),
			zap.Stringer("roiPercentage3Year", result.Output.ROIPercentage3Year),
		)
		results = append(results, result)
	}

	return results, nil
}

// Estimate runs the estimator on in without validating it.
func Estimate(name string, in estimator.Input) Result {
	out := estimator.Estimate(in)
	return Result{
		Name:   name,
		Input:  in,
		Output: out,
		Report: report.Render(out),
	}
}
