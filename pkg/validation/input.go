package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/docuflow-roi/internal/estimator"
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/mathutil"
)

// ErrInvalidInput is wrapped by every error returned from ValidateInput.
var ErrInvalidInput = errors.New("invalid input")

// InputFields returns the input values keyed by their configuration names,
// in form order.
func InputFields(in estimator.Input) []NamedValue {
	return []NamedValue{
		{"monthlyDocuments", in.MonthlyDocuments},
		{"timePerDocumentMinutes", in.TimePerDocumentMinutes},
		{"hourlyCost", in.HourlyCost},
		{"manualErrorRatePercent", in.ManualErrorRatePercent},
		{"auditPrepTimeHours", in.AuditPrepTimeHours},
		{"annualStorageCost", in.AnnualStorageCost},
		{"annualLegacyIntegrationCost", in.AnnualLegacyIntegrationCost},
		{"implementationCost", in.ImplementationCost},
		{"annualSubscriptionCost", in.AnnualSubscriptionCost},
	}
}

// NamedValue pairs an input name with its value.
type NamedValue struct {
	Name  string
	Value float64
}

// ValidateInput rejects inputs the estimator should not be given: non-finite
// or negative values and an error rate above 100 percent. All problems are
// reported together.
func ValidateInput(in estimator.Input) error {
	var errs []error
	for _, field := range InputFields(in) {
		switch {
		case !mathutil.IsFinite(field.Value):
			errs = append(errs, fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidInput, field.Name, field.Value))
		case field.Value < 0:
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidInput, field.Name, field.Value))
		}
	}

	if mathutil.IsFinite(in.ManualErrorRatePercent) && in.ManualErrorRatePercent > constants.MaxErrorRatePercent {
		errs = append(errs, fmt.Errorf("%w: manualErrorRatePercent must be between 0 and %.0f, got %v",
			ErrInvalidInput, constants.MaxErrorRatePercent, in.ManualErrorRatePercent))
	}

	return errors.Join(errs...)
}

// ValidateOutput reports an error when validated inputs were large enough to
// overflow the estimate. Such an output cannot be serialized as JSON.
func ValidateOutput(out estimator.Output) error {
	for _, v := range []float64{out.TotalAnnualSavings, out.TotalSavings3Years, out.TotalInvestment3Years, out.CurrentAnnualManualProcessingCost} {
		if !mathutil.IsFinite(v) {
			return fmt.Errorf("%w: inputs are too large to estimate", ErrInvalidInput)
		}
	}
	return nil
}
