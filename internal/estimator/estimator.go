// Package estimator computes the annual savings, payback period and
// three-year return of replacing manual document processing with automation.
//
// Estimate is a pure function: it holds no state, never fails and never
// returns NaN or an infinity. Degenerate results are reported through the
// Outcome sentinels instead.
package estimator

import (
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/mathutil"
)

// Input holds the nine figures describing the current manual process and the
// cost of automating it. Amounts are annual unless the name says otherwise.
type Input struct {
	MonthlyDocuments            float64 `json:"monthlyDocuments" yaml:"monthlyDocuments"`
	TimePerDocumentMinutes      float64 `json:"timePerDocumentMinutes" yaml:"timePerDocumentMinutes"`
	HourlyCost                  float64 `json:"hourlyCost" yaml:"hourlyCost"`
	ManualErrorRatePercent      float64 `json:"manualErrorRatePercent" yaml:"manualErrorRatePercent"`
	AuditPrepTimeHours          float64 `json:"auditPrepTimeHours" yaml:"auditPrepTimeHours"`
	AnnualStorageCost           float64 `json:"annualStorageCost" yaml:"annualStorageCost"`
	AnnualLegacyIntegrationCost float64 `json:"annualLegacyIntegrationCost" yaml:"annualLegacyIntegrationCost"`
	ImplementationCost          float64 `json:"implementationCost" yaml:"implementationCost"`
	AnnualSubscriptionCost      float64 `json:"annualSubscriptionCost" yaml:"annualSubscriptionCost"`
}

// Output holds the savings breakdown and the two derived return figures.
// TotalAnnualSavings is always the exact sum of the five savings fields.
type Output struct {
	LaborSavings        float64 `json:"laborSavings"`
	ErrorSavings        float64 `json:"errorSavings"`
	ComplianceSavings   float64 `json:"complianceSavings"`
	StorageSavings      float64 `json:"storageSavings"`
	IntegrationSavings  float64 `json:"integrationSavings"`
	TotalAnnualSavings  float64 `json:"totalAnnualSavings"`
	PaybackPeriodMonths Outcome `json:"paybackPeriodMonths"`
	ROIPercentage3Year  Outcome `json:"roiPercentage3Year"`

	// Intermediate figures kept for reporting.
	CurrentAnnualManualProcessingCost float64 `json:"currentAnnualManualProcessingCost"`
	TotalInvestment3Years             float64 `json:"totalInvestment3Years"`
	TotalSavings3Years                float64 `json:"totalSavings3Years"`
}

// Assumption is one of the fixed reduction factors applied by Estimate.
type Assumption struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Fraction float64 `json:"fraction"`
}

// Assumptions lists the reduction factors in the order Estimate applies them.
func Assumptions() []Assumption {
	return []Assumption{
		{Name: "automationEfficiencyGain", Label: "Manual processing time eliminated", Fraction: constants.AutomationEfficiencyGain},
		{Name: "errorRateReduction", Label: "Manual error cost eliminated", Fraction: constants.ErrorRateReduction},
		{Name: "auditPrepTimeReduction", Label: "Audit preparation cost eliminated", Fraction: constants.AuditPrepTimeReduction},
		{Name: "storageOptimization", Label: "Storage cost eliminated", Fraction: constants.StorageOptimization},
		{Name: "integrationConsolidationSavings", Label: "Legacy integration cost eliminated", Fraction: constants.IntegrationConsolidationSavings},
	}
}

// Estimate computes the savings and returns for in. It performs no rounding;
// negative inputs simply produce correspondingly signed savings.
func Estimate(in Input) Output {
	var out Output

	timePerDocumentHours := in.TimePerDocumentMinutes / constants.MinutesPerHour
	out.CurrentAnnualManualProcessingCost = in.MonthlyDocuments * timePerDocumentHours * in.HourlyCost * constants.MonthsPerYear

	out.LaborSavings = out.CurrentAnnualManualProcessingCost * constants.AutomationEfficiencyGain
	out.ErrorSavings = mathutil.ApplyPercentage(out.CurrentAnnualManualProcessingCost, in.ManualErrorRatePercent) * constants.ErrorRateReduction
	out.ComplianceSavings = in.AuditPrepTimeHours * in.HourlyCost * constants.AuditPrepTimeReduction
	out.StorageSavings = in.AnnualStorageCost * constants.StorageOptimization
	out.IntegrationSavings = in.AnnualLegacyIntegrationCost * constants.IntegrationConsolidationSavings

	out.TotalAnnualSavings = out.LaborSavings + out.ErrorSavings + out.ComplianceSavings + out.StorageSavings + out.IntegrationSavings

	out.PaybackPeriodMonths = NotApplicable()
	if out.TotalAnnualSavings > 0 {
		months := (in.ImplementationCost + in.AnnualSubscriptionCost) / (out.TotalAnnualSavings / constants.MonthsPerYear)
		out.PaybackPeriodMonths = paybackOutcome(months)
	}

	out.TotalInvestment3Years = in.ImplementationCost + in.AnnualSubscriptionCost*constants.ROIHorizonYears
	out.TotalSavings3Years = out.TotalAnnualSavings * constants.ROIHorizonYears
	out.ROIPercentage3Year = UndefinedROI()
	if out.TotalInvestment3Years > 0 {
		roi := mathutil.PercentChange(out.TotalInvestment3Years, out.TotalSavings3Years)
		out.ROIPercentage3Year = roiOutcome(roi)
	}

	return out
}

func paybackOutcome(months float64) Outcome {
	if months < 0 || !mathutil.IsFinite(months) {
		return NotApplicable()
	}
	return Value(months)
}

func roiOutcome(percent float64) Outcome {
	if percent < 0 || !mathutil.IsFinite(percent) {
		return NegativeROI()
	}
	return Value(percent)
}
