// Package report turns an estimator.Output into the eleven display strings
// shown to the user.
package report

import (
	"github.com/iwvelando/docuflow-roi/internal/estimator"
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/format"
)

// Report holds the formatted results.
type Report struct {
	LaborSavings       string `json:"laborSavings"`
	ErrorSavings       string `json:"errorSavings"`
	ComplianceSavings  string `json:"complianceSavings"`
	StorageSavings     string `json:"storageSavings"`
	IntegrationSavings string `json:"integrationSavings"`
	TotalAnnualSavings string `json:"totalAnnualSavings"`
	PaybackPeriod      string `json:"paybackPeriod"`
	ROIPercentage3Year string `json:"roiPercentage"`

	CurrentManualProcessingCost string `json:"currentManualProcessingCost"`
	TotalInvestment3Years       string `json:"totalInvestment3Years"`
	TotalSavings3Years          string `json:"totalSavings3Years"`
}

// Render formats out. Currency values are rounded to cents, the payback
// period and ROI to one decimal.
func Render(out estimator.Output) Report {
	return Report{
		LaborSavings:       format.Dollars(out.LaborSavings),
		ErrorSavings:       format.Dollars(out.ErrorSavings),
		ComplianceSavings:  format.Dollars(out.ComplianceSavings),
		StorageSavings:     format.Dollars(out.StorageSavings),
		IntegrationSavings: format.Dollars(out.IntegrationSavings),
		TotalAnnualSavings: format.Dollars(out.TotalAnnualSavings),
		PaybackPeriod:      Payback(out.PaybackPeriodMonths),
		ROIPercentage3Year: ROI(out.ROIPercentage3Year),

		CurrentManualProcessingCost: format.Dollars(out.CurrentAnnualManualProcessingCost),
		TotalInvestment3Years:       format.Dollars(out.TotalInvestment3Years),
		TotalSavings3Years:          format.Dollars(out.TotalSavings3Years),
	}
}

// Payback formats a payback period outcome.
func Payback(o estimator.Outcome) string {
	if v, ok := o.Float(); ok {
		return format.Months(v)
	}
	return constants.PaybackNotApplicable
}

// ROI formats a three-year ROI outcome. Negative and undefined returns share
// one display string.
func ROI(o estimator.Outcome) string {
	if v, ok := o.Float(); ok {
		return format.Percent(v)
	}
	return constants.NegativeROI
}

// Fields returns the report as ordered label/value pairs for tabular output.
func (r Report) Fields() [][2]string {
	return [][2]string{
		{"Labor savings", r.LaborSavings},
		{"Error reduction savings", r.ErrorSavings},
		{"Compliance savings", r.ComplianceSavings},
		{"Storage savings", r.StorageSavings},
		{"Integration savings", r.IntegrationSavings},
		{"Total annual savings", r.TotalAnnualSavings},
		{"Payback period", r.PaybackPeriod},
		{"3-year ROI", r.ROIPercentage3Year},
		{"Current manual processing cost", r.CurrentManualProcessingCost},
		{"3-year investment", r.TotalInvestment3Years},
		{"3-year savings", r.TotalSavings3Years},
	}
}
