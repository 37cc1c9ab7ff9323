package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/docuflow-roi/internal/config"
	"github.com/iwvelando/docuflow-roi/internal/scenario"
	"github.com/iwvelando/docuflow-roi/internal/server"
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/output"
	"go.uber.org/zap"
)

// TestMainIntegrationBaseline runs the test configuration exactly as main() does
// and checks the headline figures of every scenario.
func TestMainIntegrationBaseline(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no configuration warnings, got %v", warnings)
	}

	results, err := scenario.Evaluate(logger, *conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	expectedScenarios := []string{"baseline", "high volume", "no savings"}
	if len(results) != len(expectedScenarios) {
		t.Fatalf("Expected %d scenarios, got %d", len(expectedScenarios), len(results))
	}
	for i, expected := range expectedScenarios {
		if results[i].Name != expected {
			t.Errorf("Expected scenario %s, got %s", expected, results[i].Name)
		}
	}

	baselineChecks := []struct {
		scenario     string
		totalSavings float64
		payback      string
		roi          string
	}{
		{"baseline", 61500, "5.1 months", "385.5%"},
		{"high volume", 283500, "2.2 months", "1250.0%"},
		{"no savings", 0, constants.PaybackNotApplicable, constants.NegativeROI},
	}

	for i, check := range baselineChecks {
		result := results[i]
		if math.Abs(result.Output.TotalAnnualSavings-check.totalSavings) > constants.CurrencyTolerance {
			t.Errorf("Scenario '%s': expected total savings %.2f, got %.2f",
				check.scenario, check.totalSavings, result.Output.TotalAnnualSavings)
		}
		if result.Report.PaybackPeriod != check.payback {
			t.Errorf("Scenario '%s': expected payback %q, got %q", check.scenario, check.payback, result.Report.PaybackPeriod)
		}
		if result.Report.ROIPercentage3Year != check.roi {
			t.Errorf("Scenario '%s': expected ROI %q, got %q", check.scenario, check.roi, result.Report.ROIPercentage3Year)
		}
	}
}

// TestExampleConfiguration makes sure the shipped example stays loadable.
func TestExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration("../../" + constants.ExampleConfigFile)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := scenario.Evaluate(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(results))
	}

	// Doubling the volume must not reduce the savings.
	if results[1].Output.TotalAnnualSavings <= results[0].Output.TotalAnnualSavings {
		t.Errorf("expected %s to save more than %s", results[1].Name, results[0].Name)
	}
}

// TestCSVOutputFormat checks the CSV rendering of the test configuration.
func TestCSVOutputFormat(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := scenario.Evaluate(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, constants.OutputFormatCSV, results); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != len(results)+1 {
		t.Fatalf("expected %d CSV records, got %d", len(results)+1, len(records))
	}

	for i, record := range records {
		if len(record) != 9 {
			t.Errorf("CSV line %d should have 9 parts, got %d: %v", i, len(record), record)
		}
	}

	if records[2][0] != "high volume" || records[2][8] != "1250.0" {
		t.Errorf("unexpected high volume row: %v", records[2])
	}
}

// TestPrettyOutputFormat tests the pretty print output
func TestPrettyOutputFormat(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := scenario.Evaluate(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, constants.OutputFormatPretty, results); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	for _, name := range []string{"baseline", "high volume", "no savings"} {
		header := "--- Results for scenario " + name + " ---"
		if !strings.Contains(buf.String(), header) {
			t.Errorf("pretty output missing %q", header)
		}
	}
	if strings.Contains(buf.String(), "retired pilot") {
		t.Error("pretty output should skip inactive scenarios")
	}
}

// TestConfigurationVariations covers configurations that are valid but unusual.
func TestConfigurationVariations(t *testing.T) {
	tests := []struct {
		name          string
		yaml          string
		wantScenarios int
		wantWarnings  int
		wantErr       bool
	}{
		{
			name: "Common inputs only",
			yaml: `
common:
  inputs:
    monthlyDocuments: 10
    timePerDocumentMinutes: 6
    hourlyCost: 30
    implementationCost: 100
`,
			wantScenarios: 1,
		},
		{
			name: "Empty configuration",
			yaml: `
logging:
  level: debug
`,
			wantScenarios: 1,
			wantWarnings:  1,
		},
		{
			name: "No active scenarios",
			yaml: `
common:
  inputs:
    implementationCost: 100
scenarios:
  - name: off
    active: false
`,
			wantScenarios: 0,
			wantWarnings:  1,
		},
		{
			name: "Invalid error rate",
			yaml: `
common:
  inputs:
    manualErrorRatePercent: 120
    implementationCost: 100
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := config.LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}

			if warnings := conf.ValidateConfiguration(); len(warnings) != tt.wantWarnings {
				t.Errorf("expected %d warnings, got %d: %v", tt.wantWarnings, len(warnings), warnings)
			}

			results, err := scenario.Evaluate(zap.NewNop(), *conf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(results) != tt.wantScenarios {
				t.Errorf("expected %d results, got %d", tt.wantScenarios, len(results))
			}
		})
	}
}

// TestServerEndToEnd drives the HTTP API over a real listener.
func TestServerEndToEnd(t *testing.T) {
	cfg, err := server.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	ts := httptest.NewServer(server.NewHandler(zap.NewNop(), cfg.UploadSizeBytes(), "integration"))
	defer ts.Close()

	data, err := os.ReadFile("../test_config.yaml")
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "test_config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	resp, err := http.Post(ts.URL+"/api/scenarios", writer.FormDataContentType(), body)
	if err != nil {
		t.Fatalf("POST /api/scenarios error = %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var decoded struct {
		CSV string `json:"csv"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	results, err := scenario.Evaluate(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if decoded.CSV != output.CsvString(results) {
		t.Errorf("server CSV differs from local CSV:\n%s\n---\n%s", decoded.CSV, output.CsvString(results))
	}

	versionResp, err := http.Get(ts.URL + "/api/version")
	if err != nil {
		t.Fatalf("GET /api/version error = %v", err)
	}
	defer func() {
		_ = versionResp.Body.Close()
	}()

	var version map[string]string
	if err := json.NewDecoder(versionResp.Body).Decode(&version); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}
	if version["version"] != "integration" {
		t.Errorf("expected version integration, got %q", version["version"])
	}
}
