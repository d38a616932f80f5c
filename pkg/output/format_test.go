package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iwvelando/advisor-forecast/internal/report"
	"github.com/iwvelando/advisor-forecast/pkg/format"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
	"github.com/iwvelando/advisor-forecast/pkg/testutil"
)

func sampleReport(t *testing.T) *report.Report {
	t.Helper()
	r, err := report.GenerateWithFixedYear(nil, testutil.SampleClient(), 2025)
	if err != nil {
		t.Fatalf("GenerateWithFixedYear() error = %v", err)
	}
	return r
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleReport(t))
	output := buf.String()

	expected := []string{
		"--- Report for Jane Doe (2025) ---",
		"Name | Kind | Bucket | Years | Current | Projected",
		"Savings | Cash | liquid | 10 | $100,000.00 | $100,000.00",
		"Liquid         | $100,000.00 | $100,000.00",
		"RealEstate: $1,050,000.00",
		"Businesses: $600,000.00",
		"Proposed budget: $8,000.00 (within the recommended range)",
		"Beneficiaries (realizable",
		"Goals: $75,000.00 ($25,000.00 philanthropic), surplus/shortfall -$35,000.00",
		"OpCo | CTO | key person | $60,500.00 | 100% | $60,500.00 | $0.00",
		"Income replacement: need $3,600,000.00, 50% priority, want $1,800,000.00",
		"Tax freeze in 2030 (5 years)",
		"Year | Assets | Liabilities | Net",
		"2010 | $300,000.00 | $0.00 | $300,000.00",
		"Warnings",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
}

func TestPrettyFormatRealizableTotals(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	PrettyFormat(&buf, r)

	want := fmt.Sprintf("Realizable     | %s | %s",
		format.Currency(r.Totals.CurrentLiquid+r.Totals.CurrentToBeSold),
		format.Currency(r.Totals.FutureLiquid+r.Totals.FutureToBeSold))
	if !strings.Contains(buf.String(), want) {
		t.Errorf("PrettyFormat output missing %q", want)
	}
}

func TestPrettyFormatEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, &report.Report{ClientName: "Empty", Year: 2025})
	output := buf.String()

	if !strings.Contains(output, "--- Report for Empty (2025) ---") {
		t.Errorf("PrettyFormat missing header")
	}
	for _, absent := range []string{"Business insurance", "Tax freeze", "Warnings", "Year | Assets"} {
		if strings.Contains(output, absent) {
			t.Errorf("PrettyFormat should omit %q for an empty report", absent)
		}
	}

	buf.Reset()
	PrettyFormat(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("PrettyFormat(nil) wrote %q", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	r := &report.Report{
		Timeline: []growth.Row{
			{Year: 2024, Entries: []growth.Entry{{Name: "Cash", Value: 100}}, Assets: 100},
			{Year: 2025, Entries: []growth.Entry{
				{Name: "Cash", Value: 110},
				{Name: "Loan", Value: 50, Liability: true},
			}, Assets: 110, Liabilities: 50},
		},
	}

	output, err := CsvString(r)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	expected := []string{
		"year,assets,liabilities,net,Cash,Loan",
		"2024,100.00,0.00,100.00,100.00,",
		"2025,110.00,50.00,60.00,110.00,50.00",
	}
	if len(lines) != len(expected) {
		t.Fatalf("CsvString() got %d lines, expected %d: %q", len(lines), len(expected), output)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestCsvFormatQuotesNames(t *testing.T) {
	r := &report.Report{
		Timeline: []growth.Row{
			{Year: 2025, Entries: []growth.Entry{{Name: "Cash, savings", Value: 1}}, Assets: 1},
		},
	}
	output, err := CsvString(r)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if !strings.Contains(output, `"Cash, savings"`) {
		t.Errorf("expected quoted column name, got %q", output)
	}
}

func TestCsvFormatEmptyReport(t *testing.T) {
	output, err := CsvString(nil)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if output != "year,assets,liabilities,net\n" {
		t.Errorf("CsvString(nil) = %q", output)
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	s, err := CsvString(r)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if buf.String() != s {
		t.Errorf("CsvString() and CsvFormat() differ")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, sampleReport(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat() produced invalid JSON: %v", err)
	}
	if decoded["clientName"] != "Jane Doe" {
		t.Errorf("clientName = %v", decoded["clientName"])
	}
	if _, ok := decoded["taxFreeze"]; !ok {
		t.Errorf("expected taxFreeze in JSON output")
	}
	totals, ok := decoded["totals"].(map[string]interface{})
	if !ok || totals["currentLiquid"] != 100000.0 {
		t.Errorf("expected camelCase totals, got %v", decoded["totals"])
	}
}
