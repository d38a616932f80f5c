package config

import (
	"strings"
	"testing"
)

const testClientPath = "testdata/client.yaml"

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Sample client file",
			configPath: testClientPath,
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration(testClientPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.CurrentYear != 2025 {
		t.Errorf("Expected CurrentYear = 2025, got %d", config.CurrentYear)
	}
	if config.Logging.Level != "info" {
		t.Errorf("Expected logging level info, got %q", config.Logging.Level)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected output format pretty, got %q", config.Output.Format)
	}

	client := config.Client
	if client.Name != "Jane Doe" {
		t.Errorf("Expected client name Jane Doe, got %q", client.Name)
	}
	// Plain YAML numbers are accepted for decimal-string fields.
	if client.Age != "50" {
		t.Errorf("Expected age \"50\", got %q", client.Age)
	}
	if client.AnnualIncome != "$120,000" {
		t.Errorf("Expected raw annual income to be preserved, got %q", client.AnnualIncome)
	}
	if len(client.Assets) != 3 {
		t.Fatalf("Expected 3 assets, got %d", len(client.Assets))
	}
	if client.Assets[2].Rate != "2.5" {
		t.Errorf("Expected rate \"2.5\", got %q", client.Assets[2].Rate)
	}
	if !client.Assets[0].IsLiquid || client.Assets[1].IsLiquid {
		t.Errorf("Unexpected liquidity flags: %v, %v", client.Assets[0].IsLiquid, client.Assets[1].IsLiquid)
	}
	if len(client.Assets[0].Beneficiaries) != 2 {
		t.Errorf("Expected 2 asset beneficiaries, got %d", len(client.Assets[0].Beneficiaries))
	}
	if len(client.Businesses) != 1 || len(client.Businesses[0].KeyPeople) != 1 || len(client.Businesses[0].Shareholders) != 1 {
		t.Errorf("Business stakeholders not loaded: %+v", client.Businesses)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{
			name:      "Minimal client",
			document:  "client:\n  name: Sam\n  lifeExpectancy: 20\n",
			wantError: false,
		},
		{
			name:      "Empty document",
			document:  "   \n",
			wantError: true,
		},
		{
			name:      "Malformed YAML",
			document:  "client: [unclosed",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfigurationFromReader(strings.NewReader(tt.document))
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfigurationFromReader() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}
			if config.Client.Name != "Sam" {
				t.Errorf("Expected client Sam, got %q", config.Client.Name)
			}
		})
	}

	if _, err := LoadConfigurationFromReader(nil); err == nil {
		t.Errorf("LoadConfigurationFromReader(nil) expected error but got none")
	}
}

func TestConfigurationYear(t *testing.T) {
	config := &Configuration{CurrentYear: 2031}
	if got := config.Year(); got != 2031 {
		t.Errorf("Year() = %d, expected 2031", got)
	}
}

func TestValidateConfiguration(t *testing.T) {
	config, err := LoadConfiguration(testClientPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	// The sample client is internally consistent apart from the home, which
	// is fixed and needs no beneficiaries.
	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	config.Client.Assets[0].Beneficiaries[1].Beneficiary = "Carol"
	warnings := config.ValidateConfiguration()
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "Carol") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a warning naming the unknown beneficiary, got %v", warnings)
	}

	config.Client.Assets[0].InitialValue = "lots"
	warnings = config.ValidateConfiguration()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "initialValue") {
		t.Errorf("Expected a single normalization warning, got %v", warnings)
	}
}
