// Package config defines the data structures related to configuration and
// includes functions for loading, validating and normalizing a client file.
package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/iwvelando/advisor-forecast/pkg/datetime"
	"github.com/iwvelando/advisor-forecast/pkg/validation"
)

// Configuration holds all configuration for advisor-forecast.
type Configuration struct {
	Client      ClientConfig  `yaml:"client"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	CurrentYear int           `yaml:"currentYear,omitempty"` // pins the projection year; 0 uses the clock
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// ClientConfig is the raw client record. Numeric fields are kept as the
// decimal strings the advisor typed; ToClient normalizes them.
type ClientConfig struct {
	ID                             string              `yaml:"id,omitempty"`
	Name                           string              `yaml:"name"`
	AnnualIncome                   string              `yaml:"annualIncome,omitempty"`
	Age                            string              `yaml:"age,omitempty"`
	LifeExpectancy                 string              `yaml:"lifeExpectancy,omitempty"`
	TaxFreezeAtYear                string              `yaml:"taxFreezeAtYear,omitempty"`
	LiquidityAllocatedTowardsGoals string              `yaml:"liquidityAllocatedTowardsGoals,omitempty"`
	Province                       string              `yaml:"province,omitempty"`
	Budget                         string              `yaml:"budget,omitempty"`
	Beneficiaries                  []BeneficiaryConfig `yaml:"beneficiaries,omitempty"`
	Assets                         []AssetConfig       `yaml:"assets,omitempty"`
	Debts                          []DebtConfig        `yaml:"debts,omitempty"`
	Businesses                     []BusinessConfig    `yaml:"businesses,omitempty"`
	Goals                          []GoalConfig        `yaml:"goals,omitempty"`
	Purposes                       []PurposeConfig     `yaml:"purposes,omitempty"`
}

// BeneficiaryConfig is an heir with a relative allocation weight.
type BeneficiaryConfig struct {
	ID         string `yaml:"id,omitempty"`
	Name       string `yaml:"name"`
	Allocation string `yaml:"allocation,omitempty"`
}

// AssetConfig is a held asset.
type AssetConfig struct {
	ID            string                   `yaml:"id,omitempty"`
	Name          string                   `yaml:"name"`
	Type          string                   `yaml:"type"`
	YearAcquired  string                   `yaml:"yearAcquired,omitempty"`
	InitialValue  string                   `yaml:"initialValue,omitempty"`
	CurrentValue  string                   `yaml:"currentValue,omitempty"`
	Rate          string                   `yaml:"rate,omitempty"`
	Term          string                   `yaml:"term,omitempty"`
	IsTaxable     bool                     `yaml:"isTaxable,omitempty"`
	IsLiquid      bool                     `yaml:"isLiquid,omitempty"`
	ToBeSold      bool                     `yaml:"toBeSold,omitempty"`
	Beneficiaries []AssetBeneficiaryConfig `yaml:"beneficiaries,omitempty"`
}

// AssetBeneficiaryConfig assigns part of an asset to a beneficiary, which
// is referenced by id or by name.
type AssetBeneficiaryConfig struct {
	Beneficiary string `yaml:"beneficiary"`
	Allocation  string `yaml:"allocation"`
}

// DebtConfig is an amortizing debt.
type DebtConfig struct {
	ID            string `yaml:"id,omitempty"`
	Name          string `yaml:"name"`
	InitialValue  string `yaml:"initialValue,omitempty"`
	Rate          string `yaml:"rate,omitempty"`
	AnnualPayment string `yaml:"annualPayment,omitempty"`
	YearAcquired  string `yaml:"yearAcquired,omitempty"`
	Term          string `yaml:"term,omitempty"`
}

// BusinessConfig is a business the client holds a stake in.
type BusinessConfig struct {
	ID                      string              `yaml:"id,omitempty"`
	Name                    string              `yaml:"name"`
	Valuation               string              `yaml:"valuation,omitempty"`
	Ebitda                  string              `yaml:"ebitda,omitempty"`
	AppreciationRate        string              `yaml:"appreciationRate,omitempty"`
	ClientSharePercentage   string              `yaml:"clientSharePercentage,omitempty"`
	ClientEbitdaContributed string              `yaml:"clientEbitdaContributed,omitempty"`
	Term                    string              `yaml:"term,omitempty"`
	ToBeSold                bool                `yaml:"toBeSold,omitempty"`
	InsuranceCoverage       string              `yaml:"insuranceCoverage,omitempty"`
	Priority                string              `yaml:"priority,omitempty"`
	KeyPeople               []KeyPersonConfig   `yaml:"keyPeople,omitempty"`
	Shareholders            []ShareholderConfig `yaml:"shareholders,omitempty"`
}

// KeyPersonConfig is a key person of a business.
type KeyPersonConfig struct {
	ID                           string `yaml:"id,omitempty"`
	Name                         string `yaml:"name"`
	EbitdaContributionPercentage string `yaml:"ebitdaContributionPercentage,omitempty"`
	InsuranceCoverage            string `yaml:"insuranceCoverage,omitempty"`
	Priority                     string `yaml:"priority,omitempty"`
}

// ShareholderConfig is a co-owner of a business.
type ShareholderConfig struct {
	ID                string `yaml:"id,omitempty"`
	Name              string `yaml:"name"`
	SharePercentage   string `yaml:"sharePercentage,omitempty"`
	InsuranceCoverage string `yaml:"insuranceCoverage,omitempty"`
	Priority          string `yaml:"priority,omitempty"`
}

// GoalConfig is a funding goal.
type GoalConfig struct {
	ID              string `yaml:"id,omitempty"`
	Name            string `yaml:"name"`
	Amount          string `yaml:"amount,omitempty"`
	IsPhilanthropic bool   `yaml:"isPhilanthropic,omitempty"`
}

// PurposeConfig is one line of the client's Total Insurable Needs. Amount
// overrides the derived need when set.
type PurposeConfig struct {
	ID       string `yaml:"id,omitempty"`
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Amount   string `yaml:"amount,omitempty"`
	Priority string `yaml:"priority,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// such as an uploaded client file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	if r == nil {
		return nil, fmt.Errorf("error reading config: nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("error reading config: empty document")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Year returns the projection year: CurrentYear when pinned, otherwise the
// wall-clock year.
func (c *Configuration) Year() int {
	return datetime.ProviderFor(c.CurrentYear).Year()
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. A configuration that fails normalization yields a
// single warning carrying the error; ToClient reports it as a hard failure.
func (c *Configuration) ValidateConfiguration() []string {
	client, err := c.ToClient()
	if err != nil {
		return []string{err.Error()}
	}

	validator := validation.NewClientValidator(c.Year())
	warnings := validator.ValidateClient(client)

	// Unresolvable references are lost during normalization, so they are
	// checked against the raw record.
	known := make(map[string]bool, 2*len(c.Client.Beneficiaries))
	for _, b := range c.Client.Beneficiaries {
		known[b.Name] = true
		if b.ID != "" {
			known[b.ID] = true
		}
	}
	for _, a := range c.Client.Assets {
		for _, ab := range a.Beneficiaries {
			if !known[ab.Beneficiary] {
				warnings = append(warnings, fmt.Sprintf("Asset '%s' names unknown beneficiary '%s' - that share is ignored",
					a.Name, ab.Beneficiary))
			}
		}
	}

	return warnings
}
