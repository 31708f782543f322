package eventmodels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ProviderName string

const (
	ProviderYahoo   ProviderName = "yahoo"
	ProviderTradier ProviderName = "tradier"
)

type PriceHistorySource string

const (
	PriceHistorySourceProvider PriceHistorySource = "provider"
	PriceHistorySourcePolygon  PriceHistorySource = "polygon"
)

type ViewerDefaultsYAML struct {
	Ticker        string `yaml:"ticker"`
	OptionType    string `yaml:"option_type"`
	MaturityIndex *int   `yaml:"maturity_index"`
}

type ViewerConfigYAML struct {
	Provider           ProviderName       `yaml:"provider"`
	PriceHistorySource PriceHistorySource `yaml:"price_history_source"`
	ExtendedColumns    *bool              `yaml:"extended_columns"`
	Timezone           string             `yaml:"timezone"`
	MaxMaturityIndex   *int               `yaml:"max_maturity_index"`
	Defaults           ViewerDefaultsYAML `yaml:"defaults"`
}

func NewViewerConfigYAML() *ViewerConfigYAML {
	return &ViewerConfigYAML{}
}

func LoadViewerConfigYAML(path string) (*ViewerConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadViewerConfigYAML: failed to read %s: %w", path, err)
	}

	var config ViewerConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("LoadViewerConfigYAML: failed to unmarshal %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("LoadViewerConfigYAML: %w", err)
	}

	return &config, nil
}

func (c *ViewerConfigYAML) Validate() error {
	switch c.GetProvider() {
	case ProviderYahoo, ProviderTradier:
	default:
		return fmt.Errorf("ViewerConfigYAML: Validate: unknown provider: %s", c.Provider)
	}

	switch c.GetPriceHistorySource() {
	case PriceHistorySourceProvider, PriceHistorySourcePolygon:
	default:
		return fmt.Errorf("ViewerConfigYAML: Validate: unknown price history source: %s", c.PriceHistorySource)
	}

	if c.Defaults.OptionType != "" {
		if _, err := ParseOptionType(c.Defaults.OptionType); err != nil {
			return fmt.Errorf("ViewerConfigYAML: Validate: defaults: %w", err)
		}
	}

	if c.GetMaxMaturityIndex() < 0 {
		return fmt.Errorf("ViewerConfigYAML: Validate: max_maturity_index must not be negative")
	}

	return nil
}

func (c *ViewerConfigYAML) GetProvider() ProviderName {
	if c.Provider == "" {
		return ProviderYahoo
	}

	return c.Provider
}

func (c *ViewerConfigYAML) GetPriceHistorySource() PriceHistorySource {
	if c.PriceHistorySource == "" {
		return PriceHistorySourceProvider
	}

	return c.PriceHistorySource
}

func (c *ViewerConfigYAML) GetExtendedColumns() bool {
	if c.ExtendedColumns == nil {
		return true
	}

	return *c.ExtendedColumns
}

func (c *ViewerConfigYAML) GetTimezone() string {
	if c.Timezone == "" {
		return DefaultDisplayTimezone
	}

	return c.Timezone
}

func (c *ViewerConfigYAML) GetMaxMaturityIndex() int {
	if c.MaxMaturityIndex == nil {
		return DefaultMaxMaturityIndex
	}

	return *c.MaxMaturityIndex
}

// DefaultQuery is the form state before the user submits anything.
func (c *ViewerConfigYAML) DefaultQuery() OptionsQuery {
	ticker := c.Defaults.Ticker
	if ticker == "" {
		ticker = DefaultTicker
	}

	optionType := DefaultOptionType
	if o, err := ParseOptionType(c.Defaults.OptionType); err == nil {
		optionType = o
	}

	maturityIndex := DefaultMaturityIndex
	if c.Defaults.MaturityIndex != nil {
		maturityIndex = *c.Defaults.MaturityIndex
	}

	return NewOptionsQuery(ticker, optionType, maturityIndex).Clamp(c.GetMaxMaturityIndex())
}
