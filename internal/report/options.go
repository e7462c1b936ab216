package report

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options controls how reports are rendered.
type Options struct {
	Title     string `yaml:"title"`
	Currency  string `yaml:"currency"`
	ShowEmpty bool   `yaml:"show_empty"`
	ShowItems bool   `yaml:"show_items"`
}

func DefaultOptions() Options {
	return Options{
		Title:     "Expense report",
		Currency:  "$",
		ShowEmpty: true,
		ShowItems: true,
	}
}

// LoadOptions reads a YAML options file on top of the defaults.
// A missing file is not an error: defaults apply.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading report options %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return DefaultOptions(), fmt.Errorf("parsing report options %s: %w", path, err)
	}
	if strings.TrimSpace(opts.Currency) == "" {
		opts.Currency = "$"
	}
	return opts, nil
}

// formatAmount renders cents with the configured currency symbol.
func formatAmount(currency string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currency, cents/100, cents%100)
}
