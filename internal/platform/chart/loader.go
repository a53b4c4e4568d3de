// Package chart loads the statutory chart of accounts from its YAML source.
package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// accountYAML mirrors one account definition in the chart file.
type accountYAML struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	NormalSide string `yaml:"normal_side,omitempty"`
	Level      int    `yaml:"level"`
	Parent     string `yaml:"parent,omitempty"`
	Aggregate  bool   `yaml:"aggregate,omitempty"`
}

type chartYAML struct {
	Accounts []accountYAML `yaml:"accounts"`
}

// LoadFile reads and validates the chart of accounts from path.
func LoadFile(path string) (*domain.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file %s: %w", path, err)
	}
	return Load(data)
}

// Load parses YAML chart data and builds the validated chart.
func Load(data []byte) (*domain.Chart, error) {
	var src chartYAML
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse chart yaml: %w", err)
	}
	if len(src.Accounts) == 0 {
		return nil, fmt.Errorf("chart yaml defines no accounts")
	}

	accounts := make([]domain.Account, 0, len(src.Accounts))
	for _, a := range src.Accounts {
		category := domain.AccountCategory(a.Category)
		side := domain.NormalSide(a.NormalSide)
		if a.NormalSide == "" {
			side = defaultSide(category)
		}
		level := a.Level
		if level == 0 {
			level = inferLevel(a.Code)
		}
		accounts = append(accounts, domain.Account{
			Code:        a.Code,
			Name:        a.Name,
			Category:    category,
			NormalSide:  side,
			Level:       level,
			ParentCode:  a.Parent,
			IsAggregate: a.Aggregate,
		})
	}

	chart, err := domain.NewChart(accounts)
	if err != nil {
		return nil, fmt.Errorf("invalid chart of accounts: %w", err)
	}
	return chart, nil
}

// defaultSide picks the conventional normal side when the chart file omits it.
func defaultSide(category domain.AccountCategory) domain.NormalSide {
	if category == domain.Asset || category.IsExpenseLike() {
		return domain.NormalDebit
	}
	return domain.NormalCredit
}

// inferLevel derives the account level from code length: 3 digits is a
// level-1 account, each further digit one level down.
func inferLevel(code string) int {
	if len(code) <= 3 {
		return 1
	}
	return len(code) - 2
}
