package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Chart is the immutable chart of accounts: a mapping from account code to
// Account, validated once at construction. It is safe for concurrent reads.
type Chart struct {
	accounts map[string]Account
	codes    []string // sorted for deterministic iteration
}

// NewChart validates the given accounts and builds a Chart. It fails fast on
// the first malformed account rather than silently dropping it.
func NewChart(accounts []Account) (*Chart, error) {
	byCode := make(map[string]Account, len(accounts))
	for _, acc := range accounts {
		if strings.TrimSpace(acc.Code) == "" {
			return nil, fmt.Errorf("account with empty code (name %q)", acc.Name)
		}
		if strings.TrimSpace(acc.Name) == "" {
			return nil, fmt.Errorf("account %s: name is required", acc.Code)
		}
		if !acc.Category.IsValid() {
			return nil, fmt.Errorf("account %s: unknown category %q", acc.Code, acc.Category)
		}
		if !acc.NormalSide.IsValid() {
			return nil, fmt.Errorf("account %s: unknown normal side %q", acc.Code, acc.NormalSide)
		}
		if _, dup := byCode[acc.Code]; dup {
			return nil, fmt.Errorf("account %s: duplicate code", acc.Code)
		}
		byCode[acc.Code] = acc
	}

	// Parent linkage is checked after the full map is built so definition
	// order does not matter.
	for _, acc := range byCode {
		if acc.Level > 1 {
			if acc.ParentCode == "" {
				return nil, fmt.Errorf("account %s: level %d requires a parent code: %w", acc.Code, acc.Level, ErrUnknownParent)
			}
			if _, ok := byCode[acc.ParentCode]; !ok {
				return nil, fmt.Errorf("account %s: parent %s: %w", acc.Code, acc.ParentCode, ErrUnknownParent)
			}
		}
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &Chart{accounts: byCode, codes: codes}, nil
}

// Get returns the account for code.
func (c *Chart) Get(code string) (Account, error) {
	acc, ok := c.accounts[code]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
	}
	return acc, nil
}

// Contains reports whether code is present in the chart.
func (c *Chart) Contains(code string) bool {
	_, ok := c.accounts[code]
	return ok
}

// Accounts returns all accounts ordered by code.
func (c *Chart) Accounts() []Account {
	out := make([]Account, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.accounts[code])
	}
	return out
}

// ByPrefix returns all accounts whose code starts with prefix, ordered by
// code. This is the grouping primitive of the reporting layer.
func (c *Chart) ByPrefix(prefix string) []Account {
	var out []Account
	for _, code := range c.codes {
		if strings.HasPrefix(code, prefix) {
			out = append(out, c.accounts[code])
		}
	}
	return out
}

// Len returns the number of accounts in the chart.
func (c *Chart) Len() int {
	return len(c.accounts)
}
