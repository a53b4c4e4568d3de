package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account's totals on the trial balance.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// ReportLine is one aggregated line of a statement: an account-prefix group
// with its reporting amount, signed per the group root's category.
type ReportLine struct {
	Code   string          `json:"code"` // account-prefix group, e.g. "111"
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheetReport is the statutory balance sheet (B01-DN shape).
type BalanceSheetReport struct {
	AsOf             string          `json:"asOf"` // yyyy-mm-dd
	Assets           []ReportLine    `json:"assets"`
	Liabilities      []ReportLine    `json:"liabilities"`
	Equity           []ReportLine    `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	// Balanced is false when assets differ from liabilities plus equity by
	// more than 0.01. The mismatch is surfaced, never silently corrected.
	Balanced bool `json:"balanced"`
}

// IncomeStatementReport is the statutory income statement (B02-DN shape).
type IncomeStatementReport struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Revenue      []ReportLine    `json:"revenue"`
	Expenses     []ReportLine    `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// CashFlowReport groups cash movements by the lines' cash-flow tags.
type CashFlowReport struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Operating []ReportLine    `json:"operating"`
	Investing []ReportLine    `json:"investing"`
	Financing []ReportLine    `json:"financing"`
	NetChange decimal.Decimal `json:"netChange"`
}

// ClosingResult reports the outcome of a year-end close.
type ClosingResult struct {
	Year    int             `json:"year"`
	Entries []*JournalEntry `json:"entries"` // 0, 1 or 2 closing entries
	// NothingToClose is set when no revenue or expense account carried a
	// balance; the close is a caller-visible no-op, not a failure.
	NothingToClose bool `json:"nothingToClose"`
}
