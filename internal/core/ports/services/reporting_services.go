package services

import (
	"context"
	"time"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

// ReportingSvcFacade derives the statutory statements. Pure reads: every
// method observes a single replayed snapshot and mutates nothing.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)
	// ExportBalanceSheetXLSX renders the balance sheet as an xlsx workbook.
	ExportBalanceSheetXLSX(ctx context.Context, asOf time.Time) ([]byte, error)
	// ExportTrialBalanceXLSX renders the trial balance as an xlsx workbook.
	ExportTrialBalanceXLSX(ctx context.Context, asOf time.Time) ([]byte, error)
}
