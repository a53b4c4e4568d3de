package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/core/services"
)

// tradingYear seeds a full small trading year 2025: capital contribution,
// a purchase on credit, a cash sale with VAT, cost of goods, and a cash
// admin expense. Cash lines carry their cash-flow tags.
func tradingYear(t *testing.T) []domain.JournalEntry {
	t.Helper()
	jan5 := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	feb10 := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	mar5 := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	return []domain.JournalEntry{
		postedEntry(t, "GV-001", jan5, []domain.JournalLine{
			line(t, "1121", "50000", "0", domain.WithCashFlowCode("31")),
			line(t, "411", "0", "50000"),
		}),
		postedEntry(t, "PN-001", feb1, []domain.JournalLine{
			line(t, "156", "6000", "0"),
			line(t, "331", "0", "6000"),
		}),
		postedEntry(t, "PT-001", feb10, []domain.JournalLine{
			line(t, "1111", "9900", "0", domain.WithCashFlowCode("01")),
			line(t, "5111", "0", "9000"),
			line(t, "3331", "0", "900"),
		}),
		postedEntry(t, "PX-001", feb10, []domain.JournalLine{
			line(t, "632", "6000", "0"),
			line(t, "156", "0", "6000"),
		}),
		postedEntry(t, "PC-001", mar5, []domain.JournalLine{
			line(t, "642", "1000", "0"),
			line(t, "1111", "0", "1000", domain.WithCashFlowCode("02")),
		}),
	}
}

func newReportingFixture(t *testing.T, seed ...domain.JournalEntry) (*fakeEntryStore, portssvc.ReportingSvcFacade) {
	chart := testChart(t)
	store := newFakeEntryStore(seed...)
	ledgerSvc := services.NewLedgerService(chart, store)
	return store, services.NewReportingService(chart, ledgerSvc)
}

func yearEnd2025() time.Time {
	return time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func TestTrialBalance(t *testing.T) {
	ctx := context.Background()
	_, reportingSvc := newReportingFixture(t, tradingYear(t)...)

	rows, err := reportingSvc.TrialBalance(ctx, yearEnd2025())
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	totalDebit, totalCredit := d("0"), d("0")
	var prev string
	for _, row := range rows {
		assert.NotEmpty(t, row.AccountName, "account %s should carry its chart name", row.AccountCode)
		assert.GreaterOrEqual(t, row.AccountCode, prev, "rows must be sorted by code")
		prev = row.AccountCode
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	assert.True(t, totalDebit.Equal(totalCredit), "trial balance must cross-foot, debit %s credit %s", totalDebit, totalCredit)
}

func TestBalanceSheetUnbalancedBeforeClosing(t *testing.T) {
	ctx := context.Background()
	_, reportingSvc := newReportingFixture(t, tradingYear(t)...)

	report, err := reportingSvc.BalanceSheet(ctx, yearEnd2025())
	require.NoError(t, err)

	// The year's unclosed profit (9000 - 6000 - 1000 = 2000) sits on the
	// income accounts, so assets exceed liabilities plus equity by exactly
	// that amount. The gap is surfaced, never papered over.
	assert.False(t, report.Balanced)
	assert.True(t, report.TotalAssets.Equal(d("58900")))
	assert.True(t, report.TotalLiabilities.Equal(d("6900")))
	assert.True(t, report.TotalEquity.Equal(d("50000")))
}

func TestBalanceSheetBalancedAfterClosing(t *testing.T) {
	ctx := context.Background()
	store, reportingSvc := newReportingFixture(t, tradingYear(t)...)

	// Run the year-end close, then the statement must cross-foot.
	chart := testChart(t)
	periodSvc := new(MockPeriodSvc)
	periodSvc.On("GateMutation", ctx, yearEnd2025()).Return(nil)
	ledgerSvc := services.NewLedgerService(chart, store)
	journalSvc := services.NewJournalService(chart, store, periodSvc)
	closingSvc := services.NewClosingService(chart, ledgerSvc, journalSvc)

	_, err := closingSvc.CloseYear(ctx, 2025, "user-1")
	require.NoError(t, err)

	report, err := reportingSvc.BalanceSheet(ctx, yearEnd2025())
	require.NoError(t, err)

	assert.True(t, report.Balanced)
	assert.True(t, report.TotalAssets.Equal(d("58900")))
	assert.True(t, report.TotalLiabilities.Equal(d("6900")))
	// Equity now carries the closed profit: 50000 capital + 2000 retained.
	assert.True(t, report.TotalEquity.Equal(d("52000")))
}

func TestIncomeStatement(t *testing.T) {
	ctx := context.Background()
	_, reportingSvc := newReportingFixture(t, tradingYear(t)...)

	report, err := reportingSvc.IncomeStatement(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), yearEnd2025())
	require.NoError(t, err)

	assert.True(t, report.TotalRevenue.Equal(d("9000")))
	assert.True(t, report.TotalExpense.Equal(d("7000")))
	assert.True(t, report.NetProfit.Equal(d("2000")))

	// Cost of goods and admin expense each appear as their own group line.
	codes := make([]string, 0, len(report.Expenses))
	for _, l := range report.Expenses {
		codes = append(codes, l.Code)
	}
	assert.ElementsMatch(t, []string{"632", "642"}, codes)
}

func TestCashFlow(t *testing.T) {
	ctx := context.Background()
	_, reportingSvc := newReportingFixture(t, tradingYear(t)...)

	report, err := reportingSvc.CashFlow(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), yearEnd2025())
	require.NoError(t, err)

	// Operating: +9900 from the sale, -1000 for the admin expense.
	require.Len(t, report.Operating, 2)
	opTotal := d("0")
	for _, l := range report.Operating {
		opTotal = opTotal.Add(l.Amount)
	}
	assert.True(t, opTotal.Equal(d("8900")))

	// Financing: the 50000 capital contribution.
	require.Len(t, report.Financing, 1)
	assert.Equal(t, "31", report.Financing[0].Code)
	assert.True(t, report.Financing[0].Amount.Equal(d("50000")))

	assert.Empty(t, report.Investing)
	// Net change matches the cash accounts' movement.
	assert.True(t, report.NetChange.Equal(d("58900")))
}

func TestCashFlowIgnoresUntaggedCashLines(t *testing.T) {
	ctx := context.Background()
	_, reportingSvc := newReportingFixture(t, postedEntry(t, "PT-100",
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), []domain.JournalLine{
			line(t, "1111", "700", "0"), // no cash-flow tag
			line(t, "5111", "0", "700"),
		}))

	report, err := reportingSvc.CashFlow(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), yearEnd2025())
	require.NoError(t, err)
	assert.Empty(t, report.Operating)
	assert.True(t, report.NetChange.IsZero())
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	_, reportingSvc := newReportingFixture(t, tradingYear(t)...)

	for name, export := range map[string]func(context.Context, time.Time) ([]byte, error){
		"balance sheet": reportingSvc.ExportBalanceSheetXLSX,
		"trial balance": reportingSvc.ExportTrialBalanceXLSX,
	} {
		data, err := export(ctx, yearEnd2025())
		require.NoError(t, err, name)
		require.NotEmpty(t, data, name)
		// xlsx files are zip archives.
		assert.Equal(t, []byte{'P', 'K'}, data[:2], name)
	}
}
