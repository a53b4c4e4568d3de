package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	"github.com/soketoanvn/vn_ledger_app/internal/core/services"
)

// saleAndPurchase is a small trading scenario: a purchase on credit, a cash
// sale with output VAT, and the cost-of-goods recognition.
func saleAndPurchase(t *testing.T) []domain.JournalEntry {
	t.Helper()
	feb1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	feb10 := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	return []domain.JournalEntry{
		postedEntry(t, "PN-001", feb1, []domain.JournalLine{
			line(t, "156", "6000", "0"),
			line(t, "331", "0", "6000"),
		}),
		postedEntry(t, "PT-001", feb10, []domain.JournalLine{
			line(t, "1111", "9900", "0"),
			line(t, "5111", "0", "9000"),
			line(t, "3331", "0", "900"),
		}),
		postedEntry(t, "PX-001", feb10, []domain.JournalLine{
			line(t, "632", "6000", "0"),
			line(t, "156", "0", "6000"),
		}),
	}
}

func TestBuildLedgerReplaysPostedEntries(t *testing.T) {
	ctx := context.Background()
	entryRepo := new(MockEntryRepository)
	ledgerSvc := services.NewLedgerService(testChart(t), entryRepo)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	posted := domain.Posted
	entryRepo.On("ListEntriesByDateRange", ctx, from, to, &posted).Return(saleAndPurchase(t), nil)

	ledger, err := ledgerSvc.BuildLedger(ctx, from, to)
	require.NoError(t, err)

	// Cash holds the gross sale proceeds.
	assert.True(t, ledger.Balance("1111").Debit.Equal(d("9900")))
	// Inventory was bought for 6000 and fully issued.
	net, err := ledger.NetBalance("156")
	require.NoError(t, err)
	assert.True(t, net.IsZero())
	// Grand totals stay in balance.
	debit, credit := ledger.Totals()
	assert.True(t, debit.Equal(credit))
}

func TestBalanceAsOf(t *testing.T) {
	ctx := context.Background()
	entryRepo := new(MockEntryRepository)
	ledgerSvc := services.NewLedgerService(testChart(t), entryRepo)

	asOf := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	posted := domain.Posted
	entryRepo.On("ListEntriesByDateRange", ctx,
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), asOf, &posted).
		Return(saleAndPurchase(t), nil)

	bal, err := ledgerSvc.BalanceAsOf(ctx, "3331", asOf)
	require.NoError(t, err)
	assert.True(t, bal.Credit.Equal(d("900")))

	net, err := ledgerSvc.NetBalanceAsOf(ctx, "3331", asOf)
	require.NoError(t, err)
	assert.True(t, net.Equal(d("900")))
}

func TestBuildLedgerCorruptEntryFailsReplay(t *testing.T) {
	ctx := context.Background()
	entryRepo := new(MockEntryRepository)
	ledgerSvc := services.NewLedgerService(testChart(t), entryRepo)

	// An entry referencing an account outside the chart must abort the build.
	broken := postedEntry(t, "PT-999", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), []domain.JournalLine{
		line(t, "1111", "100", "0"),
		line(t, "5111", "0", "100"),
	})
	broken.Lines[1].AccountCode = "888"

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	posted := domain.Posted
	entryRepo.On("ListEntriesByDateRange", ctx, from, to, &posted).Return([]domain.JournalEntry{broken}, nil)

	_, err := ledgerSvc.BuildLedger(ctx, from, to)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownAccount)
	assert.ErrorContains(t, err, "PT-999")
}
