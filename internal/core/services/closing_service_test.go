package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soketoanvn/vn_ledger_app/internal/apperrors"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/core/services"
)

// fakeEntryStore is an in-memory EntryRepositoryFacade. The closing flow
// creates and then posts entries through the journal service, which needs the
// store to hand back what was just written; a canned mock cannot do that.
type fakeEntryStore struct {
	entries map[string]domain.JournalEntry
	saves   int
}

var _ portsrepo.EntryRepositoryFacade = (*fakeEntryStore)(nil)

func newFakeEntryStore(seed ...domain.JournalEntry) *fakeEntryStore {
	s := &fakeEntryStore{entries: make(map[string]domain.JournalEntry)}
	for _, e := range seed {
		s.entries[e.EntryID] = e
	}
	return s
}

func (s *fakeEntryStore) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	s.entries[entry.EntryID] = entry
	s.saves++
	return nil
}

func (s *fakeEntryStore) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *fakeEntryStore) FindEntryByDocumentNo(ctx context.Context, documentNo string) (*domain.JournalEntry, error) {
	for _, e := range s.entries {
		if e.DocumentNo == documentNo {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeEntryStore) ListEntriesByDateRange(ctx context.Context, from, to time.Time, status *domain.EntryStatus) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	for _, e := range s.entries {
		if e.EntryDate.Before(from) || e.EntryDate.After(to) {
			continue
		}
		if status != nil && e.Status != *status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeEntryStore) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	if _, ok := s.entries[entry.EntryID]; !ok {
		return apperrors.ErrNotFound
	}
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *fakeEntryStore) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	e, ok := s.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = status
	e.LastUpdatedBy = updatedBy
	e.LastUpdatedAt = updatedAt
	s.entries[entryID] = e
	return nil
}

func (s *fakeEntryStore) DeleteEntry(ctx context.Context, entryID string) error {
	if _, ok := s.entries[entryID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.entries, entryID)
	return nil
}

// closingFixture wires a real journal service over the fake store so closing
// entries run through the same validation and period gate as ordinary entries.
type closingFixture struct {
	store      *fakeEntryStore
	periodSvc  *MockPeriodSvc
	closingSvc portssvc.ClosingSvcFacade
}

func newClosingFixture(t *testing.T, seed ...domain.JournalEntry) *closingFixture {
	chart := testChart(t)
	store := newFakeEntryStore(seed...)
	periodSvc := new(MockPeriodSvc)
	ledgerSvc := services.NewLedgerService(chart, store)
	journalSvc := services.NewJournalService(chart, store, periodSvc)

	return &closingFixture{
		store:      store,
		periodSvc:  periodSvc,
		closingSvc: services.NewClosingService(chart, ledgerSvc, journalSvc),
	}
}

func TestCloseYear(t *testing.T) {
	ctx := context.Background()

	// Year activity: revenue 9000, cost of goods 6000, admin expense 1000.
	activity := saleAndPurchase(t)
	activity = append(activity, postedEntry(t, "PC-001", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), []domain.JournalLine{
		line(t, "642", "1000", "0"),
		line(t, "1111", "0", "1000"),
	}))
	f := newClosingFixture(t, activity...)

	// December is still open, the closing entries may be written.
	yearEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	f.periodSvc.On("GateMutation", ctx, yearEnd).Return(nil)

	result, err := f.closingSvc.CloseYear(ctx, 2025, "user-1")
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.False(t, result.NothingToClose)

	revenueEntry := result.Entries[0]
	assert.Equal(t, "KC-2025-DT", revenueEntry.DocumentNo)
	assert.Equal(t, "Kết chuyển doanh thu năm 2025", revenueEntry.Description)
	assert.Equal(t, domain.Posted, revenueEntry.Status)
	assert.True(t, revenueEntry.TotalDebit().Equal(d("9000")))
	assertLineAmount(t, revenueEntry, "5111", domain.DebitSide, "9000")
	assertLineAmount(t, revenueEntry, "421", domain.CreditSide, "9000")

	expenseEntry := result.Entries[1]
	assert.Equal(t, "KC-2025-CP", expenseEntry.DocumentNo)
	assert.Equal(t, "Kết chuyển chi phí năm 2025", expenseEntry.Description)
	assert.Equal(t, domain.Posted, expenseEntry.Status)
	assert.True(t, expenseEntry.TotalCredit().Equal(d("7000")))
	assertLineAmount(t, expenseEntry, "632", domain.CreditSide, "6000")
	assertLineAmount(t, expenseEntry, "642", domain.CreditSide, "1000")
	assertLineAmount(t, expenseEntry, "421", domain.DebitSide, "7000")
}

func TestCloseYearZeroesOutClosableAccounts(t *testing.T) {
	ctx := context.Background()
	f := newClosingFixture(t, saleAndPurchase(t)...)

	yearEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	f.periodSvc.On("GateMutation", ctx, yearEnd).Return(nil)

	_, err := f.closingSvc.CloseYear(ctx, 2025, "user-1")
	require.NoError(t, err)

	// Replaying the full year including closing entries must show zero on
	// every revenue and expense account and the profit on 421.
	chart := testChart(t)
	ledgerSvc := services.NewLedgerService(chart, f.store)
	ledger, err := ledgerSvc.BuildLedger(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), yearEnd)
	require.NoError(t, err)

	for _, code := range []string{"5111", "632"} {
		net, err := ledger.NetBalance(code)
		require.NoError(t, err)
		assert.True(t, net.IsZero(), "account %s should be closed, net %s", code, net)
	}

	profit, err := ledger.NetBalance("421")
	require.NoError(t, err)
	assert.True(t, profit.Equal(d("3000")), "retained earnings should carry the 9000-6000 profit, got %s", profit)
}

func TestCloseYearSweepsAbnormalBalances(t *testing.T) {
	ctx := context.Background()

	// An expense reversal leaves 642 with a net credit balance; the close must
	// still zero it, swept on the debit side of the expense entry.
	activity := saleAndPurchase(t)
	activity = append(activity, postedEntry(t, "HD-001", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), []domain.JournalLine{
		line(t, "1111", "200", "0"),
		line(t, "642", "0", "200"),
	}))
	f := newClosingFixture(t, activity...)

	yearEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	f.periodSvc.On("GateMutation", ctx, yearEnd).Return(nil)

	result, err := f.closingSvc.CloseYear(ctx, 2025, "user-1")
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	expenseEntry := result.Entries[1]
	assertLineAmount(t, expenseEntry, "632", domain.CreditSide, "6000")
	assertLineAmount(t, expenseEntry, "642", domain.DebitSide, "200")
	assertLineAmount(t, expenseEntry, "421", domain.DebitSide, "5800")

	chart := testChart(t)
	ledgerSvc := services.NewLedgerService(chart, f.store)
	ledger, err := ledgerSvc.BuildLedger(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), yearEnd)
	require.NoError(t, err)

	for _, code := range []string{"5111", "632", "642"} {
		net, err := ledger.NetBalance(code)
		require.NoError(t, err)
		assert.True(t, net.IsZero(), "account %s should be closed, net %s", code, net)
	}

	// Profit is 9000 revenue less 5800 net expense.
	profit, err := ledger.NetBalance("421")
	require.NoError(t, err)
	assert.True(t, profit.Equal(d("3200")), "retained earnings should carry 3200, got %s", profit)
}

func TestCloseYearNothingToClose(t *testing.T) {
	ctx := context.Background()

	// Only balance-sheet movement in the year, no revenue or expense.
	f := newClosingFixture(t, postedEntry(t, "GV-001", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), []domain.JournalLine{
		line(t, "1121", "50000", "0"),
		line(t, "411", "0", "50000"),
	}))

	result, err := f.closingSvc.CloseYear(ctx, 2024, "user-1")
	require.NoError(t, err)
	assert.True(t, result.NothingToClose)
	assert.Empty(t, result.Entries)
	assert.Zero(t, f.store.saves)
}

func TestCloseYearLockedDecemberRejected(t *testing.T) {
	ctx := context.Background()
	f := newClosingFixture(t, saleAndPurchase(t)...)

	yearEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	f.periodSvc.On("GateMutation", ctx, yearEnd).Return(apperrors.ErrPeriodLocked)

	_, err := f.closingSvc.CloseYear(ctx, 2025, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrPeriodLocked)
	assert.Zero(t, f.store.saves)
}

func TestCloseYearUnknownRetainedEarningsAccount(t *testing.T) {
	ctx := context.Background()
	chart := testChart(t)
	store := newFakeEntryStore()
	ledgerSvc := services.NewLedgerService(chart, store)
	journalSvc := services.NewJournalService(chart, store, new(MockPeriodSvc))
	closingSvc := services.NewClosingService(chart, ledgerSvc, journalSvc,
		services.WithRetainedEarningsCode("4211"))

	_, err := closingSvc.CloseYear(ctx, 2025, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func assertLineAmount(t *testing.T, entry *domain.JournalEntry, code string, side domain.Side, amount string) {
	t.Helper()
	want := d(amount)
	for _, l := range entry.Lines {
		if l.AccountCode != code {
			continue
		}
		var got decimal.Decimal
		if side == domain.DebitSide {
			got = l.Debit
		} else {
			got = l.Credit
		}
		if got.Equal(want) {
			return
		}
	}
	t.Fatalf("entry %s: no %s line on account %s with amount %s", entry.DocumentNo, side, code, amount)
}
