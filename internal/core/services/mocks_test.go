package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portsrepo "github.com/soketoanvn/vn_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByDocumentNo(ctx context.Context, documentNo string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, documentNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByDateRange(ctx context.Context, from, to time.Time, status *domain.EntryStatus) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, from, to, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, note string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, periodID, status, note, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock PeriodSvc ---

type MockPeriodSvc struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodSvc)(nil)

func (m *MockPeriodSvc) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodSvc) GetPeriod(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodSvc) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodSvc) LockPeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodSvc) UnlockPeriod(ctx context.Context, periodID string, reason string, userID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodSvc) GateMutation(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

// --- shared fixtures ---

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// testChart is a cut of the statutory chart large enough for every scenario
// in this package.
func testChart(t *testing.T) *domain.Chart {
	t.Helper()
	chart, err := domain.NewChart([]domain.Account{
		{Code: "111", Name: "Tiền mặt", Category: domain.Asset, NormalSide: domain.NormalDebit, Level: 1, IsAggregate: true},
		{Code: "1111", Name: "Tiền Việt Nam", Category: domain.Asset, NormalSide: domain.NormalDebit, Level: 2, ParentCode: "111"},
		{Code: "112", Name: "Tiền gửi ngân hàng", Category: domain.Asset, NormalSide: domain.NormalDebit, Level: 1, IsAggregate: true},
		{Code: "1121", Name: "Tiền Việt Nam gửi ngân hàng", Category: domain.Asset, NormalSide: domain.NormalDebit, Level: 2, ParentCode: "112"},
		{Code: "131", Name: "Phải thu của khách hàng", Category: domain.Asset, NormalSide: domain.NormalDebit, Level: 1},
		{Code: "156", Name: "Hàng hóa", Category: domain.Asset, NormalSide: domain.NormalDebit, Level: 1},
		{Code: "331", Name: "Phải trả cho người bán", Category: domain.Liability, NormalSide: domain.NormalCredit, Level: 1},
		{Code: "333", Name: "Thuế phải nộp Nhà nước", Category: domain.Liability, NormalSide: domain.NormalCredit, Level: 1, IsAggregate: true},
		{Code: "3331", Name: "Thuế GTGT phải nộp", Category: domain.Liability, NormalSide: domain.NormalCredit, Level: 2, ParentCode: "333"},
		{Code: "411", Name: "Vốn đầu tư của chủ sở hữu", Category: domain.Equity, NormalSide: domain.NormalCredit, Level: 1},
		{Code: "421", Name: "Lợi nhuận sau thuế chưa phân phối", Category: domain.Equity, NormalSide: domain.NormalCredit, Level: 1},
		{Code: "511", Name: "Doanh thu bán hàng", Category: domain.Revenue, NormalSide: domain.NormalCredit, Level: 1, IsAggregate: true},
		{Code: "5111", Name: "Doanh thu bán hàng hóa", Category: domain.Revenue, NormalSide: domain.NormalCredit, Level: 2, ParentCode: "511"},
		{Code: "632", Name: "Giá vốn hàng bán", Category: domain.CostOfGoods, NormalSide: domain.NormalDebit, Level: 1},
		{Code: "642", Name: "Chi phí quản lý doanh nghiệp", Category: domain.Expense, NormalSide: domain.NormalDebit, Level: 1},
	})
	require.NoError(t, err)
	return chart
}

func postedEntry(t *testing.T, docNo string, date time.Time, lines []domain.JournalLine) domain.JournalEntry {
	t.Helper()
	entry, err := domain.NewJournalEntry(date, docNo, "", lines, domain.Posted)
	require.NoError(t, err)
	entry.EntryID = "entry-" + docNo
	return *entry
}

func line(t *testing.T, code, debit, credit string, opts ...domain.LineOption) domain.JournalLine {
	t.Helper()
	l, err := domain.NewJournalLine(code, d(debit), d(credit), opts...)
	require.NoError(t, err)
	return l
}
