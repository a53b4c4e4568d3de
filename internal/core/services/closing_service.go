package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soketoanvn/vn_ledger_app/internal/apperrors"
	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// DefaultRetainedEarningsCode is the statutory undistributed-profit account.
const DefaultRetainedEarningsCode = "421"

// closingService performs year-end closing: revenue and expense balances are
// transferred straight into retained earnings through ordinary journal
// entries. Regulation forbids a 9xx income-summary clearing account, so none
// is used.
type closingService struct {
	BaseService
	chart                *domain.Chart
	ledgerSvc            portssvc.LedgerSvcFacade
	journalSvc           portssvc.JournalSvcFacade
	retainedEarningsCode string
}

// ClosingServiceOption configures the closing service.
type ClosingServiceOption func(*closingService)

// WithRetainedEarningsCode overrides the retained-earnings account code.
func WithRetainedEarningsCode(code string) ClosingServiceOption {
	return func(s *closingService) {
		if code != "" {
			s.retainedEarningsCode = code
		}
	}
}

// NewClosingService creates a new closing service.
func NewClosingService(chart *domain.Chart, ledgerSvc portssvc.LedgerSvcFacade, journalSvc portssvc.JournalSvcFacade, options ...ClosingServiceOption) portssvc.ClosingSvcFacade {
	svc := &closingService{
		chart:                chart,
		ledgerSvc:            ledgerSvc,
		journalSvc:           journalSvc,
		retainedEarningsCode: DefaultRetainedEarningsCode,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// accountBalance pairs a closable account with its year net balance.
type accountBalance struct {
	code string
	net  decimal.Decimal
}

// CloseYear nets every revenue- and expense-category balance of the year into
// retained earnings. It creates at most two entries: one for the revenue side,
// one for the expense side; accounts with a zero balance are skipped, and an
// abnormal balance (net on the wrong side, e.g. a revenue account left with a
// net debit) is swept on the opposite side so the account still ends the year
// at zero. When there is nothing to close the result says so and no entry is
// written.
func (s *closingService) CloseYear(ctx context.Context, year int, userID string) (*domain.ClosingResult, error) {
	if _, err := s.chart.Get(s.retainedEarningsCode); err != nil {
		return nil, fmt.Errorf("%w: retained earnings account %s: %w", apperrors.ErrValidation, s.retainedEarningsCode, err)
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	ledger, err := s.ledgerSvc.BuildLedger(ctx, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger for year %d: %w", year, err)
	}

	var revenues, expenses []accountBalance
	for _, acc := range s.chart.Accounts() {
		if acc.IsAggregate || !acc.Category.IsClosable() {
			continue
		}
		net := ledger.Balance(acc.Code).Net(acc.NormalSide).Round(2)
		if net.IsZero() {
			continue
		}
		if acc.Category.IsRevenueLike() {
			revenues = append(revenues, accountBalance{code: acc.Code, net: net})
		} else {
			expenses = append(expenses, accountBalance{code: acc.Code, net: net})
		}
	}

	result := &domain.ClosingResult{Year: year}
	if len(revenues) == 0 && len(expenses) == 0 {
		result.NothingToClose = true
		s.LogInfo(ctx, "Nothing to close", slog.Int("year", year))
		return result, nil
	}

	if len(revenues) > 0 {
		entry, err := s.postClosingEntry(ctx, yearEnd,
			fmt.Sprintf("KC-%d-DT", year),
			fmt.Sprintf("Kết chuyển doanh thu năm %d", year),
			revenues, domain.DebitSide, userID)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entry)
	}

	if len(expenses) > 0 {
		entry, err := s.postClosingEntry(ctx, yearEnd,
			fmt.Sprintf("KC-%d-CP", year),
			fmt.Sprintf("Kết chuyển chi phí năm %d", year),
			expenses, domain.CreditSide, userID)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entry)
	}

	s.LogInfo(ctx, "Year closed", slog.Int("year", year), slog.Int("entries", len(result.Entries)))
	return result, nil
}

// postClosingEntry builds and posts one closing entry. closeSide is the side
// a normal balance is hit on: revenue accounts are debited to zero them out,
// expense accounts credited. An abnormal (negative) net flips to the other
// side. Retained earnings takes the side that balances the signed total; when
// the closed accounts offset each other exactly no equity line is needed.
func (s *closingService) postClosingEntry(ctx context.Context, date time.Time, documentNo, description string, balances []accountBalance, closeSide domain.Side, userID string) (*domain.JournalEntry, error) {
	total := decimal.Zero
	lines := make([]dto.CreateLineRequest, 0, len(balances)+1)
	for _, b := range balances {
		line := dto.CreateLineRequest{AccountCode: b.code}
		debited := closeSide == domain.DebitSide
		if b.net.IsNegative() {
			debited = !debited
		}
		if debited {
			line.Debit = b.net.Abs()
		} else {
			line.Credit = b.net.Abs()
		}
		lines = append(lines, line)
		total = total.Add(b.net)
	}

	total = total.Round(2)
	if !total.IsZero() {
		equityLine := dto.CreateLineRequest{AccountCode: s.retainedEarningsCode}
		creditEquity := closeSide == domain.DebitSide
		if total.IsNegative() {
			creditEquity = !creditEquity
		}
		if creditEquity {
			equityLine.Credit = total.Abs()
		} else {
			equityLine.Debit = total.Abs()
		}
		lines = append(lines, equityLine)
	}

	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateEntryRequest{
		Date:        date,
		DocumentNo:  documentNo,
		Description: description,
		Lines:       lines,
	}, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create closing entry %s: %w", documentNo, err)
	}

	posted, err := s.journalSvc.PostEntry(ctx, entry.EntryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to post closing entry %s: %w", documentNo, err)
	}
	return posted, nil
}
