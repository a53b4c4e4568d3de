package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
)

func mustLine(t *testing.T, code string, debit, credit decimal.Decimal) domain.JournalLine {
	t.Helper()
	line, err := domain.NewJournalLine(code, debit, credit)
	require.NoError(t, err)
	return line
}

func TestNewJournalEntry(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("balanced entry accepted", func(t *testing.T) {
		entry, err := domain.NewJournalEntry(date, "PT-001", "bán hàng thu tiền mặt", []domain.JournalLine{
			mustLine(t, "1111", d("1100"), decimal.Zero),
			mustLine(t, "5111", decimal.Zero, d("1000")),
			mustLine(t, "3331", decimal.Zero, d("100")),
		}, domain.Draft)
		require.NoError(t, err)
		assert.True(t, entry.TotalDebit().Equal(d("1100")))
		assert.True(t, entry.TotalCredit().Equal(d("1100")))
	})

	t.Run("single line rejected", func(t *testing.T) {
		_, err := domain.NewJournalEntry(date, "PT-002", "", []domain.JournalLine{
			mustLine(t, "1111", d("100"), decimal.Zero),
		}, domain.Draft)
		assert.ErrorIs(t, err, domain.ErrInsufficientLines)
	})

	t.Run("empty document number rejected", func(t *testing.T) {
		_, err := domain.NewJournalEntry(date, "   ", "", []domain.JournalLine{
			mustLine(t, "1111", d("100"), decimal.Zero),
			mustLine(t, "5111", decimal.Zero, d("100")),
		}, domain.Draft)
		assert.ErrorIs(t, err, domain.ErrEmptyDocumentNo)
	})

	t.Run("unbalanced entry rejected", func(t *testing.T) {
		_, err := domain.NewJournalEntry(date, "PT-003", "", []domain.JournalLine{
			mustLine(t, "1111", d("100"), decimal.Zero),
			mustLine(t, "5111", decimal.Zero, d("99")),
		}, domain.Draft)
		assert.ErrorIs(t, err, domain.ErrUnbalanced)
	})

	t.Run("balance compared after rounding", func(t *testing.T) {
		// 33.333 + 33.333 + 33.334 = 100.000 on the debit side against a
		// flat 100 credit; totals agree once rounded to 2 decimal places.
		entry, err := domain.NewJournalEntry(date, "PT-004", "", []domain.JournalLine{
			mustLine(t, "641", d("33.333"), decimal.Zero),
			mustLine(t, "641", d("33.333"), decimal.Zero),
			mustLine(t, "641", d("33.334"), decimal.Zero),
			mustLine(t, "1111", decimal.Zero, d("100")),
		}, domain.Draft)
		require.NoError(t, err)
		assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()))
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := domain.NewJournalEntry(date, "PT-005", "", []domain.JournalLine{
			mustLine(t, "1111", d("100"), decimal.Zero),
			mustLine(t, "5111", decimal.Zero, d("100")),
		}, domain.EntryStatus("PENDING"))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestAccountCodes(t *testing.T) {
	entry, err := domain.NewJournalEntry(time.Now(), "PT-006", "", []domain.JournalLine{
		mustLine(t, "641", d("50"), decimal.Zero),
		mustLine(t, "641", d("50"), decimal.Zero),
		mustLine(t, "1111", decimal.Zero, d("100")),
	}, domain.Draft)
	require.NoError(t, err)
	assert.Equal(t, []string{"641", "1111"}, entry.AccountCodes())
}
