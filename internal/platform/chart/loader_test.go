package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	"github.com/soketoanvn/vn_ledger_app/internal/platform/chart"
)

const sampleChart = `
accounts:
  - { code: "111", name: "Tiền mặt", category: ASSET, level: 1, aggregate: true }
  - { code: "1111", name: "Tiền Việt Nam", category: ASSET, level: 2, parent: "111" }
  - { code: "214", name: "Hao mòn tài sản cố định", category: ASSET, normal_side: CREDIT, level: 1 }
  - { code: "5111", name: "Doanh thu bán hàng hóa", category: REVENUE, parent: "511" }
  - { code: "511", name: "Doanh thu bán hàng", category: REVENUE, level: 1, aggregate: true }
`

func TestLoad(t *testing.T) {
	c, err := chart.Load([]byte(sampleChart))
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	t.Run("explicit normal side wins", func(t *testing.T) {
		acc, err := c.Get("214")
		require.NoError(t, err)
		assert.Equal(t, domain.NormalCredit, acc.NormalSide)
	})

	t.Run("normal side defaults by category", func(t *testing.T) {
		cash, err := c.Get("1111")
		require.NoError(t, err)
		assert.Equal(t, domain.NormalDebit, cash.NormalSide)

		revenue, err := c.Get("511")
		require.NoError(t, err)
		assert.Equal(t, domain.NormalCredit, revenue.NormalSide)
	})

	t.Run("level inferred from code length", func(t *testing.T) {
		acc, err := c.Get("5111")
		require.NoError(t, err)
		assert.Equal(t, 2, acc.Level)
	})

	t.Run("aggregate flag carried over", func(t *testing.T) {
		acc, err := c.Get("111")
		require.NoError(t, err)
		assert.True(t, acc.IsAggregate)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("empty chart rejected", func(t *testing.T) {
		_, err := chart.Load([]byte("accounts: []"))
		assert.ErrorContains(t, err, "no accounts")
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		_, err := chart.Load([]byte("accounts: [broken"))
		assert.ErrorContains(t, err, "yaml")
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := chart.Load([]byte(`
accounts:
  - { code: "111", name: "x", category: WEIRD, level: 1 }
`))
		assert.ErrorContains(t, err, "invalid chart")
	})

	t.Run("unknown parent rejected", func(t *testing.T) {
		_, err := chart.Load([]byte(`
accounts:
  - { code: "1111", name: "x", category: ASSET, level: 2, parent: "111" }
`))
		assert.ErrorContains(t, err, "invalid chart")
	})
}
