package domain

// AccountCategory defines the fundamental accounting category of an account
// under the Vietnamese chart of accounts (TT200/TT133 style).
type AccountCategory string

const (
	Asset       AccountCategory = "ASSET"
	Liability   AccountCategory = "LIABILITY"
	Equity      AccountCategory = "EQUITY"
	Revenue     AccountCategory = "REVENUE"
	OtherIncome AccountCategory = "OTHER_INCOME"
	Expense     AccountCategory = "EXPENSE"
	CostOfGoods AccountCategory = "COST_OF_GOODS"
	// Other covers off-balance and memo accounts (group 0xx).
	Other AccountCategory = "OTHER"
)

// IsValid reports whether c is one of the known categories.
func (c AccountCategory) IsValid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, OtherIncome, Expense, CostOfGoods, Other:
		return true
	}
	return false
}

// IsRevenueLike reports whether accounts of this category are netted on the
// credit side at year-end close (511x, 515, 711...).
func (c AccountCategory) IsRevenueLike() bool {
	return c == Revenue || c == OtherIncome
}

// IsExpenseLike reports whether accounts of this category are netted on the
// debit side at year-end close (632, 641, 642, 635, 811...).
func (c AccountCategory) IsExpenseLike() bool {
	return c == Expense || c == CostOfGoods
}

// IsClosable reports whether the category participates in year-end closing.
func (c AccountCategory) IsClosable() bool {
	return c.IsRevenueLike() || c.IsExpenseLike()
}

// NormalSide is the side on which an account's balance normally increases.
type NormalSide string

const (
	NormalDebit  NormalSide = "DEBIT"
	NormalCredit NormalSide = "CREDIT"
)

// IsValid reports whether s is DEBIT or CREDIT.
func (s NormalSide) IsValid() bool {
	return s == NormalDebit || s == NormalCredit
}

// Account represents one account of the statutory chart. Accounts are created
// at chart-load time and are immutable afterwards; the hierarchy is expressed
// through the code prefix convention ("1561" is a child of "156") plus an
// explicit parent pointer checked on insert.
type Account struct {
	Code        string          `json:"code"` // hierarchical numeric code, e.g. "1111"
	Name        string          `json:"name"`
	Category    AccountCategory `json:"category"`
	NormalSide  NormalSide      `json:"normalSide"`
	Level       int             `json:"level"`                // 1..3
	ParentCode  string          `json:"parentCode,omitempty"` // required for Level > 1
	IsAggregate bool            `json:"isAggregate"`          // summing header account, not postable
	AuditFields
}
