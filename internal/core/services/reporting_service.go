package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/soketoanvn/vn_ledger_app/internal/core/domain"
	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
)

// crossFootEpsilon is the tolerance for the assets vs liabilities+equity
// cross-check. A larger gap is surfaced on the report, never corrected.
var crossFootEpsilon = decimal.NewFromFloat(0.01)

// reportingService derives the statutory statements from replayed balances.
// It never mutates ledger state.
type reportingService struct {
	BaseService
	chart     *domain.Chart
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(chart *domain.Chart, ledgerSvc portssvc.LedgerSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{chart: chart, ledgerSvc: ledgerSvc}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// prefixBalance sums the accumulated totals of every postable account whose
// code starts with prefix. This is the one aggregation algorithm every report
// shares.
func (s *reportingService) prefixBalance(ledger *domain.Ledger, prefix string) domain.Balance {
	var bal domain.Balance
	for _, acc := range s.chart.ByPrefix(prefix) {
		if acc.IsAggregate {
			continue
		}
		b := ledger.Balance(acc.Code)
		bal.Debit = bal.Debit.Add(b.Debit)
		bal.Credit = bal.Credit.Add(b.Credit)
	}
	return bal
}

// groupAmount applies the group root's category to pick the reporting sign:
// asset-side groups report debit minus credit, source-side groups credit
// minus debit, both as magnitudes.
func groupAmount(bal domain.Balance, category domain.AccountCategory) decimal.Decimal {
	if category == domain.Asset || category.IsExpenseLike() {
		return bal.Debit.Sub(bal.Credit).Abs().Round(2)
	}
	return bal.Credit.Sub(bal.Debit).Abs().Round(2)
}

// topLevelGroups returns the level-1 accounts of the given category, in code
// order. They are the report line roots.
func (s *reportingService) topLevelGroups(categories ...domain.AccountCategory) []domain.Account {
	wanted := make(map[domain.AccountCategory]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	var out []domain.Account
	for _, acc := range s.chart.Accounts() {
		if acc.Level != 1 {
			continue
		}
		if _, ok := wanted[acc.Category]; ok {
			out = append(out, acc)
		}
	}
	return out
}

// reportLines builds one ReportLine per level-1 group of the categories,
// dropping zero lines.
func (s *reportingService) reportLines(ledger *domain.Ledger, categories ...domain.AccountCategory) ([]domain.ReportLine, decimal.Decimal) {
	var (
		lines []domain.ReportLine
		total = decimal.Zero
	)
	for _, acc := range s.topLevelGroups(categories...) {
		amount := groupAmount(s.prefixBalance(ledger, acc.Code), acc.Category)
		if amount.IsZero() {
			continue
		}
		lines = append(lines, domain.ReportLine{Code: acc.Code, Name: acc.Name, Amount: amount})
		total = total.Add(amount)
	}
	return lines, total.Round(2)
}

// TrialBalance returns per-account totals for all accounts touched up to asOf.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	ledger, err := s.ledgerSvc.BuildLedger(ctx, ledgerEpoch, asOf)
	if err != nil {
		return nil, err
	}

	balances := ledger.TrialBalance()
	codes := make([]string, 0, len(balances))
	for code := range balances {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]domain.TrialBalanceRow, 0, len(codes))
	for _, code := range codes {
		name := ""
		if acc, err := s.chart.Get(code); err == nil {
			name = acc.Name
		}
		bal := balances[code]
		rows = append(rows, domain.TrialBalanceRow{
			AccountCode: code,
			AccountName: name,
			Debit:       bal.Debit.Round(2),
			Credit:      bal.Credit.Round(2),
		})
	}

	s.LogDebug(ctx, "Trial balance generated", slog.Int("rows", len(rows)))
	return rows, nil
}

// BalanceSheet assembles the balance sheet as of a date and cross-foots it.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	ledger, err := s.ledgerSvc.BuildLedger(ctx, ledgerEpoch, asOf)
	if err != nil {
		return nil, err
	}

	assets, totalAssets := s.reportLines(ledger, domain.Asset)
	liabilities, totalLiabilities := s.reportLines(ledger, domain.Liability)
	equity, totalEquity := s.reportLines(ledger, domain.Equity)

	diff := totalAssets.Sub(totalLiabilities.Add(totalEquity)).Abs()
	balanced := diff.LessThanOrEqual(crossFootEpsilon)
	if !balanced {
		s.LogWarn(ctx, "Balance sheet does not cross-foot",
			slog.String("total_assets", totalAssets.String()),
			slog.String("total_liabilities", totalLiabilities.String()),
			slog.String("total_equity", totalEquity.String()),
			slog.String("difference", diff.String()))
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf.Format("2006-01-02"),
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		Balanced:         balanced,
	}

	s.LogInfo(ctx, "Balance sheet generated", slog.String("as_of", report.AsOf), slog.Bool("balanced", balanced))
	return report, nil
}

// IncomeStatement assembles revenue and expense groups for a period.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	ledger, err := s.ledgerSvc.BuildLedger(ctx, from, to)
	if err != nil {
		return nil, err
	}

	revenue, totalRevenue := s.reportLines(ledger, domain.Revenue, domain.OtherIncome)
	expenses, totalExpense := s.reportLines(ledger, domain.Expense, domain.CostOfGoods)

	report := &domain.IncomeStatementReport{
		From:         from.Format("2006-01-02"),
		To:           to.Format("2006-01-02"),
		Revenue:      revenue,
		Expenses:     expenses,
		TotalRevenue: totalRevenue,
		TotalExpense: totalExpense,
		NetProfit:    totalRevenue.Sub(totalExpense).Round(2),
	}

	s.LogInfo(ctx, "Income statement generated",
		slog.String("from", report.From), slog.String("to", report.To),
		slog.String("net_profit", report.NetProfit.String()))
	return report, nil
}

// CashFlow groups cash-account movements by their cash-flow tags. Line codes
// follow the B03-DN convention: 0x operating, 2x investing, 3x financing.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	ledger, err := s.ledgerSvc.BuildLedger(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type bucket map[string]decimal.Decimal
	operating, investing, financing := bucket{}, bucket{}, bucket{}
	netChange := decimal.Zero

	for _, entry := range ledger.Entries() {
		for _, line := range entry.Lines {
			if line.CashFlowCode == "" || !isCashAccount(line.AccountCode) {
				continue
			}
			// Cash increases on the debit side.
			signed := line.Debit.Sub(line.Credit)
			netChange = netChange.Add(signed)

			switch cashFlowSection(line.CashFlowCode) {
			case "investing":
				investing[line.CashFlowCode] = investing[line.CashFlowCode].Add(signed)
			case "financing":
				financing[line.CashFlowCode] = financing[line.CashFlowCode].Add(signed)
			default:
				operating[line.CashFlowCode] = operating[line.CashFlowCode].Add(signed)
			}
		}
	}

	toLines := func(b bucket) []domain.ReportLine {
		codes := make([]string, 0, len(b))
		for code := range b {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		lines := make([]domain.ReportLine, 0, len(codes))
		for _, code := range codes {
			lines = append(lines, domain.ReportLine{Code: code, Name: code, Amount: b[code].Round(2)})
		}
		return lines
	}

	return &domain.CashFlowReport{
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		Operating: toLines(operating),
		Investing: toLines(investing),
		Financing: toLines(financing),
		NetChange: netChange.Round(2),
	}, nil
}

// isCashAccount reports whether code belongs to the cash group (111 cash on
// hand, 112 bank deposits, 113 cash in transit).
func isCashAccount(code string) bool {
	return len(code) >= 2 && code[0] == '1' && code[1] == '1'
}

// cashFlowSection maps a B03-DN line code to its statement section.
func cashFlowSection(code string) string {
	n, err := strconv.Atoi(code)
	if err != nil {
		return "operating"
	}
	switch {
	case n >= 20 && n < 30:
		return "investing"
	case n >= 30 && n < 40:
		return "financing"
	default:
		return "operating"
	}
}

// ExportBalanceSheetXLSX renders the balance sheet as an xlsx workbook.
func (s *reportingService) ExportBalanceSheetXLSX(ctx context.Context, asOf time.Time) ([]byte, error) {
	report, err := s.BalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "BẢNG CÂN ĐỐI KẾ TOÁN")
	f.SetCellValue(sheet, "A2", "Ngày "+report.AsOf)

	row := 4
	writeSection := func(title string, lines []domain.ReportLine, total decimal.Decimal) {
		f.SetCellValue(sheet, cell("A", row), title)
		row++
		for _, l := range lines {
			f.SetCellValue(sheet, cell("A", row), l.Code)
			f.SetCellValue(sheet, cell("B", row), l.Name)
			f.SetCellValue(sheet, cell("C", row), l.Amount.StringFixed(2))
			row++
		}
		f.SetCellValue(sheet, cell("B", row), "Cộng")
		f.SetCellValue(sheet, cell("C", row), total.StringFixed(2))
		row += 2
	}

	writeSection("TÀI SẢN", report.Assets, report.TotalAssets)
	writeSection("NỢ PHẢI TRẢ", report.Liabilities, report.TotalLiabilities)
	writeSection("VỐN CHỦ SỞ HỮU", report.Equity, report.TotalEquity)

	if !report.Balanced {
		f.SetCellValue(sheet, cell("A", row), "CẢNH BÁO: tổng tài sản không khớp nguồn vốn")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render balance sheet workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportTrialBalanceXLSX renders the trial balance as an xlsx workbook.
func (s *reportingService) ExportTrialBalanceXLSX(ctx context.Context, asOf time.Time) ([]byte, error) {
	rows, err := s.TrialBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "BẢNG CÂN ĐỐI SỐ PHÁT SINH")
	f.SetCellValue(sheet, "A2", "Ngày "+asOf.Format("2006-01-02"))
	f.SetCellValue(sheet, "A3", "Số hiệu TK")
	f.SetCellValue(sheet, "B3", "Tên tài khoản")
	f.SetCellValue(sheet, "C3", "Nợ")
	f.SetCellValue(sheet, "D3", "Có")

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, r := range rows {
		rowNum := i + 4
		f.SetCellValue(sheet, cell("A", rowNum), r.AccountCode)
		f.SetCellValue(sheet, cell("B", rowNum), r.AccountName)
		f.SetCellValue(sheet, cell("C", rowNum), r.Debit.StringFixed(2))
		f.SetCellValue(sheet, cell("D", rowNum), r.Credit.StringFixed(2))
		totalDebit = totalDebit.Add(r.Debit)
		totalCredit = totalCredit.Add(r.Credit)
	}

	totalRow := len(rows) + 4
	f.SetCellValue(sheet, cell("B", totalRow), "Cộng")
	f.SetCellValue(sheet, cell("C", totalRow), totalDebit.StringFixed(2))
	f.SetCellValue(sheet, cell("D", totalRow), totalCredit.StringFixed(2))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render trial balance workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}
