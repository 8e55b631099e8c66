package tabular

import (
	"regexp"
	"strings"
	"time"

	"github.com/alfredxing/calc/compute"
	date "github.com/joyt/godate"
	"github.com/plenert/voucher"
	"github.com/shopspring/decimal"
)

// Header aliases for the logical statement fields. Matching is by trimmed
// header text, case-insensitive for the latin aliases.
var (
	memoHeaders         = []string{"摘要", "memo", "description"}
	counterpartyHeaders = []string{"对方单位", "对方户名", "counterparty", "payee"}
	amountHeaders       = []string{"金额", "amount"}
	dateHeaders         = []string{"日期", "交易日期", "date"}
)

// statementParser caches the detected date layout; statement files use one
// layout throughout, so only the first row pays for detection.
type statementParser struct {
	dateLayout string

	strPrevDate string
	prevDate    time.Time
}

func (sp *statementParser) parseDate(dateString string) time.Time {
	if dateString == "" {
		return time.Time{}
	}
	// seen before, skip parse
	if sp.strPrevDate == dateString {
		return sp.prevDate
	}

	transDate, err := time.Parse(sp.dateLayout, dateString)
	if err != nil {
		// try to find new date layout
		transDate, sp.dateLayout, err = date.ParseAndGetLayout(dateString)
		if err != nil {
			transDate = time.Time{}
		}
	}

	sp.strPrevDate = dateString
	sp.prevDate = transDate
	return transDate
}

// amountExpr matches parenthesized arithmetic like "(1200 * 3)", accepted in
// amount cells the same way posting amounts accept expressions.
var amountExpr = regexp.MustCompile(`^\([0-9+\-*/. ]+\)$`)

func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	if amountExpr.MatchString(s) {
		if f, err := compute.Evaluate(s); err == nil {
			return decimal.NewFromFloat(f)
		}
	}
	// Parse error, treat as zero
	return decimal.Zero
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, a := range aliases {
			if h == a || strings.EqualFold(h, a) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Transactions converts statement records into transactions. The first row
// is the header; columns are located by name with the known aliases, and a
// missing column degrades every row's field to its zero value rather than
// failing the import.
func Transactions(records [][]string) []voucher.Transaction {
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	memoCol := findColumn(header, memoHeaders)
	unitCol := findColumn(header, counterpartyHeaders)
	amountCol := findColumn(header, amountHeaders)
	dateCol := findColumn(header, dateHeaders)

	var sp statementParser
	txs := make([]voucher.Transaction, 0, len(records)-1)
	for _, row := range records[1:] {
		txs = append(txs, voucher.Transaction{
			Date:         sp.parseDate(strings.TrimSpace(cell(row, dateCol))),
			Memo:         strings.TrimSpace(cell(row, memoCol)),
			Counterparty: strings.TrimSpace(cell(row, unitCol)),
			Amount:       parseAmount(cell(row, amountCol)),
		})
	}
	return txs
}
