package voucher

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one row of the chart-of-accounts table, unique by code.
type Account struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Ref returns the free-text account reference used in rules and voucher
// lines, combining code and name the way the rule picklist does.
func (a Account) Ref() string {
	return a.Code + " " + a.Name
}

// Customer is one row of the customer table, unique by code. Transactions
// are matched against Name by exact, trimmed, case-sensitive equality.
type Customer struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Rule maps a keyword trigger to a debit/credit account pair. Rules are kept
// in user order and evaluated top to bottom; the debit and credit fields are
// free-text account references, not foreign keys.
type Rule struct {
	Keyword       string `json:"keyword"`
	DebitAccount  string `json:"debit"`
	CreditAccount string `json:"credit"`
}

// Transaction is one statement row read from a bank or ledger export. The
// memo drives both rule matching and contract extraction. A Transaction has
// a Date with no meaningful time-of-day part; missing fields stay at their
// zero values rather than being rejected.
type Transaction struct {
	Date         time.Time
	Memo         string
	Counterparty string
	Amount       decimal.Decimal
}

// Line is a single voucher line. Lines are always emitted in debit/credit
// pairs sharing a VoucherNo; exactly one of Debit and Credit is nonzero on
// each line of a pair.
type Line struct {
	VoucherNo    string
	Date         time.Time
	Memo         string
	Account      string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Counterparty string
	ContractNo   string
	CustomerCode string
}
