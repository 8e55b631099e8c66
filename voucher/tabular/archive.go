package tabular

import (
	"strings"

	"github.com/plenert/voucher"
)

// Archive table files are read positionally: whatever the header row says,
// the first two columns are (code, name) and, for rule tables, the first
// three are (keyword, debit, credit). That is the deliberate import
// contract: archive exports from different ERPs disagree on header text
// but not on column order.

func tableRows(records [][]string, width int) [][]string {
	if len(records) < 2 {
		return nil
	}
	var rows [][]string
	for _, row := range records[1:] {
		if len(row) < width {
			continue
		}
		trimmed := make([]string, width)
		empty := true
		for i := 0; i < width; i++ {
			trimmed[i] = strings.TrimSpace(row[i])
			if trimmed[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, trimmed)
	}
	return rows
}

// Accounts reads a chart-of-accounts table.
func Accounts(records [][]string) []voucher.Account {
	var out []voucher.Account
	for _, row := range tableRows(records, 2) {
		out = append(out, voucher.Account{Code: row[0], Name: row[1]})
	}
	return out
}

// Customers reads a customer table.
func Customers(records [][]string) []voucher.Customer {
	var out []voucher.Customer
	for _, row := range tableRows(records, 2) {
		out = append(out, voucher.Customer{Code: row[0], Name: row[1]})
	}
	return out
}

// Rules reads a keyword-rule table, preserving row order.
func Rules(records [][]string) []voucher.Rule {
	var out []voucher.Rule
	for _, row := range tableRows(records, 3) {
		out = append(out, voucher.Rule{
			Keyword:       row[0],
			DebitAccount:  row[1],
			CreditAccount: row[2],
		})
	}
	return out
}
