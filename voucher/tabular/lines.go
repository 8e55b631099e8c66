package tabular

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/plenert/voucher"
	"github.com/shopspring/decimal"
)

const lineDateFormat = "2006-01-02"

// LineHeader is the voucher export header, column order fixed by the
// downstream spreadsheet templates.
var LineHeader = []string{"凭证号", "日期", "摘要", "科目", "借方", "贷方", "单位", "合同号", "客户编码"}

// Encoder writes voucher lines as a delimited file.
type Encoder struct {
	w *csv.Writer
}

// NewEncoder returns an Encoder writing to w with the given field delimiter
// (0 means comma).
func NewEncoder(w io.Writer, delim rune) *Encoder {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	return &Encoder{w: cw}
}

// Encode writes the header row followed by one record per line, two records
// per voucher.
func (e *Encoder) Encode(lines []voucher.Line) error {
	if err := e.w.Write(LineHeader); err != nil {
		return err
	}
	for _, l := range lines {
		dateStr := ""
		if !l.Date.IsZero() {
			dateStr = l.Date.Format(lineDateFormat)
		}
		rec := []string{
			l.VoucherNo,
			dateStr,
			l.Memo,
			l.Account,
			l.Debit.StringFixedBank(2),
			l.Credit.StringFixedBank(2),
			l.Counterparty,
			l.ContractNo,
			l.CustomerCode,
		}
		if err := e.w.Write(rec); err != nil {
			return err
		}
	}
	e.w.Flush()
	return e.w.Error()
}

// Lines reads voucher records back, skipping the header row. Columns are
// positional, matching LineHeader order.
func Lines(records [][]string) []voucher.Line {
	if len(records) < 2 {
		return nil
	}
	var out []voucher.Line
	for _, row := range records[1:] {
		var l voucher.Line
		l.VoucherNo = cell(row, 0)
		if d, err := time.Parse(lineDateFormat, cell(row, 1)); err == nil {
			l.Date = d
		}
		l.Memo = cell(row, 2)
		l.Account = cell(row, 3)
		l.Debit = parseAmount(cell(row, 4))
		l.Credit = parseAmount(cell(row, 5))
		l.Counterparty = cell(row, 6)
		l.ContractNo = cell(row, 7)
		l.CustomerCode = cell(row, 8)
		if l.VoucherNo == "" && l.Memo == "" && l.Debit.Equal(decimal.Zero) && l.Credit.Equal(decimal.Zero) {
			continue
		}
		out = append(out, l)
	}
	return out
}
