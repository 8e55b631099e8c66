package voucher

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrVoucherNoOverflow = errors.New("voucher number does not fit pad width")
	ErrOddLineCount      = errors.New("voucher lines must come in debit/credit pairs")
	ErrMismatchedPair    = errors.New("paired lines carry different voucher numbers")
	ErrUnbalancedPair    = errors.New("debit line amount does not equal credit line amount")
	ErrBothSidesSet      = errors.New("voucher line has both debit and credit set")
)

// BuildConfig carries the per-run settings of the voucher builder.
type BuildConfig struct {
	// StartNo is the first voucher number to assign. Zero means 1.
	StartNo int
	// PadWidth is the zero-pad width of voucher numbers. Zero means 3.
	PadWidth int
	// Sentinel overrides the unmatched-customer code when non-empty.
	Sentinel string
	// Extract configures contract-number extraction.
	Extract ExtractConfig
}

// Result is the outcome of one generation run.
type Result struct {
	Lines []Line
	// Matched and Skipped count input transactions, not lines.
	Matched int
	Skipped int
	// NoMatches is set when the input was non-empty but no transaction
	// matched any rule. It is the only way an all-skip batch is surfaced;
	// individual unmatched rows are silent.
	NoMatches bool
	// DuplicateNames lists customer names shared by more than one
	// customer; resolution picked the first in table order.
	DuplicateNames []string
}

// Build runs the voucher engine over one batch of transactions, in input
// order. Each transaction that matches a rule yields one debit line and one
// credit line sharing a zero-padded voucher number; transactions matching no
// rule are skipped without consuming a number. Malformed per-row data never
// aborts the batch; missing fields degrade to empty or zero. The only error
// is voucher-number overflow past the pad width.
func Build(txs []Transaction, rules []Rule, customers []Customer, cfg BuildConfig) (Result, error) {
	if cfg.StartNo <= 0 {
		cfg.StartNo = 1
	}
	if cfg.PadWidth <= 0 {
		cfg.PadWidth = 3
	}

	ext := NewExtractor(cfg.Extract)
	res := NewResolver(customers)
	if cfg.Sentinel != "" {
		res.Sentinel = cfg.Sentinel
	}

	limit := 1
	for i := 0; i < cfg.PadWidth; i++ {
		limit *= 10
	}
	limit-- // highest number expressible in PadWidth digits

	var out Result
	out.DuplicateNames = res.Duplicates()

	no := cfg.StartNo
	for _, tx := range txs {
		contract := ext.Extract(tx.Memo)

		rule, ok := MatchRule(tx.Memo, rules)
		if !ok {
			out.Skipped++
			continue
		}

		if no > limit {
			return out, fmt.Errorf("voucher %d: %w", no, ErrVoucherNoOverflow)
		}
		voucherNo := fmt.Sprintf("%0*d", cfg.PadWidth, no)
		code := res.Resolve(tx.Counterparty)

		debit := Line{
			VoucherNo:    voucherNo,
			Date:         tx.Date,
			Memo:         tx.Memo,
			Account:      rule.DebitAccount,
			Debit:        tx.Amount,
			Credit:       decimal.Zero,
			Counterparty: tx.Counterparty,
			ContractNo:   contract,
			CustomerCode: code,
		}
		credit := debit
		credit.Account = rule.CreditAccount
		credit.Debit = decimal.Zero
		credit.Credit = tx.Amount

		out.Lines = append(out.Lines, debit, credit)
		out.Matched++
		no++
	}

	out.NoMatches = len(txs) > 0 && out.Matched == 0
	return out, nil
}

// ValidatePairs checks the pairing invariant over a line sequence: an even
// number of lines, consecutive lines sharing a voucher number, exactly one
// side set per line, and equal magnitude across each pair.
func ValidatePairs(lines []Line) error {
	if len(lines)%2 != 0 {
		return ErrOddLineCount
	}
	for i := 0; i < len(lines); i += 2 {
		d, c := lines[i], lines[i+1]
		if d.VoucherNo != c.VoucherNo {
			return fmt.Errorf("voucher %s: %w", d.VoucherNo, ErrMismatchedPair)
		}
		for _, l := range []Line{d, c} {
			if !l.Debit.IsZero() && !l.Credit.IsZero() {
				return fmt.Errorf("voucher %s: %w", l.VoucherNo, ErrBothSidesSet)
			}
		}
		if !d.Debit.Equal(c.Credit) || !d.Credit.Equal(c.Debit) {
			return fmt.Errorf("voucher %s: %w", d.VoucherNo, ErrUnbalancedPair)
		}
	}
	return nil
}
