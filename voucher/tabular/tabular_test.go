package tabular

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/plenert/voucher"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func TestReadAllEncodings(t *testing.T) {
	const text = "摘要,金额\n销售-ABC1234,1200\n"
	want := [][]string{{"摘要", "金额"}, {"销售-ABC1234", "1200"}}

	gb, _, err := transform.Bytes(simplifiedchinese.GB18030.NewEncoder(), []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	utf16le, _, err := transform.Bytes(
		unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(), []byte(text))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"utf8", []byte(text)},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{"gb18030", gb},
		{"utf16le bom", utf16le},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadAll(bytes.NewReader(tc.data), ',')
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestReadAllUndecodable(t *testing.T) {
	// invalid as UTF-8 and as GB18030
	_, err := ReadAll(bytes.NewReader([]byte{0x81, 0x20, 0x0A}), ',')
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("err = %v, want ErrUndecodable", err)
	}
}

func TestReadAllDelimiter(t *testing.T) {
	got, err := ReadAll(strings.NewReader("a\tb\nc\td\n"), '\t')
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, [][]string{{"a", "b"}, {"c", "d"}}) {
		t.Errorf("got %v", got)
	}
}

func TestTransactions(t *testing.T) {
	records := [][]string{
		{" 日期 ", "摘要", "对方单位", "金额"},
		{"2025-02-18", "销售-ABC1234 发货", " ACME ", "1,200.50"},
		{"2025-02-18", "工资", "", "(300 * 2)"},
		{"", "备注缺列", "Globex", "oops"},
	}
	got := Transactions(records)
	if len(got) != 3 {
		t.Fatalf("got %d transactions, want 3", len(got))
	}

	d := time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC)
	if !got[0].Date.Equal(d) {
		t.Errorf("date = %v, want %v", got[0].Date, d)
	}
	if got[0].Counterparty != "ACME" {
		t.Errorf("counterparty = %q", got[0].Counterparty)
	}
	if !got[0].Amount.Equal(decimal.RequireFromString("1200.5")) {
		t.Errorf("amount = %s", got[0].Amount)
	}
	if !got[1].Amount.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expression amount = %s, want 600", got[1].Amount)
	}
	// unparseable amount and missing date degrade to zero values
	if !got[2].Amount.IsZero() || !got[2].Date.IsZero() {
		t.Errorf("malformed row not degraded: %+v", got[2])
	}
}

func TestTransactionsAlternateHeaders(t *testing.T) {
	records := [][]string{
		{"交易日期", "Description", "对方户名", "Amount"},
		{"2025/02/18", "sale CT-88011", "ACME", "42"},
	}
	got := Transactions(records)
	if len(got) != 1 {
		t.Fatalf("got %d transactions", len(got))
	}
	if got[0].Memo != "sale CT-88011" || got[0].Counterparty != "ACME" {
		t.Errorf("row = %+v", got[0])
	}
	if got[0].Date.IsZero() {
		t.Error("alternate date header not picked up")
	}
}

func TestTransactionsMissingColumns(t *testing.T) {
	records := [][]string{
		{"摘要"},
		{"销售货款"},
	}
	got := Transactions(records)
	if len(got) != 1 {
		t.Fatalf("got %d transactions", len(got))
	}
	if got[0].Memo != "销售货款" {
		t.Errorf("memo = %q", got[0].Memo)
	}
	if got[0].Counterparty != "" || !got[0].Amount.IsZero() || !got[0].Date.IsZero() {
		t.Errorf("missing columns should degrade to zero values: %+v", got[0])
	}
}

func TestArchiveTables(t *testing.T) {
	accounts := Accounts([][]string{
		{"whatever", "the header says", "extra"},
		{" 1002 ", " 银行存款 "},
		{"", ""},
		{"1122", "应收账款", "ignored"},
	})
	wantAcc := []voucher.Account{
		{Code: "1002", Name: "银行存款"},
		{Code: "1122", Name: "应收账款"},
	}
	if !reflect.DeepEqual(accounts, wantAcc) {
		t.Errorf("Accounts = %v, want %v", accounts, wantAcc)
	}

	rules := Rules([][]string{
		{"关键词", "借方科目", "贷方科目"},
		{"销售", "1122 应收账款", "6001 主营业务收入"},
		{"too", "short"},
		{"工资", "2211 应付职工薪酬", "1002 银行存款"},
	})
	wantRules := []voucher.Rule{
		{Keyword: "销售", DebitAccount: "1122 应收账款", CreditAccount: "6001 主营业务收入"},
		{Keyword: "工资", DebitAccount: "2211 应付职工薪酬", CreditAccount: "1002 银行存款"},
	}
	if !reflect.DeepEqual(rules, wantRules) {
		t.Errorf("Rules = %v, want %v", rules, wantRules)
	}
}

func TestLinesRoundTrip(t *testing.T) {
	in := []voucher.Line{
		{
			VoucherNo:    "005",
			Date:         time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC),
			Memo:         "销售-ABC1234 发货",
			Account:      "1122 应收账款",
			Debit:        decimal.RequireFromString("1200.50"),
			Credit:       decimal.Zero,
			Counterparty: "ACME",
			ContractNo:   "ABC1234",
			CustomerCode: "C01",
		},
		{
			VoucherNo:    "005",
			Date:         time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC),
			Memo:         "销售-ABC1234 发货",
			Account:      "6001 主营业务收入",
			Debit:        decimal.Zero,
			Credit:       decimal.RequireFromString("1200.50"),
			Counterparty: "ACME",
			ContractNo:   "ABC1234",
			CustomerCode: "C01",
		},
	}

	var buf bytes.Buffer
	if err := NewEncoder(&buf, ',').Encode(in); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), strings.Join(LineHeader, ",")) {
		t.Errorf("missing header row: %q", buf.String())
	}

	records, err := ReadAll(&buf, ',')
	if err != nil {
		t.Fatal(err)
	}
	got := Lines(records)
	if len(got) != 2 {
		t.Fatalf("got %d lines", len(got))
	}
	if err := voucher.ValidatePairs(got); err != nil {
		t.Fatal(err)
	}
	if got[0].VoucherNo != "005" || !got[0].Debit.Equal(in[0].Debit) {
		t.Errorf("line 0 = %+v", got[0])
	}
	if got[1].Account != "6001 主营业务收入" || !got[1].Credit.Equal(in[1].Credit) {
		t.Errorf("line 1 = %+v", got[1])
	}
}
