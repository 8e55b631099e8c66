package cmd

import (
	"reflect"
	"testing"

	"github.com/plenert/voucher"
)

func TestMemoWords(t *testing.T) {
	tests := []struct {
		memo string
		want []string
	}{
		{"payment CT-88011", []string{"payment", "CT-88011"}},
		{"销售货款", []string{"销", "售", "货", "款"}},
		{"销售 CT-88011", []string{"销", "售", "CT-88011"}},
		{"", nil},
	}
	for _, tc := range tests {
		if got := memoWords(tc.memo); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("memoWords(%q) = %v, want %v", tc.memo, got, tc.want)
		}
	}
}

func TestTrainClassifierNeedsTwoClasses(t *testing.T) {
	rules := []voucher.Rule{
		{Keyword: "销售", DebitAccount: "1122 应收账款"},
		{Keyword: "货款", DebitAccount: "1122 应收账款"},
	}
	if c := trainClassifier(rules, nil); c != nil {
		t.Error("one distinct account should not train a classifier")
	}

	rules = append(rules, voucher.Rule{Keyword: "工资", DebitAccount: "2211 应付职工薪酬"})
	if c := trainClassifier(rules, nil); c == nil {
		t.Error("two accounts should train a classifier")
	}
}

func TestPredictAccountLowConfidence(t *testing.T) {
	rules := []voucher.Rule{
		{Keyword: "销售", DebitAccount: "1122 应收账款"},
		{Keyword: "工资", DebitAccount: "2211 应付职工薪酬"},
	}
	c := trainClassifier(rules, nil)
	if c == nil {
		t.Fatal("classifier not trained")
	}
	// one observation per class cannot clear the confidence gap
	if got := predictAccount(c, memoWords("房租")); got != "" {
		t.Errorf("low-confidence prediction = %q, want empty", got)
	}
}
