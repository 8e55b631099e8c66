package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/jbrukh/bayesian"
	"github.com/plenert/voucher"
	"github.com/plenert/voucher/voucher/tabular"
	"github.com/spf13/cobra"
)

var suggestLearnFile string

// suggestCmd proposes debit accounts for statement rows no rule matches, by
// classifying memo words against accounts learned from the rule table and,
// optionally, a previously generated voucher file.
var suggestCmd = &cobra.Command{
	Use:   "suggest -i <statement-file>",
	Short: "Suggest accounts for statement rows that match no rule",
	RunE: func(_ *cobra.Command, _ []string) error {
		arch, err := loadArchive()
		if err != nil {
			return err
		}

		f, err := os.Open(statementFile)
		if err != nil {
			return fmt.Errorf("open statement: %w", err)
		}
		defer f.Close()
		records, err := tabular.ReadAll(f, delimiterRune())
		if err != nil {
			return err
		}
		txs := tabular.Transactions(records)

		var learned []voucher.Line
		if suggestLearnFile != "" {
			lf, err := os.Open(suggestLearnFile)
			if err != nil {
				return fmt.Errorf("open voucher file: %w", err)
			}
			defer lf.Close()
			lrecords, err := tabular.ReadAll(lf, delimiterRune())
			if err != nil {
				return err
			}
			learned = tabular.Lines(lrecords)
		}

		classifier := trainClassifier(arch.Rules, learned)
		if classifier == nil {
			slog.Warn("need at least two distinct debit accounts to classify, nothing to suggest")
			return nil
		}

		var unmatched int
		for _, tx := range txs {
			if _, ok := voucher.MatchRule(tx.Memo, arch.Rules); ok {
				continue
			}
			unmatched++
			account := predictAccount(classifier, memoWords(tx.Memo))
			if account == "" {
				fmt.Printf("%-40s -> ?\n", tx.Memo)
				continue
			}
			fmt.Printf("%-40s -> %s\n", tx.Memo, account)
		}
		if unmatched == 0 {
			slog.Info("every statement row already matches a rule")
		}
		return nil
	},
}

// trainClassifier learns debit accounts from rule keywords and from the
// memos of previously generated debit lines. Returns nil when fewer than
// two account classes exist.
func trainClassifier(rules []voucher.Rule, learned []voucher.Line) *bayesian.Classifier {
	unique := make(map[string]bool)
	for _, r := range rules {
		if r.DebitAccount != "" {
			unique[r.DebitAccount] = true
		}
	}
	for i := 0; i < len(learned); i += 2 {
		if learned[i].Account != "" {
			unique[learned[i].Account] = true
		}
	}
	if len(unique) < 2 {
		return nil
	}

	classes := make([]bayesian.Class, 0, len(unique))
	for name := range unique {
		classes = append(classes, bayesian.Class(name))
	}
	classifier := bayesian.NewClassifier(classes...)

	for _, r := range rules {
		if r.Keyword == "" || r.DebitAccount == "" {
			continue
		}
		classifier.Learn(memoWords(r.Keyword), bayesian.Class(r.DebitAccount))
	}
	// debit line of each pair carries the account the memo was booked to
	for i := 0; i < len(learned); i += 2 {
		l := learned[i]
		if l.Memo == "" || l.Account == "" {
			continue
		}
		classifier.Learn(memoWords(l.Memo), bayesian.Class(l.Account))
	}
	return classifier
}

// predictAccount returns the classified account only when the gap between
// the best and second-best score marks a high-confidence match.
func predictAccount(classifier *bayesian.Classifier, words []string) string {
	highScore1 := math.Inf(-1)
	highScore2 := math.Inf(-1)
	matchIdx := 0
	scores, _, _ := classifier.LogScores(words)
	for j, score := range scores {
		if score > highScore1 {
			highScore2 = highScore1
			highScore1 = score
			matchIdx = j
		} else if score > highScore2 {
			highScore2 = score
		}
	}
	if highScore1-highScore2 > 10 {
		return string(classifier.Classes[matchIdx])
	}
	return ""
}

// memoWords tokenizes a memo for classification: whitespace fields, with
// han runs further split per rune since Chinese memos carry no spaces.
func memoWords(memo string) []string {
	var words []string
	for _, field := range strings.Fields(memo) {
		ascii := isASCII(field)
		if ascii {
			words = append(words, field)
			continue
		}
		for _, r := range field {
			words = append(words, string(r))
		}
	}
	return words
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVarP(&statementFile, "file", "i", "", "Statement file to scan.")
	suggestCmd.Flags().StringVar(&suggestLearnFile, "learn", "", "Previously generated voucher file to learn from.")
	suggestCmd.MarkFlagRequired("file")
}
