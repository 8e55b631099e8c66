package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hako/durafmt"
	"github.com/plenert/voucher"
	"github.com/plenert/voucher/voucher/tabular"
	"github.com/spf13/cobra"
)

var (
	statementFile string
	outputFile    string
	startNo       int
	beginString   string
	endString     string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate voucher lines from a statement file",
	RunE: func(_ *cobra.Command, _ []string) error {
		start := time.Now()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
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
		txs, err = filterDateRange(txs)
		if err != nil {
			return err
		}
		slog.Debug("statement loaded", "file", statementFile, "rows", len(txs))

		result, err := voucher.Build(txs, arch.Rules, arch.Customers, cfg.buildConfig(startNo))
		if err != nil {
			return err
		}

		for _, name := range result.DuplicateNames {
			slog.Warn("customer name held by more than one customer, first code used", "name", name)
		}
		if result.NoMatches {
			slog.Warn("no statement row matched any rule, nothing generated",
				"rows", len(txs), "rules", len(arch.Rules))
		}

		out, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()
		if err := tabular.NewEncoder(out, delimiterRune()).Encode(result.Lines); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		slog.Info("generation finished",
			"vouchers", result.Matched,
			"lines", len(result.Lines),
			"skipped", result.Skipped,
			"output", outputFile,
			"elapsed", durafmt.Parse(time.Since(start)).LimitFirstN(2).String(),
		)
		return nil
	},
}

// filterDateRange drops transactions outside --begin-date/--end-date. Rows
// without a parseable date only pass an unbounded range.
func filterDateRange(txs []voucher.Transaction) ([]voucher.Transaction, error) {
	if beginString == "" && endString == "" {
		return txs, nil
	}
	begin := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if beginString != "" {
		if begin, err = dateparse.ParseAny(beginString); err != nil {
			return nil, fmt.Errorf("unable to parse begin date: %w", err)
		}
	}
	if endString != "" {
		if end, err = dateparse.ParseAny(endString); err != nil {
			return nil, fmt.Errorf("unable to parse end date: %w", err)
		}
		// include end date's rows too
		end = end.Add(24*time.Hour - time.Second)
	}

	var out []voucher.Transaction
	for _, tx := range txs {
		if tx.Date.Before(begin) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&statementFile, "file", "i", "", "Statement file to process.")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "vouchers.csv", "Output voucher file.")
	generateCmd.Flags().IntVar(&startNo, "start-no", 0, "Starting voucher number (default from config, then 1).")
	generateCmd.Flags().StringVarP(&beginString, "begin-date", "b", "", "Only process rows on or after this date.")
	generateCmd.Flags().StringVarP(&endString, "end-date", "e", "", "Only process rows on or before this date.")
	generateCmd.MarkFlagRequired("file")
}
