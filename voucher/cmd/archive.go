package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/plenert/voucher"
	"github.com/plenert/voucher/voucher/tabular"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// archiveCmd groups the table-maintenance subcommands.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Maintain the archive tables (accounts, customers, rules)",
}

var archiveAccountsCmd = &cobra.Command{
	Use:   "accounts <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Replace the chart-of-accounts table from a tabular file",
	RunE: func(_ *cobra.Command, args []string) error {
		return replaceTable(args[0], func(arch *voucher.Archive, records [][]string) int {
			arch.ReplaceAccounts(tabular.Accounts(records))
			return len(arch.Accounts)
		})
	},
}

var archiveCustomersCmd = &cobra.Command{
	Use:   "customers <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Replace the customer table from a tabular file",
	RunE: func(_ *cobra.Command, args []string) error {
		return replaceTable(args[0], func(arch *voucher.Archive, records [][]string) int {
			arch.ReplaceCustomers(tabular.Customers(records))
			return len(arch.Customers)
		})
	},
}

var archiveRulesCmd = &cobra.Command{
	Use:   "rules <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Replace the rule table from a tabular or YAML file",
	Long: `Replace the rule table. Tabular files are read positionally as
(keyword, debit, credit); files ending in .yaml or .yml are read as

  rules:
    - keyword: 销售
      debit: "1122 应收账款"
      credit: "6001 主营业务收入"

Rule order in the file is the evaluation order.`,
	RunE: func(_ *cobra.Command, args []string) error {
		lower := strings.ToLower(args[0])
		if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
			return replaceRulesYAML(args[0])
		}
		return replaceTable(args[0], func(arch *voucher.Archive, records [][]string) int {
			arch.ReplaceRules(tabular.Rules(records))
			return len(arch.Rules)
		})
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show archive table sizes and the account picklist",
	RunE: func(_ *cobra.Command, _ []string) error {
		arch, err := loadArchive()
		if err != nil {
			return err
		}
		fmt.Printf("accounts: %d\ncustomers: %d\nrules: %d\n",
			len(arch.Accounts), len(arch.Customers), len(arch.Rules))
		for _, ref := range arch.AccountRefs() {
			fmt.Println("  " + ref)
		}
		return nil
	},
}

func replaceTable(filename string, replace func(*voucher.Archive, [][]string) int) error {
	arch, err := loadArchive()
	if err != nil {
		return err
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	records, err := tabular.ReadAll(f, delimiterRune())
	if err != nil {
		// import aborted, prior archive state untouched on disk
		return err
	}

	n := replace(arch, records)
	if err := saveArchive(arch); err != nil {
		return err
	}
	slog.Info("table replaced", "file", filename, "rows", n, "archive", archivePath)
	return nil
}

// ruleFile is the YAML rule format, one mapping per entry in evaluation
// order.
type ruleFile struct {
	Rules []struct {
		Keyword string `yaml:"keyword"`
		Debit   string `yaml:"debit"`
		Credit  string `yaml:"credit"`
	} `yaml:"rules"`
}

func replaceRulesYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("open table: %w", err)
	}
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("parse rules yaml: %w", err)
	}

	rules := make([]voucher.Rule, 0, len(rf.Rules))
	for _, r := range rf.Rules {
		rules = append(rules, voucher.Rule{
			Keyword:       r.Keyword,
			DebitAccount:  r.Debit,
			CreditAccount: r.Credit,
		})
	}

	arch, err := loadArchive()
	if err != nil {
		return err
	}
	arch.ReplaceRules(rules)
	if err := saveArchive(arch); err != nil {
		return err
	}
	slog.Info("table replaced", "file", filename, "rows", len(rules), "archive", archivePath)
	return nil
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveAccountsCmd)
	archiveCmd.AddCommand(archiveCustomersCmd)
	archiveCmd.AddCommand(archiveRulesCmd)
	archiveCmd.AddCommand(archiveShowCmd)
}
