// Package cmd provides the CLI commands of the voucher tool.
package cmd

import (
	"log/slog"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
)

var (
	archivePath    string
	cfgFile        string
	debug          bool
	fieldDelimiter string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "voucher",
	Short: "Generate double-entry vouchers from bank statement rows",
	Long: `voucher turns bank/ledger statement rows into balanced double-entry
bookkeeping vouchers using a user-maintained set of keyword rules.

The archive file holds the chart of accounts, the customer table and the
keyword rules; it is a plain JSON bundle maintained with the archive,
backup and restore commands. generate reads a statement file, matches each
row's memo against the rules, extracts contract numbers, looks up customer
codes and writes paired debit/credit voucher lines.

Example:
  voucher archive rules rules.csv
  voucher generate -i statement.csv -o vouchers.csv --start-no 1`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&archivePath, "archive", "f", "archive.json", "Archive bundle file (accounts, customers, rules).")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $VOUCHER_CONFIG, then voucher.toml).")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&fieldDelimiter, "delimiter", ",", "Field delimiter.")
}

func delimiterRune() rune {
	for _, r := range fieldDelimiter {
		return r
	}
	return ','
}
