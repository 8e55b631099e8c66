package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/juztin/numeronym"
	"github.com/mattn/go-isatty"
	"github.com/plenert/voucher"
	"github.com/plenert/voucher/voucher/tabular"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	columnWidth int
	columnWide  bool
)

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print <voucher-file>",
	Args:  cobra.ExactArgs(1),
	Short: "Print a generated voucher file in register format",
	RunE: func(_ *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open voucher file: %w", err)
		}
		defer f.Close()

		records, err := tabular.ReadAll(f, delimiterRune())
		if err != nil {
			return err
		}
		lines := tabular.Lines(records)
		if err := voucher.ValidatePairs(lines); err != nil {
			slog.Warn("voucher file fails the pairing invariant", "error", err)
		}

		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
		if columnWidth == 80 && columnWide {
			columnWidth = 132
			fd := int(os.Stdout.Fd())
			if term.IsTerminal(fd) {
				if tw, _, err := term.GetSize(fd); err == nil {
					columnWidth = tw
				}
			}
		}

		printRegister(lines, columnWidth)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().IntVar(&columnWidth, "columns", 80, "Set a column width for output.")
	printCmd.Flags().BoolVar(&columnWide, "wide", false, "Wide output (use terminal width).")
}

// printRegister writes one fixed-width row per voucher line: number, date,
// account, memo, debit, credit.
func printRegister(lines []voucher.Line, columns int) {
	if columns < 40 {
		columns = 40
		fmt.Fprintf(os.Stderr, "warning: `columns` too small, setting to %d\n", columns)
	}
	// number(6) date(10) debit(12) credit(12) + 5 separators
	remainingWidth := columns - 6 - 10 - (12 * 2) - 5
	accWidth := remainingWidth / 2
	memoWidth := remainingWidth - accWidth

	colorNo := color.New(color.Bold)
	colorAccount := color.New(color.FgBlue)
	colorAmount := color.New(color.FgRed)

	buf := bufio.NewWriter(os.Stdout)
	prevNo := ""
	for _, l := range lines {
		no := l.VoucherNo
		if no == prevNo {
			no = "" // second line of the pair
		} else {
			prevNo = l.VoucherNo
		}
		dateStr := ""
		if !l.Date.IsZero() {
			dateStr = l.Date.Format("2006-01-02")
		}

		debitStr := strings.Repeat(" ", 12)
		creditStr := debitStr
		if !l.Debit.IsZero() {
			debitStr = colorAmount.Sprintf("%12s", l.Debit.StringFixedBank(2))
		}
		if !l.Credit.IsZero() {
			creditStr = colorAmount.Sprintf("%12s", l.Credit.StringFixedBank(2))
		}

		fmt.Fprintf(buf, "%s %s %s %s %s %s\n",
			colorNo.Sprintf("%-6s", no),
			fmt.Sprintf("%-10s", dateStr),
			colorAccount.Sprint(padCell(abbreviate(l.Account, accWidth), accWidth)),
			padCell(l.Memo, memoWidth),
			debitStr,
			creditStr,
		)
	}
	buf.Flush()
}

// abbreviate shortens an account reference to fit width. ASCII words get
// numeronym treatment ("internationalization" -> "i18n"); anything else is
// cut at the rune boundary.
func abbreviate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if isASCII(s) {
		words := strings.Fields(s)
		for i, w := range words {
			if len(w) > 4 {
				words[i] = string(numeronym.Parse([]byte(w)))
			}
		}
		s = strings.Join(words, " ")
	}
	if utf8.RuneCountInString(s) > width {
		runes := []rune(s)
		s = string(runes[:width])
	}
	return s
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// padCell pads or trims s to width display runes. fmt's %-*s counts bytes,
// which misaligns multibyte cells.
func padCell(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}
